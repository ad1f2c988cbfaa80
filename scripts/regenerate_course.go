// 手动重新生成课程脚本
//
// 切换生成模型或调整提示词后，可以用保存下来的原始素材重新合成课程，
// 新课程以独立记录落库，旧课程保留不动。
//
// 用法: go run scripts/regenerate_course.go <course_id>

package main

import (
	"courseforge_backend/internal/config"
	"courseforge_backend/internal/repository"
	"courseforge_backend/internal/service"
	"courseforge_backend/pkg/database"
	"courseforge_backend/pkg/logger"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("用法: go run scripts/regenerate_course.go <course_id>")
	}
	courseID, err := strconv.ParseUint(os.Args[1], 10, 32)
	if err != nil {
		log.Fatalf("无效课程ID: %v", err)
	}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	courseRepo := repository.NewCourseRepository(db, nil)
	generator := service.NewCourseGenerator(service.NewAIService(cfg.AI), courseRepo)

	course, err := courseRepo.GetRow(uint(courseID))
	if err != nil {
		log.Fatalf("课程不存在: %v", err)
	}
	if course.SourceContent == "" {
		log.Fatalf("课程 %d 没有保存原始素材，无法重新生成", courseID)
	}

	log.Printf("基于课程 %d 的原始素材重新生成...", courseID)
	doc := generator.Generate(course.SourceContent, course.SourceType)
	regenerated, err := generator.SaveCourse(doc, course.SourceType, course.SourceContent, course.SourceFilePath)
	if err != nil {
		log.Fatalf("保存失败: %v", err)
	}
	log.Printf("完成！新课程ID: %d, 标题: %s", regenerated.ID, regenerated.Title)
}
