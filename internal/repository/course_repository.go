package repository

import (
	"context"
	"courseforge_backend/internal/model"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	courseDetailKeyPrefix = "course:detail:"
	courseDetailTTL       = 10 * time.Minute
)

type CourseRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
	ctx   context.Context
}

// NewCourseRepository rdb 可以为 nil，此时只走数据库
func NewCourseRepository(db *gorm.DB, rdb *redis.Client) *CourseRepository {
	return &CourseRepository{
		DB:    db,
		Redis: rdb,
		ctx:   context.Background(),
	}
}

// CreateFromDocument 把课程文档物化为实体图：先插课程行拿到 ID，
// 再按文档顺序插模块、课时、测验，最后插闪卡。order 字段原样沿用文档值，
// 不重排也不校验空洞或重复。整个落库过程在一个事务里完成，
// 中途失败不会留下孤儿行。
func (r *CourseRepository) CreateFromDocument(doc *model.CourseDocument, sourceType, sourceContent, sourceFilePath string) (*model.Course, error) {
	course := &model.Course{
		Title:           doc.Title,
		Description:     doc.Description,
		SourceType:      sourceType,
		SourceContent:   sourceContent,
		SourceFilePath:  sourceFilePath,
		TableOfContents: doc.TableOfContents,
	}

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(course).Error; err != nil {
			return err
		}

		for _, moduleDraft := range doc.Modules {
			module := model.Module{
				CourseID:    course.ID,
				Title:       moduleDraft.Title,
				Description: moduleDraft.Description,
				Order:       moduleDraft.Order,
			}
			if err := tx.Create(&module).Error; err != nil {
				return err
			}

			for _, lessonDraft := range moduleDraft.Lessons {
				lesson := model.Lesson{
					ModuleID:            module.ID,
					Title:               lessonDraft.Title,
					Order:               lessonDraft.Order,
					BeginnerContent:     lessonDraft.BeginnerContent,
					IntermediateContent: lessonDraft.IntermediateContent,
					ExpertContent:       lessonDraft.ExpertContent,
					Examples:            lessonDraft.Examples,
					Analogies:           lessonDraft.Analogies,
					Diagrams:            lessonDraft.Diagrams,
					Summary:             lessonDraft.Summary,
					CodingTasks:         lessonDraft.CodingTasks,
				}
				if err := tx.Create(&lesson).Error; err != nil {
					return err
				}

				for _, quizDraft := range lessonDraft.Quizzes {
					quiz := model.Quiz{
						LessonID:      lesson.ID,
						Question:      quizDraft.Question,
						Options:       quizDraft.Options,
						CorrectAnswer: quizDraft.CorrectAnswer,
						Explanation:   quizDraft.Explanation,
					}
					if err := tx.Create(&quiz).Error; err != nil {
						return err
					}
				}
			}
		}

		for _, card := range doc.Flashcards {
			flashcard := model.Flashcard{
				CourseID: course.ID,
				Front:    card.Front,
				Back:     card.Back,
			}
			if err := tx.Create(&flashcard).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return course, nil
}

// List 按创建时间倒序返回课程，预载模块用于数量统计
func (r *CourseRepository) List() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Preload("Modules").
		Order("created_at DESC").
		Find(&courses).Error
	return courses, err
}

// GetRow 只取课程行本身，不带下属实体
func (r *CourseRepository) GetRow(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// Get 返回完整课程树，模块和课时按 order 升序。命中缓存时直接反序列化返回。
func (r *CourseRepository) Get(id uint) (*model.Course, error) {
	if r.Redis != nil {
		cached, err := r.Redis.Get(r.ctx, courseDetailKey(id)).Result()
		if err == nil {
			var course model.Course
			if err := json.Unmarshal([]byte(cached), &course); err == nil {
				return &course, nil
			}
		}
	}

	var course model.Course
	err := r.DB.
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("Modules.Lessons.Quizzes").
		Preload("Flashcards").
		First(&course, id).Error
	if err != nil {
		return nil, err
	}
	course.NormalizeCollections()

	if r.Redis != nil {
		if data, err := json.Marshal(&course); err == nil {
			r.Redis.Set(r.ctx, courseDetailKey(id), data, courseDetailTTL)
		}
	}

	return &course, nil
}

// GetFlashcards 只取某课程的闪卡
func (r *CourseRepository) GetFlashcards(courseID uint) ([]model.Flashcard, error) {
	flashcards := []model.Flashcard{}
	err := r.DB.Where("course_id = ?", courseID).Find(&flashcards).Error
	return flashcards, err
}

// HasModules 用于生成状态查询：有模块即视为生成完成
func (r *CourseRepository) HasModules(courseID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Module{}).Where("course_id = ?", courseID).Count(&count).Error
	return count > 0, err
}

// TotalLessons 统计课程的总课时数，用于进度比例计算
func (r *CourseRepository) TotalLessons(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Lesson{}).
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("modules.course_id = ?", courseID).
		Count(&count).Error
	return count, err
}

// Delete 级联删除课程及全部下属实体。显式逐层删除，
// 不依赖数据库外键的级联配置。
func (r *CourseRepository) Delete(id uint) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var course model.Course
		if err := tx.First(&course, id).Error; err != nil {
			return err
		}

		var moduleIDs []uint
		if err := tx.Model(&model.Module{}).Where("course_id = ?", id).Pluck("id", &moduleIDs).Error; err != nil {
			return err
		}

		if len(moduleIDs) > 0 {
			var lessonIDs []uint
			if err := tx.Model(&model.Lesson{}).Where("module_id IN ?", moduleIDs).Pluck("id", &lessonIDs).Error; err != nil {
				return err
			}

			if len(lessonIDs) > 0 {
				if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&model.Quiz{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("module_id IN ?", moduleIDs).Delete(&model.Lesson{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("course_id = ?", id).Delete(&model.Module{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.Flashcard{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.CourseProgress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.TutorConversation{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Course{}, id).Error
	})
	if err != nil {
		return err
	}

	if r.Redis != nil {
		r.Redis.Del(r.ctx, courseDetailKey(id))
	}

	return nil
}

// IsNotFound 统一判定记录缺失
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func courseDetailKey(id uint) string {
	return fmt.Sprintf("%s%d", courseDetailKeyPrefix, id)
}
