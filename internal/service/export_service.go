package service

import (
	"bytes"
	"courseforge_backend/internal/model"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
)

// ExportService 把课程内容渲染成可下载的文本格式
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// Summary 课程摘要纯文本：课程、模块、课时三级标题加各自摘要
func (s *ExportService) Summary(course *model.Course) string {
	lines := []string{fmt.Sprintf("# %s\n", course.Title)}
	if course.Description != "" {
		lines = append(lines, fmt.Sprintf("%s\n\n", course.Description))
	}

	for _, module := range course.Modules {
		lines = append(lines, fmt.Sprintf("## %s\n", module.Title))
		if module.Description != "" {
			lines = append(lines, fmt.Sprintf("%s\n\n", module.Description))
		}

		for _, lesson := range module.Lessons {
			lines = append(lines, fmt.Sprintf("### %s\n", lesson.Title))
			if lesson.Summary != "" {
				lines = append(lines, fmt.Sprintf("%s\n\n", lesson.Summary))
			}
		}
	}

	return strings.Join(lines, "\n")
}

// FlashcardsCSV 闪卡 CSV 导出，首行为表头
func (s *ExportService) FlashcardsCSV(flashcards []model.Flashcard) (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Front", "Back"}); err != nil {
		return "", err
	}
	for _, card := range flashcards {
		if err := writer.Write([]string{card.Front, card.Back}); err != nil {
			return "", err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// FlashcardsJSON 闪卡 JSON 导出，两格缩进
func (s *ExportService) FlashcardsJSON(flashcards []model.Flashcard) (string, error) {
	type card struct {
		Front string `json:"front"`
		Back  string `json:"back"`
	}
	data := make([]card, 0, len(flashcards))
	for _, f := range flashcards {
		data = append(data, card{Front: f.Front, Back: f.Back})
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Notes 全量笔记 Markdown。正文优先中级内容，
// 缺了依次退到入门和进阶。
func (s *ExportService) Notes(course *model.Course) string {
	lines := []string{fmt.Sprintf("# %s\n\n", course.Title)}
	if course.Description != "" {
		lines = append(lines, fmt.Sprintf("%s\n\n", course.Description))
	}

	for _, module := range course.Modules {
		lines = append(lines, fmt.Sprintf("## %s\n\n", module.Title))
		if module.Description != "" {
			lines = append(lines, fmt.Sprintf("%s\n\n", module.Description))
		}

		for _, lesson := range module.Lessons {
			lines = append(lines, fmt.Sprintf("### %s\n\n", lesson.Title))

			switch {
			case lesson.IntermediateContent != "":
				lines = append(lines, fmt.Sprintf("%s\n\n", lesson.IntermediateContent))
			case lesson.BeginnerContent != "":
				lines = append(lines, fmt.Sprintf("%s\n\n", lesson.BeginnerContent))
			case lesson.ExpertContent != "":
				lines = append(lines, fmt.Sprintf("%s\n\n", lesson.ExpertContent))
			}

			if len(lesson.Examples) > 0 {
				lines = append(lines, "#### Examples\n\n")
				for _, example := range lesson.Examples {
					lines = append(lines, fmt.Sprintf("- %s\n", example))
				}
				lines = append(lines, "\n")
			}

			if lesson.Summary != "" {
				lines = append(lines, fmt.Sprintf("**Summary:** %s\n\n", lesson.Summary))
			}
		}
	}

	return strings.Join(lines, "\n")
}
