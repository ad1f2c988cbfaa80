package model

import (
	"errors"
	"fmt"
)

// ErrInvalidDocument 模型输出未通过结构校验时返回，触发确定性回退
var ErrInvalidDocument = errors.New("invalid course document")

// CourseDocument 生成结果的中间文档，持久化之前的唯一载体。
// 字段与模型的 JSON 输出一一对应。
type CourseDocument struct {
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	TableOfContents []TOCEntry       `json:"table_of_contents"`
	Modules         []ModuleDraft    `json:"modules"`
	Flashcards      []FlashcardDraft `json:"flashcards"`
}

type ModuleDraft struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Order       int           `json:"order"`
	Lessons     []LessonDraft `json:"lessons"`
}

type LessonDraft struct {
	Title               string      `json:"title"`
	Order               int         `json:"order"`
	BeginnerContent     string      `json:"beginner_content"`
	IntermediateContent string      `json:"intermediate_content"`
	ExpertContent       string      `json:"expert_content"`
	Examples            []string    `json:"examples"`
	Analogies           []string    `json:"analogies"`
	Diagrams            []string    `json:"diagrams"`
	Summary             string      `json:"summary"`
	CodingTasks         []string    `json:"coding_tasks"`
	Quizzes             []QuizDraft `json:"quizzes"`
}

// QuizDraft 兼容两种题干字段：AI 输出用 questionText，回退路径用 question。
// Validate 统一归一化到 Question。
type QuizDraft struct {
	Question      string   `json:"question"`
	QuestionText  string   `json:"questionText"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
}

type FlashcardDraft struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Validate 在持久化之前做一次结构校验与归一化。
// 不校验 correct_answer 是否越界，目录也不与 modules 对账，
// 这两点沿用既有行为。
func (d *CourseDocument) Validate() error {
	if d.Title == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidDocument)
	}
	if len(d.Modules) == 0 {
		return fmt.Errorf("%w: no modules", ErrInvalidDocument)
	}

	for mi := range d.Modules {
		m := &d.Modules[mi]
		if m.Title == "" {
			return fmt.Errorf("%w: module %d missing title", ErrInvalidDocument, mi+1)
		}
		if len(m.Lessons) == 0 {
			return fmt.Errorf("%w: module %q has no lessons", ErrInvalidDocument, m.Title)
		}
		for li := range m.Lessons {
			l := &m.Lessons[li]
			if l.Title == "" {
				return fmt.Errorf("%w: module %q lesson %d missing title", ErrInvalidDocument, m.Title, li+1)
			}
			for qi := range l.Quizzes {
				q := &l.Quizzes[qi]
				if q.Question == "" {
					q.Question = q.QuestionText
				}
				if q.Question == "" {
					return fmt.Errorf("%w: lesson %q quiz %d missing question", ErrInvalidDocument, l.Title, qi+1)
				}
				if len(q.Options) == 0 {
					return fmt.Errorf("%w: lesson %q quiz %d has no options", ErrInvalidDocument, l.Title, qi+1)
				}
			}
		}
	}
	return nil
}
