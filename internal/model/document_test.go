package model

import (
	"errors"
	"testing"
)

func validDocument() *CourseDocument {
	return &CourseDocument{
		Title: "T",
		Modules: []ModuleDraft{
			{
				Title: "M",
				Lessons: []LessonDraft{
					{
						Title: "L",
						Quizzes: []QuizDraft{
							{QuestionText: "Q?", Options: []string{"a", "b"}, CorrectAnswer: 1},
						},
					},
				},
			},
		},
	}
}

func TestValidate_AcceptsAndNormalizes(t *testing.T) {
	doc := validDocument()
	if err := doc.Validate(); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	if doc.Modules[0].Lessons[0].Quizzes[0].Question != "Q?" {
		t.Fatalf("questionText not copied to question")
	}
}

func TestValidate_QuestionFieldWins(t *testing.T) {
	doc := validDocument()
	doc.Modules[0].Lessons[0].Quizzes[0].Question = "direct"
	if err := doc.Validate(); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	if doc.Modules[0].Lessons[0].Quizzes[0].Question != "direct" {
		t.Fatalf("existing question overwritten")
	}
}

func TestValidate_Rejections(t *testing.T) {
	cases := map[string]func(*CourseDocument){
		"missing title":     func(d *CourseDocument) { d.Title = "" },
		"no modules":        func(d *CourseDocument) { d.Modules = nil },
		"module no title":   func(d *CourseDocument) { d.Modules[0].Title = "" },
		"module no lessons": func(d *CourseDocument) { d.Modules[0].Lessons = nil },
		"lesson no title":   func(d *CourseDocument) { d.Modules[0].Lessons[0].Title = "" },
		"quiz no question": func(d *CourseDocument) {
			d.Modules[0].Lessons[0].Quizzes[0].Question = ""
			d.Modules[0].Lessons[0].Quizzes[0].QuestionText = ""
		},
		"quiz no options": func(d *CourseDocument) { d.Modules[0].Lessons[0].Quizzes[0].Options = nil },
	}

	for name, mutate := range cases {
		doc := validDocument()
		mutate(doc)
		err := doc.Validate()
		if err == nil {
			t.Fatalf("%s: expected rejection", name)
		}
		if !errors.Is(err, ErrInvalidDocument) {
			t.Fatalf("%s: expected ErrInvalidDocument, got %v", name, err)
		}
	}
}

func TestValidate_DoesNotBoundCheckCorrectAnswer(t *testing.T) {
	doc := validDocument()
	doc.Modules[0].Lessons[0].Quizzes[0].CorrectAnswer = 99
	if err := doc.Validate(); err != nil {
		t.Fatalf("out-of-range correct_answer must pass validation, got %v", err)
	}
}

func TestValidate_LessonWithoutQuizzesIsFine(t *testing.T) {
	doc := validDocument()
	doc.Modules[0].Lessons[0].Quizzes = nil
	if err := doc.Validate(); err != nil {
		t.Fatalf("quizzes are optional, got %v", err)
	}
}
