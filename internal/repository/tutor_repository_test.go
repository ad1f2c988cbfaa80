package repository

import (
	"courseforge_backend/internal/model"
	"testing"
)

func TestTutorGetOrCreate_AndAppend(t *testing.T) {
	db := newTestDB(t)
	courses := NewCourseRepository(db, nil)
	repo := NewTutorRepository(db)

	course, err := courses.CreateFromDocument(sampleDocument(), "text", "", "")
	if err != nil {
		t.Fatalf("create course: %v", err)
	}

	if _, err := repo.Get(course.ID, "alice"); !IsNotFound(err) {
		t.Fatalf("expected not found before first chat, got %v", err)
	}

	conv, err := repo.GetOrCreate(course.ID, "alice")
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if len(conv.Messages) != 0 {
		t.Fatalf("expected empty conversation, got %d messages", len(conv.Messages))
	}

	conv.Messages = append(conv.Messages,
		model.ChatMessage{Role: "user", Content: "what is a goroutine?"},
		model.ChatMessage{Role: "assistant", Content: "a lightweight thread"},
	)
	if err := repo.Save(conv); err != nil {
		t.Fatalf("save: %v", err)
	}

	reloaded, err := repo.Get(course.ID, "alice")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(reloaded.Messages))
	}
	if reloaded.Messages[1].Role != "assistant" {
		t.Fatalf("unexpected message order: %+v", reloaded.Messages)
	}
}
