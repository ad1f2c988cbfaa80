package service

import (
	"courseforge_backend/internal/model"
	"courseforge_backend/internal/repository"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func newTutorService(t *testing.T, client ModelClient) (*TutorService, *repository.CourseRepository) {
	db := newServiceDB(t)
	return NewTutorService(client, repository.NewTutorRepository(db)), repository.NewCourseRepository(db, nil)
}

func TestTutorChat_CannedReplyWithoutModel(t *testing.T) {
	svc, courseRepo := newTutorService(t, nil)
	course, _ := seedCourse(t, courseRepo)

	reply, conv, err := svc.Chat(course, "alice", "hello")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if !strings.Contains(reply, "I'm here to help with 'Seeded'") {
		t.Fatalf("unexpected canned reply: %q", reply)
	}
	if len(conv.Messages) != 2 {
		t.Fatalf("expected question and answer persisted, got %d", len(conv.Messages))
	}
	if conv.Messages[0].Role != "user" || conv.Messages[1].Role != "assistant" {
		t.Fatalf("unexpected roles: %+v", conv.Messages)
	}
}

func TestTutorChat_ApologyOnModelError(t *testing.T) {
	client := &fakeModelClient{configured: true, err: errors.New("timeout")}
	svc, courseRepo := newTutorService(t, client)
	course, _ := seedCourse(t, courseRepo)

	reply, _, err := svc.Chat(course, "alice", "hello")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if reply != "I'm sorry, I encountered an error. Please try again." {
		t.Fatalf("unexpected apology: %q", reply)
	}
}

func TestTutorChat_ConversationAccumulates(t *testing.T) {
	svc, courseRepo := newTutorService(t, nil)
	course, _ := seedCourse(t, courseRepo)

	for i := 0; i < 3; i++ {
		if _, _, err := svc.Chat(course, "alice", fmt.Sprintf("question %d", i)); err != nil {
			t.Fatalf("chat %d: %v", i, err)
		}
	}

	conv, err := svc.History(course.ID, "alice")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if conv == nil || len(conv.Messages) != 6 {
		t.Fatalf("expected 6 messages, got %+v", conv)
	}
}

func TestTutorHistory_NilWhenNeverChatted(t *testing.T) {
	svc, courseRepo := newTutorService(t, nil)
	course, _ := seedCourse(t, courseRepo)

	conv, err := svc.History(course.ID, "stranger")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if conv != nil {
		t.Fatalf("expected nil conversation, got %+v", conv)
	}
}

func TestBuildTutorPrompt_WindowsHistory(t *testing.T) {
	course := &model.Course{Title: "Prompt Course"}

	var history []model.ChatMessage
	for i := 0; i < 14; i++ {
		history = append(history, model.ChatMessage{Role: "user", Content: fmt.Sprintf("msg-%d", i)})
	}

	prompt := buildTutorPrompt(course, history, "current question")

	if strings.Contains(prompt, "msg-3") {
		t.Fatalf("expected old messages outside the window to be dropped")
	}
	if !strings.Contains(prompt, "msg-4") || !strings.Contains(prompt, "msg-13") {
		t.Fatalf("expected last 10 messages in prompt")
	}
	if !strings.HasSuffix(prompt, "User: current question\n\nAssistant:") {
		t.Fatalf("prompt must end with the pending turn, got tail %q", prompt[len(prompt)-60:])
	}
	if !strings.Contains(prompt, "User: msg-4") {
		t.Fatalf("role should be capitalized in transcript")
	}
}

func TestBuildCourseContext_OutlineAndPreviews(t *testing.T) {
	course := &model.Course{
		Title:       "Ctx",
		Description: "desc",
		Modules: []model.Module{
			{
				Order: 1,
				Title: "M1",
				Lessons: []model.Lesson{
					{
						Order:           1,
						Title:           "L1",
						Summary:         strings.Repeat("s", 300),
						BeginnerContent: strings.Repeat("b", 400),
					},
				},
			},
		},
	}

	ctx := buildCourseContext(course)

	if !strings.Contains(ctx, "Module 1: M1") || !strings.Contains(ctx, "Lesson 1: L1") {
		t.Fatalf("outline missing: %q", ctx)
	}
	if !strings.Contains(ctx, "Summary: "+strings.Repeat("s", 200)) {
		t.Fatalf("summary preview not truncated to 200")
	}
	if strings.Contains(ctx, strings.Repeat("s", 201)) {
		t.Fatalf("summary preview too long")
	}
	if !strings.Contains(ctx, "Content preview: "+strings.Repeat("b", 300)+"...") {
		t.Fatalf("content preview not truncated with ellipsis")
	}
}
