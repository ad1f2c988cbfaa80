package service

import (
	"courseforge_backend/internal/model"
	"courseforge_backend/internal/repository"
	"courseforge_backend/internal/util"
	"courseforge_backend/pkg/logger"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// 携带到提示词里的历史消息上限，更早的消息只留在库里
const tutorHistoryWindow = 10

const tutorSummaryPreview = 200
const tutorContentPreview = 300

// TutorService 基于课程内容回答学员提问，
// 会话按 (课程, 用户) 持久化，首次提问时创建
type TutorService struct {
	client    ModelClient
	tutorRepo *repository.TutorRepository
}

func NewTutorService(client ModelClient, tutorRepo *repository.TutorRepository) *TutorService {
	return &TutorService{
		client:    client,
		tutorRepo: tutorRepo,
	}
}

// Chat 生成导师回复并把问答追加进会话。
// 模型不可用或调用失败都降级为固定话术，不向调用方抛错。
func (s *TutorService) Chat(course *model.Course, userID, message string) (string, *model.TutorConversation, error) {
	conv, err := s.tutorRepo.GetOrCreate(course.ID, userID)
	if err != nil {
		return "", nil, err
	}

	reply := s.respond(course, conv.Messages, message)

	conv.Messages = append(conv.Messages,
		model.ChatMessage{Role: "user", Content: message},
		model.ChatMessage{Role: "assistant", Content: reply},
	)
	if err := s.tutorRepo.Save(conv); err != nil {
		return "", nil, err
	}

	return reply, conv, nil
}

// History 返回会话历史，没有会话时返回 nil
func (s *TutorService) History(courseID uint, userID string) (*model.TutorConversation, error) {
	conv, err := s.tutorRepo.Get(courseID, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return conv, nil
}

func (s *TutorService) respond(course *model.Course, history []model.ChatMessage, message string) string {
	if s.client == nil || !s.client.Configured() {
		return fmt.Sprintf("I'm here to help with '%s'. Based on the course content, I can provide explanations and answer questions. Please ask me anything about the course!", course.Title)
	}

	prompt := buildTutorPrompt(course, history, message)
	reply, err := s.client.Chat(prompt, "")
	if err != nil {
		logger.Log.Error("Tutor model call failed", zap.Uint("course_id", course.ID), zap.Error(err))
		return "I'm sorry, I encountered an error. Please try again."
	}
	return reply
}

// buildTutorPrompt 把课程大纲、带窗口的会话历史和当前提问
// 拼成一段提示词。课时内容只截取开头作为预览，控制提示词体积。
func buildTutorPrompt(course *model.Course, history []model.ChatMessage, message string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an AI tutor helping students learn from this course: %q.\n\n", course.Title)
	b.WriteString("Course Context:\n")
	b.WriteString(buildCourseContext(course))
	b.WriteString("\n\nYour role:\n")
	b.WriteString("- Answer questions clearly and helpfully\n")
	b.WriteString("- Reference specific lessons and modules when relevant\n")
	b.WriteString("- Provide examples and analogies when helpful\n")
	b.WriteString("- Encourage learning and clarify concepts\n")
	b.WriteString("- If asked about something not in the course, say so politely\n\n")
	b.WriteString("Conversation History:\n")

	for _, msg := range lastMessages(history, tutorHistoryWindow) {
		role := msg.Role
		if role != "" {
			role = strings.ToUpper(role[:1]) + role[1:]
		}
		fmt.Fprintf(&b, "%s: %s\n\n", role, msg.Content)
	}

	fmt.Fprintf(&b, "User: %s\n\nAssistant:", message)
	return b.String()
}

func buildCourseContext(course *model.Course) string {
	parts := []string{fmt.Sprintf("Course: %s", course.Title)}

	if course.Description != "" {
		parts = append(parts, fmt.Sprintf("Description: %s", course.Description))
	}

	for _, module := range course.Modules {
		parts = append(parts, fmt.Sprintf("\nModule %d: %s", module.Order, module.Title))
		if module.Description != "" {
			parts = append(parts, fmt.Sprintf("  %s", module.Description))
		}

		for _, lesson := range module.Lessons {
			parts = append(parts, fmt.Sprintf("  Lesson %d: %s", lesson.Order, lesson.Title))
			if lesson.Summary != "" {
				parts = append(parts, fmt.Sprintf("    Summary: %s", util.Truncate(lesson.Summary, tutorSummaryPreview)))
			}
			if lesson.BeginnerContent != "" {
				parts = append(parts, fmt.Sprintf("    Content preview: %s...", util.Truncate(lesson.BeginnerContent, tutorContentPreview)))
			}
		}
	}

	return strings.Join(parts, "\n")
}

func lastMessages(history []model.ChatMessage, n int) []model.ChatMessage {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
