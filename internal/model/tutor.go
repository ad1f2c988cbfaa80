package model

import (
	"time"
)

type ChatMessage struct {
	Role    string `json:"role"` // user 或 assistant
	Content string `json:"content"`
}

// TutorConversation 每个 (course_id, user_id) 一条，首次聊天时懒创建。
// 完整消息日志无上限地追加并原样返回给前端，模型上下文只取最近 10 条。
type TutorConversation struct {
	ID        uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseID  uint          `gorm:"index;not null" json:"course_id"`
	UserID    string        `gorm:"size:100;index" json:"user_id"`
	Messages  []ChatMessage `gorm:"type:json;serializer:json" json:"messages"`
	CreatedAt time.Time     `json:"-"`
	UpdatedAt time.Time     `json:"-"`
}

func (TutorConversation) TableName() string {
	return "tutor_conversations"
}
