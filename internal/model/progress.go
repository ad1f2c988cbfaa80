package model

import (
	"time"
)

// CourseProgress 每个 (course_id, user_id) 一条，首次访问时懒创建。
// 更新为读取-修改-写回，无行锁，同一用户并发写存在丢失更新的可能，
// 单人学习工具场景下接受该特性。
type CourseProgress struct {
	ID              uint               `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseID        uint               `gorm:"index;not null" json:"course_id"`
	UserID          string             `gorm:"size:100;index" json:"user_id"`
	CurrentModuleID *uint              `json:"current_module_id"`
	CurrentLessonID *uint              `json:"current_lesson_id"`
	CompletedLessons []uint            `gorm:"type:json;serializer:json" json:"completed_lessons"`
	QuizScores      map[string]float64 `gorm:"type:json;serializer:json" json:"quiz_scores"` // quiz_id(字符串) -> 分数
	OverallProgress float64            `gorm:"default:0" json:"overall_progress"`            // 0.0 ~ 1.0
	CreatedAt       time.Time          `json:"-"`
	UpdatedAt       time.Time          `json:"-"`
}

func (CourseProgress) TableName() string {
	return "course_progress"
}
