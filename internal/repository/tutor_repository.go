package repository

import (
	"courseforge_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

type TutorRepository struct {
	DB *gorm.DB
}

func NewTutorRepository(db *gorm.DB) *TutorRepository {
	return &TutorRepository{DB: db}
}

// Get 查询会话，不存在时返回 gorm.ErrRecordNotFound
func (r *TutorRepository) Get(courseID uint, userID string) (*model.TutorConversation, error) {
	var conv model.TutorConversation
	err := r.DB.Where("course_id = ? AND user_id = ?", courseID, userID).First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// GetOrCreate 懒创建会话记录
func (r *TutorRepository) GetOrCreate(courseID uint, userID string) (*model.TutorConversation, error) {
	conv, err := r.Get(courseID, userID)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conv = &model.TutorConversation{
		CourseID: courseID,
		UserID:   userID,
		Messages: []model.ChatMessage{},
	}
	if err := r.DB.Create(conv).Error; err != nil {
		return nil, err
	}
	return conv, nil
}

func (r *TutorRepository) Save(conv *model.TutorConversation) error {
	return r.DB.Save(conv).Error
}
