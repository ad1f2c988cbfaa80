package repository

import (
	"courseforge_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// GetOrCreate 懒创建进度记录：首次访问时落一条零值行
func (r *ProgressRepository) GetOrCreate(courseID uint, userID string) (*model.CourseProgress, error) {
	var progress model.CourseProgress
	err := r.DB.Where("course_id = ? AND user_id = ?", courseID, userID).First(&progress).Error
	if err == nil {
		return &progress, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	progress = model.CourseProgress{
		CourseID:         courseID,
		UserID:           userID,
		CompletedLessons: []uint{},
		QuizScores:       map[string]float64{},
		OverallProgress:  0,
	}
	if err := r.DB.Create(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) Save(progress *model.CourseProgress) error {
	return r.DB.Save(progress).Error
}
