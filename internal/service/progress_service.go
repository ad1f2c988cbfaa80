package service

import (
	"courseforge_backend/internal/model"
	"courseforge_backend/internal/repository"
	"strconv"
)

// ProgressService 维护 (课程, 用户) 维度的学习进度
type ProgressService struct {
	progressRepo *repository.ProgressRepository
	courseRepo   *repository.CourseRepository
}

func NewProgressService(progressRepo *repository.ProgressRepository, courseRepo *repository.CourseRepository) *ProgressService {
	return &ProgressService{
		progressRepo: progressRepo,
		courseRepo:   courseRepo,
	}
}

// Get 读取进度，首次访问落一条零值记录
func (s *ProgressService) Get(courseID uint, userID string) (*model.CourseProgress, error) {
	return s.progressRepo.GetOrCreate(courseID, userID)
}

// SetLessonCompleted 按 completed 标记增删完成集合，重复标记不产生重复项。
// 每次变更后按 已完成数/总课时数 重算整体进度，课程没有课时时记 0。
func (s *ProgressService) SetLessonCompleted(courseID uint, userID string, lessonID uint, completed bool) (*model.CourseProgress, error) {
	progress, err := s.progressRepo.GetOrCreate(courseID, userID)
	if err != nil {
		return nil, err
	}

	found := -1
	for i, id := range progress.CompletedLessons {
		if id == lessonID {
			found = i
			break
		}
	}

	if completed && found < 0 {
		progress.CompletedLessons = append(progress.CompletedLessons, lessonID)
		progress.CurrentLessonID = &lessonID
	} else if !completed && found >= 0 {
		progress.CompletedLessons = append(progress.CompletedLessons[:found], progress.CompletedLessons[found+1:]...)
	}

	total, err := s.courseRepo.TotalLessons(courseID)
	if err != nil {
		return nil, err
	}
	if total > 0 {
		progress.OverallProgress = float64(len(progress.CompletedLessons)) / float64(total)
	} else {
		progress.OverallProgress = 0
	}

	if err := s.progressRepo.Save(progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// RecordQuizScore 以测验 ID 的字符串形式为键覆盖写入得分
func (s *ProgressService) RecordQuizScore(courseID uint, userID string, quizID uint, score float64) (*model.CourseProgress, error) {
	progress, err := s.progressRepo.GetOrCreate(courseID, userID)
	if err != nil {
		return nil, err
	}

	if progress.QuizScores == nil {
		progress.QuizScores = map[string]float64{}
	}
	progress.QuizScores[strconv.FormatUint(uint64(quizID), 10)] = score

	if err := s.progressRepo.Save(progress); err != nil {
		return nil, err
	}
	return progress, nil
}
