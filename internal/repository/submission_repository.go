package repository

import (
	"context"
	"errors"
	"quiz_grading_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

// FindOne 查找用户对某测评的任意一次提交
func (r *SubmissionRepository) FindOne(ctx context.Context, userID string, assessmentID uint) (*model.Submission, error) {
	var s model.Submission
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND assessment_id = ?", userID, assessmentID).
		Order("submitted_at asc").
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Insert 单条插入即原子提交；(user_id, assessment_id, attempt_key) 唯一索引冲突返回 ErrDuplicate
func (r *SubmissionRepository) Insert(ctx context.Context, s *model.Submission) error {
	err := r.DB.WithContext(ctx).Create(s).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (r *SubmissionRepository) ListByUser(ctx context.Context, userID string) ([]model.Submission, error) {
	var ss []model.Submission
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("submitted_at desc").
		Find(&ss).Error
	return ss, err
}

func (r *SubmissionRepository) ListByAssessment(ctx context.Context, assessmentID uint) ([]model.Submission, error) {
	var ss []model.Submission
	err := r.DB.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		Order("submitted_at asc").
		Find(&ss).Error
	return ss, err
}

func (r *SubmissionRepository) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	var rows []model.LeaderboardEntry
	err := r.DB.WithContext(ctx).Model(&model.Submission{}).
		Select(`user_id,
			COALESCE(SUM(CASE WHEN assessment_kind = ? THEN score ELSE 0 END), 0) AS total_quiz_score,
			COALESCE(SUM(CASE WHEN assessment_kind = ? THEN score ELSE 0 END), 0) AS total_assignment_score,
			COALESCE(SUM(score), 0) AS combined_score`, model.KindQuiz, model.KindAssignment).
		Group("user_id").
		Order("combined_score desc, user_id asc").
		Scan(&rows).Error
	return rows, err
}
