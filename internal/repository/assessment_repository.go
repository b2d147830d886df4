package repository

import (
	"context"
	"errors"
	"quiz_grading_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func orderedQuestions(db *gorm.DB) *gorm.DB {
	return db.Order("`order` asc, created_at asc")
}

// Create 同时写入题目
func (r *AssessmentRepository) Create(ctx context.Context, a *model.Assessment) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *AssessmentRepository) FindByID(ctx context.Context, id uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.WithContext(ctx).Preload("Questions", orderedQuestions).First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssessmentRepository) ListByKind(ctx context.Context, kind model.AssessmentKind) ([]model.Assessment, error) {
	var as []model.Assessment
	err := r.DB.WithContext(ctx).
		Preload("Questions", orderedQuestions).
		Where("kind = ?", kind).
		Order("created_at desc").
		Find(&as).Error
	return as, err
}

// ListIDs 诊断用：列出某类测评的全部ID
func (r *AssessmentRepository) ListIDs(ctx context.Context, kind model.AssessmentKind) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).Model(&model.Assessment{}).
		Where("kind = ?", kind).
		Order("id asc").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *AssessmentRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Assessment{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("assessment_id = ?", id).Delete(&model.AssessmentQuestion{}).Error
	})
}
