package service

import (
	"context"
	"errors"
	"fmt"
	"quiz_grading_backend/internal/model"
	"quiz_grading_backend/internal/repository"
	"quiz_grading_backend/internal/util"
	"quiz_grading_backend/pkg/logger"
	"strings"
	"time"

	"go.uber.org/zap"
)

// AssessmentRepo 测评的读写
type AssessmentRepo interface {
	AssessmentStore
	Create(ctx context.Context, a *model.Assessment) error
	ListByKind(ctx context.Context, kind model.AssessmentKind) ([]model.Assessment, error)
	Delete(ctx context.Context, id uint) error
}

type QuestionInput struct {
	Question string   `json:"question" binding:"required"`
	Type     string   `json:"type"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer" binding:"required"`
}

type CreateAssessmentRequest struct {
	Title           string          `json:"title" binding:"required"`
	AllowRetakes    bool            `json:"allow_retakes"`
	StartTime       *time.Time      `json:"start_time"`
	EndTime         *time.Time      `json:"end_time"`
	DurationMinutes int             `json:"duration_minutes"`
	Questions       []QuestionInput `json:"questions" binding:"required,min=1,dive"`
}

type AssessmentService struct {
	repo AssessmentRepo
}

func NewAssessmentService(repo AssessmentRepo) *AssessmentService {
	return &AssessmentService{repo: repo}
}

func (s *AssessmentService) Create(ctx context.Context, kind model.AssessmentKind, req CreateAssessmentRequest) (*model.Assessment, error) {
	if !kind.Valid() {
		return nil, util.NewValidationError("Invalid assessment kind", fmt.Sprintf("unknown kind %q", kind))
	}

	a := &model.Assessment{
		Kind:            kind,
		Title:           strings.TrimSpace(req.Title),
		AllowRetakes:    req.AllowRetakes,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationMinutes: req.DurationMinutes,
	}
	if a.Title == "" {
		return nil, util.NewValidationError("Invalid title", "title is required")
	}

	seen := make(map[string]bool, len(req.Questions))
	for i, in := range req.Questions {
		q, err := buildQuestion(i, in)
		if err != nil {
			return nil, err
		}
		// 答案按题干文本作为键提交，题干必须唯一
		if seen[q.Text] {
			return nil, util.NewValidationError("Duplicate question", fmt.Sprintf("question %d repeats the text of an earlier question", i+1))
		}
		seen[q.Text] = true
		a.Questions = append(a.Questions, q)
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, util.NewStorageError("create assessment", err)
	}

	logger.Log.Info("Assessment created", zap.Uint("id", a.ID), zap.String("kind", string(kind)), zap.Int("questions", len(a.Questions)))
	return a, nil
}

func buildQuestion(i int, in QuestionInput) (model.AssessmentQuestion, error) {
	q := model.AssessmentQuestion{
		Text:   strings.TrimSpace(in.Question),
		Answer: strings.TrimSpace(in.Answer),
		Order:  i,
	}
	q.ID = model.GenerateUUID()
	if q.Text == "" || q.Answer == "" {
		return q, util.NewValidationError("Invalid question", fmt.Sprintf("question %d needs both question text and answer", i+1))
	}

	var opts []string
	for _, o := range in.Options {
		if o = strings.TrimSpace(o); o != "" {
			opts = append(opts, o)
		}
	}
	q.SetOptions(opts)

	switch model.QuestionType(in.Type) {
	case "":
		q.Type = q.Kind()
	case model.QuestionMCQ:
		if !q.HasOptions() {
			return q, util.NewValidationError("Invalid question", fmt.Sprintf("question %d is mcq but has no options", i+1))
		}
		q.Type = model.QuestionMCQ
	case model.QuestionDescriptive:
		// 带选项的题目会把原始答案归一为选项，简答判分不会执行
		if q.HasOptions() {
			return q, util.NewValidationError("Invalid question", fmt.Sprintf("question %d is descriptive but has options", i+1))
		}
		q.Type = model.QuestionDescriptive
	default:
		return q, util.NewValidationError("Invalid question type", fmt.Sprintf("question %d has unknown type %q", i+1, in.Type))
	}
	return q, nil
}

func (s *AssessmentService) List(ctx context.Context, kind model.AssessmentKind, hideAnswers bool) ([]model.Assessment, error) {
	as, err := s.repo.ListByKind(ctx, kind)
	if err != nil {
		return nil, util.NewStorageError("list assessments", err)
	}
	if hideAnswers {
		for i := range as {
			stripAnswers(&as[i])
		}
	}
	return as, nil
}

func (s *AssessmentService) Get(ctx context.Context, rawID string, hideAnswers bool) (*model.Assessment, error) {
	id, ok := util.ParseID(rawID)
	if !ok {
		return nil, util.NewValidationError("Invalid assessment ID", "The assessment ID format is invalid")
	}
	a, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &util.NotFoundError{Title: "Assessment not found", Message: fmt.Sprintf("No assessment found with ID %d", id)}
	}
	if err != nil {
		return nil, util.NewStorageError("find assessment", err)
	}
	if hideAnswers {
		stripAnswers(a)
	}
	return a, nil
}

func (s *AssessmentService) Delete(ctx context.Context, rawID string) error {
	id, ok := util.ParseID(rawID)
	if !ok {
		return util.NewValidationError("Invalid assessment ID", "The assessment ID format is invalid")
	}
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return &util.NotFoundError{Title: "Assessment not found", Message: fmt.Sprintf("No assessment found with ID %d", id)}
	}
	if err != nil {
		return util.NewStorageError("delete assessment", err)
	}
	logger.Log.Info("Assessment deleted", zap.Uint("id", id))
	return nil
}

// stripAnswers 学生视图不返回标准答案
func stripAnswers(a *model.Assessment) {
	for i := range a.Questions {
		a.Questions[i].Answer = ""
	}
}
