package service

import (
	"context"
	"errors"
	"fmt"
	"quiz_grading_backend/internal/model"
	"quiz_grading_backend/internal/repository"
	"quiz_grading_backend/internal/util"
	"quiz_grading_backend/pkg/logger"
	"quiz_grading_backend/pkg/monitoring"
	"quiz_grading_backend/pkg/tracing"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

type AssessmentStore interface {
	FindByID(ctx context.Context, id uint) (*model.Assessment, error)
	ListIDs(ctx context.Context, kind model.AssessmentKind) ([]uint, error)
}

type SubmissionStore interface {
	FindOne(ctx context.Context, userID string, assessmentID uint) (*model.Submission, error)
	Insert(ctx context.Context, s *model.Submission) error
	ListByUser(ctx context.Context, userID string) ([]model.Submission, error)
	ListByAssessment(ctx context.Context, assessmentID uint) ([]model.Submission, error)
	Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error)
}

type SubmissionOptions struct {
	MaxConcurrency int
	LockTTL        time.Duration
	// ExposeDiagnostics 404 响应中附带已有的测评ID，release 模式关闭
	ExposeDiagnostics bool
}

// SubmissionService is the submission & grading engine.
type SubmissionService struct {
	assessments AssessmentStore
	submissions SubmissionStore
	guard       *SubmissionGuard
	grader      *GradingService
	locker      SubmitLocker
	opts        SubmissionOptions
	now         func() time.Time
}

func NewSubmissionService(
	assessments AssessmentStore,
	submissions SubmissionStore,
	grader *GradingService,
	locker SubmitLocker,
	opts SubmissionOptions,
) *SubmissionService {
	if opts.LockTTL <= 0 {
		opts.LockTTL = 2 * time.Minute
	}
	return &SubmissionService{
		assessments: assessments,
		submissions: submissions,
		guard:       NewSubmissionGuard(submissions),
		grader:      grader,
		locker:      locker,
		opts:        opts,
		now:         time.Now,
	}
}

type SubmitRequest struct {
	Kind            model.AssessmentKind
	UserID          string
	AssessmentID    string
	AssessmentTitle string
	Answers         map[string]model.Answer
	AutoSubmitted   bool
	RetakeReason    *string
}

type SubmitResult struct {
	Success        bool    `json:"success"`
	SubmissionID   uint    `json:"submission_id"`
	Score          int     `json:"score"`
	TotalQuestions int     `json:"total_questions"`
	Percentage     float64 `json:"percentage"`
	Message        string  `json:"message"`
}

func (s *SubmissionService) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	ctx, span := tracing.Start(ctx, "SubmissionService.Submit")
	defer span.End()
	span.SetAttributes(
		attribute.String("assessment.kind", string(req.Kind)),
		attribute.String("assessment.id", req.AssessmentID),
	)

	result, err := s.submit(ctx, req)
	monitoring.SubmissionCounter.WithLabelValues(string(req.Kind), submitOutcome(err)).Inc()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return result, nil
}

func (s *SubmissionService) submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	noun := strings.ToLower(req.Kind.Label())

	id, ok := util.ParseID(req.AssessmentID)
	if !ok {
		logger.Log.Warn("Invalid assessment ID format", zap.String("kind", noun), zap.String("id", req.AssessmentID))
		return nil, util.NewValidationError("Invalid "+noun+" ID", "The "+noun+" ID format is invalid")
	}
	if strings.TrimSpace(req.UserID) == "" {
		return nil, util.NewValidationError("Invalid user ID", "user_id is required")
	}

	a, err := s.loadAssessment(ctx, req.Kind, id)
	if err != nil {
		return nil, err
	}

	if !a.AllowRetakes && s.locker != nil {
		release, acquired, err := s.locker.TryLock(ctx, SubmitLockKey(req.UserID, a.ID), s.opts.LockTTL)
		switch {
		case err != nil:
			logger.Log.Warn("Submit lock unavailable, relying on unique index", zap.Error(err))
		case !acquired:
			logger.Log.Warn("Concurrent submission rejected", zap.String("user_id", req.UserID), zap.Uint("assessment_id", a.ID))
			return nil, duplicateError(a.Kind)
		default:
			defer release()
		}
	}

	if err := s.guard.Check(ctx, req.UserID, a); err != nil {
		logger.Log.Warn("Submission rejected", zap.String("user_id", req.UserID), zap.Uint("assessment_id", a.ID), zap.Error(err))
		return nil, err
	}

	graded := s.grader.GradeAll(ctx, a, req.Answers, s.opts.MaxConcurrency)
	if err := ctx.Err(); err != nil {
		// 调用方已断开：丢弃已完成的判分，不写入任何数据
		return nil, err
	}

	summary := Aggregate(a, graded)

	sub := &model.Submission{
		UserID:          req.UserID,
		AssessmentID:    a.ID,
		AttemptKey:      AttemptKey(a),
		AssessmentKind:  a.Kind,
		AssessmentTitle: req.AssessmentTitle,
		AutoSubmitted:   req.AutoSubmitted,
		RetakeReason:    req.RetakeReason,
		Score:           summary.Score,
		TotalQuestions:  summary.TotalQuestions,
		Percentage:      summary.Percentage,
		SubmittedAt:     s.now().UTC(),
	}
	if sub.AssessmentTitle == "" {
		sub.AssessmentTitle = a.Title
	}
	if err := sub.SetAnswers(gradedAnswerMap(req.Answers, graded)); err != nil {
		return nil, fmt.Errorf("encode answers: %w", err)
	}

	if err := s.submissions.Insert(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			logger.Log.Warn("Duplicate submission blocked by unique index", zap.String("user_id", req.UserID), zap.Uint("assessment_id", a.ID))
			return nil, duplicateError(a.Kind)
		}
		return nil, util.NewStorageError("insert submission", err)
	}

	logger.Log.Info("Submission saved",
		zap.Uint("submission_id", sub.ID),
		zap.String("user_id", sub.UserID),
		zap.Uint("assessment_id", a.ID),
		zap.Int("score", summary.Score),
		zap.Int("total_questions", summary.TotalQuestions),
	)

	return &SubmitResult{
		Success:        true,
		SubmissionID:   sub.ID,
		Score:          summary.Score,
		TotalQuestions: summary.TotalQuestions,
		Percentage:     summary.Percentage,
		Message:        summary.Message,
	}, nil
}

func (s *SubmissionService) loadAssessment(ctx context.Context, kind model.AssessmentKind, id uint) (*model.Assessment, error) {
	a, err := s.assessments.FindByID(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, s.notFound(ctx, kind, id)
	case err != nil:
		return nil, util.NewStorageError("find assessment", err)
	case a.Kind != kind:
		return nil, s.notFound(ctx, kind, id)
	}
	return a, nil
}

func (s *SubmissionService) notFound(ctx context.Context, kind model.AssessmentKind, id uint) error {
	noun := strings.ToLower(kind.Label())
	nf := &util.NotFoundError{
		Title:   kind.Label() + " not found",
		Message: fmt.Sprintf("No %s found with ID %d", noun, id),
	}
	logger.Log.Warn("Assessment not found", zap.String("kind", noun), zap.Uint("id", id))

	if s.opts.ExposeDiagnostics {
		ids, err := s.assessments.ListIDs(ctx, kind)
		if err != nil {
			logger.Log.Warn("Failed to list assessment IDs", zap.Error(err))
			return nf
		}
		nf.AvailableIDs = make([]string, len(ids))
		for i, known := range ids {
			nf.AvailableIDs[i] = util.FormatID(known)
		}
	}
	return nf
}

// gradedAnswerMap 保存全部提交的答案；对应题目的附带服务端判定结果
func gradedAnswerMap(submitted map[string]model.Answer, graded []GradedQuestion) map[string]model.GradedAnswer {
	out := make(map[string]model.GradedAnswer, len(submitted))
	for text, a := range submitted {
		switch a.Shape {
		case model.AnswerRaw:
			raw := a.Raw
			out[text] = model.GradedAnswer{Text: &raw}
		case model.AnswerStructured:
			out[text] = model.GradedAnswer{Text: a.Text, SelectedOption: a.SelectedOption}
		}
	}
	for _, g := range graded {
		if g.Attempted || g.Answer.Text != nil || g.Answer.SelectedOption != nil {
			out[g.Question.Text] = g.Answer
		}
	}
	return out
}

func submitOutcome(err error) string {
	var (
		validationErr *util.ValidationError
		notFoundErr   *util.NotFoundError
		conflictErr   *util.ConflictError
	)
	switch {
	case err == nil:
		return "graded"
	case errors.As(err, &validationErr):
		return "invalid"
	case errors.As(err, &notFoundErr):
		return "not_found"
	case errors.As(err, &conflictErr):
		return "duplicate"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	}
	return "failed"
}

// StudentHistory 学生的全部提交，按测验/作业分组
type StudentHistory struct {
	Quizzes     []model.Submission `json:"quizzes"`
	Assignments []model.Submission `json:"assignments"`
}

func (s *SubmissionService) StudentHistory(ctx context.Context, userID string) (*StudentHistory, error) {
	subs, err := s.submissions.ListByUser(ctx, userID)
	if err != nil {
		return nil, util.NewStorageError("list submissions", err)
	}

	h := &StudentHistory{
		Quizzes:     []model.Submission{},
		Assignments: []model.Submission{},
	}
	for _, sub := range subs {
		if sub.AssessmentKind == model.KindAssignment {
			h.Assignments = append(h.Assignments, sub)
		} else {
			h.Quizzes = append(h.Quizzes, sub)
		}
	}
	return h, nil
}

func (s *SubmissionService) ListForAssessment(ctx context.Context, rawID string) ([]model.Submission, error) {
	id, ok := util.ParseID(rawID)
	if !ok {
		return nil, util.NewValidationError("Invalid assessment ID", "The assessment ID format is invalid")
	}
	subs, err := s.submissions.ListByAssessment(ctx, id)
	if err != nil {
		return nil, util.NewStorageError("list submissions", err)
	}
	return subs, nil
}

func (s *SubmissionService) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	rows, err := s.submissions.Leaderboard(ctx)
	if err != nil {
		return nil, util.NewStorageError("leaderboard", err)
	}
	return rows, nil
}
