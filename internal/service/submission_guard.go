package service

import (
	"context"
	"errors"
	"quiz_grading_backend/internal/model"
	"quiz_grading_backend/internal/repository"
	"quiz_grading_backend/internal/util"
	"strings"
)

// SubmissionGuard rejects a second submission when retakes are disallowed.
type SubmissionGuard struct {
	submissions SubmissionStore
}

func NewSubmissionGuard(submissions SubmissionStore) *SubmissionGuard {
	return &SubmissionGuard{submissions: submissions}
}

func duplicateError(kind model.AssessmentKind) error {
	return &util.ConflictError{
		Title:   "Duplicate submission",
		Message: "You've already submitted this " + strings.ToLower(kind.Label()),
	}
}

// Check 只读判定；并发下的最终裁决由唯一索引完成
func (g *SubmissionGuard) Check(ctx context.Context, userID string, a *model.Assessment) error {
	existing, err := g.submissions.FindOne(ctx, userID, a.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return util.NewStorageError("find submission", err)
	}
	if existing != nil && !a.AllowRetakes {
		return duplicateError(a.Kind)
	}
	return nil
}

// AttemptKey 不允许重做时使用固定键，使第二次插入必然冲突
func AttemptKey(a *model.Assessment) string {
	if a.AllowRetakes {
		return model.GenerateUUID()
	}
	return model.SingleAttemptKey
}
