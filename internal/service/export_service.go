package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"quiz_grading_backend/internal/model"
	"quiz_grading_backend/internal/repository"
	"quiz_grading_backend/internal/util"
	"quiz_grading_backend/pkg/logger"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var exportHeader = []string{"submission_id", "user_id", "score", "total_questions", "percentage", "auto_submitted", "submitted_at"}

type ExportResult struct {
	URL  string `json:"url"`
	Rows int    `json:"rows"`
}

// ExportService 将某测评的成绩导出为 CSV
type ExportService struct {
	assessments AssessmentStore
	submissions *SubmissionService
	storage     StorageProvider
}

func NewExportService(assessments AssessmentStore, submissions *SubmissionService, storage StorageProvider) *ExportService {
	return &ExportService{assessments: assessments, submissions: submissions, storage: storage}
}

func (s *ExportService) ExportAssessment(ctx context.Context, rawID string) (*ExportResult, error) {
	id, ok := util.ParseID(rawID)
	if !ok {
		return nil, util.NewValidationError("Invalid assessment ID", "The assessment ID format is invalid")
	}
	// 测评不存在时不生成空文件
	if _, err := s.assessments.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Log.Warn("Export requested for unknown assessment", zap.Uint("assessment_id", id))
			return nil, &util.NotFoundError{
				Title:   "Assessment not found",
				Message: fmt.Sprintf("No assessment found with ID %d", id),
			}
		}
		return nil, util.NewStorageError("find assessment", err)
	}

	subs, err := s.submissions.ListForAssessment(ctx, rawID)
	if err != nil {
		return nil, err
	}

	data, err := EncodeSubmissionsCSV(subs)
	if err != nil {
		return nil, fmt.Errorf("encode csv: %w", err)
	}

	filename := fmt.Sprintf("assessment-%d/%s.csv", id, uuid.NewString())
	url, err := s.storage.Upload(ctx, filename, bytes.NewReader(data), int64(len(data)), util.MimeCSV)
	if err != nil {
		return nil, util.NewStorageError("upload export", err)
	}

	logger.Log.Info("Submissions exported", zap.Uint("assessment_id", id), zap.Int("rows", len(subs)), zap.String("url", url))
	return &ExportResult{URL: url, Rows: len(subs)}, nil
}

func EncodeSubmissionsCSV(subs []model.Submission) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, sub := range subs {
		row := []string{
			util.FormatID(sub.ID),
			sub.UserID,
			strconv.Itoa(sub.Score),
			strconv.Itoa(sub.TotalQuestions),
			strconv.FormatFloat(sub.Percentage, 'f', 2, 64),
			strconv.FormatBool(sub.AutoSubmitted),
			sub.SubmittedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
