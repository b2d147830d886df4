package service

import (
	"context"
	"os"
	"path/filepath"
	"quiz_grading_backend/internal/config"
	"quiz_grading_backend/internal/model"
	"quiz_grading_backend/internal/util"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSubmissionsCSV(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	sub := model.Submission{UserID: "u,1", Score: 2, TotalQuestions: 3, Percentage: 66.67, SubmittedAt: at}
	sub.ID = 9

	data, err := EncodeSubmissionsCSV([]model.Submission{sub})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "submission_id,user_id,score,total_questions,percentage,auto_submitted,submitted_at", lines[0])
	assert.Equal(t, `9,"u,1",2,3,66.67,false,2024-05-01T10:00:00Z`, lines[1])
}

func TestExportAssessmentToLocalStorage(t *testing.T) {
	dir := t.TempDir()
	subs := &fakeSubmissionStore{}
	require.NoError(t, subs.Insert(context.Background(), sampleSubmission("u1", 4)))
	assessments := newFakeAssessmentStore(sampleQuiz(4, false))
	engine := newEngine(assessments, subs, &stubGrader{}, nil)

	storage := NewStorageProvider(&config.StorageConfig{Type: "local", LocalPath: dir})
	svc := NewExportService(assessments, engine, storage)

	res, err := svc.ExportAssessment(context.Background(), "4")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rows)
	require.True(t, strings.HasPrefix(res.URL, "/exports/assessment-4/"))

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(res.URL, "/exports/")))
	require.NoError(t, err)
	assert.Contains(t, string(data), "u1")
}

func TestExportAssessmentUnknownID(t *testing.T) {
	dir := t.TempDir()
	subs := &fakeSubmissionStore{}
	assessments := newFakeAssessmentStore(sampleQuiz(4, false))
	storage := NewStorageProvider(&config.StorageConfig{Type: "local", LocalPath: dir})
	svc := NewExportService(assessments, newEngine(assessments, subs, &stubGrader{}, nil), storage)

	_, err := svc.ExportAssessment(context.Background(), "404")
	var nf *util.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Assessment not found", nf.Title)

	_, err = svc.ExportAssessment(context.Background(), "abc")
	var ve *util.ValidationError
	require.ErrorAs(t, err, &ve)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
