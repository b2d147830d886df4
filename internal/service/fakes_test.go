package service

import (
	"context"
	"encoding/json"
	"errors"
	"quiz_grading_backend/internal/model"
	"quiz_grading_backend/internal/repository"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

type fakeAssessmentStore struct {
	mu          sync.Mutex
	assessments map[uint]*model.Assessment
	nextID      uint
	err         error
}

func newFakeAssessmentStore(as ...*model.Assessment) *fakeAssessmentStore {
	s := &fakeAssessmentStore{assessments: map[uint]*model.Assessment{}}
	for _, a := range as {
		s.assessments[a.ID] = a
		if a.ID >= s.nextID {
			s.nextID = a.ID
		}
	}
	return s
}

func (s *fakeAssessmentStore) FindByID(_ context.Context, id uint) (*model.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	a, ok := s.assessments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	cp.Questions = append([]model.AssessmentQuestion(nil), a.Questions...)
	return &cp, nil
}

func (s *fakeAssessmentStore) ListIDs(_ context.Context, kind model.AssessmentKind) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []uint
	for id, a := range s.assessments {
		if a.Kind == kind {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *fakeAssessmentStore) Create(_ context.Context, a *model.Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	a.ID = s.nextID
	s.assessments[a.ID] = a
	return nil
}

func (s *fakeAssessmentStore) ListByKind(_ context.Context, kind model.AssessmentKind) ([]model.Assessment, error) {
	ids, _ := s.ListIDs(context.Background(), kind)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Assessment, 0, len(ids))
	for _, id := range ids {
		a := *s.assessments[id]
		a.Questions = append([]model.AssessmentQuestion(nil), a.Questions...)
		out = append(out, a)
	}
	return out, nil
}

func (s *fakeAssessmentStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assessments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.assessments, id)
	return nil
}

// fakeSubmissionStore enforces the (user_id, assessment_id, attempt_key)
// unique key the way the database index does.
type fakeSubmissionStore struct {
	mu        sync.Mutex
	rows      []model.Submission
	nextID    uint
	insertErr error
	findErr   error
}

func (s *fakeSubmissionStore) FindOne(_ context.Context, userID string, assessmentID uint) (*model.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	for i := range s.rows {
		if s.rows[i].UserID == userID && s.rows[i].AssessmentID == assessmentID {
			cp := s.rows[i]
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeSubmissionStore) Insert(_ context.Context, sub *model.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return s.insertErr
	}
	for _, r := range s.rows {
		if r.UserID == sub.UserID && r.AssessmentID == sub.AssessmentID && r.AttemptKey == sub.AttemptKey {
			return repository.ErrDuplicate
		}
	}
	s.nextID++
	sub.ID = s.nextID
	s.rows = append(s.rows, *sub)
	return nil
}

func (s *fakeSubmissionStore) ListByUser(_ context.Context, userID string) ([]model.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Submission
	for _, r := range s.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeSubmissionStore) ListByAssessment(_ context.Context, assessmentID uint) ([]model.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Submission
	for _, r := range s.rows {
		if r.AssessmentID == assessmentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeSubmissionStore) Leaderboard(_ context.Context) ([]model.LeaderboardEntry, error) {
	return nil, errors.New("not supported by fake")
}

func (s *fakeSubmissionStore) all() []model.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Submission(nil), s.rows...)
}

// stubGrader returns a fixed verdict and counts calls.
type stubGrader struct {
	verdict Verdict
	delay   time.Duration
	onCall  func()
	calls   atomic.Int32
}

func (g *stubGrader) Name() string { return "stub" }

func (g *stubGrader) Evaluate(ctx context.Context, _, _, _ string) Verdict {
	g.calls.Add(1)
	if g.onCall != nil {
		g.onCall()
	}
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return VerdictUnknown
		}
	}
	return g.verdict
}

type errLocker struct{}

func (errLocker) TryLock(context.Context, string, time.Duration) (func(), bool, error) {
	return func() {}, false, errors.New("redis: connection refused")
}

func strPtr(s string) *string { return &s }

func mcqQuestion(text, answer string, options ...string) model.AssessmentQuestion {
	q := model.AssessmentQuestion{Type: model.QuestionMCQ, Text: text, Answer: answer}
	q.ID = model.GenerateUUID()
	q.SetOptions(options)
	return q
}

func descriptiveQuestion(text, answer string) model.AssessmentQuestion {
	q := model.AssessmentQuestion{Type: model.QuestionDescriptive, Text: text, Answer: answer}
	q.ID = model.GenerateUUID()
	return q
}

func newQuiz(id uint, allowRetakes bool, qs ...model.AssessmentQuestion) *model.Assessment {
	a := &model.Assessment{Kind: model.KindQuiz, Title: "Quiz", AllowRetakes: allowRetakes, Questions: qs}
	a.ID = id
	return a
}

func jsonUnmarshal(s string, v any) error {
	return json.Unmarshal([]byte(s), v)
}

func sampleSubmission(userID string, assessmentID uint) *model.Submission {
	return &model.Submission{
		UserID:         userID,
		AssessmentID:   assessmentID,
		AttemptKey:     model.SingleAttemptKey,
		AssessmentKind: model.KindQuiz,
	}
}
