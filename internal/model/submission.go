package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// SingleAttemptKey 不允许重做时的固定尝试键，配合唯一索引保证只落库一次
const SingleAttemptKey = "single"

// Submission is immutable history once inserted.
// swagger:model Submission
type Submission struct {
	BaseModel
	UserID          string         `gorm:"size:64;not null;uniqueIndex:idx_submission_attempt,priority:1;index" json:"user_id"`
	AssessmentID    uint           `gorm:"not null;uniqueIndex:idx_submission_attempt,priority:2;index" json:"assessment_id"`
	AttemptKey      string         `gorm:"size:36;not null;uniqueIndex:idx_submission_attempt,priority:3" json:"-"`
	AssessmentKind  AssessmentKind `gorm:"size:20;index;not null" json:"kind"`
	AssessmentTitle string         `gorm:"size:255" json:"assessment_title"`
	Answers         datatypes.JSON `gorm:"type:json" json:"answers" swaggertype:"object"`
	AutoSubmitted   bool           `gorm:"default:false" json:"auto_submitted"`
	RetakeReason    *string        `gorm:"type:text" json:"retake_reason,omitempty"`
	Score           int            `gorm:"not null" json:"score"`
	TotalQuestions  int            `gorm:"not null" json:"total_questions"`
	Percentage      float64        `gorm:"not null" json:"percentage"`
	SubmittedAt     time.Time      `gorm:"index" json:"submitted_at"`
}

func (Submission) TableName() string {
	return "submissions"
}

func (s *Submission) SetAnswers(answers map[string]GradedAnswer) error {
	raw, err := json.Marshal(answers)
	if err != nil {
		return err
	}
	s.Answers = datatypes.JSON(raw)
	return nil
}

func (s *Submission) AnswerMap() (map[string]GradedAnswer, error) {
	out := map[string]GradedAnswer{}
	if len(s.Answers) == 0 {
		return out, nil
	}
	err := json.Unmarshal(s.Answers, &out)
	return out, err
}

// LeaderboardEntry 按用户汇总的得分
type LeaderboardEntry struct {
	UserID               string `json:"user_id"`
	TotalQuizScore       int    `json:"total_quiz_score"`
	TotalAssignmentScore int    `json:"total_assignment_score"`
	CombinedScore        int    `json:"combined_score"`
}
