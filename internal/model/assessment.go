package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// MaxQuestionOptions 创建时只保留前 4 个选项
const MaxQuestionOptions = 4

type AssessmentKind string

const (
	KindQuiz       AssessmentKind = "quiz"
	KindAssignment AssessmentKind = "assignment"
)

func (k AssessmentKind) Valid() bool {
	return k == KindQuiz || k == KindAssignment
}

// Label 用于面向用户的提示文案
func (k AssessmentKind) Label() string {
	if k == KindAssignment {
		return "Assignment"
	}
	return "Quiz"
}

type QuestionType string

const (
	QuestionMCQ         QuestionType = "mcq"
	QuestionDescriptive QuestionType = "descriptive"
)

// Assessment is a quiz or an assignment: an ordered set of questions with
// canonical answers.
// swagger:model Assessment
type Assessment struct {
	BaseModel
	Kind            AssessmentKind       `gorm:"size:20;index;not null" json:"kind"`
	Title           string               `gorm:"size:255;not null" json:"title"`
	AllowRetakes    bool                 `gorm:"default:false" json:"allow_retakes"`
	StartTime       *time.Time           `json:"start_time,omitempty"`
	EndTime         *time.Time           `json:"end_time,omitempty"`
	DurationMinutes int                  `gorm:"default:0" json:"duration_minutes,omitempty"`
	Questions       []AssessmentQuestion `gorm:"foreignKey:AssessmentID;constraint:OnDelete:CASCADE" json:"questions"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// HasDescriptive 是否包含主观题
func (a *Assessment) HasDescriptive() bool {
	for i := range a.Questions {
		if a.Questions[i].Kind() == QuestionDescriptive {
			return true
		}
	}
	return false
}

// AssessmentQuestion stores one question. Answer is always the canonical
// answer text, never an option letter.
// swagger:model AssessmentQuestion
type AssessmentQuestion struct {
	UUIDBase
	AssessmentID uint           `gorm:"index;not null" json:"-"`
	Type         QuestionType   `gorm:"size:20;not null" json:"type"`
	Text         string         `gorm:"type:text;not null" json:"question"`
	Options      datatypes.JSON `gorm:"type:json" json:"options,omitempty" swaggertype:"array,string"`
	Answer       string         `gorm:"type:text" json:"answer,omitempty"`
	Order        int            `gorm:"default:0" json:"order"`
}

func (AssessmentQuestion) TableName() string {
	return "assessment_questions"
}

// OptionList 解码选项，格式异常时按无选项处理
func (q *AssessmentQuestion) OptionList() []string {
	if len(q.Options) == 0 {
		return nil
	}
	var opts []string
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil
	}
	return opts
}

func (q *AssessmentQuestion) HasOptions() bool {
	return len(q.OptionList()) > 0
}

func (q *AssessmentQuestion) SetOptions(opts []string) {
	if len(opts) == 0 {
		q.Options = nil
		return
	}
	if len(opts) > MaxQuestionOptions {
		opts = opts[:MaxQuestionOptions]
	}
	raw, _ := json.Marshal(opts)
	q.Options = datatypes.JSON(raw)
}

// Kind 题型；未显式标注时有选项即为选择题
func (q *AssessmentQuestion) Kind() QuestionType {
	switch q.Type {
	case QuestionMCQ, QuestionDescriptive:
		return q.Type
	}
	if q.HasOptions() {
		return QuestionMCQ
	}
	return QuestionDescriptive
}
