package service

import (
	"context"
	"encoding/json"
	"fmt"
	"quiz_grading_backend/internal/model"
	"quiz_grading_backend/internal/util"
	"quiz_grading_backend/pkg/logger"
	"strings"
	"time"

	"go.uber.org/zap"
)

// GenerateMode 决定 AI 出题的题型组合
type GenerateMode string

const (
	GenerateQuiz       GenerateMode = "quiz"       // 全部选择题
	GenerateAssignment GenerateMode = "assignment" // 选择题与简答题
	GenerateMixed      GenerateMode = "mixed"      // 限时测验/作业，题型缺省为选择题
)

func (m GenerateMode) Valid() bool {
	switch m {
	case GenerateQuiz, GenerateAssignment, GenerateMixed:
		return true
	}
	return false
}

const generationTemperature = 0.7

const quizGenerationPrompt = `You are an expert quiz generator. Generate multiple choice questions based on the given topic.
Rules:
1. Always return valid JSON in this exact format: {"questions": [{"question": "...", "options": ["...", "...", "...", "..."], "answer": "..."}]}
2. The "answer" must be the full text of the correct option, never a letter.
3. Every question has exactly 4 options.
4. Make the questions challenging but fair.
5. Do not prefix options with A, B, C or D.`

const assignmentGenerationPrompt = `You are an expert assignment generator. Generate a mix of multiple choice and descriptive questions based on the given topic.
Rules:
1. Always return valid JSON in this exact format: {"questions": [{"question_type": "mcq" or "descriptive", "question": "...", "options": ["...", "...", "...", "..."], "answer": "..."}]}
2. Only mcq questions have "options", with exactly 4 entries.
3. For mcq the "answer" must be the full text of the correct option, never a letter.
4. For descriptive questions the "answer" is a concise model answer.
5. Do not prefix options with A, B, C or D.`

const mixedGenerationPrompt = `You are an expert question generator for timed quizzes and assignments. Generate questions based on the given topic.
Rules:
1. Always return valid JSON in this exact format: {"questions": [{"question": "...", "type": "mcq" or "descriptive", "options": ["...", "...", "...", "..."], "answer": "..."}]}
2. Only mcq questions have "options", with exactly 4 entries.
3. For mcq the "answer" must be the full text of the correct option, never a letter.
4. For descriptive questions the "answer" is a concise model answer.
5. Do not prefix options with A, B, C or D.`

func generationPrompt(mode GenerateMode) string {
	switch mode {
	case GenerateAssignment:
		return assignmentGenerationPrompt
	case GenerateMixed:
		return mixedGenerationPrompt
	}
	return quizGenerationPrompt
}

type GenerateQuestionsRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// GeneratedQuestions 可直接作为创建测验/作业请求中的 questions
type GeneratedQuestions struct {
	Questions []QuestionInput `json:"questions"`
	Skipped   int             `json:"skipped"`
}

type generatedItem struct {
	Question     string   `json:"question"`
	QuestionType string   `json:"question_type"`
	Type         string   `json:"type"`
	Options      []string `json:"options"`
	Answer       string   `json:"answer"`
}

// QuestionGenerationService 教师出题助手
type QuestionGenerationService struct {
	ai      ChatCompleter
	timeout time.Duration
}

func NewQuestionGenerationService(ai ChatCompleter, timeout time.Duration) *QuestionGenerationService {
	return &QuestionGenerationService{ai: ai, timeout: timeout}
}

func (s *QuestionGenerationService) Generate(ctx context.Context, mode GenerateMode, prompt string) (*GeneratedQuestions, error) {
	if !mode.Valid() {
		return nil, util.NewValidationError("Invalid generation mode", fmt.Sprintf("unknown mode %q", mode))
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, util.NewValidationError("Invalid prompt", "prompt is required")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.ai.Complete(ctx, []AIChatMessage{
		{Role: "system", Content: generationPrompt(mode)},
		{Role: "user", Content: fmt.Sprintf("Topic: %s\n\nImportant: Only return valid JSON in the specified format.", prompt)},
	}, generationTemperature)
	if err != nil {
		logger.Log.Warn("Question generation request failed", zap.String("mode", string(mode)), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", util.ErrOracleUnavailable, err)
	}
	reply = stripCodeFence(reply)
	if reply == "" {
		return nil, fmt.Errorf("%w: AI returned an empty response", util.ErrOracleUnavailable)
	}

	var body struct {
		Questions *[]json.RawMessage `json:"questions"`
	}
	if err := json.Unmarshal([]byte(reply), &body); err != nil {
		logger.Log.Warn("AI returned invalid JSON", zap.String("mode", string(mode)), zap.Error(err))
		return nil, util.NewValidationError("Invalid AI response", "AI returned invalid JSON format")
	}
	if body.Questions == nil {
		return nil, util.NewValidationError("Invalid AI response", "AI response missing required 'questions' field")
	}

	out := &GeneratedQuestions{Questions: []QuestionInput{}}
	for _, raw := range *body.Questions {
		var item generatedItem
		if err := json.Unmarshal(raw, &item); err != nil {
			out.Skipped++
			continue
		}
		q, ok := normalizeGenerated(mode, item)
		if !ok {
			out.Skipped++
			continue
		}
		out.Questions = append(out.Questions, q)
	}
	if len(out.Questions) == 0 {
		return nil, util.NewValidationError("Invalid AI response", "No valid questions could be processed")
	}

	logger.Log.Info("Questions generated",
		zap.String("mode", string(mode)),
		zap.Int("count", len(out.Questions)),
		zap.Int("skipped", out.Skipped),
	)
	return out, nil
}

// normalizeGenerated 校验单个题目；不合格的题目直接跳过
func normalizeGenerated(mode GenerateMode, item generatedItem) (QuestionInput, bool) {
	text := strings.TrimSpace(item.Question)
	answer := strings.TrimSpace(item.Answer)
	if text == "" || answer == "" {
		return QuestionInput{}, false
	}

	var qt model.QuestionType
	switch mode {
	case GenerateQuiz:
		qt = model.QuestionMCQ
	case GenerateAssignment:
		qt = model.QuestionType(strings.ToLower(strings.TrimSpace(firstNonEmpty(item.QuestionType, item.Type))))
		if qt != model.QuestionMCQ && qt != model.QuestionDescriptive {
			return QuestionInput{}, false
		}
	case GenerateMixed:
		qt = model.QuestionType(strings.ToLower(strings.TrimSpace(firstNonEmpty(item.Type, item.QuestionType))))
		if qt != model.QuestionDescriptive {
			qt = model.QuestionMCQ
		}
	}

	if qt == model.QuestionDescriptive {
		return QuestionInput{Question: text, Type: string(qt), Answer: answer}, true
	}

	var opts []string
	for _, o := range item.Options {
		if o = strings.TrimSpace(o); o != "" {
			opts = append(opts, o)
		}
		if len(opts) == model.MaxQuestionOptions {
			break
		}
	}
	if len(opts) == 0 {
		return QuestionInput{}, false
	}
	return QuestionInput{Question: text, Type: string(qt), Options: opts, Answer: resolveLetterAnswer(answer, opts)}, true
}

// resolveLetterAnswer 单个字母 A-D 换成对应选项文本
func resolveLetterAnswer(answer string, opts []string) string {
	if len(answer) != 1 {
		return answer
	}
	idx := int(strings.ToUpper(answer)[0]) - 'A'
	if idx >= 0 && idx < model.MaxQuestionOptions && idx < len(opts) {
		return opts[idx]
	}
	return answer
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
