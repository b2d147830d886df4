package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"quiz_grading_backend/internal/config"
	"quiz_grading_backend/pkg/monitoring"
	"quiz_grading_backend/pkg/tracing"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ChatCompleter 外部大模型调用的最小接口，测试中可替换
type ChatCompleter interface {
	Complete(ctx context.Context, messages []AIChatMessage, temperature float64) (string, error)
}

// AIService OpenAI 兼容的 /chat/completions 客户端；判分引擎只经由 OracleGrader 调用
type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Transport: http.DefaultTransport},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model       string          `json:"model"`
	Messages    []AIChatMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

var errEmptyCompletion = errors.New("AI returned no choices")

func (s *AIService) Complete(ctx context.Context, messages []AIChatMessage, temperature float64) (string, error) {
	ctx, span := tracing.Start(ctx, "AIService.Complete")
	defer span.End()
	span.SetAttributes(attribute.String("ai.model", s.config.Model))

	start := time.Now()
	defer func() {
		monitoring.OracleLatency.Observe(time.Since(start).Seconds())
	}()

	reply, err := s.complete(ctx, messages, temperature)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return reply, err
}

func (s *AIService) complete(ctx context.Context, messages []AIChatMessage, temperature float64) (string, error) {
	reqBody := ChatCompletionRequest{
		Model:       s.config.Model,
		Messages:    messages,
		Temperature: temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := strings.TrimRight(s.config.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decode AI response: %w", err)
	}
	if result.Error != nil {
		return "", fmt.Errorf("AI API error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", errEmptyCompletion
	}

	return result.Choices[0].Message.Content, nil
}
