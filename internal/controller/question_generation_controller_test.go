package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"quiz_grading_backend/internal/service"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedCompleter struct {
	reply string
	err   error
}

func (f fixedCompleter) Complete(context.Context, []service.AIChatMessage, float64) (string, error) {
	return f.reply, f.err
}

func newGenerationRouter(ai service.ChatCompleter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewQuestionGenerationController(service.NewQuestionGenerationService(ai, time.Second))
	r := gin.New()
	r.POST("/api/teacher/generate-questions/:mode", ctrl.GenerateQuestions)
	return r
}

func TestGenerateQuestionsEndpoint(t *testing.T) {
	t.Run("generated", func(t *testing.T) {
		r := newGenerationRouter(fixedCompleter{reply: `{"questions":[{"question":"2+2?","options":["3","4","5","6"],"answer":"B"}]}`})
		rec := doJSON(r, http.MethodPost, "/api/teacher/generate-questions/quiz", `{"prompt":"arithmetic"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var body struct {
			Data service.GeneratedQuestions `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Data.Questions, 1)
		assert.Equal(t, "4", body.Data.Questions[0].Answer)
	})

	t.Run("missing prompt", func(t *testing.T) {
		r := newGenerationRouter(fixedCompleter{})
		rec := doJSON(r, http.MethodPost, "/api/teacher/generate-questions/quiz", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown mode", func(t *testing.T) {
		r := newGenerationRouter(fixedCompleter{})
		rec := doJSON(r, http.MethodPost, "/api/teacher/generate-questions/exam", `{"prompt":"x"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid ai json", func(t *testing.T) {
		r := newGenerationRouter(fixedCompleter{reply: "not json"})
		rec := doJSON(r, http.MethodPost, "/api/teacher/generate-questions/assignment", `{"prompt":"x"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "AI returned invalid JSON format")
	})

	t.Run("ai unavailable", func(t *testing.T) {
		r := newGenerationRouter(fixedCompleter{err: errors.New("dial tcp: refused")})
		rec := doJSON(r, http.MethodPost, "/api/teacher/generate-questions/mixed", `{"prompt":"x"}`)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}
