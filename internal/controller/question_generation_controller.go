package controller

import (
	"quiz_grading_backend/internal/service"
	"quiz_grading_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionGenerationController struct {
	Service *service.QuestionGenerationService
}

func NewQuestionGenerationController(svc *service.QuestionGenerationService) *QuestionGenerationController {
	return &QuestionGenerationController{Service: svc}
}

// @Summary AI 出题
// @Description mode 为 quiz、assignment 或 mixed；返回的 questions 可直接用于创建测验/作业
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param mode path string true "出题模式"
// @Param body body service.GenerateQuestionsRequest true "主题"
// @Success 200 {object} util.Response{data=service.GeneratedQuestions}
// @Failure 400 {object} util.ErrorResponse
// @Failure 502 {object} util.ErrorResponse
// @Router /api/teacher/generate-questions/{mode} [post]
func (c *QuestionGenerationController) GenerateQuestions(ctx *gin.Context) {
	var req service.GenerateQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.Service.Generate(ctx.Request.Context(), service.GenerateMode(ctx.Param("mode")), req.Prompt)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}
