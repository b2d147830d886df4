package controller

import (
	"quiz_grading_backend/internal/service"
	"quiz_grading_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExplanationController struct {
	Service *service.ExplanationService
}

func NewExplanationController(svc *service.ExplanationService) *ExplanationController {
	return &ExplanationController{Service: svc}
}

// @Summary 答案解析
// @Description 调用 AI 解释正确答案
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ExplainRequest true "题目与答案"
// @Success 200 {object} util.Response{data=service.ExplainResult}
// @Failure 502 {object} util.ErrorResponse
// @Router /api/explain-answer [post]
func (c *ExplanationController) ExplainAnswer(ctx *gin.Context) {
	var req service.ExplainRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.Service.Explain(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}
