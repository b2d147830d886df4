package controller

import (
	"quiz_grading_backend/internal/model"
	"quiz_grading_backend/internal/service"
	"quiz_grading_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	Service *service.AssessmentService
}

func NewAssessmentController(svc *service.AssessmentService) *AssessmentController {
	return &AssessmentController{Service: svc}
}

// hideAnswers 学生看不到标准答案
func hideAnswers(ctx *gin.Context) bool {
	claims := util.GetUserFromContext(ctx)
	return claims == nil || !claims.IsStaff()
}

// @Summary 创建测验
// @Tags 测评管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateAssessmentRequest true "测验内容"
// @Success 201 {object} util.Response{data=model.Assessment}
// @Failure 400 {object} util.ErrorResponse
// @Router /api/quizzes [post]
func (c *AssessmentController) CreateQuiz(ctx *gin.Context) {
	c.create(ctx, model.KindQuiz)
}

// @Summary 创建作业
// @Tags 测评管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateAssessmentRequest true "作业内容"
// @Success 201 {object} util.Response{data=model.Assessment}
// @Failure 400 {object} util.ErrorResponse
// @Router /api/assignments [post]
func (c *AssessmentController) CreateAssignment(ctx *gin.Context) {
	c.create(ctx, model.KindAssignment)
}

func (c *AssessmentController) create(ctx *gin.Context, kind model.AssessmentKind) {
	var req service.CreateAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.Service.Create(ctx.Request.Context(), kind, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, a)
}

// @Summary 测验列表
// @Tags 测评管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Assessment}
// @Router /api/quizzes [get]
func (c *AssessmentController) ListQuizzes(ctx *gin.Context) {
	c.list(ctx, model.KindQuiz)
}

// @Summary 作业列表
// @Tags 测评管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Assessment}
// @Router /api/assignments [get]
func (c *AssessmentController) ListAssignments(ctx *gin.Context) {
	c.list(ctx, model.KindAssignment)
}

func (c *AssessmentController) list(ctx *gin.Context, kind model.AssessmentKind) {
	as, err := c.Service.List(ctx.Request.Context(), kind, hideAnswers(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, as)
}

// @Summary 测评详情
// @Tags 测评管理
// @Produce json
// @Security BearerAuth
// @Param id path string true "测评ID"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Failure 404 {object} util.ErrorResponse
// @Router /api/assessments/{id} [get]
func (c *AssessmentController) GetAssessment(ctx *gin.Context) {
	a, err := c.Service.Get(ctx.Request.Context(), ctx.Param("id"), hideAnswers(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// @Summary 删除测评
// @Tags 测评管理
// @Produce json
// @Security BearerAuth
// @Param id path string true "测评ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.ErrorResponse
// @Router /api/assessments/{id} [delete]
func (c *AssessmentController) DeleteAssessment(ctx *gin.Context) {
	if err := c.Service.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
