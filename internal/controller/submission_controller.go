package controller

import (
	"bytes"
	"encoding/json"
	"quiz_grading_backend/internal/model"
	"quiz_grading_backend/internal/service"
	"quiz_grading_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

// AssessmentRef 测评ID，客户端可能以数字或字符串传入
type AssessmentRef string

func (r *AssessmentRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = AssessmentRef(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	*r = AssessmentRef(string(data))
	return nil
}

// SubmitQuizRequest 测验提交
type SubmitQuizRequest struct {
	UserID        string                  `json:"user_id" binding:"required"`
	QuizID        AssessmentRef           `json:"quiz_id" binding:"required" swaggertype:"string"`
	QuizTitle     string                  `json:"quiz_title"`
	Answers       map[string]model.Answer `json:"answers" swaggertype:"object"`
	AutoSubmitted bool                    `json:"auto_submitted"`
	RetakeReason  *string                 `json:"retake_reason"`
}

// SubmitAssignmentRequest 作业提交
type SubmitAssignmentRequest struct {
	UserID          string                  `json:"user_id" binding:"required"`
	AssignmentID    AssessmentRef           `json:"assignment_id" binding:"required" swaggertype:"string"`
	AssignmentTitle string                  `json:"assignment_title"`
	Answers         map[string]model.Answer `json:"answers" swaggertype:"object"`
	AutoSubmitted   bool                    `json:"auto_submitted"`
	RetakeReason    *string                 `json:"retake_reason"`
}

type SubmissionController struct {
	Service *service.SubmissionService
	Export  *service.ExportService
}

func NewSubmissionController(svc *service.SubmissionService, export *service.ExportService) *SubmissionController {
	return &SubmissionController{Service: svc, Export: export}
}

// @Summary 提交测验
// @Description 判分并保存一次测验提交
// @Tags 提交与判分
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SubmitQuizRequest true "提交内容"
// @Success 200 {object} util.Response{data=service.SubmitResult}
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Failure 500 {object} util.ErrorResponse
// @Router /api/quizzes/submit [post]
func (c *SubmissionController) SubmitQuiz(ctx *gin.Context) {
	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	c.submit(ctx, service.SubmitRequest{
		Kind:            model.KindQuiz,
		UserID:          req.UserID,
		AssessmentID:    string(req.QuizID),
		AssessmentTitle: req.QuizTitle,
		Answers:         req.Answers,
		AutoSubmitted:   req.AutoSubmitted,
		RetakeReason:    req.RetakeReason,
	})
}

// @Summary 提交作业
// @Description 判分并保存一次作业提交
// @Tags 提交与判分
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SubmitAssignmentRequest true "提交内容"
// @Success 200 {object} util.Response{data=service.SubmitResult}
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Failure 500 {object} util.ErrorResponse
// @Router /api/assignments/submit [post]
func (c *SubmissionController) SubmitAssignment(ctx *gin.Context) {
	var req SubmitAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	c.submit(ctx, service.SubmitRequest{
		Kind:            model.KindAssignment,
		UserID:          req.UserID,
		AssessmentID:    string(req.AssignmentID),
		AssessmentTitle: req.AssignmentTitle,
		Answers:         req.Answers,
		AutoSubmitted:   req.AutoSubmitted,
		RetakeReason:    req.RetakeReason,
	})
}

func (c *SubmissionController) submit(ctx *gin.Context, req service.SubmitRequest) {
	req.UserID = strings.TrimSpace(req.UserID)
	if claims := util.GetUserFromContext(ctx); claims == nil || !claims.CanActAs(req.UserID) {
		util.HandleError(ctx, util.ErrPermissionDenied)
		return
	}

	result, err := c.Service.Submit(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 学生提交记录
// @Tags 提交与判分
// @Produce json
// @Security BearerAuth
// @Param userId path string true "学生ID"
// @Success 200 {object} util.Response{data=service.StudentHistory}
// @Router /api/students/{userId}/submissions [get]
func (c *SubmissionController) StudentHistory(ctx *gin.Context) {
	userID := ctx.Param("userId")
	if claims := util.GetUserFromContext(ctx); claims == nil || !claims.CanActAs(userID) {
		util.HandleError(ctx, util.ErrPermissionDenied)
		return
	}

	h, err := c.Service.StudentHistory(ctx.Request.Context(), userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, h)
}

// @Summary 测评的全部提交
// @Tags 教师
// @Produce json
// @Security BearerAuth
// @Param id path string true "测评ID"
// @Success 200 {object} util.Response{data=[]model.Submission}
// @Router /api/teacher/assessments/{id}/submissions [get]
func (c *SubmissionController) AssessmentSubmissions(ctx *gin.Context) {
	subs, err := c.Service.ListForAssessment(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, subs)
}

// @Summary 成绩排行榜
// @Tags 教师
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.LeaderboardEntry}
// @Router /api/teacher/leaderboard [get]
func (c *SubmissionController) Leaderboard(ctx *gin.Context) {
	rows, err := c.Service.Leaderboard(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// @Summary 导出测评成绩
// @Description 生成 CSV 并上传到配置的存储
// @Tags 教师
// @Produce json
// @Security BearerAuth
// @Param id path string true "测评ID"
// @Success 201 {object} util.Response{data=service.ExportResult}
// @Router /api/teacher/assessments/{id}/export [post]
func (c *SubmissionController) ExportSubmissions(ctx *gin.Context) {
	res, err := c.Export.ExportAssessment(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, res)
}
