package util

import (
	"context"
	"errors"
	"net/http"
	"quiz_grading_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse 错误响应结构
type ErrorResponse struct {
	Code         int      `json:"code"`
	Error        string   `json:"error"`
	Message      string   `json:"message"`
	AvailableIDs []string `json:"available_ids,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, title, message string) {
	c.JSON(code, ErrorResponse{
		Code:    code,
		Error:   title,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized", "missing or invalid token")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden", "you are not allowed to access this resource")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, "Bad request", message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Not found", "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error", "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	InternalServerError(c)
}

// HandleError 将业务错误映射为 HTTP 响应
func HandleError(c *gin.Context, err error) {
	var (
		validationErr *ValidationError
		notFoundErr   *NotFoundError
		conflictErr   *ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		Error(c, http.StatusBadRequest, validationErr.Title, validationErr.Message)
	case errors.As(err, &conflictErr):
		Error(c, http.StatusBadRequest, conflictErr.Title, conflictErr.Message)
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:         http.StatusNotFound,
			Error:        notFoundErr.Title,
			Message:      notFoundErr.Message,
			AvailableIDs: notFoundErr.AvailableIDs,
		})
	case errors.Is(err, ErrPermissionDenied):
		Forbidden(c)
	case errors.Is(err, ErrOracleUnavailable):
		Error(c, http.StatusBadGateway, "AI service unavailable", "the AI service did not return a usable response")
	case errors.Is(err, context.Canceled):
		// 客户端已断开，响应不会被读取
		logger.Log.Info("Request cancelled by client", zap.String("path", c.FullPath()))
		c.Status(499)
	default:
		logger.Log.Error("Internal server error",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		Error(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
}
