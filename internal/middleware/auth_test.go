package middleware

import (
	"net/http"
	"net/http/httptest"
	"quiz_grading_backend/internal/config"
	"quiz_grading_backend/internal/model"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-which-is-long-enough-for-hs256"

func signToken(t *testing.T, userID string, role model.UserRole) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	s, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret}}

	r := gin.New()
	r.Use(AuthMiddleware(cfg))
	r.GET("/any", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/teacher", RoleMiddleware(model.Teacher), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestAuthAndRoleMiddleware(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"missing token", "/any", "", http.StatusUnauthorized},
		{"garbage token", "/any", "not-a-jwt", http.StatusUnauthorized},
		{"student any", "/any", signToken(t, "u1", model.Student), http.StatusOK},
		{"student teacher route", "/teacher", signToken(t, "u1", model.Student), http.StatusForbidden},
		{"teacher route", "/teacher", signToken(t, "t1", model.Teacher), http.StatusOK},
		{"admin teacher route", "/teacher", signToken(t, "a1", model.Admin), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
