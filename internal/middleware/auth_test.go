package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, secret, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "user-1",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func newRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", RequireRole(roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString("userRole"), "id": c.MustGet("userID")})
	})
	return r
}

func TestRequireRole(t *testing.T) {
	InitAuth("test-secret", false)
	r := newRouter("admin")

	tests := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{name: "missing", want: http.StatusUnauthorized},
		{name: "bad format", header: "Token abc", want: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + signed(t, "other", "admin"), want: http.StatusUnauthorized},
		{name: "wrong role", header: "Bearer " + signed(t, "test-secret", "user"), want: http.StatusForbidden},
		{name: "header ok", header: "Bearer " + signed(t, "test-secret", "admin"), want: http.StatusOK},
		{name: "cookie ok", cookie: signed(t, "test-secret", "admin"), want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "access_token", Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestInitAuth_EmptySecretFallsBack(t *testing.T) {
	InitAuth("", false)
	assert.Equal(t, []byte(devSecret), GetJWTSecret())
	InitAuth("s3", true)
	assert.Equal(t, []byte("s3"), GetJWTSecret())
	sameSite, secure := cookiePolicy()
	assert.Equal(t, http.SameSiteNoneMode, sameSite)
	assert.True(t, secure)
	InitAuth("test-secret", false)
}
