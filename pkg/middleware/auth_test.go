package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"newsdesk/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func whoAmI(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id":   c.GetString(ContextUserID),
		"user_role": c.GetString(ContextUserRole),
	})
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")
	token, _ := jwtService.GenerateToken("author-123", "author")

	router := setupTestRouter()
	router.Use(AuthMiddleware(jwtService))
	router.GET("/test", whoAmI)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"author-123","user_role":"author"}`, w.Body.String())
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")

	cases := map[string]string{
		"no header":      "",
		"invalid format": "InvalidFormat token",
		"empty bearer":   "Bearer ",
		"invalid token":  "Bearer invalid-token",
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			router := setupTestRouter()
			router.Use(AuthMiddleware(jwtService))
			router.GET("/test", whoAmI)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/test", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")
	token, _ := jwtService.GenerateToken("author-123", "author")

	router := setupTestRouter()
	router.Use(OptionalAuthMiddleware(jwtService))
	router.GET("/test", whoAmI)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"","user_role":""}`, w.Body.String())

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"","user_role":""}`, w.Body.String())

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"author-123","user_role":"author"}`, w.Body.String())
}

func TestRequireRole(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")

	router := setupTestRouter()
	router.Use(AuthMiddleware(jwtService), RequireRole("author", "superadmin"))
	router.GET("/test", whoAmI)

	for role, want := range map[string]int{
		"author":     http.StatusOK,
		"superadmin": http.StatusOK,
		"reader":     http.StatusForbidden,
	} {
		token, _ := jwtService.GenerateToken("user-1", role)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		router.ServeHTTP(w, req)

		assert.Equal(t, want, w.Code, role)
	}
}
