package http

import (
	"net/http"

	"newsdesk/pkg/logger"
	"newsdesk/services/post/internal/entity"
	"newsdesk/services/post/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	logger      *logger.Logger
}

func NewAuthHandler(authUseCase usecase.AuthUseCase, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string         `json:"token"`
	User  *entity.Author `json:"user"`
}

// Login godoc
// @Summary      Login author
// @Description  Authenticate an author and return a JWT for the admin endpoints
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200  {object}  AuthResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	author, token, err := h.authUseCase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token: token,
		User:  author,
	})
}

// Me godoc
// @Summary      Current author
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.Author
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	viewer := viewerFrom(c)
	if viewer.Anonymous() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	author, err := h.authUseCase.Me(c.Request.Context(), viewer.ID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Author not found"})
		return
	}

	c.JSON(http.StatusOK, author)
}
