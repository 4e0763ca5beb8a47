package http

import (
	"errors"
	"net/http"
	"strconv"

	"newsdesk/pkg/logger"
	"newsdesk/pkg/middleware"
	"newsdesk/services/post/internal/entity"
	"newsdesk/services/post/internal/usecase"

	"github.com/gin-gonic/gin"
)

// viewerFrom reads the caller set by the auth middlewares. Requests without
// a valid token are anonymous.
func viewerFrom(c *gin.Context) entity.Viewer {
	return entity.Viewer{
		ID:   c.GetString(middleware.ContextUserID),
		Role: entity.Role(c.GetString(middleware.ContextUserRole)),
	}
}

// queryInt returns the query parameter as an int, or def when it is missing
// or malformed.
func queryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func writeError(c *gin.Context, log *logger.Logger, err error) {
	var validationErr *entity.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": validationErr.Fields})
	case errors.Is(err, entity.ErrNotFound), errors.Is(err, entity.ErrAuthorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrDuplicateSlug):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrImageStorageDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		log.Error("Request %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func postsResponse(posts []*entity.Post) gin.H {
	return gin.H{"posts": posts, "count": len(posts)}
}
