package http

import (
	"errors"
	"net/http"

	"newsdesk/pkg/logger"
	"newsdesk/services/post/internal/entity"
	"newsdesk/services/post/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

// ListPosts godoc
// @Summary      List posts
// @Description  List posts matching every given filter, newest first. Authors also see their own drafts.
// @Tags         posts
// @Produce      json
// @Param        tag query string false "Tag (case-insensitive)"
// @Param        type query string false "Post type" Enums(featured, market-watch, opinion, latest, exclusive, analysis)
// @Param        category query string false "Category"
// @Param        limit query int false "Page size (default 10, max 200)"
// @Param        skip query int false "Posts to skip"
// @Success      200  {object}  entity.PostPage
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	page := h.postUseCase.QueryPosts(c.Request.Context(), viewerFrom(c), entity.PostFilters{
		Tag:      c.Query("tag"),
		Type:     entity.PostType(c.Query("type")),
		Category: c.Query("category"),
		Limit:    queryInt(c, "limit", 0),
		Skip:     queryInt(c, "skip", 0),
	})
	c.JSON(http.StatusOK, page)
}

// GetPostBySlug godoc
// @Summary      Get post by slug
// @Description  Resolve a post by its slug. Each read of a published post counts one view; the response shows the count before this read.
// @Tags         posts
// @Produce      json
// @Param        slug path string true "Post slug"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /posts/slug/{slug} [get]
func (h *PostHandler) GetPostBySlug(c *gin.Context) {
	post, err := h.postUseCase.GetPostBySlug(c.Request.Context(), viewerFrom(c), c.Param("slug"))
	if err != nil {
		h.writePostError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// GetPostByID godoc
// @Summary      Get post by ID
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /posts/id/{id} [get]
func (h *PostHandler) GetPostByID(c *gin.Context) {
	post, err := h.postUseCase.GetPostByID(c.Request.Context(), viewerFrom(c), c.Param("id"))
	if err != nil {
		h.writePostError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// writePostError keeps the single-post envelope on 404 so readers can render
// an empty page.
func (h *PostHandler) writePostError(c *gin.Context, err error) {
	if errors.Is(err, entity.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found", "post": nil})
		return
	}
	writeError(c, h.logger, err)
}

// GetTrending godoc
// @Summary      Popular posts
// @Description  Most viewed posts among the most recently published ones
// @Tags         posts
// @Produce      json
// @Param        limit query int false "Number of posts (default 5)"
// @Success      200  {object}  map[string]interface{}
// @Router       /posts/popular [get]
func (h *PostHandler) GetTrending(c *gin.Context) {
	c.JSON(http.StatusOK, postsResponse(h.postUseCase.GetTrending(c.Request.Context(), queryInt(c, "limit", 0))))
}

// GetLatest godoc
// @Summary      Latest posts
// @Tags         posts
// @Produce      json
// @Param        limit query int false "Number of posts (default 10)"
// @Success      200  {object}  map[string]interface{}
// @Router       /posts/latest [get]
func (h *PostHandler) GetLatest(c *gin.Context) {
	c.JSON(http.StatusOK, postsResponse(h.postUseCase.GetLatest(c.Request.Context(), queryInt(c, "limit", 0))))
}

// GetRelated godoc
// @Summary      Related posts
// @Description  Published posts sharing the category or a tag with the given post
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID"
// @Param        limit query int false "Number of posts (default 4)"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/related [get]
func (h *PostHandler) GetRelated(c *gin.Context) {
	post, err := h.postUseCase.GetPostByID(c.Request.Context(), viewerFrom(c), c.Param("id"))
	if errors.Is(err, entity.ErrNotFound) {
		writeError(c, h.logger, err)
		return
	}
	if err != nil {
		// related lists degrade to empty on store failures
		h.logger.Error("Failed to load post %s for related posts: %v", c.Param("id"), err)
		c.JSON(http.StatusOK, postsResponse([]*entity.Post{}))
		return
	}
	c.JSON(http.StatusOK, postsResponse(h.postUseCase.GetRelated(c.Request.Context(), post, queryInt(c, "limit", 0))))
}

// GetByAuthor godoc
// @Summary      Posts by author
// @Tags         posts
// @Produce      json
// @Param        authorId path string true "Author ID"
// @Param        exclude query string false "Post ID to leave out"
// @Param        limit query int false "Number of posts (default 4)"
// @Success      200  {object}  map[string]interface{}
// @Router       /posts/author/{authorId} [get]
func (h *PostHandler) GetByAuthor(c *gin.Context) {
	posts := h.postUseCase.GetByAuthor(c.Request.Context(), c.Param("authorId"), c.Query("exclude"), queryInt(c, "limit", 0))
	c.JSON(http.StatusOK, postsResponse(posts))
}

// SearchPosts godoc
// @Summary      Search posts
// @Description  Case-insensitive substring match on title, excerpt, body, author name, category and tags
// @Tags         posts
// @Produce      json
// @Param        q query string false "Search text"
// @Success      200  {object}  map[string]interface{}
// @Router       /posts/search [get]
func (h *PostHandler) SearchPosts(c *gin.Context) {
	c.JSON(http.StatusOK, postsResponse(h.postUseCase.SearchPosts(c.Request.Context(), c.Query("q"))))
}

// ListTags godoc
// @Summary      List tags
// @Tags         posts
// @Produce      json
// @Success      200  {object}  map[string][]string
// @Router       /tags [get]
func (h *PostHandler) ListTags(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tags": h.postUseCase.ListTags(c.Request.Context())})
}

// ListCategories godoc
// @Summary      List categories
// @Tags         posts
// @Produce      json
// @Success      200  {object}  map[string][]string
// @Router       /categories [get]
func (h *PostHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.postUseCase.ListCategories(c.Request.Context())})
}

// CreatePost godoc
// @Summary      Create a post
// @Description  The slug is derived from the title. Author, views and timestamps are set by the server.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body entity.Post true "Post"
// @Success      201  {object}  entity.Post
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req entity.Post
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.CreatePost(c.Request.Context(), viewerFrom(c), &req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// UpdatePost godoc
// @Summary      Update a post
// @Description  Partial update. Changing the title regenerates the slug. Only the owner or a superadmin may update.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        request body entity.PostPatch true "Fields to change"
// @Success      200  {object}  entity.Post
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	var patch entity.PostPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.UpdatePost(c.Request.Context(), viewerFrom(c), c.Param("id"), patch)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary      Delete a post
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.postUseCase.DeletePost(c.Request.Context(), viewerFrom(c), c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// UploadImage godoc
// @Summary      Upload an image
// @Description  Store an image and return the URL to use as a post's imageUrl
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image formData file true "Image file (jpg/png/webp/gif)"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]string
// @Router       /uploads/image [post]
func (h *PostHandler) UploadImage(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
		return
	}
	defer file.Close()

	url, err := h.postUseCase.UploadImage(c.Request.Context(), viewerFrom(c), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
