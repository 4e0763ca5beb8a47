package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"newsdesk/pkg/config"
	"newsdesk/pkg/logger"
	"newsdesk/pkg/queue"
	"newsdesk/pkg/s3"
	"newsdesk/pkg/slug"
	"newsdesk/services/post/internal/entity"
	"newsdesk/services/post/internal/repo/cache"
	"newsdesk/services/post/internal/repo/persistent"
)

var ErrImageStorageDisabled = errors.New("image storage is not configured")

type PostUseCase interface {
	CreatePost(ctx context.Context, viewer entity.Viewer, post *entity.Post) (*entity.Post, error)
	UpdatePost(ctx context.Context, viewer entity.Viewer, postID string, patch entity.PostPatch) (*entity.Post, error)
	DeletePost(ctx context.Context, viewer entity.Viewer, postID string) error
	GetPostBySlug(ctx context.Context, viewer entity.Viewer, slug string) (*entity.Post, error)
	GetPostByID(ctx context.Context, viewer entity.Viewer, postID string) (*entity.Post, error)
	QueryPosts(ctx context.Context, viewer entity.Viewer, filters entity.PostFilters) *entity.PostPage
	GetTrending(ctx context.Context, limit int) []*entity.Post
	GetLatest(ctx context.Context, limit int) []*entity.Post
	GetRelated(ctx context.Context, post *entity.Post, limit int) []*entity.Post
	GetByAuthor(ctx context.Context, authorID, excludeID string, limit int) []*entity.Post
	SearchPosts(ctx context.Context, query string) []*entity.Post
	ListTags(ctx context.Context) []string
	ListCategories(ctx context.Context) []string
	UploadImage(ctx context.Context, viewer entity.Viewer, filename, contentType string, body io.ReadSeeker) (string, error)
	// Wait blocks until background view increments and events have finished.
	Wait()
}

type EventPublisher interface {
	PublishPostEvent(ctx context.Context, event queue.PostEvent) error
}

type ImageStorage interface {
	UploadFile(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error)
}

// Settings bounds the derived views.
type Settings struct {
	WorkingSetSize int
	TrendingLimit  int
	LatestLimit    int
	RelatedLimit   int
	SearchLimit    int
	DefaultLimit   int
	MaxPageSize    int
}

func DefaultSettings() Settings {
	return Settings{
		WorkingSetSize: 200,
		TrendingLimit:  5,
		LatestLimit:    10,
		RelatedLimit:   4,
		SearchLimit:    200,
		DefaultLimit:   10,
		MaxPageSize:    200,
	}
}

func SettingsFromConfig(cfg *config.Config) Settings {
	s := DefaultSettings()
	setPositive(&s.WorkingSetSize, cfg.WorkingSetSize)
	setPositive(&s.TrendingLimit, cfg.TrendingLimit)
	setPositive(&s.LatestLimit, cfg.LatestLimit)
	setPositive(&s.RelatedLimit, cfg.RelatedLimit)
	setPositive(&s.SearchLimit, cfg.SearchLimit)
	setPositive(&s.MaxPageSize, cfg.MaxPageSize)
	return s
}

func setPositive(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}

type postUseCase struct {
	postRepo   persistent.PostRepository
	authorRepo persistent.AuthorRepository
	cache      cache.PostCache
	views      *ViewCounter
	images     ImageStorage
	events     EventPublisher
	settings   Settings
	validator  *postValidator
	logger     *logger.Logger
	now        func() time.Time
	wg         sync.WaitGroup
}

// NewPostUseCase wires the post use cases. images and events may be nil.
func NewPostUseCase(
	postRepo persistent.PostRepository,
	authorRepo persistent.AuthorRepository,
	postCache cache.PostCache,
	views *ViewCounter,
	images ImageStorage,
	events EventPublisher,
	settings Settings,
	logger *logger.Logger,
) PostUseCase {
	if postCache == nil {
		postCache = cache.NewPostCache(nil, 0)
	}
	return &postUseCase{
		postRepo:   postRepo,
		authorRepo: authorRepo,
		cache:      postCache,
		views:      views,
		images:     images,
		events:     events,
		settings:   settings,
		validator:  newPostValidator(),
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (uc *postUseCase) CreatePost(ctx context.Context, viewer entity.Viewer, input *entity.Post) (*entity.Post, error) {
	if viewer.Anonymous() {
		return nil, entity.ErrForbidden
	}

	author, err := uc.authorRepo.GetByID(ctx, viewer.ID)
	if err != nil {
		if errors.Is(err, entity.ErrAuthorNotFound) {
			return nil, entity.ErrForbidden
		}
		return nil, fmt.Errorf("failed to load author: %w", err)
	}

	post := input.Clone()
	post.ID = ""
	post.Views = 0
	post.Author = author.Ref()
	post.CreatedAt = time.Time{}
	post.UpdatedAt = time.Time{}
	if post.PublishDate.IsZero() {
		post.PublishDate = uc.now()
	}
	post.Normalize()
	post.Slug = slug.Make(post.Title)

	if err := uc.validator.Validate(post); err != nil {
		return nil, err
	}

	if err := uc.postRepo.Create(ctx, post); err != nil {
		if errors.Is(err, entity.ErrDuplicateSlug) {
			return nil, fmt.Errorf("%w: %s", entity.ErrDuplicateSlug, post.Slug)
		}
		uc.logger.Error("Failed to create post: %v", err)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	uc.afterWrite(queue.EventPostCreated, post)
	return post, nil
}

func (uc *postUseCase) UpdatePost(ctx context.Context, viewer entity.Viewer, postID string, patch entity.PostPatch) (*entity.Post, error) {
	stored, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !viewer.CanEdit(stored.Author.ID) {
		if stored.IsDraft {
			return nil, entity.ErrNotFound
		}
		return nil, entity.ErrForbidden
	}

	before := stored.Clone()
	before.Normalize()

	post := stored.Clone()
	patch.Apply(post)
	post.Normalize()
	if post.Title != stored.Title {
		post.Slug = slug.Make(post.Title)
	}

	if err := uc.validator.Validate(post); err != nil {
		return nil, err
	}

	if entity.SameContent(before, post) {
		return stored, nil
	}

	if err := uc.postRepo.Update(ctx, post); err != nil {
		if errors.Is(err, entity.ErrDuplicateSlug) {
			return nil, fmt.Errorf("%w: %s", entity.ErrDuplicateSlug, post.Slug)
		}
		if errors.Is(err, entity.ErrNotFound) {
			return nil, err
		}
		uc.logger.Error("Failed to update post %s: %v", postID, err)
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	uc.afterWrite(queue.EventPostUpdated, post)
	return post, nil
}

func (uc *postUseCase) DeletePost(ctx context.Context, viewer entity.Viewer, postID string) error {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if !viewer.CanEdit(post.Author.ID) {
		if post.IsDraft {
			return entity.ErrNotFound
		}
		return entity.ErrForbidden
	}

	deleted, err := uc.postRepo.Delete(ctx, postID)
	if err != nil {
		uc.logger.Error("Failed to delete post %s: %v", postID, err)
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if !deleted {
		return entity.ErrNotFound
	}

	uc.afterWrite(queue.EventPostDeleted, post)
	return nil
}

// GetPostBySlug returns the post as stored before this read counted. Published
// posts get one view queued per successful read; drafts never count.
func (uc *postUseCase) GetPostBySlug(ctx context.Context, viewer entity.Viewer, postSlug string) (*entity.Post, error) {
	post, err := uc.postRepo.GetBySlug(ctx, postSlug)
	if err != nil {
		return nil, err
	}
	if !post.VisibleTo(viewer) {
		return nil, entity.ErrNotFound
	}

	if !post.IsDraft && uc.views != nil {
		uc.views.Increment(post.ID)
	}
	return post, nil
}

func (uc *postUseCase) GetPostByID(ctx context.Context, viewer entity.Viewer, postID string) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.VisibleTo(viewer) {
		return nil, entity.ErrNotFound
	}
	return post, nil
}

func (uc *postUseCase) UploadImage(ctx context.Context, viewer entity.Viewer, filename, contentType string, body io.ReadSeeker) (string, error) {
	if uc.images == nil {
		return "", ErrImageStorageDisabled
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", entity.NewValidationError("image", "image must be an image file")
	}

	url, err := uc.images.UploadFile(ctx, s3.ImageKey(viewer.ID, filename), body, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload image: %v", err)
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return url, nil
}

func (uc *postUseCase) Wait() {
	if uc.views != nil {
		uc.views.Wait()
	}
	uc.wg.Wait()
}

func (uc *postUseCase) afterWrite(eventType string, post *entity.Post) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warn("Failed to invalidate post cache: %v", err)
	}

	if uc.events == nil {
		return
	}

	event := queue.PostEvent{
		Type:       eventType,
		PostID:     post.ID,
		Slug:       post.Slug,
		AuthorID:   post.Author.ID,
		Title:      post.Title,
		IsDraft:    post.IsDraft,
		OccurredAt: uc.now(),
	}

	uc.wg.Add(1)
	go func() {
		defer uc.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := uc.events.PublishPostEvent(ctx, event); err != nil {
			uc.logger.Error("Failed to publish %s for post %s: %v", eventType, post.ID, err)
		}
	}()
}
