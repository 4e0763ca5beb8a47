package usecase

import (
	"context"
	"strings"

	"newsdesk/services/post/internal/entity"
)

// QueryPosts lists posts matching every set filter, newest first. Store
// failures are logged and produce an empty page.
func (uc *postUseCase) QueryPosts(ctx context.Context, viewer entity.Viewer, filters entity.PostFilters) *entity.PostPage {
	limit := filters.Limit
	if limit <= 0 {
		limit = uc.settings.DefaultLimit
	}
	if limit > uc.settings.MaxPageSize {
		limit = uc.settings.MaxPageSize
	}
	skip := filters.Skip
	if skip < 0 {
		skip = 0
	}

	visibility, viewerID := entity.ForViewer(viewer)
	q := entity.PostQuery{
		Tag:        strings.ToLower(strings.TrimSpace(filters.Tag)),
		Type:       filters.Type,
		Category:   strings.TrimSpace(filters.Category),
		Visibility: visibility,
		ViewerID:   viewerID,
		Sort:       entity.SortPublishDateDesc,
		Limit:      limit,
		Skip:       skip,
	}

	page := &entity.PostPage{Posts: []*entity.Post{}, Limit: limit, Skip: skip}

	posts, err := uc.postRepo.Find(ctx, q)
	if err != nil {
		uc.logger.Error("Failed to query posts: %v", err)
		return page
	}
	total, err := uc.postRepo.Count(ctx, q)
	if err != nil {
		uc.logger.Error("Failed to count posts: %v", err)
		return page
	}

	page.Posts = posts
	page.Total = total
	return page
}
