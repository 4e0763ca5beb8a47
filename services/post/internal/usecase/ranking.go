package usecase

import (
	"context"
	"slices"
	"sort"

	"newsdesk/services/post/internal/entity"
	"newsdesk/services/post/internal/repo/cache"
)

// loadWorkingSet reads the bounded set of the most recently published posts
// that trending and latest rank over, newest first.
func (uc *postUseCase) loadWorkingSet(ctx context.Context) ([]*entity.Post, error) {
	return uc.postRepo.Find(ctx, entity.PostQuery{
		Visibility: entity.VisiblePublished,
		Sort:       entity.SortPublishDateDesc,
		Limit:      uc.settings.WorkingSetSize,
	})
}

// cachedWorkingSet serves the working set from the cache. View increments do
// not invalidate it, so its view counts may lag by the cache TTL.
func (uc *postUseCase) cachedWorkingSet(ctx context.Context) ([]*entity.Post, error) {
	if posts, ok := uc.cache.WorkingSet(ctx); ok {
		return posts, nil
	}

	posts, err := uc.loadWorkingSet(ctx)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.SetWorkingSet(ctx, posts); err != nil {
		uc.logger.Warn("Failed to cache working set: %v", err)
	}
	return posts, nil
}

// GetTrending ranks the working set by views. Ties keep the newer post first.
// It always reads current view counts from the store.
func (uc *postUseCase) GetTrending(ctx context.Context, limit int) []*entity.Post {
	if limit <= 0 {
		limit = uc.settings.TrendingLimit
	}

	posts, err := uc.loadWorkingSet(ctx)
	if err != nil {
		uc.logger.Error("Failed to load trending posts: %v", err)
		return []*entity.Post{}
	}

	ranked := slices.Clone(posts)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Views > ranked[j].Views
	})
	return head(ranked, limit)
}

func (uc *postUseCase) GetLatest(ctx context.Context, limit int) []*entity.Post {
	if limit <= 0 {
		limit = uc.settings.LatestLimit
	}

	posts, err := uc.cachedWorkingSet(ctx)
	if err != nil {
		uc.logger.Error("Failed to load latest posts: %v", err)
		return []*entity.Post{}
	}
	return head(slices.Clone(posts), limit)
}

// GetRelated returns published posts sharing post's category or any of its
// tags, newest first. The list is never padded with unrelated posts.
func (uc *postUseCase) GetRelated(ctx context.Context, post *entity.Post, limit int) []*entity.Post {
	if post == nil {
		return []*entity.Post{}
	}
	related := &entity.RelatedTo{Category: post.Category, Tags: post.Tags}
	if related.Empty() {
		return []*entity.Post{}
	}
	if limit <= 0 {
		limit = uc.settings.RelatedLimit
	}

	posts, err := uc.postRepo.Find(ctx, entity.PostQuery{
		Related:    related,
		ExcludeID:  post.ID,
		Visibility: entity.VisiblePublished,
		Sort:       entity.SortPublishDateDesc,
		Limit:      limit,
	})
	if err != nil {
		uc.logger.Error("Failed to load related posts for %s: %v", post.ID, err)
		return []*entity.Post{}
	}
	return posts
}

func (uc *postUseCase) GetByAuthor(ctx context.Context, authorID, excludeID string, limit int) []*entity.Post {
	if authorID == "" {
		return []*entity.Post{}
	}
	if limit <= 0 {
		limit = uc.settings.RelatedLimit
	}

	posts, err := uc.postRepo.Find(ctx, entity.PostQuery{
		AuthorID:   authorID,
		ExcludeID:  excludeID,
		Visibility: entity.VisiblePublished,
		Sort:       entity.SortPublishDateDesc,
		Limit:      limit,
	})
	if err != nil {
		uc.logger.Error("Failed to load posts by author %s: %v", authorID, err)
		return []*entity.Post{}
	}
	return posts
}

func (uc *postUseCase) ListTags(ctx context.Context) []string {
	return uc.cachedStrings(ctx, cache.TagsKey, uc.postRepo.ListTags)
}

func (uc *postUseCase) ListCategories(ctx context.Context) []string {
	return uc.cachedStrings(ctx, cache.CategoriesKey, uc.postRepo.ListCategories)
}

func (uc *postUseCase) cachedStrings(ctx context.Context, key string, load func(context.Context) ([]string, error)) []string {
	if values, ok := uc.cache.Strings(ctx, key); ok {
		return values
	}

	values, err := load(ctx)
	if err != nil {
		uc.logger.Error("Failed to load %s: %v", key, err)
		return []string{}
	}
	if values == nil {
		values = []string{}
	}

	if err := uc.cache.SetStrings(ctx, key, values); err != nil {
		uc.logger.Warn("Failed to cache %s: %v", key, err)
	}
	return values
}

func head(posts []*entity.Post, n int) []*entity.Post {
	if len(posts) > n {
		return posts[:n]
	}
	return posts
}
