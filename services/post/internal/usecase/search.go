package usecase

import (
	"context"
	"strings"

	"newsdesk/services/post/internal/entity"
)

// SearchPosts matches the query as a case-insensitive substring of title,
// excerpt, body, author name, category or any tag. Results keep insertion
// order; an empty query returns the whole bounded corpus.
func (uc *postUseCase) SearchPosts(ctx context.Context, query string) []*entity.Post {
	posts, err := uc.postRepo.Find(ctx, entity.PostQuery{
		Text:       strings.TrimSpace(query),
		Visibility: entity.VisiblePublished,
		Sort:       entity.SortNatural,
		Limit:      uc.settings.SearchLimit,
	})
	if err != nil {
		uc.logger.Error("Failed to search posts for %q: %v", query, err)
		return []*entity.Post{}
	}
	return posts
}
