package inmemory

import (
	"context"
	"sync"
	"testing"
	"time"

	"newsdesk/services/post/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPost(slug string, publishedDaysAgo int, mutate func(*entity.Post)) *entity.Post {
	p := &entity.Post{
		Slug:        slug,
		Type:        entity.PostTypeFeatured,
		Title:       slug,
		Tags:        []string{},
		PublishDate: time.Now().UTC().AddDate(0, 0, -publishedDaysAgo),
		Author:      entity.AuthorRef{ID: "author-1", Name: "Jane Doe"},
	}
	if mutate != nil {
		mutate(p)
	}
	return p
}

func TestPostRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository()

	post := newPost("coffee-prices", 0, nil)
	require.NoError(t, repo.Create(ctx, post))
	assert.NotEmpty(t, post.ID)
	assert.False(t, post.CreatedAt.IsZero())

	byID, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "coffee-prices", byID.Slug)

	bySlug, err := repo.GetBySlug(ctx, "coffee-prices")
	require.NoError(t, err)
	assert.Equal(t, post.ID, bySlug.ID)

	_, err = repo.GetBySlug(ctx, "missing")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestPostRepository_DuplicateSlug(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository()

	require.NoError(t, repo.Create(ctx, newPost("gold-rally", 0, nil)))
	err := repo.Create(ctx, newPost("gold-rally", 0, nil))
	assert.ErrorIs(t, err, entity.ErrDuplicateSlug)

	other := newPost("silver-rally", 0, nil)
	require.NoError(t, repo.Create(ctx, other))
	other.Slug = "gold-rally"
	assert.ErrorIs(t, repo.Update(ctx, other), entity.ErrDuplicateSlug)
}

func TestPostRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository()
	post := newPost("copy", 0, func(p *entity.Post) { p.Tags = []string{"a"} })
	require.NoError(t, repo.Create(ctx, post))

	got, _ := repo.GetByID(ctx, post.ID)
	got.Tags[0] = "mutated"
	got.Title = "mutated"

	again, _ := repo.GetByID(ctx, post.ID)
	assert.Equal(t, []string{"a"}, again.Tags)
	assert.Equal(t, "copy", again.Title)
}

func TestPostRepository_UpdateKeepsViews(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository()
	post := newPost("views", 0, nil)
	require.NoError(t, repo.Create(ctx, post))

	stale, _ := repo.GetByID(ctx, post.ID)
	require.NoError(t, repo.IncrementViews(ctx, post.ID, 3))

	stale.Title = "Edited"
	require.NoError(t, repo.Update(ctx, stale))

	got, _ := repo.GetByID(ctx, post.ID)
	assert.Equal(t, int64(3), got.Views)
	assert.Equal(t, "Edited", got.Title)
}

func TestPostRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository()
	post := newPost("gone", 0, nil)
	require.NoError(t, repo.Create(ctx, post))

	deleted, err := repo.Delete(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, post.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = repo.GetByID(ctx, post.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)
	assert.ErrorIs(t, repo.IncrementViews(ctx, post.ID, 1), entity.ErrNotFound)
}

func TestPostRepository_FindOrderingAndPaging(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository()
	for i, slug := range []string{"oldest", "middle", "newest"} {
		require.NoError(t, repo.Create(ctx, newPost(slug, 10-i, nil)))
	}

	posts, err := repo.Find(ctx, entity.PostQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"newest", "middle", "oldest"}, slugs(posts))

	posts, _ = repo.Find(ctx, entity.PostQuery{Sort: entity.SortNatural})
	assert.Equal(t, []string{"oldest", "middle", "newest"}, slugs(posts))

	posts, _ = repo.Find(ctx, entity.PostQuery{Limit: 1, Skip: 1})
	assert.Equal(t, []string{"middle"}, slugs(posts))

	posts, _ = repo.Find(ctx, entity.PostQuery{Skip: 5})
	assert.Empty(t, posts)
}

func TestPostRepository_FindFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository()
	require.NoError(t, repo.Create(ctx, newPost("a", 1, func(p *entity.Post) {
		p.Category = "markets"
		p.Tags = []string{"coffee"}
	})))
	require.NoError(t, repo.Create(ctx, newPost("b", 2, func(p *entity.Post) {
		p.Category = "opinion"
		p.Tags = []string{"coffee", "rates"}
		p.Author = entity.AuthorRef{ID: "author-2", Name: "Sam Lee"}
	})))
	require.NoError(t, repo.Create(ctx, newPost("c", 3, func(p *entity.Post) {
		p.Category = "markets"
		p.IsDraft = true
	})))

	posts, _ := repo.Find(ctx, entity.PostQuery{Tag: "COFFEE", Category: "markets"})
	assert.Equal(t, []string{"a"}, slugs(posts))

	posts, _ = repo.Find(ctx, entity.PostQuery{AuthorID: "author-2"})
	assert.Equal(t, []string{"b"}, slugs(posts))

	posts, _ = repo.Find(ctx, entity.PostQuery{Visibility: entity.VisibleToViewer, ViewerID: "author-1"})
	assert.Equal(t, []string{"a", "b", "c"}, slugs(posts))

	posts, _ = repo.Find(ctx, entity.PostQuery{Visibility: entity.VisibleToViewer, ViewerID: "author-2"})
	assert.Equal(t, []string{"a", "b"}, slugs(posts))

	posts, _ = repo.Find(ctx, entity.PostQuery{Related: &entity.RelatedTo{Category: "none", Tags: []string{"rates"}}})
	assert.Equal(t, []string{"b"}, slugs(posts))

	posts, _ = repo.Find(ctx, entity.PostQuery{Text: "sam"})
	assert.Equal(t, []string{"b"}, slugs(posts))

	total, _ := repo.Count(ctx, entity.PostQuery{Category: "markets", Visibility: entity.VisibleAll})
	assert.Equal(t, int64(2), total)

	tags, _ := repo.ListTags(ctx)
	assert.Equal(t, []string{"coffee", "rates"}, tags)

	categories, _ := repo.ListCategories(ctx)
	assert.Equal(t, []string{"markets", "opinion"}, categories)
}

func TestPostRepository_ConcurrentIncrements(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository()
	post := newPost("busy", 0, nil)
	require.NoError(t, repo.Create(ctx, post))

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.IncrementViews(ctx, post.ID, 1)
		}()
	}
	wg.Wait()

	got, _ := repo.GetByID(ctx, post.ID)
	assert.Equal(t, int64(100), got.Views)
}

func TestAuthorRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAuthorRepository()

	author := &entity.Author{Name: "Jane", Email: " Jane@Example.com ", Role: entity.RoleAuthor}
	require.NoError(t, repo.Create(ctx, author))
	assert.NotEmpty(t, author.ID)

	got, err := repo.GetByEmail(ctx, "JANE@example.com")
	require.NoError(t, err)
	assert.Equal(t, author.ID, got.ID)

	assert.Error(t, repo.Create(ctx, &entity.Author{Email: "jane@example.com"}))

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, entity.ErrAuthorNotFound)
}

func slugs(posts []*entity.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Slug)
	}
	return out
}
