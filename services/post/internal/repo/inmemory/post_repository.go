// Package inmemory is a process-local content store used for local runs and
// tests. It honours the same contract as the postgres repository.
package inmemory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"newsdesk/services/post/internal/entity"
	"newsdesk/services/post/internal/repo/persistent"

	"github.com/google/uuid"
)

type postRepository struct {
	mu    sync.RWMutex
	byID  map[string]*entity.Post
	order []string
	now   func() time.Time
}

func NewPostRepository() persistent.PostRepository {
	return &postRepository{
		byID: make(map[string]*entity.Post),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *postRepository) Create(_ context.Context, post *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.slugTaken(post.Slug, "") {
		return entity.ErrDuplicateSlug
	}

	stored := post.Clone()
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	now := r.now()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	r.byID[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	*post = *stored.Clone()
	return nil
}

func (r *postRepository) slugTaken(slug, exceptID string) bool {
	for id, p := range r.byID {
		if id != exceptID && p.Slug == slug {
			return true
		}
	}
	return false
}

func (r *postRepository) GetByID(_ context.Context, id string) (*entity.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *postRepository) GetBySlug(_ context.Context, slug string) (*entity.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if p := r.byID[id]; p.Slug == slug {
			return p.Clone(), nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *postRepository) Update(_ context.Context, post *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[post.ID]
	if !ok {
		return entity.ErrNotFound
	}
	if r.slugTaken(post.Slug, post.ID) {
		return entity.ErrDuplicateSlug
	}

	stored := post.Clone()
	stored.Views = current.Views
	stored.CreatedAt = current.CreatedAt
	stored.UpdatedAt = r.now()
	r.byID[post.ID] = stored

	post.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *postRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return true, nil
}

func (r *postRepository) Find(_ context.Context, q entity.PostQuery) ([]*entity.Post, error) {
	r.mu.RLock()
	matched := r.match(q)
	r.mu.RUnlock()

	if q.Sort == entity.SortPublishDateDesc {
		// Equal dates keep the newest insert first.
		slices.Reverse(matched)
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].PublishDate.After(matched[j].PublishDate)
		})
	}

	if q.Skip > 0 {
		if q.Skip >= len(matched) {
			return []*entity.Post{}, nil
		}
		matched = matched[q.Skip:]
	}
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func (r *postRepository) Count(_ context.Context, q entity.PostQuery) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.match(q))), nil
}

// match returns clones of matching posts in insertion order. Callers hold the lock.
func (r *postRepository) match(q entity.PostQuery) []*entity.Post {
	out := make([]*entity.Post, 0)
	for _, id := range r.order {
		p := r.byID[id]
		if matches(p, q) {
			out = append(out, p.Clone())
		}
	}
	return out
}

func (r *postRepository) IncrementViews(_ context.Context, id string, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return entity.ErrNotFound
	}
	p.Views += delta
	return nil
}

func (r *postRepository) ListTags(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, p := range r.byID {
		if p.IsDraft {
			continue
		}
		for _, tag := range p.Tags {
			seen[tag] = struct{}{}
		}
	}
	return sortedKeys(seen), nil
}

func (r *postRepository) ListCategories(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, p := range r.byID {
		if !p.IsDraft && p.Category != "" {
			seen[p.Category] = struct{}{}
		}
	}
	return sortedKeys(seen), nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func matches(p *entity.Post, q entity.PostQuery) bool {
	switch q.Visibility {
	case entity.VisiblePublished:
		if p.IsDraft {
			return false
		}
	case entity.VisibleToViewer:
		if p.IsDraft && p.Author.ID != q.ViewerID {
			return false
		}
	}

	if q.Tag != "" && !slices.Contains(p.Tags, strings.ToLower(q.Tag)) {
		return false
	}
	if q.Type != "" && p.Type != q.Type {
		return false
	}
	if q.Category != "" && p.Category != q.Category {
		return false
	}
	if q.AuthorID != "" && p.Author.ID != q.AuthorID {
		return false
	}
	if q.ExcludeID != "" && p.ID == q.ExcludeID {
		return false
	}
	if q.Related != nil && !related(p, q.Related) {
		return false
	}
	if q.Text != "" && !containsText(p, strings.ToLower(q.Text)) {
		return false
	}
	return true
}

func related(p *entity.Post, to *entity.RelatedTo) bool {
	if to.Category != "" && p.Category == to.Category {
		return true
	}
	for _, tag := range to.Tags {
		if slices.Contains(p.Tags, tag) {
			return true
		}
	}
	return false
}

func containsText(p *entity.Post, needle string) bool {
	fields := []string{p.Title, p.Excerpt, p.Body(), p.Author.Name, p.Category}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}
