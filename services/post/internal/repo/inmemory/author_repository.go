package inmemory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"newsdesk/services/post/internal/entity"
	"newsdesk/services/post/internal/repo/persistent"

	"github.com/google/uuid"
)

var errEmailTaken = errors.New("email already registered")

type authorRepository struct {
	mu   sync.RWMutex
	byID map[string]*entity.Author
}

func NewAuthorRepository() persistent.AuthorRepository {
	return &authorRepository{byID: make(map[string]*entity.Author)}
}

func (r *authorRepository) Create(_ context.Context, author *entity.Author) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(author.Email))
	for _, a := range r.byID {
		if a.Email == email {
			return errEmailTaken
		}
	}

	stored := *author
	stored.Email = email
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	stored.CreatedAt, stored.UpdatedAt = now, now

	r.byID[stored.ID] = &stored
	*author = stored
	return nil
}

func (r *authorRepository) GetByID(_ context.Context, id string) (*entity.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, entity.ErrAuthorNotFound
	}
	out := *a
	return &out, nil
}

func (r *authorRepository) GetByEmail(_ context.Context, email string) (*entity.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, a := range r.byID {
		if a.Email == email {
			out := *a
			return &out, nil
		}
	}
	return nil, entity.ErrAuthorNotFound
}
