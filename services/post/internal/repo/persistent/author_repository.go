package persistent

import (
	"context"
	"errors"
	"strings"

	"newsdesk/services/post/internal/entity"
	"newsdesk/services/post/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthorRepository interface {
	Create(ctx context.Context, author *entity.Author) error
	GetByID(ctx context.Context, id string) (*entity.Author, error)
	GetByEmail(ctx context.Context, email string) (*entity.Author, error)
}

type authorRepository struct {
	db *gorm.DB
}

func NewAuthorRepository(db *gorm.DB) AuthorRepository {
	return &authorRepository{db: db}
}

func (r *authorRepository) Create(ctx context.Context, author *entity.Author) error {
	authorModel := ToAuthorModel(author)
	authorModel.Email = strings.ToLower(strings.TrimSpace(authorModel.Email))
	if err := r.db.WithContext(ctx).Create(authorModel).Error; err != nil {
		return err
	}
	*author = *ToAuthorEntity(authorModel)
	return nil
}

func (r *authorRepository) GetByID(ctx context.Context, id string) (*entity.Author, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, entity.ErrAuthorNotFound
	}
	return r.first(ctx, "id = ?", id)
}

func (r *authorRepository) GetByEmail(ctx context.Context, email string) (*entity.Author, error) {
	return r.first(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *authorRepository) first(ctx context.Context, cond string, arg interface{}) (*entity.Author, error) {
	var authorModel model.AuthorModel
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&authorModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrAuthorNotFound
		}
		return nil, err
	}
	return ToAuthorEntity(&authorModel), nil
}
