package persistent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"newsdesk/services/post/internal/entity"
	"newsdesk/services/post/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

// PostRepository is the content store. Misses return entity.ErrNotFound and
// slug collisions return entity.ErrDuplicateSlug.
type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Post, error)
	// Update persists every field except id, views and createdAt.
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id string) (bool, error)
	Find(ctx context.Context, q entity.PostQuery) ([]*entity.Post, error)
	Count(ctx context.Context, q entity.PostQuery) (int64, error)
	IncrementViews(ctx context.Context, id string, delta int64) error
	ListTags(ctx context.Context) ([]string, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	postModel, err := ToPostModel(post)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(postModel).Error; err != nil {
		return translateError(err)
	}

	created, err := ToPostEntity(postModel)
	if err != nil {
		return err
	}
	*post = *created
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	// ids are uuid columns; anything else cannot match
	if !isUUID(id) {
		return nil, entity.ErrNotFound
	}
	return r.first(ctx, "id = ?", id)
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *postRepository) first(ctx context.Context, cond string, arg interface{}) (*entity.Post, error) {
	var postModel model.PostModel
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&postModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return ToPostEntity(&postModel)
}

func (r *postRepository) Update(ctx context.Context, post *entity.Post) error {
	postModel, err := ToPostModel(post)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(postModel).
		Select("*").
		Omit("id", "views", "created_at").
		Updates(postModel)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}

	post.UpdatedAt = postModel.UpdatedAt
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PostModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *postRepository) Find(ctx context.Context, q entity.PostQuery) ([]*entity.Post, error) {
	query := r.db.WithContext(ctx).Model(&model.PostModel{}).Scopes(filterScope(q))

	switch q.Sort {
	case entity.SortNatural:
		query = query.Order("created_at ASC").Order("id ASC")
	default:
		query = query.Order("publish_date DESC").Order("created_at DESC")
	}

	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	if q.Skip > 0 {
		query = query.Offset(q.Skip)
	}

	var postModels []model.PostModel
	if err := query.Find(&postModels).Error; err != nil {
		return nil, err
	}
	return ToPostEntities(postModels)
}

func (r *postRepository) Count(ctx context.Context, q entity.PostQuery) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.PostModel{}).Scopes(filterScope(q)).Count(&total).Error
	return total, err
}

func (r *postRepository) IncrementViews(ctx context.Context, id string, delta int64) error {
	if !isUUID(id) {
		return entity.ErrNotFound
	}
	result := r.db.WithContext(ctx).
		Model(&model.PostModel{}).
		Where("id = ?", id).
		UpdateColumn("views", clause.Expr{SQL: "views + ?", Vars: []interface{}{delta}})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *postRepository) ListTags(ctx context.Context) ([]string, error) {
	var tags []string
	err := r.db.WithContext(ctx).
		Raw("SELECT DISTINCT tag FROM posts, unnest(tags) AS tag WHERE is_draft = ? ORDER BY tag", false).
		Scan(&tags).Error
	return tags, err
}

func (r *postRepository) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&model.PostModel{}).
		Distinct("category").
		Where("is_draft = ? AND category <> ''", false).
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}

func filterScope(q entity.PostQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch q.Visibility {
		case entity.VisiblePublished:
			db = db.Where("is_draft = ?", false)
		case entity.VisibleToViewer:
			if isUUID(q.ViewerID) {
				db = db.Where("(is_draft = ? OR author_id = ?)", false, q.ViewerID)
			} else {
				// a viewer without a uuid owns no rows
				db = db.Where("is_draft = ?", false)
			}
		}

		if q.Tag != "" {
			db = db.Where("? = ANY(tags)", strings.ToLower(q.Tag))
		}
		if q.Type != "" {
			db = db.Where("type = ?", string(q.Type))
		}
		if q.Category != "" {
			db = db.Where("category = ?", q.Category)
		}
		if q.AuthorID != "" {
			if isUUID(q.AuthorID) {
				db = db.Where("author_id = ?", q.AuthorID)
			} else {
				db = db.Where("1 = 0")
			}
		}
		// a non-uuid exclusion cannot match any row
		if isUUID(q.ExcludeID) {
			db = db.Where("id <> ?", q.ExcludeID)
		}

		if q.Related != nil {
			switch {
			case q.Related.Category != "" && len(q.Related.Tags) > 0:
				db = db.Where("(category = ? OR tags && ?)", q.Related.Category, pq.Array(q.Related.Tags))
			case q.Related.Category != "":
				db = db.Where("category = ?", q.Related.Category)
			case len(q.Related.Tags) > 0:
				db = db.Where("tags && ?", pq.Array(q.Related.Tags))
			default:
				db = db.Where("1 = 0")
			}
		}

		if q.Text != "" {
			pattern := "%" + escapeLike(q.Text) + "%"
			db = db.Where(
				"(title ILIKE @p OR excerpt ILIKE @p OR COALESCE(NULLIF(content, ''), full_content) ILIKE @p "+
					"OR author_name ILIKE @p OR category ILIKE @p "+
					"OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE @p))",
				map[string]interface{}{"p": pattern},
			)
		}

		return db
	}
}

func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func translateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", entity.ErrDuplicateSlug, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", entity.ErrDuplicateSlug, pgErr.Detail)
	}
	return err
}
