package persistent

import (
	"encoding/json"
	"fmt"

	"newsdesk/services/post/internal/entity"
	"newsdesk/services/post/internal/model"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

func ToPostEntity(m *model.PostModel) (*entity.Post, error) {
	if m == nil {
		return nil, nil
	}

	post := &entity.Post{
		ID:          m.ID,
		Slug:        m.Slug,
		Type:        entity.PostType(m.Type),
		Title:       m.Title,
		Excerpt:     m.Excerpt,
		Content:     m.Content,
		FullContent: m.FullContent,
		ImageURL:    m.ImageURL,
		Category:    m.Category,
		Tags:        []string(m.Tags),
		ReadTime:    entity.ReadTime(m.ReadTime),
		PublishDate: m.PublishDate,
		Author: entity.AuthorRef{
			ID:           m.AuthorID,
			Name:         m.AuthorName,
			ProfileImage: m.AuthorImage,
		},
		Views:          m.Views,
		IsDraft:        m.IsDraft,
		SEOTitle:       m.SEOTitle,
		SEODescription: m.SEODescription,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	switch post.Type {
	case entity.PostTypeMarketWatch:
		mw := &entity.MarketWatch{MarketImpact: m.MarketImpact}
		if len(m.DataPoints) > 0 && string(m.DataPoints) != "null" {
			if err := json.Unmarshal(m.DataPoints, &mw.DataPoints); err != nil {
				return nil, fmt.Errorf("post %s: decode data points: %w", m.ID, err)
			}
		}
		post.MarketWatch = mw
	case entity.PostTypeOpinion:
		post.Opinion = &entity.Opinion{
			Topic:         m.Topic,
			AuthorTitle:   m.AuthorTitle,
			CommentsCount: m.CommentsCount,
		}
	}

	return post, nil
}

func ToPostEntities(models []model.PostModel) ([]*entity.Post, error) {
	posts := make([]*entity.Post, 0, len(models))
	for i := range models {
		post, err := ToPostEntity(&models[i])
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func ToPostModel(e *entity.Post) (*model.PostModel, error) {
	if e == nil {
		return nil, nil
	}

	m := &model.PostModel{
		ID:             e.ID,
		Slug:           e.Slug,
		Type:           string(e.Type),
		Title:          e.Title,
		Excerpt:        e.Excerpt,
		Content:        e.Content,
		FullContent:    e.FullContent,
		ImageURL:       e.ImageURL,
		Category:       e.Category,
		Tags:           pq.StringArray(e.Tags),
		ReadTime:       int(e.ReadTime),
		PublishDate:    e.PublishDate,
		AuthorID:       e.Author.ID,
		AuthorName:     e.Author.Name,
		AuthorImage:    e.Author.ProfileImage,
		Views:          e.Views,
		IsDraft:        e.IsDraft,
		SEOTitle:       e.SEOTitle,
		SEODescription: e.SEODescription,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
	if m.Tags == nil {
		m.Tags = pq.StringArray{}
	}

	if e.MarketWatch != nil {
		m.MarketImpact = e.MarketWatch.MarketImpact
		if len(e.MarketWatch.DataPoints) > 0 {
			raw, err := json.Marshal(e.MarketWatch.DataPoints)
			if err != nil {
				return nil, fmt.Errorf("encode data points: %w", err)
			}
			m.DataPoints = datatypes.JSON(raw)
		}
	}
	if e.Opinion != nil {
		m.Topic = e.Opinion.Topic
		m.AuthorTitle = e.Opinion.AuthorTitle
		m.CommentsCount = e.Opinion.CommentsCount
	}

	return m, nil
}

func ToAuthorEntity(m *model.AuthorModel) *entity.Author {
	if m == nil {
		return nil
	}

	return &entity.Author{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		ProfileImage: m.ProfileImage,
		Role:         entity.Role(m.Role),
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToAuthorModel(e *entity.Author) *model.AuthorModel {
	if e == nil {
		return nil
	}

	return &model.AuthorModel{
		ID:           e.ID,
		Name:         e.Name,
		Email:        e.Email,
		ProfileImage: e.ProfileImage,
		Role:         string(e.Role),
		PasswordHash: e.PasswordHash,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
