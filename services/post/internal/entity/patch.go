package entity

import (
	"reflect"
	"time"
)

// PostPatch is a partial update. Nil fields are left untouched. Views and
// identity fields cannot be patched.
type PostPatch struct {
	Type           *PostType    `json:"type"`
	Title          *string      `json:"title"`
	Excerpt        *string      `json:"excerpt"`
	Content        *string      `json:"content"`
	FullContent    *string      `json:"fullContent"`
	ImageURL       *string      `json:"imageUrl"`
	Category       *string      `json:"category"`
	Tags           *[]string    `json:"tags"`
	ReadTime       *ReadTime    `json:"readTime"`
	PublishDate    *time.Time   `json:"publishDate"`
	IsDraft        *bool        `json:"isDraft"`
	SEOTitle       *string      `json:"seoTitle"`
	SEODescription *string      `json:"seoDescription"`
	MarketImpact   *string      `json:"marketImpact"`
	DataPoints     *[]DataPoint `json:"dataPoints"`
	Topic          *string      `json:"topic"`
	AuthorTitle    *string      `json:"authorTitle"`
	CommentsCount  *int         `json:"commentsCount"`
}

// Apply writes the set fields into post. Variant fields are applied after
// the type so a type change and its payload can arrive together.
func (p *PostPatch) Apply(post *Post) {
	if p.Type != nil {
		post.Type = *p.Type
	}
	setString(&post.Title, p.Title)
	setString(&post.Excerpt, p.Excerpt)
	setString(&post.Content, p.Content)
	setString(&post.FullContent, p.FullContent)
	setString(&post.ImageURL, p.ImageURL)
	setString(&post.Category, p.Category)
	setString(&post.SEOTitle, p.SEOTitle)
	setString(&post.SEODescription, p.SEODescription)
	if p.Tags != nil {
		post.Tags = *p.Tags
	}
	if p.ReadTime != nil {
		post.ReadTime = *p.ReadTime
	}
	if p.PublishDate != nil {
		post.PublishDate = p.PublishDate.UTC()
	}
	if p.IsDraft != nil {
		post.IsDraft = *p.IsDraft
	}

	if p.MarketImpact != nil || p.DataPoints != nil {
		if post.MarketWatch == nil {
			post.MarketWatch = &MarketWatch{}
		}
		setString(&post.MarketWatch.MarketImpact, p.MarketImpact)
		if p.DataPoints != nil {
			post.MarketWatch.DataPoints = *p.DataPoints
		}
	}

	if p.Topic != nil || p.AuthorTitle != nil || p.CommentsCount != nil {
		if post.Opinion == nil {
			post.Opinion = &Opinion{}
		}
		setString(&post.Opinion.Topic, p.Topic)
		setString(&post.Opinion.AuthorTitle, p.AuthorTitle)
		if p.CommentsCount != nil {
			post.Opinion.CommentsCount = *p.CommentsCount
		}
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// SameContent reports whether a and b would persist identically.
// Timestamps are compared by instant.
func SameContent(a, b *Post) bool {
	if !a.PublishDate.Equal(b.PublishDate) {
		return false
	}
	x, y := a.Clone(), b.Clone()
	x.PublishDate, y.PublishDate = time.Time{}, time.Time{}
	x.CreatedAt, y.CreatedAt = time.Time{}, time.Time{}
	x.UpdatedAt, y.UpdatedAt = time.Time{}, time.Time{}
	return reflect.DeepEqual(x, y)
}
