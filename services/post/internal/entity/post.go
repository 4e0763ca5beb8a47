package entity

import (
	"slices"
	"strings"
	"time"
)

type PostType string

const (
	PostTypeFeatured    PostType = "featured"
	PostTypeMarketWatch PostType = "market-watch"
	PostTypeOpinion     PostType = "opinion"
	PostTypeLatest      PostType = "latest"

	// Legacy types still present in stored data.
	PostTypeExclusive PostType = "exclusive"
	PostTypeAnalysis  PostType = "analysis"
)

var postTypes = []PostType{
	PostTypeFeatured,
	PostTypeMarketWatch,
	PostTypeOpinion,
	PostTypeLatest,
	PostTypeExclusive,
	PostTypeAnalysis,
}

func (t PostType) Valid() bool {
	return slices.Contains(postTypes, t)
}

type AuthorRef struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ProfileImage string `json:"profileImage,omitempty"`
}

type DataPoint struct {
	Label string `json:"label" validate:"required,max=100"`
	Value string `json:"value" validate:"max=100"`
}

// MarketWatch holds the fields specific to market-watch posts.
type MarketWatch struct {
	MarketImpact string      `json:"marketImpact" validate:"required"`
	DataPoints   []DataPoint `json:"dataPoints,omitempty" validate:"omitempty,dive"`
}

// Opinion holds the fields specific to opinion posts.
type Opinion struct {
	Topic         string `json:"topic" validate:"required,max=255"`
	AuthorTitle   string `json:"authorTitle,omitempty" validate:"max=255"`
	CommentsCount int    `json:"commentsCount" validate:"gte=0"`
}

// Post is the stored article. Variant payloads are embedded so they flatten
// into the JSON object; at most one is set, matching Type.
type Post struct {
	ID             string    `json:"id"`
	Slug           string    `json:"slug"`
	Type           PostType  `json:"type"`
	Title          string    `json:"title" validate:"required,max=200"`
	Excerpt        string    `json:"excerpt,omitempty" validate:"max=500"`
	Content        string    `json:"content,omitempty"`
	FullContent    string    `json:"fullContent,omitempty"`
	ImageURL       string    `json:"imageUrl,omitempty" validate:"omitempty,max=500"`
	Category       string    `json:"category,omitempty" validate:"max=100"`
	Tags           []string  `json:"tags"`
	ReadTime       ReadTime  `json:"readTime"`
	PublishDate    time.Time `json:"publishDate"`
	Author         AuthorRef `json:"author"`
	Views          int64     `json:"views"`
	IsDraft        bool      `json:"isDraft"`
	SEOTitle       string    `json:"seoTitle,omitempty" validate:"max=60"`
	SEODescription string    `json:"seoDescription,omitempty" validate:"max=160"`
	*MarketWatch
	*Opinion
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Body returns the main text used for search and read time estimates.
func (p *Post) Body() string {
	if p.Content != "" {
		return p.Content
	}
	return p.FullContent
}

func (p *Post) VisibleTo(viewer Viewer) bool {
	if !p.IsDraft {
		return true
	}
	return viewer.CanEdit(p.Author.ID)
}

// Normalize applies the write-time invariants: default type, canonical tags,
// one variant payload matching the type and a read time.
func (p *Post) Normalize() {
	if p.Type == "" {
		p.Type = PostTypeFeatured
	}
	p.Title = strings.TrimSpace(p.Title)
	p.Category = strings.TrimSpace(p.Category)
	p.Tags = NormalizeTags(p.Tags)

	switch p.Type {
	case PostTypeMarketWatch:
		p.Opinion = nil
		if p.MarketWatch == nil {
			p.MarketWatch = &MarketWatch{}
		}
		if len(p.MarketWatch.DataPoints) == 0 {
			p.MarketWatch.DataPoints = nil
		}
	case PostTypeOpinion:
		p.MarketWatch = nil
		if p.Opinion == nil {
			p.Opinion = &Opinion{}
		}
	default:
		p.MarketWatch = nil
		p.Opinion = nil
	}

	if p.ReadTime <= 0 {
		p.ReadTime = EstimateReadTime(p.Body())
	}
}

// NormalizeTags lowercases and trims tags, dropping empties and duplicates
// while keeping first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// Clone returns a deep copy so callers can mutate without aliasing store data.
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	c := *p
	c.Tags = slices.Clone(p.Tags)
	if p.MarketWatch != nil {
		mw := *p.MarketWatch
		mw.DataPoints = slices.Clone(p.MarketWatch.DataPoints)
		c.MarketWatch = &mw
	}
	if p.Opinion != nil {
		op := *p.Opinion
		c.Opinion = &op
	}
	return &c
}
