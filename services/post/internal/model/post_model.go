package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PostModel is a single-table row for every post type; variant columns stay
// empty for types that do not use them.
type PostModel struct {
	ID             string         `gorm:"type:uuid;primaryKey"`
	Slug           string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	Type           string         `gorm:"type:varchar(20);not null;index"`
	Title          string         `gorm:"type:varchar(200);not null"`
	Excerpt        string         `gorm:"type:varchar(500)"`
	Content        string         `gorm:"type:text"`
	FullContent    string         `gorm:"type:text"`
	ImageURL       string         `gorm:"type:varchar(500)"`
	Category       string         `gorm:"type:varchar(100);index"`
	Tags           pq.StringArray `gorm:"type:text[]"`
	ReadTime       int            `gorm:"default:0"`
	PublishDate    time.Time      `gorm:"not null;index"`
	AuthorID       string         `gorm:"type:uuid;not null;index"`
	AuthorName     string         `gorm:"type:varchar(255)"`
	AuthorImage    string         `gorm:"type:varchar(500)"`
	Views          int64          `gorm:"not null;default:0"`
	IsDraft        bool           `gorm:"not null;default:false;index"`
	SEOTitle       string         `gorm:"column:seo_title;type:varchar(60)"`
	SEODescription string         `gorm:"column:seo_description;type:varchar(160)"`
	MarketImpact   string         `gorm:"type:text"`
	DataPoints     datatypes.JSON `gorm:"type:jsonb"`
	Topic          string         `gorm:"type:varchar(255)"`
	AuthorTitle    string         `gorm:"type:varchar(255)"`
	CommentsCount  int            `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
