package domain

import (
	"time"
)

type BlogPost struct {
	ID            int64      `json:"id,string" form:"id"`
	Slug          string     `gorm:"uniqueIndex" json:"slug" form:"slug"`
	TitleEn       string     `gorm:"index" json:"title_en" form:"title_en"`
	TitleDa       string     `json:"title_da" form:"title_da"`
	ExcerptEn     string     `json:"excerpt_en" form:"excerpt_en"`
	ExcerptDa     string     `json:"excerpt_da" form:"excerpt_da"`
	ContentEn     string     `json:"content_en" form:"content_en"`
	ContentDa     string     `json:"content_da" form:"content_da"`
	CoverImageURL string     `json:"cover_image_url" form:"cover_image_url"`
	Author        string     `json:"author" form:"author"`
	Published     bool       `gorm:"index" json:"published" form:"published"`
	PublishedAt   *time.Time `json:"published_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName Specify table name
func (BlogPost) TableName() string {
	return "blog_posts"
}

// SetPublished applies the publish transition. The timestamp is set on the
// first false to true flip and is intentionally left intact when a post is
// unpublished, so republishing keeps the original publication date.
func (p *BlogPost) SetPublished(publish bool, now time.Time) {
	if publish && p.PublishedAt == nil {
		p.PublishedAt = &now
	}
	p.Published = publish
}
