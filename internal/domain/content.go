package domain

import (
	"time"
)

// ContentBlock is a schema-less content slot addressed by (section,
// block_key): hero stats, certifications, resource lists and similar
// CMS-driven copy.
type ContentBlock struct {
	ID            int64                  `json:"id,string" form:"id"`
	Section       string                 `gorm:"index:idx_content_addr,unique" json:"section" form:"section"`
	BlockKey      string                 `gorm:"index:idx_content_addr,unique" json:"block_key" form:"block_key"`
	TitleEn       string                 `json:"title_en" form:"title_en"`
	TitleDa       string                 `json:"title_da" form:"title_da"`
	DescriptionEn string                 `json:"description_en" form:"description_en"`
	DescriptionDa string                 `json:"description_da" form:"description_da"`
	Value         string                 `json:"value" form:"value"`
	Metadata      map[string]interface{} `gorm:"serializer:json" json:"metadata"`
	Sort          int                    `json:"sort" form:"sort"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// TableName Specify table name
func (ContentBlock) TableName() string {
	return "content_blocks"
}
