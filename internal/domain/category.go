package domain

import (
	"time"
)

// ProductCategory is keyed by its slug; products reference it through
// CategoryID. Deletion is rejected while any product still references it.
type ProductCategory struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id" form:"id"`
	NameEn    string    `json:"name_en" form:"name_en"`
	NameDa    string    `json:"name_da" form:"name_da"`
	Sort      int       `json:"sort" form:"sort"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (ProductCategory) TableName() string {
	return "product_categories"
}
