package domain

import (
	"strings"
	"time"
)

// MediaAsset mirrors one object-storage upload: the storage path plus
// everything the media library needs to list, filter and caption it.
type MediaAsset struct {
	ID        int64     `json:"id,string" form:"id"`
	Path      string    `gorm:"uniqueIndex" json:"path" form:"path"`
	URL       string    `json:"url" form:"url"`
	Mime      string    `json:"mime" form:"mime"`
	Size      int64     `json:"size" form:"size"`
	Width     int       `json:"width" form:"width"`
	Height    int       `json:"height" form:"height"`
	Folder    string    `gorm:"index" json:"folder" form:"folder"`
	Tags      []string  `gorm:"serializer:json" json:"tags"`
	AltEn     string    `json:"alt_en" form:"alt_en"`
	AltDa     string    `json:"alt_da" form:"alt_da"`
	Caption   string    `json:"caption" form:"caption"`
	// PendingDelete marks an asset whose removal was requested but not yet
	// fully applied; the daily sweep finishes the job.
	PendingDelete bool      `gorm:"index" json:"pending_delete"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName Specify table name
func (MediaAsset) TableName() string {
	return "media_assets"
}

// MergeTags merges incoming tags into the asset. New tags are lowercased and
// deduplicated; tags already on the asset keep their original casing.
func (a *MediaAsset) MergeTags(incoming []string) {
	existing := make(map[string]bool, len(a.Tags))
	for _, t := range a.Tags {
		existing[strings.ToLower(t)] = true
	}
	for _, t := range incoming {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || existing[t] {
			continue
		}
		existing[t] = true
		a.Tags = append(a.Tags, t)
	}
}
