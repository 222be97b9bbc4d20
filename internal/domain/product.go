package domain

import (
	"time"
)

// FiberShare is one non-jute component of a product's material mix.
type FiberShare struct {
	NameEn  string `json:"name_en"`
	NameDa  string `json:"name_da"`
	Percent int    `json:"percent" validate:"min=0,max=100"`
}

// Composition describes the material make-up of a product.
type Composition struct {
	JutePercent    int          `json:"jute_percent" validate:"min=0,max=100"`
	OtherFibers    []FiberShare `json:"other_fibers" validate:"dive"`
	WeaveType      string       `json:"weave_type"`
	WeightGsm      int          `json:"weight_gsm" validate:"min=0"`
	Certifications []string     `json:"certifications"`
}

// UseCase is one suggested application of a product.
type UseCase struct {
	TitleEn       string `json:"title_en"`
	TitleDa       string `json:"title_da"`
	DescriptionEn string `json:"description_en"`
	DescriptionDa string `json:"description_da"`
}

// OriginSupplier records where and by whom a product is made.
type OriginSupplier struct {
	CountryOfOrigin string `json:"country_of_origin"`
	Region          string `json:"region"`
	SupplierName    string `json:"supplier_name"`
	SupplierWebsite string `json:"supplier_website" validate:"omitempty,url"`
	FairTrade       bool   `json:"fair_trade"`
	StoryEn         string `json:"story_en"`
	StoryDa         string `json:"story_da"`
}

// ESGImpact holds per-unit sustainability figures.
type ESGImpact struct {
	CO2KgPerUnit        float64 `json:"co2_kg_per_unit" validate:"min=0"`
	WaterLitersPerUnit  float64 `json:"water_liters_per_unit" validate:"min=0"`
	RecyclablePercent   int     `json:"recyclable_percent" validate:"min=0,max=100"`
	BiodegradableMonths int     `json:"biodegradable_months" validate:"min=0"`
	NotesEn             string  `json:"notes_en"`
	NotesDa             string  `json:"notes_da"`
}

// Governance records compliance and audit state for a product line.
type Governance struct {
	ComplianceStandards []string   `json:"compliance_standards"`
	LastAuditAt         *time.Time `json:"last_audit_at"`
	AuditBody           string     `json:"audit_body"`
	NotesEn             string     `json:"notes_en"`
	NotesDa             string     `json:"notes_da"`
}

// SectionVisibility is a per-product display hint for each editor
// sub-section. Toggling a flag never deletes the underlying data.
type SectionVisibility struct {
	Composition bool `json:"composition"`
	UseCases    bool `json:"use_cases"`
	Origin      bool `json:"origin"`
	Esg         bool `json:"esg"`
	Governance  bool `json:"governance"`
}

func DefaultSectionVisibility() SectionVisibility {
	return SectionVisibility{
		Composition: true,
		UseCases:    true,
		Origin:      true,
		Esg:         true,
		Governance:  true,
	}
}

type Product struct {
	ID            int64  `json:"id,string" form:"id"`
	Slug          string `gorm:"uniqueIndex" json:"slug" form:"slug"`
	NameEn        string `gorm:"index" json:"name_en" form:"name_en"`
	NameDa        string `json:"name_da" form:"name_da"`
	DescriptionEn string `json:"description_en" form:"description_en"`
	DescriptionDa string `json:"description_da" form:"description_da"`
	CategoryID    string `gorm:"index" json:"category_id" form:"category_id"`
	Price         float64           `json:"price" form:"price"`
	Featured      bool              `gorm:"index" json:"featured" form:"featured"`
	ImageURL      string            `json:"image_url" form:"image_url"`
	Gallery       []string          `gorm:"serializer:json" json:"gallery"`
	Composition   Composition       `gorm:"serializer:json" json:"composition"`
	UseCases      []UseCase         `gorm:"serializer:json" json:"use_cases"`
	Origin        OriginSupplier    `gorm:"serializer:json" json:"origin_supplier"`
	EsgImpact     ESGImpact         `gorm:"serializer:json" json:"esg_impact"`
	Governance    Governance        `gorm:"serializer:json" json:"governance"`
	Visibility    SectionVisibility `gorm:"serializer:json" json:"section_visibility"`
	Version       int64             `json:"version"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}

// NormalizeDefaults replaces nil collections with empty-but-defined values so
// every editor sub-section always receives a usable shape, and restores the
// default visibility flags when a row predates the column.
func (p *Product) NormalizeDefaults() {
	if p.Gallery == nil {
		p.Gallery = []string{}
	}
	if p.UseCases == nil {
		p.UseCases = []UseCase{}
	}
	if p.Composition.OtherFibers == nil {
		p.Composition.OtherFibers = []FiberShare{}
	}
	if p.Composition.Certifications == nil {
		p.Composition.Certifications = []string{}
	}
	if p.Governance.ComplianceStandards == nil {
		p.Governance.ComplianceStandards = []string{}
	}
	if p.Visibility == (SectionVisibility{}) {
		p.Visibility = DefaultSectionVisibility()
	}
}

// completion score weights, roughly the required-ish fields of the editor
var completionChecks = []func(p *Product) bool{
	func(p *Product) bool { return p.NameEn != "" },
	func(p *Product) bool { return p.NameDa != "" },
	func(p *Product) bool { return p.DescriptionEn != "" },
	func(p *Product) bool { return p.DescriptionDa != "" },
	func(p *Product) bool { return p.CategoryID != "" },
	func(p *Product) bool { return p.ImageURL != "" },
	func(p *Product) bool { return len(p.Gallery) > 0 },
	func(p *Product) bool { return p.Composition.JutePercent > 0 },
}

// CompletionScore returns a 0-100 percentage of filled editor fields. It is a
// UI nudge only, never an enforced gate.
func (p *Product) CompletionScore() int {
	filled := 0
	for _, check := range completionChecks {
		if check(p) {
			filled++
		}
	}
	return filled * 100 / len(completionChecks)
}
