package domain

import (
	"time"
)

// SiteSettingsID is the primary key of the single settings row.
const SiteSettingsID int64 = 1

// SiteSettings is the singleton branding/contact/social row, editable at
// runtime through the admin panel.
type SiteSettings struct {
	ID           int64     `json:"id,string" form:"id"`
	SiteNameEn   string    `json:"site_name_en" form:"site_name_en"`
	SiteNameDa   string    `json:"site_name_da" form:"site_name_da"`
	TaglineEn    string    `json:"tagline_en" form:"tagline_en"`
	TaglineDa    string    `json:"tagline_da" form:"tagline_da"`
	LogoURL      string    `json:"logo_url" form:"logo_url"`
	ContactEmail string    `json:"contact_email" form:"contact_email"`
	ContactPhone string    `json:"contact_phone" form:"contact_phone"`
	Address      string    `json:"address" form:"address"`
	Facebook     string    `json:"facebook" form:"facebook"`
	Instagram    string    `json:"instagram" form:"instagram"`
	Linkedin     string    `json:"linkedin" form:"linkedin"`
	FooterEn     string    `json:"footer_en" form:"footer_en"`
	FooterDa     string    `json:"footer_da" form:"footer_da"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName Specify table name
func (SiteSettings) TableName() string {
	return "site_settings"
}

type NewsletterSubscriber struct {
	ID        int64     `json:"id,string" form:"id"`
	Email     string    `gorm:"uniqueIndex" json:"email" form:"email" csv:"email"`
	Locale    string    `json:"locale" form:"locale" csv:"locale"`
	CreatedAt time.Time `json:"created_at" csv:"subscribed_at"`
}

// TableName Specify table name
func (NewsletterSubscriber) TableName() string {
	return "newsletter_subscribers"
}

const (
	QuotationStatusNew     = "new"
	QuotationStatusHandled = "handled"
)

type QuotationRequest struct {
	ID        int64     `json:"id,string" form:"id" csv:"-"`
	Name      string    `json:"name" form:"name" csv:"name"`
	Company   string    `json:"company" form:"company" csv:"company"`
	Email     string    `json:"email" form:"email" csv:"email"`
	Phone     string    `json:"phone" form:"phone" csv:"phone"`
	ProductID int64     `json:"product_id,string" form:"product_id" csv:"product_id"`
	Quantity  int       `json:"quantity" form:"quantity" csv:"quantity"`
	Message   string    `json:"message" form:"message" csv:"message"`
	Status    string    `gorm:"index" json:"status" form:"status" csv:"status"`
	CreatedAt time.Time `json:"created_at" csv:"created_at"`
}

// TableName Specify table name
func (QuotationRequest) TableName() string {
	return "quotation_requests"
}

type OfficeLocation struct {
	ID        int64     `json:"id,string" form:"id"`
	NameEn    string    `json:"name_en" form:"name_en"`
	NameDa    string    `json:"name_da" form:"name_da"`
	Address   string    `json:"address" form:"address"`
	City      string    `json:"city" form:"city"`
	Country   string    `json:"country" form:"country"`
	Phone     string    `json:"phone" form:"phone"`
	Email     string    `json:"email" form:"email"`
	Latitude  float64   `json:"latitude" form:"latitude"`
	Longitude float64   `json:"longitude" form:"longitude"`
	Sort      int       `json:"sort" form:"sort"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (OfficeLocation) TableName() string {
	return "office_locations"
}

type TeamMember struct {
	ID        int64     `json:"id,string" form:"id"`
	Name      string    `json:"name" form:"name"`
	RoleEn    string    `json:"role_en" form:"role_en"`
	RoleDa    string    `json:"role_da" form:"role_da"`
	BioEn     string    `json:"bio_en" form:"bio_en"`
	BioDa     string    `json:"bio_da" form:"bio_da"`
	PhotoURL  string    `json:"photo_url" form:"photo_url"`
	Sort      int       `json:"sort" form:"sort"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (TeamMember) TableName() string {
	return "team_members"
}

type Testimonial struct {
	ID        int64     `json:"id,string" form:"id"`
	Author    string    `json:"author" form:"author"`
	Company   string    `json:"company" form:"company"`
	QuoteEn   string    `json:"quote_en" form:"quote_en"`
	QuoteDa   string    `json:"quote_da" form:"quote_da"`
	Rating    int       `json:"rating" form:"rating"`
	Published bool      `gorm:"index" json:"published" form:"published"`
	Sort      int       `json:"sort" form:"sort"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Testimonial) TableName() string {
	return "testimonials"
}

type TimelineEvent struct {
	ID            int64     `json:"id,string" form:"id"`
	Year          int       `gorm:"index" json:"year" form:"year"`
	TitleEn       string    `json:"title_en" form:"title_en"`
	TitleDa       string    `json:"title_da" form:"title_da"`
	DescriptionEn string    `json:"description_en" form:"description_en"`
	DescriptionDa string    `json:"description_da" form:"description_da"`
	Sort          int       `json:"sort" form:"sort"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName Specify table name
func (TimelineEvent) TableName() string {
	return "timeline_events"
}
