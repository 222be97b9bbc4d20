package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysUser{},
	&SysOpLog{},
	// Catalog
	&ProductCategory{},
	&Product{},
	// CMS
	&BlogPost{},
	&ContentBlock{},
	&MediaAsset{},
	// Site
	&SiteSettings{},
	&NewsletterSubscriber{},
	&QuotationRequest{},
	&OfficeLocation{},
	&TeamMember{},
	&Testimonial{},
	&TimelineEvent{},
	// Support
	&FeedbackTicket{},
}
