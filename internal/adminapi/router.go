// Package adminapi implements the JWT-protected admin panel API: catalog,
// blog, content blocks, media library, feedback tickets, site content,
// settings, users and exports.
package adminapi

// InitRouter registers every admin route on the shared web server.
func InitRouter() {
	registerAuthRoutes()
	registerDashboardRoutes()
	registerProductRoutes()
	registerCategoryRoutes()
	registerBlogRoutes()
	registerContentBlockRoutes()
	registerMediaRoutes()
	registerFeedbackRoutes()
	registerSiteContentRoutes()
	registerSettingsRoutes()
	registerUserRoutes()
	registerExportRoutes()
}
