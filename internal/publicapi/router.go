// Package publicapi serves the unauthenticated storefront: cached catalog
// and content reads plus the newsletter and quotation intake forms.
package publicapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/jutehus/jutehus/internal/app"
	"github.com/jutehus/jutehus/internal/webserver"
)

var validate = validator.New()

func getDB(c echo.Context) *gorm.DB {
	return c.Get(webserver.ContextKeyDB).(*gorm.DB)
}

func getAppContext(c echo.Context) app.AppContext {
	return c.Get(webserver.ContextKeyApp).(app.AppContext)
}

// InitRouter registers every storefront route on the shared web server.
func InitRouter() {
	webserver.PubGET("/products", listProducts)
	webserver.PubGET("/products/:slug", getProductBySlug)
	webserver.PubGET("/categories", listCategories)
	webserver.PubGET("/blog", listPublishedPosts)
	webserver.PubGET("/blog/:slug", getPublishedPost)
	webserver.PubGET("/content/:section", getContentSection)
	webserver.PubGET("/site", getSiteInfo)
	webserver.PubGET("/team", listTeam)
	webserver.PubGET("/testimonials", listPublishedTestimonials)
	webserver.PubGET("/timeline", listTimeline)
	webserver.PubGET("/offices", listOffices)
	webserver.PubPOST("/newsletter/subscribe", subscribeNewsletter)
	webserver.PubPOST("/quotations", createQuotationRequest)
	webserver.PubGET("/locale", getLocale)
	webserver.PubPOST("/locale", setLocale)
}
