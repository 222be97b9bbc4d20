package adminapi

import (
	"math"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/montanaflynn/stats"

	"github.com/jutehus/jutehus/internal/domain"
	"github.com/jutehus/jutehus/internal/webserver"
)

func registerDashboardRoutes() {
	webserver.ApiGET("/dashboard/summary", dashboardSummary)
}

func countRows(c echo.Context, model interface{}, query string, args ...interface{}) int64 {
	db := GetDB(c).Model(model)
	if query != "" {
		db = db.Where(query, args...)
	}
	var n int64
	db.Count(&n)
	return n
}

// dashboardSummary aggregates the landing-page numbers plus catalog
// completion statistics so editors can see which products need attention.
func dashboardSummary(c echo.Context) error {
	summary := map[string]interface{}{
		"products":             countRows(c, &domain.Product{}, ""),
		"categories":           countRows(c, &domain.ProductCategory{}, ""),
		"blog_published":       countRows(c, &domain.BlogPost{}, "published = ?", true),
		"blog_drafts":          countRows(c, &domain.BlogPost{}, "published = ?", false),
		"open_tickets":         countRows(c, &domain.FeedbackTicket{}, "status IN ?", []string{domain.TicketStatusOpen, domain.TicketStatusInProgress}),
		"new_quotations":       countRows(c, &domain.QuotationRequest{}, "status = ?", domain.QuotationStatusNew),
		"subscribers":          countRows(c, &domain.NewsletterSubscriber{}, ""),
		"media_assets":         countRows(c, &domain.MediaAsset{}, "pending_delete = ?", false),
		"media_pending_delete": countRows(c, &domain.MediaAsset{}, "pending_delete = ?", true),
	}

	var products []domain.Product
	if err := GetDB(c).Find(&products).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	if len(products) > 0 {
		scores := make([]float64, 0, len(products))
		incomplete := 0
		for i := range products {
			products[i].NormalizeDefaults()
			score := float64(products[i].CompletionScore())
			scores = append(scores, score)
			if score < 100 {
				incomplete++
			}
		}
		mean, _ := stats.Mean(scores)
		median, _ := stats.Median(scores)
		p90, _ := stats.Percentile(scores, 90)
		summary["completion"] = map[string]interface{}{
			"mean":       math.Round(mean),
			"median":     median,
			"p90":        p90,
			"incomplete": incomplete,
		}
	}

	return ok(c, summary)
}
