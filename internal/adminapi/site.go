package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jutehus/jutehus/internal/domain"
	"github.com/jutehus/jutehus/internal/webserver"
	"github.com/jutehus/jutehus/pkg/common"
)

// Supporting storefront content: team, testimonials, timeline, offices,
// plus the quotation and newsletter inboxes filled by the public API.

func registerSiteContentRoutes() {
	webserver.ApiGET("/site/team", listTeamMembers)
	webserver.ApiPOST("/site/team", createTeamMember)
	webserver.ApiPUT("/site/team/:id", updateTeamMember)
	webserver.ApiDELETE("/site/team/:id", deleteSiteRow(&domain.TeamMember{}, "team"))

	webserver.ApiGET("/site/testimonials", listTestimonials)
	webserver.ApiPOST("/site/testimonials", createTestimonial)
	webserver.ApiPUT("/site/testimonials/:id", updateTestimonial)
	webserver.ApiDELETE("/site/testimonials/:id", deleteSiteRow(&domain.Testimonial{}, "testimonials"))

	webserver.ApiGET("/site/timeline", listTimelineEvents)
	webserver.ApiPOST("/site/timeline", createTimelineEvent)
	webserver.ApiPUT("/site/timeline/:id", updateTimelineEvent)
	webserver.ApiDELETE("/site/timeline/:id", deleteSiteRow(&domain.TimelineEvent{}, "timeline"))

	webserver.ApiGET("/site/offices", listOffices)
	webserver.ApiPOST("/site/offices", createOffice)
	webserver.ApiPUT("/site/offices/:id", updateOffice)
	webserver.ApiDELETE("/site/offices/:id", deleteSiteRow(&domain.OfficeLocation{}, "offices"))

	webserver.ApiGET("/site/quotations", listQuotations)
	webserver.ApiPUT("/site/quotations/:id/status", updateQuotationStatus)

	webserver.ApiGET("/site/subscribers", listSubscribers)
	webserver.ApiDELETE("/site/subscribers/:id", deleteSiteRow(&domain.NewsletterSubscriber{}, "subscribers"))
}

// deleteSiteRow builds a delete handler for the simple row types that share
// int64 IDs and need nothing beyond cache invalidation.
func deleteSiteRow(model interface{}, entity string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID", nil)
		}
		if err := GetDB(c).Where("id = ?", id).Delete(model).Error; err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete", err.Error())
		}
		addOpLog(c, entity+":delete", c.Param("id"))
		GetAppContext(c).PublishInvalidate(entity)
		return ok(c, map[string]interface{}{"id": id})
	}
}

func listTeamMembers(c echo.Context) error {
	var rows []domain.TeamMember
	if err := GetDB(c).Order("sort, id").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query team", err.Error())
	}
	return ok(c, rows)
}

func createTeamMember(c echo.Context) error {
	var row domain.TeamMember
	if err := c.Bind(&row); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse team member", err.Error())
	}
	if strings.TrimSpace(row.Name) == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}
	row.ID = common.NextID()
	row.CreatedAt = time.Now()
	row.UpdatedAt = row.CreatedAt
	if err := GetDB(c).Create(&row).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create team member", err.Error())
	}
	GetAppContext(c).PublishInvalidate("team")
	return ok(c, row)
}

func updateTeamMember(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID", nil)
	}
	var existing domain.TeamMember
	if err := GetDB(c).Where("id = ?", id).First(&existing).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Team member not found", nil)
	}
	var row domain.TeamMember
	if err := c.Bind(&row); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse team member", err.Error())
	}
	row.ID = id
	row.CreatedAt = existing.CreatedAt
	row.UpdatedAt = time.Now()
	if err := GetDB(c).Save(&row).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update team member", err.Error())
	}
	GetAppContext(c).PublishInvalidate("team")
	return ok(c, row)
}

func listTestimonials(c echo.Context) error {
	var rows []domain.Testimonial
	if err := GetDB(c).Order("sort, id").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query testimonials", err.Error())
	}
	return ok(c, rows)
}

func createTestimonial(c echo.Context) error {
	var row domain.Testimonial
	if err := c.Bind(&row); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse testimonial", err.Error())
	}
	if strings.TrimSpace(row.Author) == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Author is required", nil)
	}
	if row.Rating < 0 || row.Rating > 5 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Rating must be between 0 and 5", nil)
	}
	row.ID = common.NextID()
	row.CreatedAt = time.Now()
	row.UpdatedAt = row.CreatedAt
	if err := GetDB(c).Create(&row).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create testimonial", err.Error())
	}
	GetAppContext(c).PublishInvalidate("testimonials")
	return ok(c, row)
}

func updateTestimonial(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID", nil)
	}
	var existing domain.Testimonial
	if err := GetDB(c).Where("id = ?", id).First(&existing).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Testimonial not found", nil)
	}
	var row domain.Testimonial
	if err := c.Bind(&row); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse testimonial", err.Error())
	}
	if row.Rating < 0 || row.Rating > 5 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Rating must be between 0 and 5", nil)
	}
	row.ID = id
	row.CreatedAt = existing.CreatedAt
	row.UpdatedAt = time.Now()
	if err := GetDB(c).Save(&row).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update testimonial", err.Error())
	}
	GetAppContext(c).PublishInvalidate("testimonials")
	return ok(c, row)
}

func listTimelineEvents(c echo.Context) error {
	var rows []domain.TimelineEvent
	if err := GetDB(c).Order("year, sort, id").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query timeline", err.Error())
	}
	return ok(c, rows)
}

func createTimelineEvent(c echo.Context) error {
	var row domain.TimelineEvent
	if err := c.Bind(&row); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse timeline event", err.Error())
	}
	if row.Year < 1800 || row.Year > time.Now().Year()+1 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Year is out of range", nil)
	}
	row.ID = common.NextID()
	row.CreatedAt = time.Now()
	row.UpdatedAt = row.CreatedAt
	if err := GetDB(c).Create(&row).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create timeline event", err.Error())
	}
	GetAppContext(c).PublishInvalidate("timeline")
	return ok(c, row)
}

func updateTimelineEvent(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID", nil)
	}
	var existing domain.TimelineEvent
	if err := GetDB(c).Where("id = ?", id).First(&existing).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Timeline event not found", nil)
	}
	var row domain.TimelineEvent
	if err := c.Bind(&row); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse timeline event", err.Error())
	}
	row.ID = id
	row.CreatedAt = existing.CreatedAt
	row.UpdatedAt = time.Now()
	if err := GetDB(c).Save(&row).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update timeline event", err.Error())
	}
	GetAppContext(c).PublishInvalidate("timeline")
	return ok(c, row)
}

func listOffices(c echo.Context) error {
	var rows []domain.OfficeLocation
	if err := GetDB(c).Order("sort, id").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query offices", err.Error())
	}
	return ok(c, rows)
}

func createOffice(c echo.Context) error {
	var row domain.OfficeLocation
	if err := c.Bind(&row); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse office", err.Error())
	}
	if strings.TrimSpace(row.NameEn) == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}
	row.ID = common.NextID()
	row.CreatedAt = time.Now()
	row.UpdatedAt = row.CreatedAt
	if err := GetDB(c).Create(&row).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create office", err.Error())
	}
	GetAppContext(c).PublishInvalidate("offices")
	return ok(c, row)
}

func updateOffice(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID", nil)
	}
	var existing domain.OfficeLocation
	if err := GetDB(c).Where("id = ?", id).First(&existing).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Office not found", nil)
	}
	var row domain.OfficeLocation
	if err := c.Bind(&row); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse office", err.Error())
	}
	row.ID = id
	row.CreatedAt = existing.CreatedAt
	row.UpdatedAt = time.Now()
	if err := GetDB(c).Save(&row).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update office", err.Error())
	}
	GetAppContext(c).PublishInvalidate("offices")
	return ok(c, row)
}

func listQuotations(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.QuotationRequest{})
	if s := strings.TrimSpace(c.QueryParam("status")); s != "" {
		db = db.Where("status = ?", s)
	}
	if from, to := parseTimeRange(c); from != nil || to != nil {
		if from != nil {
			db = db.Where("created_at >= ?", *from)
		}
		if to != nil {
			db = db.Where("created_at <= ?", *to)
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query quotations", err.Error())
	}
	var rows []domain.QuotationRequest
	if err := db.Order("created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query quotations", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func updateQuotationStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID", nil)
	}
	status := strings.TrimSpace(c.QueryParam("status"))
	if status == "" {
		var body struct {
			Status string `json:"status"`
		}
		if berr := c.Bind(&body); berr == nil {
			status = body.Status
		}
	}
	if status != domain.QuotationStatusNew && status != domain.QuotationStatusHandled {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown quotation status", nil)
	}
	if err := GetDB(c).Model(&domain.QuotationRequest{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update quotation", err.Error())
	}
	addOpLog(c, "quotation:status", status)
	return ok(c, map[string]interface{}{"id": id, "status": status})
}

func listSubscribers(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.NewsletterSubscriber{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		db = db.Where("email ILIKE ?", "%"+q+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query subscribers", err.Error())
	}
	var rows []domain.NewsletterSubscriber
	if err := db.Order("created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query subscribers", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}
