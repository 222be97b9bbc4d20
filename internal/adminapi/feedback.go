package adminapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/guonaihong/gout"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jutehus/jutehus/internal/domain"
	"github.com/jutehus/jutehus/internal/storage"
	"github.com/jutehus/jutehus/internal/webserver"
	"github.com/jutehus/jutehus/pkg/common"
)

type feedbackPayload struct {
	Type        string `json:"type" validate:"required,oneof=bug feature improvement"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	Title       string `json:"title" validate:"required,min=1,max=300"`
	Description string `json:"description" validate:"omitempty,max=10000"`
	// Screenshot is an optional base64 payload captured by the panel.
	Screenshot     string `json:"screenshot"`
	ScreenshotName string `json:"screenshot_name"`
}

type feedbackStatusPayload struct {
	Status     string `json:"status" validate:"required,oneof=open in_progress resolved closed"`
	AdminNotes string `json:"admin_notes" validate:"omitempty,max=10000"`
}

func registerFeedbackRoutes() {
	webserver.ApiGET("/feedback/tickets", listFeedbackTickets)
	webserver.ApiGET("/feedback/tickets/:id", getFeedbackTicket)
	webserver.ApiPOST("/feedback/tickets", createFeedbackTicket)
	webserver.ApiPUT("/feedback/tickets/:id/status", updateFeedbackStatus)
	webserver.ApiDELETE("/feedback/tickets/:id", deleteFeedbackTicket)
}

func listFeedbackTickets(c echo.Context) error {
	page, pageSize := parsePagination(c)

	allowed := map[string]string{
		"id":          "id",
		"priority":    "priority",
		"status":      "status",
		"created_at":  "created_at",
		"resolved_at": "resolved_at",
	}
	orderBy := parseSort(c, allowed, "id")

	db := GetDB(c).Model(&domain.FeedbackTicket{})
	if t := strings.TrimSpace(c.QueryParam("type")); t != "" {
		db = db.Where("type = ?", t)
	}
	if s := strings.TrimSpace(c.QueryParam("status")); s != "" {
		db = db.Where("status = ?", s)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query tickets", err.Error())
	}
	var rows []domain.FeedbackTicket
	if err := db.Order(orderBy).Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query tickets", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getFeedbackTicket(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid ticket ID", nil)
	}
	var ticket domain.FeedbackTicket
	if err := GetDB(c).Where("id = ?", id).First(&ticket).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Ticket not found", nil)
	}
	return ok(c, ticket)
}

// uploadScreenshot stores the optional screenshot and returns its URL. Any
// failure is logged and swallowed: a broken screenshot never blocks intake.
func uploadScreenshot(c echo.Context, payload *feedbackPayload) string {
	if payload.Screenshot == "" {
		return ""
	}
	raw := payload.Screenshot
	if i := strings.Index(raw, ";base64,"); i >= 0 {
		raw = raw[i+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		zap.L().Warn("feedback screenshot decode failed", zap.Error(err))
		return ""
	}
	name := payload.ScreenshotName
	if name == "" {
		name = "screenshot.png"
	}
	url, err := GetAppContext(c).ObjectStore().Upload(
		c.Request().Context(), storage.UploadName(name), bytes.NewReader(data))
	if err != nil {
		zap.L().Warn("feedback screenshot upload failed", zap.Error(err))
		return ""
	}
	return url
}

func createFeedbackTicket(c echo.Context) error {
	var payload feedbackPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse ticket", err.Error())
	}
	if err := validate.Struct(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Validation failed", err.Error())
	}

	priority := payload.Priority
	if priority == "" {
		priority = "medium"
	}

	now := time.Now()
	ticket := domain.FeedbackTicket{
		ID:            common.NextID(),
		Type:          payload.Type,
		Priority:      priority,
		Status:        domain.TicketStatusOpen,
		Title:         strings.TrimSpace(payload.Title),
		Description:   payload.Description,
		ScreenshotURL: uploadScreenshot(c, &payload),
		ReportedBy:    currentUsername(c),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := GetDB(c).Create(&ticket).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create ticket", err.Error())
	}

	// Resolve the webhook URL before leaving the request scope.
	go notifyFeedbackWebhook(GetAppContext(c).GetSettingsStringValue("notify", "webhook_url"), ticket)
	addOpLog(c, "feedback:create", ticket.Title)
	return ok(c, ticket)
}

// notifyFeedbackWebhook posts new tickets to the configured webhook, if any.
func notifyFeedbackWebhook(url string, ticket domain.FeedbackTicket) {
	if url == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := gout.POST(url).WithContext(ctx).SetJSON(gout.H{
		"event":    "feedback.created",
		"id":       ticket.ID,
		"type":     ticket.Type,
		"priority": ticket.Priority,
		"title":    ticket.Title,
	}).Do()
	if err != nil {
		zap.L().Warn("feedback webhook failed", zap.String("url", url), zap.Error(err))
	}
}

func updateFeedbackStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid ticket ID", nil)
	}

	db := GetDB(c)
	var ticket domain.FeedbackTicket
	if err := db.Where("id = ?", id).First(&ticket).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Ticket not found", nil)
	}

	var payload feedbackStatusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status", err.Error())
	}
	if err := validate.Struct(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Validation failed", err.Error())
	}

	ticket.SetStatus(payload.Status, time.Now())
	if payload.AdminNotes != "" {
		ticket.AdminNotes = payload.AdminNotes
	}
	ticket.UpdatedAt = time.Now()

	if err := db.Save(&ticket).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update ticket", err.Error())
	}

	addOpLog(c, "feedback:status", payload.Status)
	return ok(c, ticket)
}

func deleteFeedbackTicket(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid ticket ID", nil)
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.FeedbackTicket{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete ticket", err.Error())
	}
	addOpLog(c, "feedback:delete", c.Param("id"))
	return ok(c, map[string]interface{}{"id": id})
}
