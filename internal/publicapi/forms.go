package publicapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jutehus/jutehus/internal/app"
	"github.com/jutehus/jutehus/internal/domain"
	"github.com/jutehus/jutehus/pkg/common"
)

type subscribePayload struct {
	Email  string `json:"email" validate:"required,email"`
	Locale string `json:"locale" validate:"omitempty,oneof=en da"`
}

type quotationPayload struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Company   string `json:"company" validate:"omitempty,max=200"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,max=50"`
	ProductID int64  `json:"product_id,string" validate:"omitempty"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
	Message   string `json:"message" validate:"omitempty,max=10000"`
}

// subscribeNewsletter is idempotent on email: resubmitting an address that is
// already on the list succeeds without creating a duplicate.
func subscribeNewsletter(c echo.Context) error {
	var payload subscribePayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to parse subscription")
	}
	if err := validate.Struct(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "a valid email is required")
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	db := getDB(c)

	var count int64
	if err := db.Model(&domain.NewsletterSubscriber{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to check subscription")
	}
	if count == 0 {
		sub := domain.NewsletterSubscriber{
			ID:        common.NextID(),
			Email:     email,
			Locale:    payload.Locale,
			CreatedAt: time.Now(),
		}
		if err := db.Create(&sub).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to subscribe")
		}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": map[string]interface{}{"subscribed": true}})
}

func createQuotationRequest(c echo.Context) error {
	var payload quotationPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to parse quotation request")
	}
	if err := validate.Struct(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "name and a valid email are required")
	}

	req := domain.QuotationRequest{
		ID:        common.NextID(),
		Name:      strings.TrimSpace(payload.Name),
		Company:   payload.Company,
		Email:     strings.ToLower(strings.TrimSpace(payload.Email)),
		Phone:     payload.Phone,
		ProductID: payload.ProductID,
		Quantity:  payload.Quantity,
		Message:   payload.Message,
		Status:    domain.QuotationStatusNew,
		CreatedAt: time.Now(),
	}
	if err := getDB(c).Create(&req).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to store quotation request")
	}

	go notifyQuotation(getAppContext(c), req)
	return c.JSON(http.StatusOK, map[string]interface{}{"data": map[string]interface{}{"id": req.ID}})
}

// notifyQuotation mails the sales inbox about a new request, best-effort.
func notifyQuotation(appctx app.AppContext, req domain.QuotationRequest) {
	body := fmt.Sprintf("New quotation request from %s (%s)\nCompany: %s\nPhone: %s\nQuantity: %d\n\n%s",
		req.Name, req.Email, req.Company, req.Phone, req.Quantity, req.Message)
	if err := appctx.SendNotifyMail("New quotation request", body); err != nil {
		zap.L().Warn("quotation mail failed", zap.Error(err))
	}
}
