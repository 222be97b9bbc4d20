package adminapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jutehus/jutehus/internal/domain"
	"github.com/jutehus/jutehus/internal/webserver"
	"github.com/jutehus/jutehus/pkg/common"
)

type sysConfigPayload struct {
	Type  string `json:"type" validate:"required,min=1,max=64"`
	Name  string `json:"name" validate:"required,min=1,max=64"`
	Value string `json:"value" validate:"omitempty,max=4000"`
}

func registerSettingsRoutes() {
	webserver.ApiGET("/settings/site", getSiteSettings)
	webserver.ApiPUT("/settings/site", updateSiteSettings)
	webserver.ApiGET("/settings/config", listSysConfig)
	webserver.ApiPUT("/settings/config", setSysConfig)
}

func getSiteSettings(c echo.Context) error {
	var settings domain.SiteSettings
	if err := GetDB(c).Where("id = ?", domain.SiteSettingsID).First(&settings).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Site settings not initialized", nil)
	}
	return ok(c, settings)
}

// updateSiteSettings writes the singleton row. The ID is pinned so a bad
// payload can never create a second row.
func updateSiteSettings(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return err
	}

	var payload domain.SiteSettings
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse settings", err.Error())
	}
	payload.ID = domain.SiteSettingsID
	payload.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&payload).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update settings", err.Error())
	}

	addOpLog(c, "settings:site", "updated")
	GetAppContext(c).PublishInvalidate("site")
	return ok(c, payload)
}

func listSysConfig(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return err
	}
	var rows []domain.SysConfig
	if err := GetDB(c).Order("sort, id").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query config", err.Error())
	}
	return ok(c, rows)
}

func setSysConfig(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return err
	}
	var payload sysConfigPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse config", err.Error())
	}
	if err := validate.Struct(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Validation failed", err.Error())
	}

	db := GetDB(c)
	var row domain.SysConfig
	err := db.Where("type = ? and name = ?", payload.Type, payload.Name).First(&row).Error
	if err != nil {
		row = domain.SysConfig{
			ID:        common.NextID(),
			Type:      payload.Type,
			Name:      payload.Name,
			Value:     payload.Value,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		err = db.Create(&row).Error
	} else {
		err = db.Model(&domain.SysConfig{}).Where("id = ?", row.ID).
			Updates(map[string]interface{}{"value": payload.Value, "updated_at": time.Now()}).Error
		row.Value = payload.Value
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to store config", err.Error())
	}

	addOpLog(c, "settings:config", payload.Type+"."+payload.Name)
	return ok(c, row)
}
