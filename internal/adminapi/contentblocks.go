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

type contentBlockPayload struct {
	Section       string                 `json:"section" validate:"required,min=1,max=64"`
	BlockKey      string                 `json:"block_key" validate:"required,min=1,max=64"`
	TitleEn       string                 `json:"title_en" validate:"omitempty,max=300"`
	TitleDa       string                 `json:"title_da" validate:"omitempty,max=300"`
	DescriptionEn string                 `json:"description_en"`
	DescriptionDa string                 `json:"description_da"`
	Value         string                 `json:"value"`
	Metadata      map[string]interface{} `json:"metadata"`
	Sort          int                    `json:"sort"`
}

func registerContentBlockRoutes() {
	webserver.ApiGET("/content/blocks", listContentBlocks)
	webserver.ApiPOST("/content/blocks", createContentBlock)
	webserver.ApiPUT("/content/blocks/:id", updateContentBlock)
	webserver.ApiDELETE("/content/blocks/:id", deleteContentBlock)
}

func listContentBlocks(c echo.Context) error {
	db := GetDB(c).Model(&domain.ContentBlock{})
	if section := strings.TrimSpace(c.QueryParam("section")); section != "" {
		db = db.Where("section = ?", section)
	}
	var rows []domain.ContentBlock
	if err := db.Order("section, sort, block_key").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query content blocks", err.Error())
	}
	return ok(c, rows)
}

func createContentBlock(c echo.Context) error {
	var payload contentBlockPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse content block", err.Error())
	}
	if err := validate.Struct(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Validation failed", err.Error())
	}

	section := strings.TrimSpace(payload.Section)
	blockKey := strings.TrimSpace(payload.BlockKey)
	if !common.SlugPattern.MatchString(section) || !common.SlugPattern.MatchString(blockKey) {
		return fail(c, http.StatusBadRequest, "INVALID_ADDRESS",
			"Section and block key may only contain lowercase letters, digits and hyphens", nil)
	}

	db := GetDB(c)
	var count int64
	if err := db.Model(&domain.ContentBlock{}).
		Where("section = ? AND block_key = ?", section, blockKey).Count(&count).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to check block address", err.Error())
	}
	if count > 0 {
		return fail(c, http.StatusConflict, "BLOCK_EXISTS", "A block with this section and key already exists", nil)
	}

	now := time.Now()
	block := domain.ContentBlock{
		ID:            common.NextID(),
		Section:       section,
		BlockKey:      blockKey,
		TitleEn:       payload.TitleEn,
		TitleDa:       payload.TitleDa,
		DescriptionEn: payload.DescriptionEn,
		DescriptionDa: payload.DescriptionDa,
		Value:         payload.Value,
		Metadata:      payload.Metadata,
		Sort:          payload.Sort,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := db.Create(&block).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create content block", err.Error())
	}

	addOpLog(c, "content:create", section+"/"+blockKey)
	GetAppContext(c).PublishInvalidate("content")
	return ok(c, block)
}

func updateContentBlock(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid block ID", nil)
	}

	db := GetDB(c)
	var block domain.ContentBlock
	if err := db.Where("id = ?", id).First(&block).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Content block not found", nil)
	}

	var payload contentBlockPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse content block", err.Error())
	}
	if err := validate.Struct(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Validation failed", err.Error())
	}

	// The (section, block_key) address is stable once created; storefront
	// templates look blocks up by it.
	block.TitleEn = payload.TitleEn
	block.TitleDa = payload.TitleDa
	block.DescriptionEn = payload.DescriptionEn
	block.DescriptionDa = payload.DescriptionDa
	block.Value = payload.Value
	block.Metadata = payload.Metadata
	block.Sort = payload.Sort
	block.UpdatedAt = time.Now()

	if err := db.Save(&block).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update content block", err.Error())
	}

	addOpLog(c, "content:update", block.Section+"/"+block.BlockKey)
	GetAppContext(c).PublishInvalidate("content")
	return ok(c, block)
}

func deleteContentBlock(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid block ID", nil)
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.ContentBlock{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete content block", err.Error())
	}
	addOpLog(c, "content:delete", c.Param("id"))
	GetAppContext(c).PublishInvalidate("content")
	return ok(c, map[string]interface{}{"id": id})
}
