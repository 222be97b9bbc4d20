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

type categoryPayload struct {
	ID     string `json:"id" validate:"omitempty,max=64"`
	NameEn string `json:"name_en" validate:"required,min=1,max=200"`
	NameDa string `json:"name_da" validate:"omitempty,max=200"`
	Sort   int    `json:"sort"`
}

func registerCategoryRoutes() {
	webserver.ApiGET("/catalog/categories", listCategories)
	webserver.ApiPOST("/catalog/categories", createCategory)
	webserver.ApiPUT("/catalog/categories/:id", updateCategory)
	webserver.ApiDELETE("/catalog/categories/:id", deleteCategory)
}

func listCategories(c echo.Context) error {
	var rows []domain.ProductCategory
	if err := GetDB(c).Order("sort, id").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query categories", err.Error())
	}
	return ok(c, rows)
}

func createCategory(c echo.Context) error {
	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", err.Error())
	}
	if err := validate.Struct(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Validation failed", err.Error())
	}

	id := strings.TrimSpace(payload.ID)
	if id == "" {
		id = common.Slugify(payload.NameEn)
	}
	if !common.SlugPattern.MatchString(id) {
		return fail(c, http.StatusBadRequest, "INVALID_SLUG", "Category ID may only contain lowercase letters, digits and hyphens", nil)
	}

	db := GetDB(c)
	var count int64
	if err := db.Model(&domain.ProductCategory{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to check category", err.Error())
	}
	if count > 0 {
		return fail(c, http.StatusConflict, "SLUG_EXISTS", "A category with this ID already exists", nil)
	}

	now := time.Now()
	cat := domain.ProductCategory{
		ID:        id,
		NameEn:    strings.TrimSpace(payload.NameEn),
		NameDa:    strings.TrimSpace(payload.NameDa),
		Sort:      payload.Sort,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(&cat).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create category", err.Error())
	}

	addOpLog(c, "category:create", cat.ID)
	GetAppContext(c).PublishInvalidate("categories")
	return ok(c, cat)
}

func updateCategory(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))

	db := GetDB(c)
	var cat domain.ProductCategory
	if err := db.Where("id = ?", id).First(&cat).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Category not found", nil)
	}

	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", err.Error())
	}
	if err := validate.Struct(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Validation failed", err.Error())
	}

	cat.NameEn = strings.TrimSpace(payload.NameEn)
	cat.NameDa = strings.TrimSpace(payload.NameDa)
	cat.Sort = payload.Sort
	cat.UpdatedAt = time.Now()
	if err := db.Save(&cat).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update category", err.Error())
	}

	addOpLog(c, "category:update", cat.ID)
	GetAppContext(c).PublishInvalidate("categories")
	return ok(c, cat)
}

// deleteCategory refuses to remove a category that products still reference;
// the caller has to reassign them first.
func deleteCategory(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	db := GetDB(c)

	var inUse int64
	if err := db.Model(&domain.Product{}).Where("category_id = ?", id).Count(&inUse).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to check category usage", err.Error())
	}
	if inUse > 0 {
		return fail(c, http.StatusConflict, "CATEGORY_IN_USE",
			"Category is referenced by existing products", map[string]interface{}{"product_count": inUse})
	}

	if err := db.Where("id = ?", id).Delete(&domain.ProductCategory{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete category", err.Error())
	}

	addOpLog(c, "category:delete", id)
	GetAppContext(c).PublishInvalidate("categories")
	return ok(c, map[string]interface{}{"id": id})
}
