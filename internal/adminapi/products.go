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

// productPayload is the composite editor payload: flat catalog fields plus
// the typed sub-documents of every editor sub-section. Sub-documents are
// validated at this boundary instead of being stored as opaque blobs.
type productPayload struct {
	Slug          string                    `json:"slug" validate:"omitempty,max=128"`
	NameEn        string                    `json:"name_en" validate:"required,min=2,max=200"`
	NameDa        string                    `json:"name_da" validate:"omitempty,max=200"`
	DescriptionEn string                    `json:"description_en" validate:"omitempty,max=10000"`
	DescriptionDa string                    `json:"description_da" validate:"omitempty,max=10000"`
	CategoryID    string                    `json:"category_id" validate:"required,max=64"`
	Price         float64                   `json:"price" validate:"min=0"`
	Featured      bool                      `json:"featured"`
	ImageURL      string                    `json:"image_url"`
	Gallery       []string                  `json:"gallery" validate:"omitempty,dive,url"`
	Composition   domain.Composition        `json:"composition"`
	UseCases      []domain.UseCase          `json:"use_cases"`
	Origin        domain.OriginSupplier     `json:"origin_supplier"`
	EsgImpact     domain.ESGImpact          `json:"esg_impact"`
	Governance    domain.Governance         `json:"governance"`
	Visibility    *domain.SectionVisibility `json:"section_visibility"`
	Version       int64                     `json:"version"`
}

// productView decorates a product row with its derived completion score.
type productView struct {
	domain.Product
	CompletionScore int `json:"completion_score"`
}

func registerProductRoutes() {
	webserver.ApiGET("/catalog/products", listProducts)
	webserver.ApiGET("/catalog/products/:id", getProduct)
	webserver.ApiPOST("/catalog/products", createProduct)
	webserver.ApiPUT("/catalog/products/:id", updateProduct)
	webserver.ApiDELETE("/catalog/products/:id", deleteProduct)
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	allowed := map[string]string{
		"id":         "id",
		"slug":       "slug",
		"name_en":    "name_en",
		"price":      "price",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}
	orderBy := parseSort(c, allowed, "id")

	db := GetDB(c).Model(&domain.Product{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		db = db.Where("name_en ILIKE ? OR name_da ILIKE ?", "%"+q+"%", "%"+q+"%")
	}
	if category := strings.TrimSpace(c.QueryParam("category")); category != "" {
		db = db.Where("category_id = ?", category)
	}
	if featured := c.QueryParam("featured"); featured != "" {
		db = db.Where("featured = ?", featured == "true")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	var rows []domain.Product
	if err := db.Order(orderBy).Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	views := make([]productView, 0, len(rows))
	for i := range rows {
		rows[i].NormalizeDefaults()
		views = append(views, productView{Product: rows[i], CompletionScore: rows[i].CompletionScore()})
	}
	return paged(c, views, total, page, pageSize)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	p.NormalizeDefaults()
	return ok(c, productView{Product: p, CompletionScore: p.CompletionScore()})
}

// checkProductPayload applies the local save preconditions shared by create
// and update. It must not touch the database: a missing hero image fails
// before any query runs.
func checkProductPayload(payload *productPayload) (code, message string) {
	payload.NameEn = strings.TrimSpace(payload.NameEn)
	payload.ImageURL = strings.TrimSpace(payload.ImageURL)
	payload.Slug = strings.TrimSpace(payload.Slug)

	if payload.ImageURL == "" {
		return "MISSING_HERO_IMAGE", "Please upload main image"
	}
	if payload.Slug == "" {
		payload.Slug = common.Slugify(payload.NameEn)
	}
	if !common.SlugPattern.MatchString(payload.Slug) {
		return "INVALID_SLUG", "Slug may only contain lowercase letters, digits and hyphens"
	}
	return "", ""
}

func applyProductPayload(p *domain.Product, payload *productPayload) {
	p.Slug = payload.Slug
	p.NameEn = payload.NameEn
	p.NameDa = payload.NameDa
	p.DescriptionEn = payload.DescriptionEn
	p.DescriptionDa = payload.DescriptionDa
	p.CategoryID = payload.CategoryID
	p.Price = payload.Price
	p.Featured = payload.Featured
	p.ImageURL = payload.ImageURL
	p.Gallery = payload.Gallery
	p.Composition = payload.Composition
	p.UseCases = payload.UseCases
	p.Origin = payload.Origin
	p.EsgImpact = payload.EsgImpact
	p.Governance = payload.Governance
	if payload.Visibility != nil {
		p.Visibility = *payload.Visibility
	}
	p.NormalizeDefaults()
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if err := validate.Struct(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Validation failed", err.Error())
	}
	if code, msg := checkProductPayload(&payload); code != "" {
		return fail(c, http.StatusBadRequest, code, msg, nil)
	}

	db := GetDB(c)

	var slugCount int64
	if err := db.Model(&domain.Product{}).Where("slug = ?", payload.Slug).Count(&slugCount).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to check slug", err.Error())
	}
	if slugCount > 0 {
		return fail(c, http.StatusConflict, "SLUG_EXISTS", "A product with this slug already exists", nil)
	}

	var catCount int64
	if err := db.Model(&domain.ProductCategory{}).Where("id = ?", payload.CategoryID).Count(&catCount).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to check category", err.Error())
	}
	if catCount == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_CATEGORY", "Category does not exist", nil)
	}

	now := time.Now()
	p := domain.Product{
		ID:        common.NextID(),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyProductPayload(&p, &payload)

	if err := db.Create(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}

	addOpLog(c, "product:create", p.Slug)
	GetAppContext(c).PublishInvalidate("products")
	return ok(c, productView{Product: p, CompletionScore: p.CompletionScore()})
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	db := GetDB(c)
	var existing domain.Product
	if err := db.Where("id = ?", id).First(&existing).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if err := validate.Struct(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Validation failed", err.Error())
	}
	if code, msg := checkProductPayload(&payload); code != "" {
		return fail(c, http.StatusBadRequest, code, msg, nil)
	}

	var slugCount int64
	if err := db.Model(&domain.Product{}).Where("slug = ? AND id <> ?", payload.Slug, id).Count(&slugCount).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to check slug", err.Error())
	}
	if slugCount > 0 {
		return fail(c, http.StatusConflict, "SLUG_EXISTS", "A product with this slug already exists", nil)
	}

	var catCount int64
	if err := db.Model(&domain.ProductCategory{}).Where("id = ?", payload.CategoryID).Count(&catCount).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to check category", err.Error())
	}
	if catCount == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_CATEGORY", "Category does not exist", nil)
	}

	updated := existing
	applyProductPayload(&updated, &payload)
	updated.Version = existing.Version + 1
	updated.UpdatedAt = time.Now()

	// Conditional write: stale editors lose with a conflict instead of
	// silently overwriting each other.
	res := db.Model(&domain.Product{}).
		Where("id = ? AND version = ?", id, payload.Version).
		Select("*").Omit("id", "created_at").
		Updates(&updated)
	if res.Error != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return fail(c, http.StatusConflict, "VERSION_CONFLICT",
			"Product was modified by someone else, reload and retry", nil)
	}

	addOpLog(c, "product:update", updated.Slug)
	GetAppContext(c).PublishInvalidate("products")
	return ok(c, productView{Product: updated, CompletionScore: updated.CompletionScore()})
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Product{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	addOpLog(c, "product:delete", c.Param("id"))
	GetAppContext(c).PublishInvalidate("products")
	return ok(c, map[string]interface{}{"id": id})
}
