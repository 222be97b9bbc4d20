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

type blogPostPayload struct {
	Slug          string `json:"slug" validate:"omitempty,max=128"`
	TitleEn       string `json:"title_en" validate:"required,min=1,max=300"`
	TitleDa       string `json:"title_da" validate:"omitempty,max=300"`
	ExcerptEn     string `json:"excerpt_en" validate:"omitempty,max=1000"`
	ExcerptDa     string `json:"excerpt_da" validate:"omitempty,max=1000"`
	ContentEn     string `json:"content_en"`
	ContentDa     string `json:"content_da"`
	CoverImageURL string `json:"cover_image_url"`
	Author        string `json:"author" validate:"omitempty,max=200"`
	Published     bool   `json:"published"`
}

func registerBlogRoutes() {
	webserver.ApiGET("/blog/posts", listBlogPosts)
	webserver.ApiGET("/blog/posts/:id", getBlogPost)
	webserver.ApiPOST("/blog/posts", createBlogPost)
	webserver.ApiPUT("/blog/posts/:id", updateBlogPost)
	webserver.ApiDELETE("/blog/posts/:id", deleteBlogPost)
}

func listBlogPosts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	allowed := map[string]string{
		"id":           "id",
		"title_en":     "title_en",
		"published_at": "published_at",
		"created_at":   "created_at",
	}
	orderBy := parseSort(c, allowed, "id")

	db := GetDB(c).Model(&domain.BlogPost{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		db = db.Where("title_en ILIKE ? OR title_da ILIKE ?", "%"+q+"%", "%"+q+"%")
	}
	if published := c.QueryParam("published"); published != "" {
		db = db.Where("published = ?", published == "true")
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
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query posts", err.Error())
	}
	var rows []domain.BlogPost
	if err := db.Order(orderBy).Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query posts", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getBlogPost(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid post ID", nil)
	}
	var post domain.BlogPost
	if err := GetDB(c).Where("id = ?", id).First(&post).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Post not found", nil)
	}
	return ok(c, post)
}

func checkBlogSlug(payload *blogPostPayload) (code, message string) {
	payload.TitleEn = strings.TrimSpace(payload.TitleEn)
	payload.Slug = strings.TrimSpace(payload.Slug)
	if payload.Slug == "" {
		payload.Slug = common.Slugify(payload.TitleEn)
	}
	if !common.SlugPattern.MatchString(payload.Slug) {
		return "INVALID_SLUG", "Slug may only contain lowercase letters, digits and hyphens"
	}
	return "", ""
}

func createBlogPost(c echo.Context) error {
	var payload blogPostPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse post", err.Error())
	}
	if err := validate.Struct(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Validation failed", err.Error())
	}
	if code, msg := checkBlogSlug(&payload); code != "" {
		return fail(c, http.StatusBadRequest, code, msg, nil)
	}

	db := GetDB(c)
	var count int64
	if err := db.Model(&domain.BlogPost{}).Where("slug = ?", payload.Slug).Count(&count).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to check slug", err.Error())
	}
	if count > 0 {
		return fail(c, http.StatusConflict, "SLUG_EXISTS", "A post with this slug already exists", nil)
	}

	now := time.Now()
	post := domain.BlogPost{
		ID:            common.NextID(),
		Slug:          payload.Slug,
		TitleEn:       payload.TitleEn,
		TitleDa:       payload.TitleDa,
		ExcerptEn:     payload.ExcerptEn,
		ExcerptDa:     payload.ExcerptDa,
		ContentEn:     payload.ContentEn,
		ContentDa:     payload.ContentDa,
		CoverImageURL: payload.CoverImageURL,
		Author:        payload.Author,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	post.SetPublished(payload.Published, now)

	if err := db.Create(&post).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create post", err.Error())
	}

	addOpLog(c, "blog:create", post.Slug)
	GetAppContext(c).PublishInvalidate("blog")
	return ok(c, post)
}

func updateBlogPost(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid post ID", nil)
	}

	db := GetDB(c)
	var post domain.BlogPost
	if err := db.Where("id = ?", id).First(&post).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Post not found", nil)
	}

	var payload blogPostPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse post", err.Error())
	}
	if err := validate.Struct(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Validation failed", err.Error())
	}
	if code, msg := checkBlogSlug(&payload); code != "" {
		return fail(c, http.StatusBadRequest, code, msg, nil)
	}

	var count int64
	if err := db.Model(&domain.BlogPost{}).Where("slug = ? AND id <> ?", payload.Slug, id).Count(&count).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to check slug", err.Error())
	}
	if count > 0 {
		return fail(c, http.StatusConflict, "SLUG_EXISTS", "A post with this slug already exists", nil)
	}

	post.Slug = payload.Slug
	post.TitleEn = payload.TitleEn
	post.TitleDa = payload.TitleDa
	post.ExcerptEn = payload.ExcerptEn
	post.ExcerptDa = payload.ExcerptDa
	post.ContentEn = payload.ContentEn
	post.ContentDa = payload.ContentDa
	post.CoverImageURL = payload.CoverImageURL
	post.Author = payload.Author
	post.SetPublished(payload.Published, time.Now())
	post.UpdatedAt = time.Now()

	if err := db.Save(&post).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update post", err.Error())
	}

	addOpLog(c, "blog:update", post.Slug)
	GetAppContext(c).PublishInvalidate("blog")
	return ok(c, post)
}

func deleteBlogPost(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid post ID", nil)
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.BlogPost{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete post", err.Error())
	}
	addOpLog(c, "blog:delete", c.Param("id"))
	GetAppContext(c).PublishInvalidate("blog")
	return ok(c, map[string]interface{}{"id": id})
}
