package publicapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jutehus/jutehus/internal/domain"
	"github.com/jutehus/jutehus/internal/querycache"
)

// Storefront blog reads only ever see published posts.

func listPublishedPosts(c echo.Context) error {
	appctx := getAppContext(c)
	v, err := appctx.Cache().Fetch(querycache.Key("blog", "published"), func() (interface{}, error) {
		var rows []domain.BlogPost
		if err := getDB(c).Where("published = ?", true).
			Order("published_at DESC").Find(&rows).Error; err != nil {
			return nil, err
		}
		return rows, nil
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load posts")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": v})
}

func getPublishedPost(c echo.Context) error {
	slug := strings.TrimSpace(c.Param("slug"))

	appctx := getAppContext(c)
	v, err := appctx.Cache().Fetch(querycache.Key("blog", "slug", slug), func() (interface{}, error) {
		var post domain.BlogPost
		if err := getDB(c).Where("slug = ? AND published = ?", slug, true).
			First(&post).Error; err != nil {
			return nil, err
		}
		return post, nil
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "post not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": v})
}
