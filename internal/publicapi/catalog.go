package publicapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jutehus/jutehus/internal/domain"
	"github.com/jutehus/jutehus/internal/querycache"
)

type productView struct {
	domain.Product
	CompletionScore int `json:"completion_score"`
}

func listProducts(c echo.Context) error {
	category := strings.TrimSpace(c.QueryParam("category"))
	featured := strings.TrimSpace(c.QueryParam("featured"))
	q := strings.ToLower(strings.TrimSpace(c.QueryParam("q")))

	appctx := getAppContext(c)
	key := querycache.Key("products", "list", category, featured, q)
	v, err := appctx.Cache().Fetch(key, func() (interface{}, error) {
		db := getDB(c).Model(&domain.Product{})
		if category != "" {
			db = db.Where("category_id = ?", category)
		}
		if featured != "" {
			db = db.Where("featured = ?", featured == "true")
		}
		if q != "" {
			db = db.Where("name_en ILIKE ? OR name_da ILIKE ?", "%"+q+"%", "%"+q+"%")
		}
		var rows []domain.Product
		if err := db.Order("featured DESC, name_en").Find(&rows).Error; err != nil {
			return nil, err
		}
		views := make([]productView, 0, len(rows))
		for i := range rows {
			rows[i].NormalizeDefaults()
			views = append(views, productView{Product: rows[i], CompletionScore: rows[i].CompletionScore()})
		}
		return views, nil
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load products")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": v})
}

func getProductBySlug(c echo.Context) error {
	slug := strings.TrimSpace(c.Param("slug"))

	appctx := getAppContext(c)
	key := querycache.Key("products", "slug", slug)
	v, err := appctx.Cache().Fetch(key, func() (interface{}, error) {
		var p domain.Product
		if err := getDB(c).Where("slug = ?", slug).First(&p).Error; err != nil {
			return nil, err
		}
		p.NormalizeDefaults()
		return productView{Product: p, CompletionScore: p.CompletionScore()}, nil
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": v})
}

func listCategories(c echo.Context) error {
	appctx := getAppContext(c)
	v, err := appctx.Cache().Fetch(querycache.Key("categories", "list"), func() (interface{}, error) {
		var rows []domain.ProductCategory
		if err := getDB(c).Order("sort, id").Find(&rows).Error; err != nil {
			return nil, err
		}
		return rows, nil
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load categories")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": v})
}
