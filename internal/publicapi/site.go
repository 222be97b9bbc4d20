package publicapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jutehus/jutehus/internal/domain"
	"github.com/jutehus/jutehus/internal/querycache"
)

func getSiteInfo(c echo.Context) error {
	appctx := getAppContext(c)
	v, err := appctx.Cache().Fetch(querycache.Key("site", "settings"), func() (interface{}, error) {
		var settings domain.SiteSettings
		if err := getDB(c).Where("id = ?", domain.SiteSettingsID).First(&settings).Error; err != nil {
			return nil, err
		}
		return settings, nil
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load site settings")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": v})
}

func listTeam(c echo.Context) error {
	appctx := getAppContext(c)
	v, err := appctx.Cache().Fetch(querycache.Key("team", "list"), func() (interface{}, error) {
		var rows []domain.TeamMember
		if err := getDB(c).Order("sort, id").Find(&rows).Error; err != nil {
			return nil, err
		}
		return rows, nil
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load team")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": v})
}

func listPublishedTestimonials(c echo.Context) error {
	appctx := getAppContext(c)
	v, err := appctx.Cache().Fetch(querycache.Key("testimonials", "published"), func() (interface{}, error) {
		var rows []domain.Testimonial
		if err := getDB(c).Where("published = ?", true).
			Order("sort, id").Find(&rows).Error; err != nil {
			return nil, err
		}
		return rows, nil
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load testimonials")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": v})
}

func listTimeline(c echo.Context) error {
	appctx := getAppContext(c)
	v, err := appctx.Cache().Fetch(querycache.Key("timeline", "list"), func() (interface{}, error) {
		var rows []domain.TimelineEvent
		if err := getDB(c).Order("year, sort, id").Find(&rows).Error; err != nil {
			return nil, err
		}
		return rows, nil
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load timeline")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": v})
}

func listOffices(c echo.Context) error {
	appctx := getAppContext(c)
	v, err := appctx.Cache().Fetch(querycache.Key("offices", "list"), func() (interface{}, error) {
		var rows []domain.OfficeLocation
		if err := getDB(c).Order("sort, id").Find(&rows).Error; err != nil {
			return nil, err
		}
		return rows, nil
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load offices")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": v})
}
