package adminapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/jutehus/jutehus/internal/app"
	"github.com/jutehus/jutehus/internal/domain"
	"github.com/jutehus/jutehus/internal/webserver"
	"github.com/jutehus/jutehus/pkg/common"
)

var validate = validator.New()

// GetDB returns the request database handle.
func GetDB(c echo.Context) *gorm.DB {
	return c.Get(webserver.ContextKeyDB).(*gorm.DB)
}

// GetAppContext returns the full application context.
func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(webserver.ContextKeyApp).(app.AppContext)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"data": data})
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":     rows,
		"total":    total,
		"page":     page,
		"per_page": pageSize,
	})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
			"detail":  detail,
		},
	})
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	pageSize, _ = strconv.Atoi(c.QueryParam("perPage"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// parseSort returns a safe ORDER BY clause limited to the allowed columns.
func parseSort(c echo.Context, allowed map[string]string, fallback string) string {
	col, okcol := allowed[strings.TrimSpace(c.QueryParam("sort"))]
	if !okcol {
		col = fallback
	}
	order := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	return col + " " + order
}

// parseTimeRange reads optional from/to filters in any common date format.
func parseTimeRange(c echo.Context) (from, to *time.Time) {
	if s := strings.TrimSpace(c.QueryParam("from")); s != "" {
		if t, err := dateparse.ParseAny(s); err == nil {
			from = &t
		}
	}
	if s := strings.TrimSpace(c.QueryParam("to")); s != "" {
		if t, err := dateparse.ParseAny(s); err == nil {
			to = &t
		}
	}
	return from, to
}

func currentClaims(c echo.Context) jwt.MapClaims {
	token, okt := c.Get("user").(*jwt.Token)
	if !okt {
		return jwt.MapClaims{}
	}
	claims, okc := token.Claims.(jwt.MapClaims)
	if !okc {
		return jwt.MapClaims{}
	}
	return claims
}

func currentUsername(c echo.Context) string {
	if v, okv := currentClaims(c)["username"].(string); okv {
		return v
	}
	return ""
}

func currentLevel(c echo.Context) string {
	if v, okv := currentClaims(c)["level"].(string); okv {
		return v
	}
	return ""
}

// requireAdmin gates the routes editors may not touch.
func requireAdmin(c echo.Context) error {
	if currentLevel(c) != domain.RoleAdmin {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Admin role required", nil)
	}
	return nil
}

// addOpLog records an admin action in the audit trail, best-effort.
func addOpLog(c echo.Context, action, desc string) {
	GetDB(c).Create(&domain.SysOpLog{
		ID:        common.NextID(),
		OprName:   currentUsername(c),
		OprIp:     c.RealIP(),
		OptAction: action,
		OptDesc:   desc,
		OptTime:   time.Now(),
	})
}
