package publicapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/jutehus/jutehus/internal/webserver"
)

const sessionKeyLocale = "locale"

// localeFor resolves the visitor's locale: session choice first, then the
// configured default.
func localeFor(c echo.Context) string {
	if sess, err := session.Get(webserver.SessionName, c); err == nil {
		if v, ok := sess.Values[sessionKeyLocale].(string); ok && v != "" {
			return v
		}
	}
	if def := getAppContext(c).GetSettingsStringValue("site", "default_locale"); def != "" {
		return def
	}
	return "en"
}

func getLocale(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"data": map[string]interface{}{"locale": localeFor(c)}})
}

func setLocale(c echo.Context) error {
	var payload struct {
		Locale string `json:"locale"`
	}
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to parse locale")
	}
	locale := strings.TrimSpace(payload.Locale)

	enabled := getAppContext(c).GetSettingsStringValue("site", "locales")
	if enabled == "" {
		enabled = "en,da"
	}
	valid := false
	for _, l := range strings.Split(enabled, ",") {
		if strings.TrimSpace(l) == locale {
			valid = true
			break
		}
	}
	if !valid {
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported locale")
	}

	sess, err := session.Get(webserver.SessionName, c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
	}
	sess.Values[sessionKeyLocale] = locale
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to persist locale")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": map[string]interface{}{"locale": locale}})
}
