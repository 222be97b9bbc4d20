// Package webserver owns the echo instance: middleware, route groups and the
// registration helpers the API packages use.
package webserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	jsoniter "github.com/json-iterator/go"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/jutehus/jutehus/internal/app"
	"github.com/jutehus/jutehus/pkg/metrics"
)

const (
	// ContextKeyApp carries the application context into handlers.
	ContextKeyApp = "jutehus_app"
	// ContextKeyDB carries the request database handle into handlers.
	ContextKeyDB = "jutehus_db"
	// SessionName is the storefront cookie session holding locale state.
	SessionName = "jutehus_session"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONSerializer swaps echo's encoding/json for json-iterator.
type JSONSerializer struct{}

func (JSONSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := jsonAPI.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (JSONSerializer) Deserialize(c echo.Context, i interface{}) error {
	err := jsonAPI.NewDecoder(c.Request().Body).Decode(i)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}

type WebServer struct {
	root   *echo.Echo
	api    *echo.Group
	pub    *echo.Group
	appctx app.AppContext
}

var server *WebServer

// Init builds the global web server around the application context.
func Init(appctx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = JSONSerializer{}

	secret := []byte(appctx.Config().Web.Secret)

	e.Use(middleware.Recover())
	e.Use(session.Middleware(sessions.NewCookieStore(secret)))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextKeyApp, appctx)
			c.Set(ContextKeyDB, appctx.DB())
			return next(c)
		}
	})
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			metrics.Inc(metrics.MetricHttpRequests)
			zap.L().Debug("http request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency))
			return nil
		},
	}))

	server = &WebServer{
		root:   e,
		appctx: appctx,
		api:    e.Group("/api/v1", echojwt.WithConfig(echojwt.Config{SigningKey: secret})),
		pub:    e.Group("/public/v1"),
	}
	return server
}

// Listen starts serving and blocks.
func Listen() error {
	cfg := server.appctx.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.S().Infof("web server listening on %s", addr)
	return server.root.Start(addr)
}

// Shutdown drains the server.
func Shutdown(ctx context.Context) error {
	return server.root.Shutdown(ctx)
}

// ApiGET registers an authenticated admin route.
func ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.GET(path, h, m...)
}

func ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.POST(path, h, m...)
}

func ApiPUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.PUT(path, h, m...)
}

func ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.DELETE(path, h, m...)
}

// PubGET registers an unauthenticated storefront route.
func PubGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.pub.GET(path, h, m...)
}

func PubPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.pub.POST(path, h, m...)
}

// RootPOST registers a route outside both groups, e.g. the login endpoint.
func RootPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.root.POST(path, h, m...)
}
