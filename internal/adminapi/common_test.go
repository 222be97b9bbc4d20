package adminapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/panjf2000/ants/v2"
	"github.com/spf13/cast"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jutehus/jutehus/internal/app"
	"github.com/jutehus/jutehus/internal/storage"
	"github.com/jutehus/jutehus/internal/webserver"
)

// stubApp overrides only the providers the handlers under test touch; the
// embedded interface panics on anything unexpected.
type stubApp struct {
	app.AppContext
	store    storage.ObjectStore
	pool     *ants.Pool
	settings map[string]string

	mu          sync.Mutex
	invalidated []string
}

func (s *stubApp) PublishInvalidate(entity string) {
	s.mu.Lock()
	s.invalidated = append(s.invalidated, entity)
	s.mu.Unlock()
}

func (s *stubApp) ObjectStore() storage.ObjectStore { return s.store }

func (s *stubApp) UploadPool() *ants.Pool { return s.pool }

func (s *stubApp) GetSettingsStringValue(category, key string) string {
	return s.settings[category+"."+key]
}

func (s *stubApp) GetSettingsInt64Value(category, key string) int64 {
	return cast.ToInt64(s.settings[category+"."+key])
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db, WithoutReturning: true}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return gdb, mock
}

func newTestContext(t *testing.T, method, target, body string, gdb *gorm.DB, appctx app.AppContext) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(webserver.ContextKeyDB, gdb)
	c.Set(webserver.ContextKeyApp, appctx)
	return c, rec
}
