package publicapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jutehus/jutehus/internal/app"
	"github.com/jutehus/jutehus/internal/querycache"
	"github.com/jutehus/jutehus/internal/webserver"
)

// stubApp overrides the providers the storefront handlers use.
type stubApp struct {
	app.AppContext
	cache    *querycache.Cache
	settings map[string]string
}

func (s *stubApp) Cache() *querycache.Cache { return s.cache }

func (s *stubApp) GetSettingsStringValue(category, key string) string {
	return s.settings[category+"."+key]
}

func (s *stubApp) SendNotifyMail(subject, body string) error { return nil }

func newStub() *stubApp {
	return &stubApp{
		cache:    querycache.New(time.Minute, nil),
		settings: map[string]string{},
	}
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

// Resubmitting an address already on the list succeeds without inserting a
// duplicate row.
func TestSubscribeNewsletterIdempotent(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "newsletter_subscribers"`).
		WithArgs("reader@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	body := `{"email":"Reader@Example.com","locale":"da"}`
	c, rec := newTestContext(t, http.MethodPost, "/public/v1/newsletter/subscribe", body, gdb, newStub())

	require.NoError(t, subscribeNewsletter(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"subscribed":true`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscribeNewsletterNew(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "newsletter_subscribers"`).
		WithArgs("new@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "newsletter_subscribers"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{"email":"new@example.com"}`
	c, rec := newTestContext(t, http.MethodPost, "/public/v1/newsletter/subscribe", body, gdb, newStub())

	require.NoError(t, subscribeNewsletter(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscribeNewsletterRejectsBadEmail(t *testing.T) {
	gdb, mock := newMockDB(t)

	body := `{"email":"not-an-email"}`
	c, _ := newTestContext(t, http.MethodPost, "/public/v1/newsletter/subscribe", body, gdb, newStub())

	err := subscribeNewsletter(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
