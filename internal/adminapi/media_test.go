package adminapi

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jutehus/jutehus/internal/storage"
	"github.com/jutehus/jutehus/internal/webserver"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func newUploadContext(t *testing.T, gdb *gorm.DB, appctx *stubApp, filenames ...string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range filenames {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes for " + name))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/media/upload", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(webserver.ContextKeyDB, gdb)
	c.Set(webserver.ContextKeyApp, appctx)
	return c, rec
}

func newUploadStub(t *testing.T) (*stubApp, *storage.MemoryStore) {
	t.Helper()
	pool, err := ants.NewPool(2)
	require.NoError(t, err)
	t.Cleanup(pool.Release)

	store := storage.NewMemoryStore("test")
	return &stubApp{store: store, pool: pool, settings: map[string]string{}}, store
}

func TestUploadMediaAssets(t *testing.T) {
	gdb, mock := newMockDB(t)
	appctx, store := newUploadStub(t)

	mock.ExpectExec(`INSERT INTO "media_assets"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := newUploadContext(t, gdb, appctx, "photo.png")
	require.NoError(t, uploadMediaAssets(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"succeeded":1`)
	assert.Equal(t, 1, store.Len())
	assert.Contains(t, appctx.invalidated, "media")
}

// When the row insert fails after the object landed in the bucket, the
// object is removed again so nothing is orphaned. The other files in the
// batch are unaffected.
func TestUploadMediaAssetCompensation(t *testing.T) {
	gdb, _ := newMockDB(t)
	appctx, store := newUploadStub(t)
	// No insert expectation: every Create fails.

	c, rec := newUploadContext(t, gdb, appctx, "photo.png")
	require.NoError(t, uploadMediaAssets(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"failed":1`)
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, appctx.invalidated)
}

func TestUploadMediaAssetMimeRejected(t *testing.T) {
	gdb, mock := newMockDB(t)
	appctx, store := newUploadStub(t)
	appctx.settings["media.allowed_mime_prefixes"] = "image/"

	c, rec := newUploadContext(t, gdb, appctx, "notes.txt")
	require.NoError(t, uploadMediaAssets(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "file type not allowed")
	assert.Equal(t, 0, store.Len())
	require.NoError(t, mock.ExpectationsWereMet())
}
