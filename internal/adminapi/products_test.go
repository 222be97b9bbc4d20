package adminapi

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckProductPayloadAutoSlug(t *testing.T) {
	payload := productPayload{NameEn: " Jute Tote ", ImageURL: "https://cdn.example/x.jpg"}
	code, _ := checkProductPayload(&payload)
	assert.Empty(t, code)
	assert.Equal(t, "jute-tote", payload.Slug)

	payload = productPayload{NameEn: "Grøn Taske", ImageURL: "https://cdn.example/x.jpg"}
	code, _ = checkProductPayload(&payload)
	assert.Empty(t, code)
	assert.Equal(t, "gron-taske", payload.Slug)
}

func TestCheckProductPayloadRejectsBadSlug(t *testing.T) {
	payload := productPayload{NameEn: "Tote", Slug: "Bad Slug!", ImageURL: "https://cdn.example/x.jpg"}
	code, _ := checkProductPayload(&payload)
	assert.Equal(t, "INVALID_SLUG", code)
}

// A save without a hero image must fail locally, before any query runs.
func TestCreateProductMissingHeroImage(t *testing.T) {
	gdb, mock := newMockDB(t)
	appctx := &stubApp{}

	body := `{"name_en":"Jute Tote","category_id":"bags","price":10}`
	c, rec := newTestContext(t, http.MethodPost, "/api/v1/catalog/products", body, gdb, appctx)

	require.NoError(t, createProduct(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_HERO_IMAGE")
	assert.Contains(t, rec.Body.String(), "Please upload main image")
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Empty(t, appctx.invalidated)
}

func TestCreateProductDuplicateSlug(t *testing.T) {
	gdb, mock := newMockDB(t)
	appctx := &stubApp{}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "products"`).
		WithArgs("jute-tote").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	body := `{"name_en":"Jute Tote","category_id":"bags","price":10,"image_url":"https://cdn.example/x.jpg"}`
	c, rec := newTestContext(t, http.MethodPost, "/api/v1/catalog/products", body, gdb, appctx)

	require.NoError(t, createProduct(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "SLUG_EXISTS")
	require.NoError(t, mock.ExpectationsWereMet())
}

// A stale version token loses the write and gets a conflict back.
func TestUpdateProductVersionConflict(t *testing.T) {
	gdb, mock := newMockDB(t)
	appctx := &stubApp{}

	rows := sqlmock.NewRows([]string{"id", "slug", "name_en", "category_id", "price", "image_url", "version"}).
		AddRow(42, "jute-tote", "Jute Tote", "bags", 10.0, "https://cdn.example/x.jpg", 3)
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WithArgs(int64(42), 1).
		WillReturnRows(rows)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "product_categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(`UPDATE "products"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	body := `{"name_en":"Jute Tote","category_id":"bags","price":12,"image_url":"https://cdn.example/x.jpg","version":2}`
	c, rec := newTestContext(t, http.MethodPut, "/api/v1/catalog/products/42", body, gdb, appctx)
	c.SetParamNames("id")
	c.SetParamValues("42")

	require.NoError(t, updateProduct(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "VERSION_CONFLICT")
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Empty(t, appctx.invalidated)
}
