package adminapi

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Deleting a category that products still reference is rejected and the row
// survives.
func TestDeleteCategoryInUse(t *testing.T) {
	gdb, mock := newMockDB(t)
	appctx := &stubApp{}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "products" WHERE category_id = \$1`).
		WithArgs("bags").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	c, rec := newTestContext(t, http.MethodDelete, "/api/v1/catalog/categories/bags", "", gdb, appctx)
	c.SetParamNames("id")
	c.SetParamValues("bags")

	require.NoError(t, deleteCategory(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "CATEGORY_IN_USE")
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Empty(t, appctx.invalidated)
}

func TestDeleteCategoryUnused(t *testing.T) {
	gdb, mock := newMockDB(t)
	appctx := &stubApp{}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "products" WHERE category_id = \$1`).
		WithArgs("empty").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`DELETE FROM "product_categories"`).
		WithArgs("empty").
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := newTestContext(t, http.MethodDelete, "/api/v1/catalog/categories/empty", "", gdb, appctx)
	c.SetParamNames("id")
	c.SetParamValues("empty")

	require.NoError(t, deleteCategory(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, []string{"categories"}, appctx.invalidated)
}
