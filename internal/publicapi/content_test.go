package publicapi

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hero blocks expose their metadata decoded into the typed counter shape;
// other sections pass metadata through untouched.
func TestGetContentSectionHeroStats(t *testing.T) {
	gdb, mock := newMockDB(t)
	appctx := newStub()

	rows := sqlmock.NewRows([]string{"id", "section", "block_key", "title_en", "value", "metadata", "sort"}).
		AddRow(1, "hero", "stat-farmers", "Farmers supported", "500", `{"target":500,"suffix":"+","icon":"leaf"}`, 1)
	mock.ExpectQuery(`SELECT \* FROM "content_blocks" WHERE section = \$1`).
		WithArgs("hero").
		WillReturnRows(rows)

	c, rec := newTestContext(t, http.MethodGet, "/public/v1/content/hero", "", gdb, appctx)
	c.SetParamNames("section")
	c.SetParamValues("hero")

	require.NoError(t, getContentSection(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"target":500`)
	assert.Contains(t, rec.Body.String(), `"suffix":"+"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

// A second read of the same section is served from the cache.
func TestGetContentSectionCached(t *testing.T) {
	gdb, mock := newMockDB(t)
	appctx := newStub()

	rows := sqlmock.NewRows([]string{"id", "section", "block_key", "title_en", "sort"}).
		AddRow(2, "certifications", "gots", "GOTS certified", 1)
	mock.ExpectQuery(`SELECT \* FROM "content_blocks" WHERE section = \$1`).
		WithArgs("certifications").
		WillReturnRows(rows)

	for i := 0; i < 2; i++ {
		c, rec := newTestContext(t, http.MethodGet, "/public/v1/content/certifications", "", gdb, appctx)
		c.SetParamNames("section")
		c.SetParamValues("certifications")
		require.NoError(t, getContentSection(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "GOTS certified")
	}
	require.NoError(t, mock.ExpectationsWereMet())
}
