package adminapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"

	"github.com/jutehus/jutehus/internal/domain"
	"github.com/jutehus/jutehus/internal/webserver"
)

func registerExportRoutes() {
	webserver.ApiGET("/export/subscribers.csv", exportSubscribersCsv)
	webserver.ApiGET("/export/quotations.csv", exportQuotationsCsv)
	webserver.ApiGET("/export/products.xlsx", exportProductsXlsx)
}

func csvAttachment(c echo.Context, filename string) {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", filename))
}

func exportSubscribersCsv(c echo.Context) error {
	var rows []domain.NewsletterSubscriber
	if err := GetDB(c).Order("created_at").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query subscribers", err.Error())
	}

	csvAttachment(c, "subscribers.csv")
	c.Response().WriteHeader(http.StatusOK)
	if err := gocsv.Marshal(rows, c.Response()); err != nil {
		return err
	}
	addOpLog(c, "export:subscribers", fmt.Sprintf("%d rows", len(rows)))
	return nil
}

func exportQuotationsCsv(c echo.Context) error {
	db := GetDB(c).Model(&domain.QuotationRequest{})
	if s := strings.TrimSpace(c.QueryParam("status")); s != "" {
		db = db.Where("status = ?", s)
	}
	var rows []domain.QuotationRequest
	if err := db.Order("created_at").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query quotations", err.Error())
	}

	csvAttachment(c, "quotations.csv")
	c.Response().WriteHeader(http.StatusOK)
	if err := gocsv.Marshal(rows, c.Response()); err != nil {
		return err
	}
	addOpLog(c, "export:quotations", fmt.Sprintf("%d rows", len(rows)))
	return nil
}

// exportProductsXlsx writes the full catalog with completion scores, one row
// per product.
func exportProductsXlsx(c echo.Context) error {
	var rows []domain.Product
	if err := GetDB(c).Order("id").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	xlsx := excelize.NewFile()
	headers := []string{"ID", "Slug", "Name (EN)", "Name (DA)", "Category", "Price",
		"Featured", "Completion %", "Updated"}
	for i, h := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		xlsx.SetCellValue("Sheet1", cell, h)
	}
	for i := range rows {
		rows[i].NormalizeDefaults()
		rownum := i + 2
		xlsx.SetCellValue("Sheet1", fmt.Sprintf("A%d", rownum), fmt.Sprintf("%d", rows[i].ID))
		xlsx.SetCellValue("Sheet1", fmt.Sprintf("B%d", rownum), rows[i].Slug)
		xlsx.SetCellValue("Sheet1", fmt.Sprintf("C%d", rownum), rows[i].NameEn)
		xlsx.SetCellValue("Sheet1", fmt.Sprintf("D%d", rownum), rows[i].NameDa)
		xlsx.SetCellValue("Sheet1", fmt.Sprintf("E%d", rownum), rows[i].CategoryID)
		xlsx.SetCellValue("Sheet1", fmt.Sprintf("F%d", rownum), rows[i].Price)
		xlsx.SetCellValue("Sheet1", fmt.Sprintf("G%d", rownum), rows[i].Featured)
		xlsx.SetCellValue("Sheet1", fmt.Sprintf("H%d", rownum), rows[i].CompletionScore())
		xlsx.SetCellValue("Sheet1", fmt.Sprintf("I%d", rownum), rows[i].UpdatedAt.Format(time.RFC3339))
	}

	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.xlsx"`)
	c.Response().WriteHeader(http.StatusOK)
	if err := xlsx.Write(c.Response()); err != nil {
		return err
	}
	addOpLog(c, "export:products", fmt.Sprintf("%d rows", len(rows)))
	return nil
}
