package adminapi

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jutehus/jutehus/internal/domain"
	"github.com/jutehus/jutehus/internal/storage"
	"github.com/jutehus/jutehus/internal/webserver"
	"github.com/jutehus/jutehus/pkg/common"
	"github.com/jutehus/jutehus/pkg/metrics"
)

type mediaUpdatePayload struct {
	Folder  string   `json:"folder" validate:"omitempty,max=64"`
	Tags    []string `json:"tags" validate:"omitempty,dive,max=64"`
	AltEn   string   `json:"alt_en" validate:"omitempty,max=500"`
	AltDa   string   `json:"alt_da" validate:"omitempty,max=500"`
	Caption string   `json:"caption" validate:"omitempty,max=1000"`
}

// uploadResult is the per-file outcome of a batch upload. A batch is not
// transactional: files that made it stay, files that failed report why.
type uploadResult struct {
	Name  string             `json:"name"`
	Ok    bool               `json:"ok"`
	Error string             `json:"error,omitempty"`
	Asset *domain.MediaAsset `json:"asset,omitempty"`
}

func registerMediaRoutes() {
	webserver.ApiGET("/media/assets", listMediaAssets)
	webserver.ApiPOST("/media/upload", uploadMediaAssets)
	webserver.ApiPUT("/media/assets/:id", updateMediaAsset)
	webserver.ApiDELETE("/media/assets/:id", deleteMediaAsset)
}

func listMediaAssets(c echo.Context) error {
	page, pageSize := parsePagination(c)

	allowed := map[string]string{
		"id":         "id",
		"path":       "path",
		"size":       "size",
		"created_at": "created_at",
	}
	orderBy := parseSort(c, allowed, "id")

	db := GetDB(c).Model(&domain.MediaAsset{}).Where("pending_delete = ?", false)
	if folder := strings.TrimSpace(c.QueryParam("folder")); folder != "" {
		db = db.Where("folder = ?", folder)
	}
	if tag := strings.ToLower(strings.TrimSpace(c.QueryParam("tag"))); tag != "" {
		db = db.Where("tags::text ILIKE ?", "%\""+tag+"\"%")
	}
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		db = db.Where("path ILIKE ? OR alt_en ILIKE ? OR caption ILIKE ?", "%"+q+"%", "%"+q+"%", "%"+q+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query media", err.Error())
	}
	var rows []domain.MediaAsset
	if err := db.Order(orderBy).Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query media", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func mimeAllowed(mime string, prefixes string) bool {
	for _, p := range strings.Split(prefixes, ",") {
		p = strings.TrimSpace(p)
		if p != "" && strings.HasPrefix(mime, p) {
			return true
		}
	}
	return false
}

// uploadMediaAssets handles a multipart batch through the shared worker pool.
// Each file is independent: a failed file never rolls back its siblings, and
// an object uploaded for a row that could not be inserted is removed again.
func uploadMediaAssets(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Expected multipart form upload", err.Error())
	}
	files := form.File["files"]
	if len(files) == 0 {
		return fail(c, http.StatusBadRequest, "NO_FILES", "No files in upload", nil)
	}

	appctx := GetAppContext(c)
	folder := strings.TrimSpace(c.FormValue("folder"))
	maxBytes := appctx.GetSettingsInt64Value("media", "max_upload_mb") * 1024 * 1024
	allowedPrefixes := appctx.GetSettingsStringValue("media", "allowed_mime_prefixes")
	store := appctx.ObjectStore()
	db := GetDB(c)
	ctx := c.Request().Context()

	results := make([]uploadResult, len(files))
	var wg sync.WaitGroup
	for i, fh := range files {
		i, fh := i, fh
		wg.Add(1)
		task := func() {
			defer wg.Done()
			results[i] = uploadResult{Name: fh.Filename}

			if maxBytes > 0 && fh.Size > maxBytes {
				results[i].Error = "file too large"
				metrics.Inc(metrics.MetricMediaUploadErrs)
				return
			}
			mime := fh.Header.Get("Content-Type")
			if allowedPrefixes != "" && !mimeAllowed(mime, allowedPrefixes) {
				results[i].Error = "file type not allowed"
				metrics.Inc(metrics.MetricMediaUploadErrs)
				return
			}

			src, err := fh.Open()
			if err != nil {
				results[i].Error = err.Error()
				metrics.Inc(metrics.MetricMediaUploadErrs)
				return
			}
			data, err := io.ReadAll(src)
			src.Close()
			if err != nil {
				results[i].Error = err.Error()
				metrics.Inc(metrics.MetricMediaUploadErrs)
				return
			}

			var width, height int
			if cfg, _, derr := image.DecodeConfig(bytes.NewReader(data)); derr == nil {
				width, height = cfg.Width, cfg.Height
			}

			name := storage.UploadName(fh.Filename)
			url, err := store.Upload(ctx, name, bytes.NewReader(data))
			if err != nil {
				results[i].Error = err.Error()
				metrics.Inc(metrics.MetricMediaUploadErrs)
				return
			}

			now := time.Now()
			asset := domain.MediaAsset{
				ID:        common.NextID(),
				Path:      name,
				URL:       url,
				Mime:      mime,
				Size:      fh.Size,
				Width:     width,
				Height:    height,
				Folder:    folder,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := db.Create(&asset).Error; err != nil {
				// Compensate: the object is already in the bucket but has no
				// row, remove it so nothing is orphaned.
				if rerr := store.Remove(ctx, name); rerr != nil {
					zap.L().Error("upload compensation failed, sweep will not find this object",
						zap.String("path", name), zap.Error(rerr))
				}
				results[i].Error = err.Error()
				metrics.Inc(metrics.MetricMediaUploadErrs)
				return
			}

			results[i].Ok = true
			results[i].Asset = &asset
			metrics.Inc(metrics.MetricMediaUploads)
		}
		if perr := appctx.UploadPool().Submit(task); perr != nil {
			// Pool saturated, fall back to inline execution.
			task()
		}
	}
	wg.Wait()

	succeeded := 0
	for _, r := range results {
		if r.Ok {
			succeeded++
		}
	}
	if succeeded > 0 {
		addOpLog(c, "media:upload", strings.TrimSpace(folder))
		appctx.PublishInvalidate("media")
	}
	return ok(c, map[string]interface{}{
		"results":   results,
		"succeeded": succeeded,
		"failed":    len(results) - succeeded,
	})
}

func updateMediaAsset(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid asset ID", nil)
	}

	db := GetDB(c)
	var asset domain.MediaAsset
	if err := db.Where("id = ?", id).First(&asset).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Asset not found", nil)
	}

	var payload mediaUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse asset", err.Error())
	}
	if err := validate.Struct(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Validation failed", err.Error())
	}

	if payload.Folder != "" {
		asset.Folder = payload.Folder
	}
	asset.MergeTags(payload.Tags)
	asset.AltEn = payload.AltEn
	asset.AltDa = payload.AltDa
	asset.Caption = payload.Caption
	asset.UpdatedAt = time.Now()

	if err := db.Save(&asset).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update asset", err.Error())
	}

	GetAppContext(c).PublishInvalidate("media")
	return ok(c, asset)
}

// deleteMediaAsset flags the row, removes the object, then drops the row.
// If the bucket removal fails the row stays flagged and the daily sweep
// retries it.
func deleteMediaAsset(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid asset ID", nil)
	}

	db := GetDB(c)
	var asset domain.MediaAsset
	if err := db.Where("id = ?", id).First(&asset).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Asset not found", nil)
	}

	if err := db.Model(&domain.MediaAsset{}).Where("id = ?", id).
		Update("pending_delete", true).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to flag asset", err.Error())
	}

	appctx := GetAppContext(c)
	if err := appctx.ObjectStore().Remove(c.Request().Context(), asset.Path); err != nil {
		zap.L().Warn("media removal deferred to sweep", zap.String("path", asset.Path), zap.Error(err))
		addOpLog(c, "media:delete", asset.Path)
		appctx.PublishInvalidate("media")
		return ok(c, map[string]interface{}{"id": id, "deferred": true})
	}

	if err := db.Where("id = ?", id).Delete(&domain.MediaAsset{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete asset", err.Error())
	}

	addOpLog(c, "media:delete", asset.Path)
	appctx.PublishInvalidate("media")
	return ok(c, map[string]interface{}{"id": id, "deferred": false})
}
