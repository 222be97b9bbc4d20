// Package metrics records service counters and gauges in an embedded
// time-series store under the workdir.
package metrics

import (
	"path/filepath"
	"time"

	"github.com/nakabonne/tstorage"
)

const (
	MetricHttpRequests    = "http_requests"
	MetricMediaUploads    = "media_uploads"
	MetricMediaUploadErrs = "media_upload_errors"
	MetricSystemCpuUse    = "system_cpu_use"
	MetricSystemMemUse    = "system_mem_use"
)

var storage tstorage.Storage

func InitMetrics(workdir string) error {
	var err error
	storage, err = tstorage.NewStorage(
		tstorage.WithDataPath(filepath.Join(workdir, "metrics")),
		tstorage.WithTimestampPrecision(tstorage.Seconds),
		tstorage.WithRetention(time.Hour*24*30),
	)
	return err
}

// Inc records a single occurrence of metric at the current time.
func Inc(metric string) {
	Gauge(metric, 1)
}

// Gauge records value for metric at the current time.
func Gauge(metric string, value float64) {
	if storage == nil {
		return
	}
	_ = storage.InsertRows([]tstorage.Row{
		{
			Metric:    metric,
			DataPoint: tstorage.DataPoint{Timestamp: time.Now().Unix(), Value: value},
		},
	})
}

// Select returns the datapoints of metric within [start, end].
func Select(metric string, start, end int64) ([]*tstorage.DataPoint, error) {
	if storage == nil {
		return nil, nil
	}
	return storage.Select(metric, nil, start, end)
}

func Close() error {
	if storage == nil {
		return nil
	}
	return storage.Close()
}
