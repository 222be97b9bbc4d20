package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"

	"github.com/jutehus/jutehus/internal/domain"
	"github.com/jutehus/jutehus/pkg/metrics"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@every 30s", func() {
		go a.SchedSystemMonitorTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		if err := a.RunMediaSweepNow(); err != nil {
			zap.L().Error("media sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		retention := a.GetSettingsInt64Value("oplog", "retention_days")
		if retention <= 0 {
			retention = 365
		}
		a.gormDB.
			Where("opt_time < ? ", time.Now().
				Add(-time.Hour*24*time.Duration(retention))).Delete(domain.SysOpLog{})
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}
}

// SchedSystemMonitorTask samples host cpu/mem into the metrics store.
func (a *Application) SchedSystemMonitorTask() {
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		metrics.Gauge(metrics.MetricSystemCpuUse, percents[0])
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		metrics.Gauge(metrics.MetricSystemMemUse, vm.UsedPercent)
	}
}

// RunMediaSweepNow finishes half-applied media deletions: every asset row
// flagged pending_delete gets its storage object removed (missing objects are
// fine) and the row dropped. This is the reconciliation path for deletions
// interrupted between the storage call and the row delete.
func (a *Application) RunMediaSweepNow() error {
	var assets []domain.MediaAsset
	if err := a.gormDB.Where("pending_delete = ?", true).Find(&assets).Error; err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	swept := 0
	for _, asset := range assets {
		if err := a.objectStore.Remove(ctx, asset.Path); err != nil {
			// object may already be gone from the first attempt
			zap.L().Debug("media sweep: storage remove",
				zap.String("path", asset.Path), zap.Error(err))
		}
		if err := a.gormDB.Delete(&domain.MediaAsset{}, asset.ID).Error; err != nil {
			zap.L().Error("media sweep: row delete failed",
				zap.Int64("id", asset.ID), zap.Error(err))
			continue
		}
		swept++
	}

	if swept > 0 {
		a.PublishInvalidate("media")
		zap.L().Info("media sweep completed", zap.Int("swept", swept))
	}
	return nil
}
