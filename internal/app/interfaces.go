package app

import (
	"github.com/asaskevich/EventBus"
	"github.com/panjf2000/ants/v2"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/jutehus/jutehus/config"
	"github.com/jutehus/jutehus/internal/querycache"
	"github.com/jutehus/jutehus/internal/storage"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SettingsProvider provides system settings access
type SettingsProvider interface {
	GetSettingsStringValue(category, key string) string
	GetSettingsInt64Value(category, key string) int64
	GetSettingsBoolValue(category, key string) bool
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// BusProvider provides the in-process event bus
type BusProvider interface {
	Bus() EventBus.Bus
	// PublishInvalidate tells the query cache that rows of entity changed.
	PublishInvalidate(entity string)
}

// CacheProvider provides the storefront query cache
type CacheProvider interface {
	Cache() *querycache.Cache
}

// ObjectStoreProvider provides the media bucket
type ObjectStoreProvider interface {
	ObjectStore() storage.ObjectStore
}

// UploadPoolProvider provides the shared upload worker pool
type UploadPoolProvider interface {
	UploadPool() *ants.Pool
}

// Mailer sends best-effort operational notifications
type Mailer interface {
	SendNotifyMail(subject, body string) error
}

// AppContext combines all provider interfaces for full application context.
// Handlers should depend on the narrowest provider that serves them.
type AppContext interface {
	DBProvider
	ConfigProvider
	SettingsProvider
	SchedulerProvider
	BusProvider
	CacheProvider
	ObjectStoreProvider
	UploadPoolProvider
	Mailer

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
	// RunMediaSweepNow reconciles pending-delete media rows immediately.
	RunMediaSweepNow() error
}
