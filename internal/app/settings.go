package app

import (
	"sync"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/jutehus/jutehus/internal/domain"
	"github.com/jutehus/jutehus/pkg/common"
)

// ConfigManager caches sys_config rows and serves typed reads. Values are
// reloaded lazily after the refresh interval so admin edits take effect
// without a restart.
type ConfigManager struct {
	app      *Application
	mu       sync.RWMutex
	values   map[string]string
	loadedAt time.Time
	refresh  time.Duration
}

func NewConfigManager(app *Application) *ConfigManager {
	return &ConfigManager{
		app:     app,
		values:  make(map[string]string),
		refresh: 30 * time.Second,
	}
}

func (m *ConfigManager) key(category, name string) string {
	return category + "." + name
}

func (m *ConfigManager) load() {
	var rows []domain.SysConfig
	if err := m.app.DB().Find(&rows).Error; err != nil {
		zap.S().Errorf("config manager load failed: %v", err)
		return
	}
	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[m.key(row.Type, row.Name)] = row.Value
	}
	m.mu.Lock()
	m.values = values
	m.loadedAt = time.Now()
	m.mu.Unlock()
}

func (m *ConfigManager) get(category, name string) string {
	m.mu.RLock()
	stale := time.Since(m.loadedAt) > m.refresh
	v, ok := m.values[m.key(category, name)]
	m.mu.RUnlock()
	if !ok || stale {
		m.load()
		m.mu.RLock()
		v = m.values[m.key(category, name)]
		m.mu.RUnlock()
	}
	return v
}

func (m *ConfigManager) GetString(category, name string) string {
	return m.get(category, name)
}

func (m *ConfigManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(m.get(category, name))
}

func (m *ConfigManager) GetBool(category, name string) bool {
	return cast.ToBool(m.get(category, name))
}

// Set upserts one sys_config row and refreshes the cache.
func (m *ConfigManager) Set(category, name, value string) error {
	var row domain.SysConfig
	err := m.app.DB().Where("type = ? and name = ?", category, name).First(&row).Error
	if err != nil {
		row = domain.SysConfig{
			ID:    common.NextID(),
			Type:  category,
			Name:  name,
			Value: value,
		}
		err = m.app.DB().Create(&row).Error
	} else {
		err = m.app.DB().Model(&domain.SysConfig{}).
			Where("id = ?", row.ID).
			Updates(map[string]interface{}{"value": value, "updated_at": time.Now()}).Error
	}
	if err != nil {
		return err
	}
	m.load()
	return nil
}
