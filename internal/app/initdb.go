package app

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jutehus/jutehus/internal/domain"
	"github.com/jutehus/jutehus/pkg/common"
)

func (a *Application) checkSuper() {
	const superUsername = "admin"
	const defaultPassword = "jutehus"

	hashed, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		zap.L().Error("failed to hash default password", zap.Error(err))
		return
	}

	var operator domain.SysUser
	err = a.gormDB.Where("username = ?", superUsername).First(&operator).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.SysUser{
			ID:        common.NextID(),
			Realname:  "administrator",
			Email:     common.NA,
			Username:  superUsername,
			Password:  string(hashed),
			Level:     domain.RoleAdmin,
			Status:    common.ENABLED,
			Remark:    "super",
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default super admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default super admin account", zap.String("username", superUsername))
		}
		return
	case err != nil:
		zap.L().Error("failed to query super admin", zap.Error(err))
		return
	}

	resetPassword := strings.TrimSpace(operator.Password) == ""
	resetLevel := !strings.EqualFold(operator.Level, domain.RoleAdmin)
	resetStatus := !strings.EqualFold(operator.Status, common.ENABLED)

	if !resetPassword && !resetLevel && !resetStatus {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetPassword {
		updates["password"] = string(hashed)
	}
	if resetLevel {
		updates["level"] = domain.RoleAdmin
	}
	if resetStatus {
		updates["status"] = common.ENABLED
	}

	if err := a.gormDB.Model(&domain.SysUser{}).Where("id = ?", operator.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair super admin account", zap.Error(err))
		return
	}

	zap.L().Warn("repaired default super admin account",
		zap.String("username", superUsername),
		zap.Bool("passwordReset", resetPassword),
		zap.Bool("levelReset", resetLevel),
		zap.Bool("statusEnabled", resetStatus))
}

type configSchema struct {
	Key         string
	Default     string
	Description string
}

var configSchemas = []configSchema{
	{"site.default_locale", "en", "Fallback storefront locale"},
	{"site.locales", "en,da", "Enabled storefront locales"},
	{"media.max_upload_mb", "20", "Per-file upload ceiling in megabytes"},
	{"media.allowed_mime_prefixes", "image/,application/pdf", "Accepted upload mime prefixes"},
	{"notify.webhook_url", "", "Webhook receiving new feedback tickets"},
	{"notify.quotation_mail", "true", "Send mail on new quotation requests"},
	{"oplog.retention_days", "365", "Days to keep admin operation logs"},
}

func (a *Application) checkSettings() {
	for sortid, schema := range configSchemas {
		parts := strings.SplitN(schema.Key, ".", 2)
		if len(parts) != 2 {
			zap.L().Warn("invalid config key format", zap.String("key", schema.Key))
			continue
		}

		category := parts[0]
		name := parts[1]

		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", category, name).
			Count(&count)

		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				ID:     common.NextID(),
				Sort:   sortid,
				Type:   category,
				Name:   name,
				Value:  schema.Default,
				Remark: schema.Description,
			})
			zap.L().Info("initialized config",
				zap.String("key", schema.Key),
				zap.String("default", schema.Default))
		}
	}
}

// checkSiteSettings seeds the singleton branding row.
func (a *Application) checkSiteSettings() {
	var row domain.SiteSettings
	err := a.gormDB.Where("id = ?", domain.SiteSettingsID).First(&row).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return
	}
	a.gormDB.Create(&domain.SiteSettings{
		ID:           domain.SiteSettingsID,
		SiteNameEn:   "Jutehus",
		SiteNameDa:   "Jutehus",
		TaglineEn:    "Sustainable jute products",
		TaglineDa:    "Bæredygtige juteprodukter",
		ContactEmail: "hello@jutehus.dk",
	})
	zap.L().Info("initialized site settings singleton")
}

func (a *Application) checkDefaultCategories() {
	var count int64
	a.gormDB.Model(&domain.ProductCategory{}).Count(&count)
	if count > 0 {
		return
	}
	defaults := []domain.ProductCategory{
		{ID: "bags", NameEn: "Bags & Totes", NameDa: "Tasker og net", Sort: 1},
		{ID: "home-textiles", NameEn: "Home Textiles", NameDa: "Boligtekstiler", Sort: 2},
		{ID: "packaging", NameEn: "Packaging", NameDa: "Emballage", Sort: 3},
	}
	for i := range defaults {
		a.gormDB.Create(&defaults[i])
	}
	zap.L().Info("initialized default product categories")
}

func (a *Application) checkDefaultContentBlocks() {
	defaults := []domain.ContentBlock{
		{
			Section: "hero", BlockKey: "headline",
			TitleEn: "From fiber to future", TitleDa: "Fra fiber til fremtid",
			Sort: 1,
		},
		{
			Section: "hero", BlockKey: "stat_products",
			TitleEn: "Products", TitleDa: "Produkter", Value: "120",
			Metadata: map[string]interface{}{"icon": "leaf", "suffix": "+"},
			Sort:     2,
		},
		{
			Section: "hero", BlockKey: "stat_co2",
			TitleEn: "CO2 saved", TitleDa: "CO2 sparet", Value: "340",
			Metadata: map[string]interface{}{"icon": "cloud", "suffix": "t"},
			Sort:     3,
		},
	}
	for i := range defaults {
		block := defaults[i]
		var count int64
		a.gormDB.Model(&domain.ContentBlock{}).
			Where("section = ? and block_key = ?", block.Section, block.BlockKey).
			Count(&count)
		if count == 0 {
			block.ID = common.NextID()
			a.gormDB.Create(&block)
		}
	}
}
