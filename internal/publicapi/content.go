package publicapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/jutehus/jutehus/internal/domain"
	"github.com/jutehus/jutehus/internal/querycache"
)

// heroStat is the typed shape of a hero counter's metadata: the storefront
// animates from zero up to Target and renders Suffix after it.
type heroStat struct {
	Target int    `json:"target" mapstructure:"target"`
	Suffix string `json:"suffix" mapstructure:"suffix"`
	Icon   string `json:"icon" mapstructure:"icon"`
}

// contentBlockView is a block plus its decoded metadata where the section
// defines a known shape.
type contentBlockView struct {
	domain.ContentBlock
	HeroStat *heroStat `json:"hero_stat,omitempty"`
}

func getContentSection(c echo.Context) error {
	section := strings.TrimSpace(c.Param("section"))

	appctx := getAppContext(c)
	v, err := appctx.Cache().Fetch(querycache.Key("content", "section", section), func() (interface{}, error) {
		var rows []domain.ContentBlock
		if err := getDB(c).Where("section = ?", section).
			Order("sort, block_key").Find(&rows).Error; err != nil {
			return nil, err
		}
		views := make([]contentBlockView, 0, len(rows))
		for _, row := range rows {
			view := contentBlockView{ContentBlock: row}
			if section == "hero" && len(row.Metadata) > 0 {
				var stat heroStat
				if derr := mapstructure.Decode(row.Metadata, &stat); derr == nil {
					view.HeroStat = &stat
				} else {
					zap.L().Warn("hero stat metadata malformed",
						zap.String("block_key", row.BlockKey), zap.Error(derr))
				}
			}
			views = append(views, view)
		}
		return views, nil
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load content")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": v})
}
