package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jutehus/jutehus/internal/domain"
	"github.com/jutehus/jutehus/internal/webserver"
	"github.com/jutehus/jutehus/pkg/common"
)

type loginPayload struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Password string `json:"password" validate:"required,min=1,max=128"`
}

func registerAuthRoutes() {
	webserver.RootPOST("/auth/login", login)
	webserver.ApiGET("/auth/me", currentUser)
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse credentials", nil)
	}
	if err := validate.Struct(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Username and password are required", nil)
	}

	var user domain.SysUser
	err := GetDB(c).Where("username = ?", strings.TrimSpace(payload.Username)).First(&user).Error
	if err != nil || user.Status != common.ENABLED {
		return fail(c, http.StatusUnauthorized, "INVALID_LOGIN", "Invalid username or password", nil)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)) != nil {
		return fail(c, http.StatusUnauthorized, "INVALID_LOGIN", "Invalid username or password", nil)
	}

	appctx := GetAppContext(c)
	expire := appctx.Config().Web.JwtExpire
	if expire <= 0 {
		expire = 120
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":      user.ID,
		"username": user.Username,
		"level":    user.Level,
		"exp":      time.Now().Add(time.Duration(expire) * time.Minute).Unix(),
	})
	signed, err := token.SignedString([]byte(appctx.Config().Web.Secret))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to sign token", nil)
	}

	GetDB(c).Model(&domain.SysUser{}).Where("id = ?", user.ID).
		Update("last_login", time.Now())
	zap.L().Info("admin login", zap.String("username", user.Username), zap.String("ip", c.RealIP()))

	return ok(c, map[string]interface{}{
		"token":    signed,
		"username": user.Username,
		"level":    user.Level,
	})
}

func currentUser(c echo.Context) error {
	var user domain.SysUser
	if err := GetDB(c).Where("username = ?", currentUsername(c)).First(&user).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	}
	return ok(c, user)
}
