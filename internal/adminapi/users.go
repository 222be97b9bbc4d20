package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/random"
	"golang.org/x/crypto/bcrypt"

	"github.com/jutehus/jutehus/internal/domain"
	"github.com/jutehus/jutehus/internal/webserver"
	"github.com/jutehus/jutehus/pkg/common"
)

type userPayload struct {
	Realname string `json:"realname" validate:"omitempty,max=200"`
	Email    string `json:"email" validate:"omitempty,email"`
	Username string `json:"username" validate:"required,min=2,max=64"`
	Password string `json:"password" validate:"omitempty,min=8,max=128"`
	Level    string `json:"level" validate:"required,oneof=admin editor"`
	Status   string `json:"status" validate:"omitempty,oneof=enabled disabled"`
	Remark   string `json:"remark" validate:"omitempty,max=1000"`
}

func registerUserRoutes() {
	webserver.ApiGET("/system/users", listUsers)
	webserver.ApiPOST("/system/users", createUser)
	webserver.ApiPUT("/system/users/:id", updateUser)
	webserver.ApiPOST("/system/users/:id/reset-password", resetUserPassword)
	webserver.ApiDELETE("/system/users/:id", deleteUser)
	webserver.ApiGET("/system/oplogs", listOpLogs)
}

func listUsers(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return err
	}
	var rows []domain.SysUser
	if err := GetDB(c).Order("id").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query users", err.Error())
	}
	return ok(c, rows)
}

func createUser(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return err
	}
	var payload userPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse user", err.Error())
	}
	if err := validate.Struct(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Validation failed", err.Error())
	}
	if payload.Password == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Password is required for new users", nil)
	}

	db := GetDB(c)
	username := strings.TrimSpace(payload.Username)
	var count int64
	if err := db.Model(&domain.SysUser{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to check username", err.Error())
	}
	if count > 0 {
		return fail(c, http.StatusConflict, "USERNAME_EXISTS", "Username is already taken", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "HASH_ERROR", "Failed to hash password", nil)
	}

	status := payload.Status
	if status == "" {
		status = common.ENABLED
	}
	now := time.Now()
	user := domain.SysUser{
		ID:        common.NextID(),
		Realname:  payload.Realname,
		Email:     payload.Email,
		Username:  username,
		Password:  string(hashed),
		Level:     payload.Level,
		Status:    status,
		Remark:    payload.Remark,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(&user).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create user", err.Error())
	}

	addOpLog(c, "user:create", user.Username)
	return ok(c, user)
}

func updateUser(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}

	db := GetDB(c)
	var user domain.SysUser
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	}

	var payload userPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse user", err.Error())
	}
	if err := validate.Struct(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Validation failed", err.Error())
	}

	user.Realname = payload.Realname
	user.Email = payload.Email
	user.Level = payload.Level
	if payload.Status != "" {
		user.Status = payload.Status
	}
	user.Remark = payload.Remark
	if payload.Password != "" {
		hashed, herr := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
		if herr != nil {
			return fail(c, http.StatusInternalServerError, "HASH_ERROR", "Failed to hash password", nil)
		}
		user.Password = string(hashed)
	}
	user.UpdatedAt = time.Now()

	if err := db.Save(&user).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update user", err.Error())
	}

	addOpLog(c, "user:update", user.Username)
	return ok(c, user)
}

// resetUserPassword issues a random temporary password and returns it once.
func resetUserPassword(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}

	db := GetDB(c)
	var user domain.SysUser
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	}

	temp := random.String(12)
	hashed, err := bcrypt.GenerateFromPassword([]byte(temp), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "HASH_ERROR", "Failed to hash password", nil)
	}
	if err := db.Model(&domain.SysUser{}).Where("id = ?", id).
		Updates(map[string]interface{}{"password": string(hashed), "updated_at": time.Now()}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to reset password", err.Error())
	}

	addOpLog(c, "user:reset-password", user.Username)
	return ok(c, map[string]interface{}{"username": user.Username, "password": temp})
}

func deleteUser(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}

	db := GetDB(c)
	var user domain.SysUser
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	}
	if user.Username == currentUsername(c) {
		return fail(c, http.StatusBadRequest, "SELF_DELETE", "You cannot delete your own account", nil)
	}

	if err := db.Where("id = ?", id).Delete(&domain.SysUser{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete user", err.Error())
	}

	addOpLog(c, "user:delete", user.Username)
	return ok(c, map[string]interface{}{"id": id})
}

func listOpLogs(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return err
	}
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.SysOpLog{})
	if name := strings.TrimSpace(c.QueryParam("opr_name")); name != "" {
		db = db.Where("opr_name = ?", name)
	}
	if from, to := parseTimeRange(c); from != nil || to != nil {
		if from != nil {
			db = db.Where("opt_time >= ?", *from)
		}
		if to != nil {
			db = db.Where("opt_time <= ?", *to)
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query logs", err.Error())
	}
	var rows []domain.SysOpLog
	if err := db.Order("opt_time DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query logs", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}
