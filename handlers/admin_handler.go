package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/captjay98/livestockai/database"
	"github.com/captjay98/livestockai/models"
)

// Platform administration: user accounts, bans, audit trail.
// Adapted account create/reset from the staff-account management flow.
type AdminHandler struct{}

func NewAdminHandler() *AdminHandler { return &AdminHandler{} }

// GET /admin/users?role=&banned=&q=&page=&size=
func (h *AdminHandler) ListUsers(c echo.Context) error {
	tx := database.DB.Model(&models.User{})

	if role := strings.TrimSpace(c.QueryParam("role")); role != "" {
		tx = tx.Where("role = ?", role)
	}
	if banned := strings.TrimSpace(c.QueryParam("banned")); banned == "true" {
		tx = tx.Where("banned = true")
	} else if banned == "false" {
		tx = tx.Where("banned = false")
	}
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(email) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}

	page, size := pageSize(c)
	var rows []models.User
	if err := tx.Order("id ASC").
		Offset((page - 1) * size).Limit(size).
		Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

type staffCreateReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // worker | extension | admin
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// POST /admin/users — provision worker/extension/admin accounts
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req staffCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	role := strings.TrimSpace(req.Role)
	if email == "" || req.Password == "" || role == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	switch role {
	case "worker", "extension", "admin", "owner":
	default:
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ROLE"})
	}
	if len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "PASSWORD_TOO_SHORT"})
	}

	var dup models.User
	if err := database.DB.Where("email = ?", email).First(&dup).Error; err == nil {
		return c.JSON(http.StatusConflict, map[string]any{"error": "EMAIL_EXISTS"})
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	rec := models.User{
		Email:    email,
		Phone:    strings.TrimSpace(req.Phone),
		Password: string(hash),
		Role:     role,
		Name:     strings.TrimSpace(req.Name),
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	audit(c, nil, "create", "user", rec.ID, role)
	return c.JSON(http.StatusCreated, map[string]any{"id": rec.ID})
}

func (h *AdminHandler) loadUser(c echo.Context) (*models.User, error) {
	var row models.User
	if err := database.DB.First(&row, "id = ?", c.Param("userID")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return nil, c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return &row, nil
}

type banReq struct {
	Reason string `json:"reason"`
}

// POST /admin/users/:userID/ban
func (h *AdminHandler) Ban(c echo.Context) error {
	row, err := h.loadUser(c)
	if row == nil {
		return err
	}

	uid, _ := currentUser(c)
	if row.ID == uid {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "CANNOT_BAN_SELF"})
	}

	var body banReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	reason := strings.TrimSpace(body.Reason)
	if reason == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "BAN_REASON_REQUIRED"})
	}

	if err := database.DB.Model(row).Updates(map[string]any{
		"banned":     true,
		"ban_reason": reason,
	}).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	audit(c, nil, "ban", "user", row.ID, reason)
	return c.JSON(http.StatusOK, row)
}

// POST /admin/users/:userID/unban
func (h *AdminHandler) Unban(c echo.Context) error {
	row, err := h.loadUser(c)
	if row == nil {
		return err
	}

	if err := database.DB.Model(row).Updates(map[string]any{
		"banned":     false,
		"ban_reason": "",
	}).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	audit(c, nil, "unban", "user", row.ID, "")
	return c.JSON(http.StatusOK, row)
}

type resetPasswordReq struct {
	Password string `json:"password"`
}

// POST /admin/users/:userID/reset — admin sets a fresh password
func (h *AdminHandler) ResetPassword(c echo.Context) error {
	row, err := h.loadUser(c)
	if row == nil {
		return err
	}

	var body resetPasswordReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if len(body.Password) < 8 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "PASSWORD_TOO_SHORT"})
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err := database.DB.Model(row).Update("password", string(hash)).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	audit(c, nil, "reset_password", "user", row.ID, "")
	return c.JSON(http.StatusOK, map[string]any{"reset": true})
}

// GET /admin/audit?userId=&farmId=&entity=&action=&page=&size=
func (h *AdminHandler) AuditLog(c echo.Context) error {
	tx := database.DB.Model(&models.AuditLog{})

	if userID := strings.TrimSpace(c.QueryParam("userId")); userID != "" {
		tx = tx.Where("user_id = ?", userID)
	}
	if farmID := strings.TrimSpace(c.QueryParam("farmId")); farmID != "" {
		tx = tx.Where("farm_id = ?", farmID)
	}
	if entity := strings.TrimSpace(c.QueryParam("entity")); entity != "" {
		tx = tx.Where("entity = ?", entity)
	}
	if action := strings.TrimSpace(c.QueryParam("action")); action != "" {
		tx = tx.Where("action = ?", action)
	}

	page, size := pageSize(c)
	var rows []models.AuditLog
	if err := tx.Order("created_at DESC, id DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}
