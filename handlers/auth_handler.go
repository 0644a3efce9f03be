package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/captjay98/livestockai/database"
	"github.com/captjay98/livestockai/models"
)

/* ====================== Config & Helpers ====================== */

type AuthHandler struct {
	JWTSecret string
}

// NewAuthHandler takes the signing secret from config so the token layer
// has one source of truth with the auth middleware.
func NewAuthHandler(secret string) *AuthHandler {
	return &AuthHandler{JWTSecret: secret}
}

func (h *AuthHandler) signJWT(sub uint, role, name string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"name": name,
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.JWTSecret))
}

/* ====================== DTOs ====================== */

type RegisterReq struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/* ====================== Handlers ====================== */

// POST /auth/register — farm owners self-register; workers and extension
// officers get accounts from an admin.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	// passwords are stored exactly as typed; trimming here would strand
	// anyone whose password carries leading or trailing whitespace
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	if len(req.Password) < 8 {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "PASSWORD_TOO_SHORT"})
	}

	var dup models.User
	if err := database.DB.Where("email = ?", email).First(&dup).Error; err == nil {
		return echo.NewHTTPError(http.StatusConflict, map[string]any{"error": "EMAIL_EXISTS", "code": "EMAIL_EXISTS"})
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	rec := models.User{
		Email:    email,
		Phone:    strings.TrimSpace(req.Phone),
		Password: string(hash),
		Role:     "owner",
		Name:     strings.TrimSpace(req.Name),
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]any{"id": rec.ID})
}

// GET /auth/check-email?email=...
func (h *AuthHandler) CheckEmail(c echo.Context) error {
	email := strings.TrimSpace(strings.ToLower(c.QueryParam("email")))
	if email == "" {
		return c.JSON(http.StatusOK, map[string]bool{"exists": false})
	}
	var u models.User
	err := database.DB.Where("email = ?", email).First(&u).Error
	return c.JSON(http.StatusOK, map[string]bool{"exists": err == nil})
}

// POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var u models.User
	if err := database.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}
	if u.Banned {
		return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "BANNED", "reason": u.BanReason})
	}

	now := time.Now()
	_ = database.DB.Model(&u).Update("last_login", &now).Error

	token, err := h.signJWT(u.ID, u.Role, u.Name, 7*24*time.Hour)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "TOKEN_GEN_FAILED"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"token": token,
		"user":  map[string]any{"id": u.ID, "role": u.Role, "email": u.Email, "name": u.Name},
	})
}
