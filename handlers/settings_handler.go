package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/captjay98/livestockai/database"
	"github.com/captjay98/livestockai/format"
	"github.com/captjay98/livestockai/models"
)

type SettingsHandler struct{}

func NewSettingsHandler() *SettingsHandler { return &SettingsHandler{} }

var validCurrencies = map[string]struct{}{
	"NGN": {}, "KES": {}, "GHS": {}, "ZAR": {}, "USD": {}, "EUR": {}, "GBP": {},
}

func loadOrCreateSettings(uid uint) (*models.UserSettings, error) {
	var s models.UserSettings
	if err := database.DB.Where("user_id = ?", uid).First(&s).Error; err == nil {
		return &s, nil
	}
	s = models.UserSettings{
		UserID:     uid,
		Currency:   "NGN",
		DateFormat: "DMY",
		UnitSystem: "metric",
		Language:   "en",
	}
	if err := database.DB.Create(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// GET /me/settings — creates the defaults row on first read. The sample
// block shows the client what each preset renders like.
func (h *SettingsHandler) Get(c echo.Context) error {
	uid, _ := currentUser(c)
	s, err := loadOrCreateSettings(uid)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"settings": s,
		"sample": map[string]any{
			"currency": format.Currency(12500.5, s.Currency),
			"weight":   format.Weight(25, s.UnitSystem),
		},
	})
}

type settingsReq struct {
	Currency   string `json:"currency"`
	DateFormat string `json:"date_format"`
	UnitSystem string `json:"unit_system"`
	Language   string `json:"language"`
}

// PUT /me/settings
func (h *SettingsHandler) Update(c echo.Context) error {
	uid, _ := currentUser(c)
	s, err := loadOrCreateSettings(uid)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	var req settingsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	updates := map[string]any{}
	if v := strings.ToUpper(strings.TrimSpace(req.Currency)); v != "" {
		if _, ok := validCurrencies[v]; !ok {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_CURRENCY"})
		}
		updates["currency"] = v
	}
	if v := strings.ToUpper(strings.TrimSpace(req.DateFormat)); v != "" {
		if v != "DMY" && v != "MDY" && v != "YMD" {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE_FORMAT"})
		}
		updates["date_format"] = v
	}
	if v := strings.ToLower(strings.TrimSpace(req.UnitSystem)); v != "" {
		if v != "metric" && v != "imperial" {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_UNIT_SYSTEM"})
		}
		updates["unit_system"] = v
	}
	if v := strings.ToLower(strings.TrimSpace(req.Language)); v != "" {
		updates["language"] = v
	}
	if len(updates) == 0 {
		return c.JSON(http.StatusOK, s)
	}

	if err := database.DB.Model(s).Updates(updates).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, s)
}

type changePasswordReq struct {
	Current string `json:"current"`
	Next    string `json:"next"`
}

// PUT /me/password
func (h *SettingsHandler) ChangePassword(c echo.Context) error {
	uid, _ := currentUser(c)

	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	// passwords pass through untrimmed, matching what login compares
	if req.Current == "" || req.Next == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	if len(req.Next) < 8 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "PASSWORD_TOO_SHORT"})
	}

	var u models.User
	if err := database.DB.First(&u, uid).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "USER_NOT_FOUND"})
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Current)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(req.Next), bcrypt.DefaultCost)
	if err := database.DB.Model(&u).Update("password", string(hash)).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"changed": true})
}
