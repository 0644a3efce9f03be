package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/captjay98/livestockai/database"
	"github.com/captjay98/livestockai/models"
)

// string -> int with a fallback for unparseable input
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// page/size from query params: 1-based, size capped at 100.
func pageSize(c echo.Context) (page, size int) {
	page = atoiOr(c.QueryParam("page"), 1)
	size = atoiOr(c.QueryParam("size"), 20)
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	} else if size > 100 {
		size = 100
	}
	return
}

func currentUser(c echo.Context) (uid uint, role string) {
	role, _ = c.Get("role").(string)
	switch v := c.Get("user_id").(type) {
	case uint:
		uid = v
	case int:
		uid = uint(v)
	}
	return
}

func farmFromContext(c echo.Context) *models.Farm {
	f, _ := c.Get("farm").(*models.Farm)
	return f
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// audit writes one log row; failures only lose the trail, never the request.
func audit(c echo.Context, farmID *uint, action, entity string, entityID uint, detail string) {
	uid, _ := currentUser(c)
	entry := models.AuditLog{
		EntryID:  uuid.NewString(),
		UserID:   uid,
		FarmID:   farmID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Detail:   detail,
	}
	_ = database.DB.Create(&entry).Error
}
