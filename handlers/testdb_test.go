package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/captjay98/livestockai/database"
	"github.com/captjay98/livestockai/models"
)

// setupTestDB swaps the shared connection for an in-memory sqlite database
// and restores it when the test finishes.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Farm{},
		&models.WorkerProfile{},
		&models.Geofence{},
		&models.AttendanceRecord{},
		&models.TaskAssignment{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
	return db
}

// newJSONContext builds an echo context carrying a JSON body.
func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// farmContext stashes the farm and caller the way the middleware chain does.
func farmContext(c echo.Context, farm *models.Farm, userID uint, role string) {
	c.Set("farm", farm)
	c.Set("user_id", userID)
	c.Set("role", role)
}
