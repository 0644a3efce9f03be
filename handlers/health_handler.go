package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/captjay98/livestockai/database"
)

// Health serves /health; reports db reachability alongside the process.
func Health(c echo.Context) error {
	dbStatus := "ok"
	if sqlDB, err := database.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "down"
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"db":     dbStatus,
	})
}
