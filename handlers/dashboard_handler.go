package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/captjay98/livestockai/database"
	"github.com/captjay98/livestockai/models"
)

type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler { return &DashboardHandler{} }

// GET /farms/:id/dashboard?date=YYYY-MM-DD
// Single payload for the farm dashboard page: who is in today, task
// workload, and the day's production totals.
func (h *DashboardHandler) Daily(c echo.Context) error {
	farm := farmFromContext(c)

	date := strings.TrimSpace(c.QueryParam("date"))
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if !validDate(date) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
	}

	var activeWorkers int64
	database.DB.Model(&models.WorkerProfile{}).
		Where("farm_id = ? AND status = ?", farm.ID, "active").
		Count(&activeWorkers)

	var presentToday int64
	database.DB.Model(&models.AttendanceRecord{}).
		Where("farm_id = ? AND date = ?", farm.ID, date).
		Distinct("worker_id").
		Count(&presentToday)

	var openCheckIns int64
	database.DB.Model(&models.AttendanceRecord{}).
		Where("farm_id = ? AND check_out_at IS NULL", farm.ID).
		Count(&openCheckIns)

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var taskCounts []statusCount
	database.DB.Model(&models.TaskAssignment{}).
		Select("status, COUNT(*) AS count").
		Where("farm_id = ?", farm.ID).
		Group("status").
		Scan(&taskCounts)

	var overdueTasks int64
	database.DB.Model(&models.TaskAssignment{}).
		Where("farm_id = ? AND due_date <> '' AND due_date < ? AND status IN ?",
			farm.ID, date, []string{"pending", "in_progress"}).
		Count(&overdueTasks)

	type eggTotals struct {
		Collected int `json:"collected"`
		Broken    int `json:"broken"`
	}
	var eggs eggTotals
	database.DB.Model(&models.EggRecord{}).
		Select("COALESCE(SUM(collected),0) AS collected, COALESCE(SUM(broken),0) AS broken").
		Where("farm_id = ? AND date = ?", farm.ID, date).
		Scan(&eggs)

	var feedKg float64
	database.DB.Model(&models.FeedRecord{}).
		Select("COALESCE(SUM(quantity_kg),0)").
		Where("farm_id = ? AND date = ?", farm.ID, date).
		Scan(&feedKg)

	return c.JSON(http.StatusOK, map[string]any{
		"date": date,
		"attendance": map[string]any{
			"active_workers": activeWorkers,
			"present":        presentToday,
			"absent":         max64(activeWorkers-presentToday, 0),
			"open_check_ins": openCheckIns,
		},
		"tasks": map[string]any{
			"by_status": taskCounts,
			"overdue":   overdueTasks,
		},
		"production": map[string]any{
			"eggs_collected": eggs.Collected,
			"eggs_broken":    eggs.Broken,
			"feed_kg":        feedKg,
		},
	})
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
