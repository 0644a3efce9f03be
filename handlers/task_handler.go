package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/captjay98/livestockai/database"
	"github.com/captjay98/livestockai/models"
)

type TaskHandler struct{}

func NewTaskHandler() *TaskHandler { return &TaskHandler{} }

// GET /farms/:id/tasks?status=&priority=&workerId=&from=&to=&q=&page=&size=
func (h *TaskHandler) List(c echo.Context) error {
	farm := farmFromContext(c)

	status := strings.TrimSpace(c.QueryParam("status"))
	priority := strings.TrimSpace(c.QueryParam("priority"))
	workerID := strings.TrimSpace(c.QueryParam("workerId"))
	from := strings.TrimSpace(c.QueryParam("from"))
	to := strings.TrimSpace(c.QueryParam("to"))
	q := strings.TrimSpace(c.QueryParam("q"))

	tx := database.DB.Model(&models.TaskAssignment{}).Where("farm_id = ?", farm.ID)
	if status != "" {
		tx = tx.Where("status IN ?", splitCSV(status))
	}
	if priority != "" {
		tx = tx.Where("priority = ?", priority)
	}
	if workerID != "" {
		tx = tx.Where("worker_id = ?", workerID)
	}
	if from != "" && to != "" {
		tx = tx.Where("due_date >= ? AND due_date <= ?", from, to)
	}
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	page, size := pageSize(c)
	var rows []models.TaskAssignment
	if err := tx.Order("created_at DESC, id DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /farms/:id/tasks/pending-count — completed tasks awaiting review
func (h *TaskHandler) PendingCount(c echo.Context) error {
	farm := farmFromContext(c)
	var n int64
	if err := database.DB.Model(&models.TaskAssignment{}).
		Where("farm_id = ? AND status = ?", farm.ID, "completed").
		Count(&n).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"count": n})
}

type taskCreateReq struct {
	WorkerID    uint   `json:"worker_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
}

// POST /farms/:id/tasks
func (h *TaskHandler) Create(c echo.Context) error {
	farm := farmFromContext(c)

	var req taskCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	title := strings.TrimSpace(req.Title)
	if req.WorkerID == 0 || title == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	priority := strings.TrimSpace(req.Priority)
	if priority == "" {
		priority = "medium"
	}
	if priority != "low" && priority != "medium" && priority != "high" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PRIORITY"})
	}
	if req.DueDate != "" && !validDate(req.DueDate) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
	}

	var worker models.WorkerProfile
	if err := database.DB.
		Where("farm_id = ?", farm.ID).
		First(&worker, req.WorkerID).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "WORKER_NOT_FOUND"})
	}

	rec := models.TaskAssignment{
		FarmID:      farm.ID,
		WorkerID:    worker.ID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Priority:    priority,
		DueDate:     req.DueDate,
		Status:      "pending",
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	audit(c, &farm.ID, "create", "task", rec.ID, title)
	return c.JSON(http.StatusCreated, rec)
}

// canTransition guards the assignment status machine. Completion is allowed
// again from rejected, which is how a rework gets resubmitted.
func canTransition(from, to string) bool {
	switch to {
	case "in_progress":
		return from == "pending"
	case "completed":
		return from == "pending" || from == "in_progress" || from == "rejected"
	case "approved", "rejected":
		return from == "completed"
	}
	return false
}

func (h *TaskHandler) loadTask(c echo.Context) (*models.TaskAssignment, error) {
	farm := farmFromContext(c)
	var row models.TaskAssignment
	if err := database.DB.
		Where("farm_id = ?", farm.ID).
		First(&row, "id = ?", c.Param("taskID")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return nil, c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return &row, nil
}

// POST /farms/:id/tasks/:taskID/start
func (h *TaskHandler) Start(c echo.Context) error {
	row, err := h.loadTask(c)
	if row == nil {
		return err
	}
	if !canTransition(row.Status, "in_progress") {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_TRANSITION"})
	}
	if err := database.DB.Model(row).Update("status", "in_progress").Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, row)
}

type taskCompleteReq struct {
	Photo string `json:"photo"`
	Notes string `json:"notes"`
}

// POST /farms/:id/tasks/:taskID/complete — allowed from pending,
// in_progress and rejected (a rework resubmission)
func (h *TaskHandler) Complete(c echo.Context) error {
	row, err := h.loadTask(c)
	if row == nil {
		return err
	}
	if !canTransition(row.Status, "completed") {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_TRANSITION"})
	}

	var req taskCompleteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	now := time.Now()
	updates := map[string]any{
		"status":           "completed",
		"completed_at":     &now,
		"completion_photo": strings.TrimSpace(req.Photo),
		"completion_notes": strings.TrimSpace(req.Notes),
		"decided_at":       nil,
		"decided_by":       nil,
		"reject_reason":    "",
	}
	if err := database.DB.Model(row).Updates(updates).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	farm := farmFromContext(c)
	audit(c, &farm.ID, "complete", "task", row.ID, "")
	return c.JSON(http.StatusOK, row)
}

type taskDecisionReq struct {
	RejectReason string `json:"reject_reason"`
}

// POST /farms/:id/tasks/:taskID/approve
func (h *TaskHandler) Approve(c echo.Context) error {
	return h.decide(c, "approved", "")
}

// POST /farms/:id/tasks/:taskID/reject
func (h *TaskHandler) Reject(c echo.Context) error {
	var body taskDecisionReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	return h.decide(c, "rejected", strings.TrimSpace(body.RejectReason))
}

func (h *TaskHandler) decide(c echo.Context, status, rejectReason string) error {
	row, err := h.loadTask(c)
	if row == nil {
		return err
	}
	if !canTransition(row.Status, status) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "NOT_COMPLETED"})
	}
	if status == "rejected" && rejectReason == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "REJECT_REASON_REQUIRED"})
	}

	uid, _ := currentUser(c)
	now := time.Now()
	updates := map[string]any{
		"status":        status,
		"decided_at":    &now,
		"decided_by":    uid,
		"reject_reason": rejectReason,
	}
	if err := database.DB.Model(row).Updates(updates).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	farm := farmFromContext(c)
	audit(c, &farm.ID, status, "task", row.ID, rejectReason)
	return c.JSON(http.StatusOK, row)
}
