package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/captjay98/livestockai/database"
	"github.com/captjay98/livestockai/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{"pending", "in_progress", true},
		{"pending", "completed", true},
		{"in_progress", "completed", true},
		{"completed", "approved", true},
		{"completed", "rejected", true},
		{"rejected", "completed", true}, // rework resubmission

		{"in_progress", "in_progress", false},
		{"completed", "in_progress", false},
		{"approved", "completed", false},
		{"approved", "rejected", false},
		{"rejected", "approved", false},
		{"pending", "approved", false},
		{"pending", "rejected", false},
		{"completed", "completed", false},
		{"pending", "cancelled", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, canTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func seedTask(t *testing.T) (*models.Farm, *models.TaskAssignment) {
	t.Helper()
	owner := models.User{Email: "owner@tasks.test", Password: "x", Role: "owner"}
	require.NoError(t, database.DB.Create(&owner).Error)
	farm := models.Farm{OwnerID: owner.ID, Name: "Rafin Tsaki", LivestockType: "cattle"}
	require.NoError(t, database.DB.Create(&farm).Error)
	worker := models.WorkerProfile{
		FarmID: farm.ID, FirstName: "Amina", LastName: "Yusuf",
		WageType: "monthly", WageRate: 60000, Status: "active",
	}
	require.NoError(t, database.DB.Create(&worker).Error)
	task := models.TaskAssignment{
		FarmID: farm.ID, WorkerID: worker.ID,
		Title: "Clean water troughs", Priority: "medium", Status: "pending",
	}
	require.NoError(t, database.DB.Create(&task).Error)
	return &farm, &task
}

func taskCtx(farm *models.Farm, taskID uint, body string) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := newJSONContext(http.MethodPost, "/", body)
	farmContext(c, farm, farm.OwnerID, "owner")
	c.SetParamNames("taskID")
	c.SetParamValues(fmt.Sprint(taskID))
	return c, rec
}

func TestTaskLifecycle(t *testing.T) {
	setupTestDB(t)
	farm, task := seedTask(t)
	h := NewTaskHandler()

	reload := func() string {
		var row models.TaskAssignment
		require.NoError(t, database.DB.First(&row, task.ID).Error)
		return row.Status
	}

	c, rec := taskCtx(farm, task.ID, `{}`)
	require.NoError(t, h.Start(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "in_progress", reload())

	// starting twice is an invalid transition
	c, rec = taskCtx(farm, task.ID, `{}`)
	require.NoError(t, h.Start(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_TRANSITION")

	c, rec = taskCtx(farm, task.ID, `{"photo":"troughs.jpg","notes":"done"}`)
	require.NoError(t, h.Complete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "completed", reload())

	// rejection needs a reason
	c, rec = taskCtx(farm, task.ID, `{}`)
	require.NoError(t, h.Reject(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "REJECT_REASON_REQUIRED")
	assert.Equal(t, "completed", reload())

	c, rec = taskCtx(farm, task.ID, `{"reject_reason":"algae still visible"}`)
	require.NoError(t, h.Reject(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "rejected", reload())

	// a rejected task is completed again, then approved
	c, rec = taskCtx(farm, task.ID, `{"photo":"troughs2.jpg"}`)
	require.NoError(t, h.Complete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "completed", reload())

	var row models.TaskAssignment
	require.NoError(t, database.DB.First(&row, task.ID).Error)
	assert.Empty(t, row.RejectReason)
	assert.Nil(t, row.DecidedAt)

	c, rec = taskCtx(farm, task.ID, `{}`)
	require.NoError(t, h.Approve(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "approved", reload())

	// approved is terminal
	c, rec = taskCtx(farm, task.ID, `{}`)
	require.NoError(t, h.Approve(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_COMPLETED")

	c, rec = taskCtx(farm, task.ID, `{}`)
	require.NoError(t, h.Complete(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_TRANSITION")
}

func TestTaskApproveBeforeCompletion(t *testing.T) {
	setupTestDB(t)
	farm, task := seedTask(t)
	h := NewTaskHandler()

	c, rec := taskCtx(farm, task.ID, `{}`)
	require.NoError(t, h.Approve(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_COMPLETED")
}
