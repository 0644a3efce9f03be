package middlewares

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/captjay98/livestockai/database"
	"github.com/captjay98/livestockai/models"
)

// RequireFarmAccess resolves :id as a farm and checks the caller belongs to
// it: platform admins always pass, the owner passes, a worker passes when a
// profile links their user to the farm. The farm is stashed in the context
// as "farm" so handlers skip a second lookup.
func RequireFarmAccess() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			farmID, err := strconv.ParseUint(c.Param("id"), 10, 64)
			if err != nil || farmID == 0 {
				return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_FARM_ID"})
			}

			var farm models.Farm
			if err := database.DB.First(&farm, farmID).Error; err != nil {
				return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
			}

			uid, _ := c.Get("user_id").(uint)
			role, _ := c.Get("role").(string)

			if role != "admin" && farm.OwnerID != uid {
				var n int64
				database.DB.Model(&models.WorkerProfile{}).
					Where("farm_id = ? AND user_id = ?", farm.ID, uid).
					Count(&n)
				if n == 0 {
					return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
				}
			}

			c.Set("farm", &farm)
			return next(c)
		}
	}
}

// RequirePermission gates farm routes on a worker grant, e.g.
// RequirePermission("payroll"). Owners and admins bypass; workers need the
// grant in their profile's permission list. Must run after RequireFarmAccess.
func RequirePermission(perm string) echo.MiddlewareFunc {
	perm = strings.ToLower(strings.TrimSpace(perm))
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if role == "admin" {
				return next(c)
			}
			farm, _ := c.Get("farm").(*models.Farm)
			uid, _ := c.Get("user_id").(uint)
			if farm == nil {
				return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
			}
			if farm.OwnerID == uid {
				return next(c)
			}

			var wp models.WorkerProfile
			if err := database.DB.
				Where("farm_id = ? AND user_id = ?", farm.ID, uid).
				First(&wp).Error; err != nil {
				return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
			}
			for _, p := range strings.Split(wp.Permissions, ",") {
				if strings.ToLower(strings.TrimSpace(p)) == perm {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
		}
	}
}
