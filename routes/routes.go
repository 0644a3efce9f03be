package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/captjay98/livestockai/config"
	"github.com/captjay98/livestockai/handlers"
	"github.com/captjay98/livestockai/middlewares"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config) {
	// ===== Handlers (shared singletons) =====
	auth := handlers.NewAuthHandler(cfg.JWTSecret)
	farm := handlers.NewFarmHandler()
	wrk := handlers.NewWorkerHandler()
	gf := handlers.NewGeofenceHandler()
	att := handlers.NewAttendanceHandler()
	tsk := handlers.NewTaskHandler()
	pay := handlers.NewPayrollHandler()
	prod := handlers.NewProductionHandler()
	dash := handlers.NewDashboardHandler()
	set := handlers.NewSettingsHandler()
	exp := handlers.NewExportHandler()
	adm := handlers.NewAdminHandler()
	reg := handlers.NewRegionHandler()

	// ===== Public =====
	e.GET("/health", handlers.Health)
	e.POST("/auth/register", auth.Register)
	e.POST("/auth/login", auth.Login)
	e.GET("/auth/check-email", auth.CheckEmail)

	authMW := middlewares.RequireAuth(cfg.JWTSecret)

	// ===== Account =====
	me := e.Group("/me", authMW)
	me.GET("/settings", set.Get)
	me.PUT("/settings", set.Update)
	me.PUT("/password", set.ChangePassword)

	// ===== Farms =====
	e.GET("/farms", farm.List, authMW)
	e.POST("/farms", farm.Create, authMW)

	fg := e.Group("/farms/:id", authMW, middlewares.RequireFarmAccess())
	fg.GET("", farm.Get)
	fg.PUT("", farm.Update)
	fg.DELETE("", farm.Delete)

	fg.GET("/dashboard", dash.Daily)

	fg.GET("/workers", wrk.List)
	fg.POST("/workers", wrk.Create, middlewares.RequirePermission("workers"))
	fg.PUT("/workers/:workerID", wrk.Update, middlewares.RequirePermission("workers"))
	fg.DELETE("/workers/:workerID", wrk.Delete, middlewares.RequirePermission("workers"))

	fg.GET("/geofences", gf.List)
	fg.POST("/geofences", gf.Create, middlewares.RequirePermission("geofences"))
	fg.PUT("/geofences/:fenceID", gf.Update, middlewares.RequirePermission("geofences"))
	fg.DELETE("/geofences/:fenceID", gf.Delete, middlewares.RequirePermission("geofences"))

	fg.GET("/attendance", att.List)
	fg.POST("/attendance/check-in", att.CheckIn, middlewares.RequirePermission("attendance"))
	fg.POST("/attendance/check-out", att.CheckOut, middlewares.RequirePermission("attendance"))

	fg.GET("/tasks", tsk.List)
	fg.GET("/tasks/pending-count", tsk.PendingCount)
	fg.POST("/tasks", tsk.Create, middlewares.RequirePermission("tasks"))
	fg.POST("/tasks/:taskID/start", tsk.Start)
	fg.POST("/tasks/:taskID/complete", tsk.Complete)
	fg.POST("/tasks/:taskID/approve", tsk.Approve, middlewares.RequirePermission("tasks"))
	fg.POST("/tasks/:taskID/reject", tsk.Reject, middlewares.RequirePermission("tasks"))

	payMW := middlewares.RequirePermission("payroll")
	fg.GET("/payroll/periods", pay.ListPeriods, payMW)
	fg.POST("/payroll/periods", pay.CreatePeriod, payMW)
	fg.PATCH("/payroll/periods/:periodID", pay.UpdatePeriod, payMW)
	fg.POST("/payroll/periods/:periodID/compute", pay.Compute, payMW)
	fg.GET("/payroll/periods/:periodID/summary", pay.Summary, payMW)
	fg.GET("/payroll/periods/:periodID/payments", pay.ListPayments, payMW)
	fg.POST("/payroll/periods/:periodID/payments", pay.CreatePayment, payMW)

	fg.GET("/eggs", prod.ListEggs)
	fg.POST("/eggs", prod.CreateEgg, middlewares.RequirePermission("eggs"))
	fg.PUT("/eggs/:recordID", prod.UpdateEgg, middlewares.RequirePermission("eggs"))
	fg.DELETE("/eggs/:recordID", prod.DeleteEgg, middlewares.RequirePermission("eggs"))

	fg.GET("/feed", prod.ListFeed)
	fg.POST("/feed", prod.CreateFeed, middlewares.RequirePermission("feed"))
	fg.PUT("/feed/:recordID", prod.UpdateFeed, middlewares.RequirePermission("feed"))
	fg.DELETE("/feed/:recordID", prod.DeleteFeed, middlewares.RequirePermission("feed"))

	fg.GET("/exports/attendance.csv", exp.AttendanceCSV)
	fg.GET("/payroll/periods/:periodID/export.csv", exp.PayrollCSV, payMW)
	fg.GET("/payroll/periods/:periodID/export.xlsx", exp.PayrollXLSX, payMW)
	fg.GET("/payroll/payments/:paymentID/receipt.pdf", exp.PaymentReceiptPDF, payMW)

	// ===== Admin =====
	admin := e.Group("/admin", authMW, middlewares.RequireRole("admin"))
	admin.GET("/users", adm.ListUsers)
	admin.POST("/users", adm.CreateUser)
	admin.POST("/users/:userID/ban", adm.Ban)
	admin.POST("/users/:userID/unban", adm.Unban)
	admin.POST("/users/:userID/reset", adm.ResetPassword)
	admin.GET("/audit", adm.AuditLog)

	// ===== Extension service =====
	ext := e.Group("/extension", authMW, middlewares.RequireRole("extension", "admin"))
	ext.GET("/regions", reg.ListRegions)
	ext.POST("/regions", reg.CreateRegion)
	ext.PUT("/regions/:regionID", reg.UpdateRegion)
	ext.DELETE("/regions/:regionID", reg.DeleteRegion)
	ext.GET("/districts", reg.ListDistricts)
	ext.POST("/districts", reg.CreateDistrict)
	ext.PUT("/districts/:districtID", reg.UpdateDistrict)
	ext.DELETE("/districts/:districtID", reg.DeleteDistrict)
	ext.GET("/districts/:districtID/farms", reg.DistrictFarms)
}
