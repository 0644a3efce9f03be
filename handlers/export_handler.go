package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/captjay98/livestockai/database"
	"github.com/captjay98/livestockai/models"
)

type ExportHandler struct{}

func NewExportHandler() *ExportHandler { return &ExportHandler{} }

func attachment(c echo.Context, name string) {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
}

func workerNames(farmID uint) map[uint]string {
	var workers []models.WorkerProfile
	database.DB.Where("farm_id = ?", farmID).Find(&workers)
	names := make(map[uint]string, len(workers))
	for _, w := range workers {
		names[w.ID] = w.FirstName + " " + w.LastName
	}
	return names
}

func fmtTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("15:04")
}

// GET /farms/:id/exports/attendance.csv?start=&end=
func (h *ExportHandler) AttendanceCSV(c echo.Context) error {
	farm := farmFromContext(c)

	start := strings.TrimSpace(c.QueryParam("start"))
	end := strings.TrimSpace(c.QueryParam("end"))

	tx := database.DB.Where("farm_id = ?", farm.ID)
	if start != "" && end != "" {
		tx = tx.Where("date >= ? AND date <= ?", start, end)
	}
	var rows []models.AttendanceRecord
	if err := tx.Order("date ASC, id ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	names := workerNames(farm.ID)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"date", "worker", "check_in", "check_out", "geo_status", "note"})
	for _, r := range rows {
		_ = w.Write([]string{
			r.Date,
			names[r.WorkerID],
			fmtTime(r.CheckInAt),
			fmtTime(r.CheckOutAt),
			r.GeoStatus,
			r.Note,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "EXPORT_FAILED"})
	}

	attachment(c, "attendance.csv")
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

func loadPeriodForExport(c echo.Context, farmID uint) (*models.PayrollPeriod, error) {
	var p models.PayrollPeriod
	if err := database.DB.
		Where("farm_id = ?", farmID).
		First(&p, "id = ?", c.Param("periodID")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return nil, c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return &p, nil
}

// GET /farms/:id/payroll/periods/:periodID/export.csv
func (h *ExportHandler) PayrollCSV(c echo.Context) error {
	farm := farmFromContext(c)
	p, err := loadPeriodForExport(c, farm.ID)
	if p == nil {
		return err
	}

	lines, _ := (&PayrollHandler{}).buildLines(farm.ID, p)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"worker", "wage_type", "wage_rate", "hours", "days", "gross", "paid", "balance"})
	for _, l := range lines {
		_ = w.Write([]string{
			l.Name,
			l.WageType,
			fmt.Sprintf("%.2f", l.WageRate),
			fmt.Sprintf("%.2f", l.Hours),
			fmt.Sprintf("%d", l.Days),
			fmt.Sprintf("%.2f", l.Gross),
			fmt.Sprintf("%.2f", l.Paid),
			fmt.Sprintf("%.2f", l.Balance),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "EXPORT_FAILED"})
	}

	attachment(c, fmt.Sprintf("payroll-%s.csv", p.StartDate))
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

// GET /farms/:id/payroll/periods/:periodID/export.xlsx
func (h *ExportHandler) PayrollXLSX(c echo.Context) error {
	farm := farmFromContext(c)
	p, err := loadPeriodForExport(c, farm.ID)
	if p == nil {
		return err
	}

	lines, total := (&PayrollHandler{}).buildLines(farm.ID, p)

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Payroll"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Worker", "Wage Type", "Rate", "Hours", "Days", "Gross", "Paid", "Balance"}
	for i, hdr := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, hdr)
	}
	for rIdx, l := range lines {
		vals := []any{l.Name, l.WageType, l.WageRate, l.Hours, l.Days, l.Gross, l.Paid, l.Balance}
		for cIdx, v := range vals {
			cell, _ := excelize.CoordinatesToCellName(cIdx+1, rIdx+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	totalCell, _ := excelize.CoordinatesToCellName(6, len(lines)+3)
	_ = f.SetCellValue(sheet, totalCell, total)
	labelCell, _ := excelize.CoordinatesToCellName(5, len(lines)+3)
	_ = f.SetCellValue(sheet, labelCell, "TOTAL")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "EXPORT_FAILED"})
	}

	attachment(c, fmt.Sprintf("payroll-%s.xlsx", p.StartDate))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// GET /farms/:id/payroll/payments/:paymentID/receipt.pdf
func (h *ExportHandler) PaymentReceiptPDF(c echo.Context) error {
	farm := farmFromContext(c)

	var pay models.Payment
	if err := database.DB.
		Where("farm_id = ?", farm.ID).
		First(&pay, "id = ?", c.Param("paymentID")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	var worker models.WorkerProfile
	_ = database.DB.First(&worker, pay.WorkerID).Error
	var period models.PayrollPeriod
	_ = database.DB.First(&period, pay.PeriodID).Error

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, farm.Name)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, "Payment Receipt")
	pdf.Ln(12)

	line := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(45, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
	}
	line("Receipt No.", fmt.Sprintf("PAY-%06d", pay.ID))
	line("Worker", worker.FirstName+" "+worker.LastName)
	line("Period", period.StartDate+" to "+period.EndDate)
	line("Amount", fmt.Sprintf("%.2f", pay.Amount))
	line("Method", pay.Method)
	if pay.Reference != "" {
		line("Reference", pay.Reference)
	}
	line("Paid At", pay.PaidAt.Format("2006-01-02 15:04"))

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.Cell(0, 6, "Generated "+time.Now().Format("2006-01-02 15:04"))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "EXPORT_FAILED"})
	}

	attachment(c, fmt.Sprintf("receipt-PAY-%06d.pdf", pay.ID))
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}
