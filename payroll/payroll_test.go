package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(s string) *time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return &t
}

func TestWorkedHours(t *testing.T) {
	spans := [][2]*time.Time{
		{ts("2025-03-03T08:00:00Z"), ts("2025-03-03T16:30:00Z")}, // 8.5h
		{ts("2025-03-04T08:00:00Z"), nil},                        // still open
		{ts("2025-03-05T09:00:00Z"), ts("2025-03-05T13:00:00Z")}, // 4h
		{nil, ts("2025-03-06T12:00:00Z")},                        // junk row
	}
	assert.InDelta(t, 12.5, WorkedHours(spans), 1e-9)
	assert.Zero(t, WorkedHours(nil))
}

func TestGross(t *testing.T) {
	assert.Equal(t, 4250.0, Gross(WageHourly, 500, 8.5, 0, 0))
	assert.Equal(t, 12000.0, Gross(WageDaily, 2000, 0, 6, 0))

	// monthly prorated: 20 of 30 days
	assert.Equal(t, 40000.0, Gross(WageMonthly, 60000, 0, 20, 30))
	// full presence caps at the full rate
	assert.Equal(t, 60000.0, Gross(WageMonthly, 60000, 0, 35, 30))
	assert.Zero(t, Gross(WageMonthly, 60000, 0, 10, 0))

	assert.Zero(t, Gross("piecework", 500, 8, 0, 0))
}

func TestBalance(t *testing.T) {
	assert.Equal(t, 2500.0, Balance(12500, 10000))
	assert.Equal(t, 0.0, Balance(10000, 10000))
	assert.Equal(t, -500.0, Balance(10000, 10500)) // overpaid
}

func TestPeriodDays(t *testing.T) {
	assert.Equal(t, 7, PeriodDays("2025-03-03", "2025-03-09"))
	assert.Equal(t, 1, PeriodDays("2025-03-03", "2025-03-03"))
	assert.Equal(t, 0, PeriodDays("2025-03-09", "2025-03-03"))
	assert.Equal(t, 0, PeriodDays("bad", "2025-03-03"))
}
