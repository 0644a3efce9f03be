// Package payroll holds the wage arithmetic: hours and days come from
// attendance, rates from the worker profile. Handlers do the querying.
package payroll

import (
	"math"
	"time"
)

const (
	WageHourly  = "hourly"
	WageDaily   = "daily"
	WageMonthly = "monthly"
)

// WorkedHours sums the checked-out spans. Open records (no check-out)
// contribute nothing.
func WorkedHours(spans [][2]*time.Time) float64 {
	var total float64
	for _, s := range spans {
		in, out := s[0], s[1]
		if in == nil || out == nil || !out.After(*in) {
			continue
		}
		total += out.Sub(*in).Hours()
	}
	return total
}

// Gross computes a worker's wages for a period.
//   - hourly:  hours x rate
//   - daily:   days present x rate
//   - monthly: rate prorated by days present over the period's calendar days
func Gross(wageType string, rate, hours float64, daysPresent, periodDays int) float64 {
	switch wageType {
	case WageHourly:
		return round2(hours * rate)
	case WageDaily:
		return round2(float64(daysPresent) * rate)
	case WageMonthly:
		if periodDays <= 0 {
			return 0
		}
		if daysPresent > periodDays {
			daysPresent = periodDays
		}
		return round2(rate * float64(daysPresent) / float64(periodDays))
	}
	return 0
}

// Balance is what remains owed for a period: gross - paid, floored at zero
// display-side is the caller's business; overpayment comes back negative.
func Balance(gross, paid float64) float64 {
	return round2(gross - paid)
}

// PeriodDays counts calendar days in [start, end] inclusive.
// Dates are YYYY-MM-DD; malformed input counts as zero days.
func PeriodDays(start, end string) int {
	s, err1 := time.Parse("2006-01-02", start)
	e, err2 := time.Parse("2006-01-02", end)
	if err1 != nil || err2 != nil || e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
