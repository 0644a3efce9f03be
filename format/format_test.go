package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	assert.Equal(t, "₦12,500.50", Currency(12500.5, "NGN"))
	assert.Equal(t, "$1,000,000.00", Currency(1e6, "usd"))
	assert.Equal(t, "₦0.00", Currency(0, "NGN"))
	assert.Equal(t, "₦999.99", Currency(999.99, "NGN"))
}

func TestCurrencyNegativeAndUnknown(t *testing.T) {
	assert.Equal(t, "₦-250.75", Currency(-250.75, "NGN"))
	assert.Equal(t, "XOF 500.00", Currency(500, "XOF"))
	assert.Equal(t, "123.40", Currency(123.4, ""))
}

func TestDate(t *testing.T) {
	d := time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "03/09/2025", Date(d, "DMY"))
	assert.Equal(t, "09/03/2025", Date(d, "MDY"))
	assert.Equal(t, "2025-09-03", Date(d, "YMD"))
	assert.Equal(t, "2025-09-03", Date(d, ""))
}

func TestWeight(t *testing.T) {
	assert.Equal(t, "25.0 kg", Weight(25, "metric"))
	assert.Equal(t, "55.1 lb", Weight(25, "imperial"))
}
