// Package format renders amounts, dates and quantities according to a
// user's settings record. Pure string work; no locale database.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var currencySymbols = map[string]string{
	"NGN": "₦",
	"KES": "KSh",
	"GHS": "GH₵",
	"ZAR": "R",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// Currency renders an amount with its symbol and thousand separators,
// e.g. Currency(12500.5, "NGN") -> "₦12,500.50". Unknown codes fall back
// to "CODE 12,500.50".
func Currency(amount float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	body := groupThousands(amount)
	if sym, ok := currencySymbols[code]; ok {
		return sym + body
	}
	if code == "" {
		return body
	}
	return code + " " + body
}

// Date renders t per the user's preset: DMY -> 03/09/2025, MDY -> 09/03/2025,
// YMD -> 2025-09-03. Unknown presets render YMD.
func Date(t time.Time, preset string) string {
	switch strings.ToUpper(strings.TrimSpace(preset)) {
	case "DMY":
		return t.Format("02/01/2006")
	case "MDY":
		return t.Format("01/02/2006")
	}
	return t.Format("2006-01-02")
}

// Weight renders kilograms in the user's unit system.
func Weight(kg float64, unitSystem string) string {
	if strings.EqualFold(strings.TrimSpace(unitSystem), "imperial") {
		return fmt.Sprintf("%.1f lb", kg*2.20462)
	}
	return fmt.Sprintf("%.1f kg", kg)
}

func groupThousands(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	b.WriteString(frac)
	return b.String()
}
