// Package cli provides the command-line interface for the option pricer.
package cli

import (
	"fmt"
	"time"
)

// FormatPrice formats an option price with appropriate decimal places.
func FormatPrice(price float64) string {
	if price >= 10 {
		return fmt.Sprintf("%.4f", price)
	}
	return fmt.Sprintf("%.6f", price)
}

// FormatGreek formats a sensitivity value.
func FormatGreek(value float64) string {
	return fmt.Sprintf("%.6f", value)
}

// FormatVol formats a volatility as a percentage.
func FormatVol(vol float64) string {
	return fmt.Sprintf("%.4f%%", vol*100)
}

// FormatRate formats an interest rate as a percentage.
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}

// FormatMaturity formats a time to expiry in years.
func FormatMaturity(years float64) string {
	return fmt.Sprintf("%.4fy", years)
}

// FormatDateTime formats a datetime.
func FormatDateTime(t time.Time) string {
	return t.Local().Format("02-Jan-2006 15:04:05")
}

// TruncateString truncates a string to max length with ellipsis.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
