package exporter

import (
	"fmt"
)

// formatFloat formats a float64 value for output with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an int value for output
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

// formatOptionalFloat renders a missing value as an empty field
func formatOptionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}

// flagEmoji converts a 2-letter country code to its regional indicator
// symbol pair. Codes that are not exactly two ASCII letters render as the
// empty string so the table degrades to plain text.
func flagEmoji(shortCode string) string {
	if len(shortCode) != 2 {
		return ""
	}
	runes := make([]rune, 0, 2)
	for _, r := range shortCode {
		if r < 'A' || r > 'Z' {
			return ""
		}
		runes = append(runes, 0x1F1E6+r-'A')
	}
	return string(runes)
}
