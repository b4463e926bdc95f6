package format

import "fmt"

// FormatReading renders a metric value with its unit for the summary row.
// Percentages keep one decimal, temperatures and RPM are whole numbers.
// A reading that is not present renders as "--".
func FormatReading(v float64, present bool, unit string) string {
	if !present {
		return "--"
	}
	switch unit {
	case "%":
		return fmt.Sprintf("%.1f%%", v)
	case "RPM":
		return fmt.Sprintf("%.0f RPM", v)
	case "°C", "°F":
		return fmt.Sprintf("%.0f%s", v, unit)
	case "":
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.1f %s", v, unit)
	}
}
