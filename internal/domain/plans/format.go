package plans

import (
	"math"
	"strconv"
)

const gib int64 = 1 << 30

var storageUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatStorage renders bytes on a 1024 ladder, two decimals at most.
// Example: 1536 -> "1.5 KB", -1 -> "Unlimited"
func FormatStorage(bytes int64) string {
	if bytes == Unlimited {
		return "Unlimited"
	}

	value := float64(bytes)
	i := 0
	for value >= 1024 && i < len(storageUnits)-1 {
		value /= 1024
		i++
	}

	return FormatDecimal(value, 2) + " " + storageUnits[i]
}

// FormatEmployeeLimit renders an employee limit for display.
func FormatEmployeeLimit(limit int) string {
	if limit == Unlimited {
		return "Unlimited"
	}
	return strconv.Itoa(limit)
}

// RoundTo rounds half away from zero to the given number of decimals.
func RoundTo(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}

// FormatDecimal rounds and drops trailing zeros: 1.50 -> "1.5", 5.00 -> "5".
func FormatDecimal(v float64, decimals int) string {
	return strconv.FormatFloat(RoundTo(v, decimals), 'f', -1, 64)
}
