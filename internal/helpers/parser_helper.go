package helpers

import (
	"math"
	"strconv"
	"time"
)

const DateLayout = "2006-01-02"

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

func StringToUint(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint(v), err
}

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ToMinorUnits converts a major-unit amount to integer minor units
// (rupees to paise). Gateways bill in minor units.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
