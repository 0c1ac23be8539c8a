package service

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

func validateNonNegativeInt(name string, value int) error {
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func validateNonNegativeFloat(name string, value float64) error {
	if value < 0 || !isFinite(value) {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func validatePositiveFloat(name string, value float64) error {
	if value <= 0 || !isFinite(value) {
		return fmt.Errorf("%s must be > 0", name)
	}
	return nil
}

func validatePercent(name string, value float64) error {
	if value < 0 || value > 100 || !isFinite(value) {
		return fmt.Errorf("%s must be between 0 and 100", name)
	}
	return nil
}

// NormalizeDate validates a YYYY-MM-DD string, defaulting to today in the
// local zone when blank.
func NormalizeDate(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return Today(), nil
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
	}
	return date, nil
}

func Today() string {
	return time.Now().Format(dateLayout)
}
