package service

import (
	"errors"
	"fmt"
)

// ErrValidation marks input the caller has to correct
var ErrValidation = errors.New("validation failed")

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func validatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return validationError("month must be between 1-12, got %d", month)
	}
	if year < 1000 || year > 9999 {
		return validationError("year must have four digits, got %d", year)
	}
	return nil
}

func previousPeriod(month, year int) (int, int) {
	if month == 1 {
		return 12, year - 1
	}
	return month - 1, year
}
