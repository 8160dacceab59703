package validators

import (
	"math"
	"strconv"
	"strings"

	pkgerrors "github.com/rendypratama/invoicehub-backend/pkg/errors"
)

// RequireFormString returns the trimmed field value or a validation error when
// it is missing or blank.
func RequireFormString(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "Invalid input").
			WithDetails(map[string]string{field: "is required"})
	}
	return trimmed, nil
}

// ParseFormInt parses a non-negative integer form field.
func ParseFormInt(field, value string) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Invalid input").
			WithDetails(map[string]string{field: "must be an integer"})
	}
	if parsed < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "Invalid input").
			WithDetails(map[string]string{field: "must not be negative"})
	}
	return parsed, nil
}

// ParseFormPriceCents parses a non-negative decimal currency field into cents.
func ParseFormPriceCents(field, value string) (int, error) {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Invalid input").
			WithDetails(map[string]string{field: "must be a decimal"})
	}
	if parsed < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "Invalid input").
			WithDetails(map[string]string{field: "must not be negative"})
	}
	return int(math.Round(parsed * 100)), nil
}
