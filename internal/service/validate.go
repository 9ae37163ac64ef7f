package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/apperror"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"

	maxCategoryLength = 100
)

// maxAmount is the first value that no longer fits NUMERIC(10,2).
var maxAmount = decimal.New(1, 8)

// validateAmount checks a monetary value destined for a NUMERIC(10,2) column.
func validateAmount(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperror.Validation("%s must be greater than zero", field)
	}
	if !amount.Equal(amount.Truncate(2)) {
		return apperror.Validation("%s must have at most two decimal places", field)
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return apperror.Validation("%s must be less than %s", field, maxAmount.String())
	}
	return nil
}

func validateCategory(category string) (string, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return "", apperror.Validation("category is required")
	}
	if utf8.RuneCountInString(category) > maxCategoryLength {
		return "", apperror.Validation("category must be at most %d characters", maxCategoryLength)
	}
	return category, nil
}

// parseDate parses a YYYY-MM-DD query value as midnight UTC.
func parseDate(field, value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, apperror.Validation("invalid %s '%s': expected YYYY-MM-DD", field, value)
	}
	return parsed, nil
}

// parseDateRange parses optional start and end dates. The returned end is
// exclusive: midnight of the day after endDate, so the whole end day is covered.
func parseDateRange(startDate, endDate string) (from, to *time.Time, err error) {
	if startDate != "" {
		start, err := parseDate("start_date", startDate)
		if err != nil {
			return nil, nil, err
		}
		from = &start
	}
	if endDate != "" {
		end, err := parseDate("end_date", endDate)
		if err != nil {
			return nil, nil, err
		}
		end = end.AddDate(0, 0, 1)
		to = &end
	}
	if from != nil && to != nil && !from.Before(*to) {
		return nil, nil, apperror.Validation("start_date %s is after end_date %s", startDate, endDate)
	}
	return from, to, nil
}

func validateMonth(month string) error {
	if _, err := time.Parse(monthLayout, month); err != nil || len(month) != len(monthLayout) {
		return apperror.Validation("invalid month '%s': expected YYYY-MM", month)
	}
	return nil
}
