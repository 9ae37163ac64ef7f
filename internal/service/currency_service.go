package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/apperror"
)

const (
	defaultFromCurrency = "USD"
	defaultToCurrency   = "INR"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

type currencyConverter interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error)
}

type CurrencyService struct {
	converter currencyConverter
}

func NewCurrencyService(converter currencyConverter) *CurrencyService {
	return &CurrencyService{converter: converter}
}

// Convert validates the request and relays it to the conversion provider.
// Input errors are reported before any outbound call.
func (s *CurrencyService) Convert(ctx context.Context, amount, from, to string) (*Conversion, error) {
	parsed, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return nil, apperror.Validation("amount must be a number")
	}

	from, err = normalizeCurrency("from_currency", from, defaultFromCurrency)
	if err != nil {
		return nil, err
	}
	to, err = normalizeCurrency("to_currency", to, defaultToCurrency)
	if err != nil {
		return nil, err
	}

	converted, err := s.converter.Convert(ctx, parsed, from, to)
	if err != nil {
		return nil, err
	}

	return &Conversion{
		Amount:          parsed,
		FromCurrency:    from,
		ToCurrency:      to,
		ConvertedAmount: converted,
	}, nil
}

func normalizeCurrency(field, code, fallback string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return fallback, nil
	}
	if !currencyCodePattern.MatchString(code) {
		return "", apperror.Validation("%s must be a three-letter currency code", field)
	}
	return code, nil
}
