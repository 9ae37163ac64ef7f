package currency

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/service"
)

type ConversionInput struct {
	Amount       string `query:"amount" doc:"Amount to convert. Required."`
	FromCurrency string `query:"from_currency" doc:"ISO 4217 code, defaults to USD"`
	ToCurrency   string `query:"to_currency" doc:"ISO 4217 code, defaults to INR"`
}

type ConversionResponse struct {
	Amount          string `json:"amount"`
	FromCurrency    string `json:"from_currency"`
	ToCurrency      string `json:"to_currency"`
	ConvertedAmount string `json:"converted_amount"`
}

type ConversionOutput struct {
	Body ConversionResponse
}

type converter interface {
	Convert(ctx context.Context, amount, from, to string) (*service.Conversion, error)
}

// ConversionHandler handles GET /api/currency-conversion/.
type ConversionHandler struct {
	CurrencyService converter
}

func NewConversionHandler(svc converter) *ConversionHandler {
	return &ConversionHandler{CurrencyService: svc}
}

func (h *ConversionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "currency-conversion",
		Method:      http.MethodGet,
		Path:        "/api/currency-conversion/",
		Summary:     "Convert an amount between currencies",
		Description: "Looks up the conversion with the external exchange-rate provider.",
		Tags:        []string{"Currency"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

func (h *ConversionHandler) handle(ctx context.Context, input *ConversionInput) (*ConversionOutput, error) {
	if _, err := httperr.Caller(ctx); err != nil {
		return nil, err
	}

	var conversion *service.Conversion
	err := logging.Time(logging.GetLogData(ctx), "currencyConversionMs", func() error {
		var err error
		conversion, err = h.CurrencyService.Convert(ctx, input.Amount, input.FromCurrency, input.ToCurrency)
		return err
	})
	if err != nil {
		return nil, httperr.From(ctx, "currency-conversion", err)
	}

	return &ConversionOutput{Body: ConversionResponse{
		Amount:          conversion.Amount.String(),
		FromCurrency:    conversion.FromCurrency,
		ToCurrency:      conversion.ToCurrency,
		ConvertedAmount: conversion.ConvertedAmount.StringFixed(2),
	}}, nil
}
