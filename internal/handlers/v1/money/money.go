// Package money holds the request-side representation of monetary values.
package money

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"
)

var errNotAmount = errors.New("must be a decimal string or a number")

// Amount is a monetary request field. Clients may send it as a JSON string
// ("120.50") or a JSON number (120.5); the literal text is kept so no float
// rounding happens before Decimal parses it.
type Amount string

// Schema advertises both accepted JSON forms.
func (Amount) Schema(r huma.Registry) *huma.Schema {
	return &huma.Schema{
		Description: "Decimal amount as a string or a number",
		OneOf: []*huma.Schema{
			{Type: huma.TypeString},
			{Type: huma.TypeNumber},
		},
	}
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errNotAmount
	}
	*a = Amount(n.String())
	return nil
}

// Decimal parses the amount.
func (a Amount) Decimal() (decimal.Decimal, error) {
	return decimal.NewFromString(string(a))
}
