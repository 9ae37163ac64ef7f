// Package currency talks to the external currency conversion provider.
package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/carson-networks/finance-server/internal/apperror"
)

const maxResponseBytes = 1 << 20

// Client converts amounts through a currencylayer-compatible /convert endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	group      singleflight.Group
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type convertResponse struct {
	Success bool             `json:"success"`
	Result  *decimal.Decimal `json:"result"`
	Error   *struct {
		Code int    `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

// Convert returns amount expressed in to. Identical conversions in flight at
// the same time share a single outbound request.
func (c *Client) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if c.apiKey == "" {
		return decimal.Zero, apperror.Upstream("currency conversion is not configured", nil)
	}

	key := from + ":" + to + ":" + amount.String()
	ch := c.group.DoChan(key, func() (any, error) {
		// Shared by every waiter, so one caller leaving must not cancel it.
		// The client timeout still bounds the call.
		return c.convert(context.WithoutCancel(ctx), amount, from, to)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return decimal.Zero, res.Err
		}
		return res.Val.(decimal.Decimal), nil
	case <-ctx.Done():
		return decimal.Zero, apperror.Canceled(ctx.Err())
	}
}

func (c *Client) convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse currency api url: %w", err)
	}
	query := endpoint.Query()
	query.Set("access_key", c.apiKey)
	query.Set("from", from)
	query.Set("to", to)
	query.Set("amount", amount.String())
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("build currency request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return decimal.Zero, apperror.Wrap(apperror.KindUpstreamTimeout, "currency provider timed out", err)
		}
		return decimal.Zero, apperror.Upstream("currency provider unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decimal.Zero, apperror.Upstream(fmt.Sprintf("currency provider returned status %d", resp.StatusCode), nil)
	}

	var body convertResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		if isTimeout(err) {
			return decimal.Zero, apperror.Wrap(apperror.KindUpstreamTimeout, "currency provider timed out", err)
		}
		return decimal.Zero, apperror.Upstream("currency provider sent an unreadable response", err)
	}

	if !body.Success || body.Result == nil {
		fields := logrus.Fields{"from": from, "to": to}
		if body.Error != nil {
			fields["providerCode"] = body.Error.Code
			fields["providerInfo"] = body.Error.Info
		}
		logrus.WithFields(fields).Warn("Currency.Convert.Failed")
		return decimal.Zero, apperror.Upstream("currency conversion failed", nil)
	}

	return *body.Result, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
