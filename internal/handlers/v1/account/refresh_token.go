package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
)

type RefreshTokenBody struct {
	Refresh string `json:"refresh" minLength:"1" doc:"Refresh token returned by /api/login"`
}

type RefreshTokenInput struct {
	Body RefreshTokenBody
}

type RefreshTokenResponse struct {
	Access string `json:"access" doc:"New access token"`
}

type RefreshTokenOutput struct {
	Body RefreshTokenResponse
}

type tokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// RefreshTokenHandler handles POST /api/token/refresh.
type RefreshTokenHandler struct {
	AuthService tokenRefresher
}

func NewRefreshTokenHandler(svc tokenRefresher) *RefreshTokenHandler {
	return &RefreshTokenHandler{AuthService: svc}
}

func (h *RefreshTokenHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "refresh-token",
		Method:      http.MethodPost,
		Path:        "/api/token/refresh",
		Summary:     "Refresh access token",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *RefreshTokenHandler) handle(ctx context.Context, input *RefreshTokenInput) (*RefreshTokenOutput, error) {
	access, err := h.AuthService.Refresh(ctx, input.Body.Refresh)
	if err != nil {
		return nil, httperr.From(ctx, "refresh-token", err)
	}
	return &RefreshTokenOutput{Body: RefreshTokenResponse{Access: access}}, nil
}
