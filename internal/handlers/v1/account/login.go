package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/service"
)

type LoginBody struct {
	Username string `json:"username" minLength:"1"`
	Password string `json:"password" minLength:"1"`
}

type LoginInput struct {
	Body LoginBody
}

type LoginResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token" doc:"Access token for the Authorization header"`
	RefreshToken string `json:"refresh_token" doc:"Refresh token for /api/token/refresh"`
}

type LoginOutput struct {
	Body LoginResponse
}

type userAuthenticator interface {
	Login(ctx context.Context, username, password string) (*service.LoginResult, error)
}

// LoginHandler handles POST /api/login. It is the only place tokens are issued
// from credentials.
type LoginHandler struct {
	AuthService userAuthenticator
}

func NewLoginHandler(svc userAuthenticator) *LoginHandler {
	return &LoginHandler{AuthService: svc}
}

func (h *LoginHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/login",
		Summary:     "Log in",
		Description: "Checks credentials and returns an access and refresh token pair.",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *LoginHandler) handle(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	logData := logging.GetLogData(ctx)

	var result *service.LoginResult
	err := logging.Time(logData, "loginMs", func() error {
		var err error
		result, err = h.AuthService.Login(ctx, input.Body.Username, input.Body.Password)
		return err
	})
	if err != nil {
		return nil, httperr.From(ctx, "login", err)
	}

	if logData != nil {
		logData.AddData("userID", result.User.ID.String())
	}

	return &LoginOutput{Body: LoginResponse{
		User:         userResponse(result.User),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}}, nil
}
