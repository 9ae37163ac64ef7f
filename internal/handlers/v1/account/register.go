package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/service"
)

// RegisterBody is the request body for creating a user.
type RegisterBody struct {
	Username string `json:"username" minLength:"1" maxLength:"150" doc:"Letters, digits and @/./+/-/_ only"`
	Email    string `json:"email" format:"email" doc:"Email address, unique per user"`
	Password string `json:"password" minLength:"1" doc:"Plain-text password, checked against the password policy"`
}

// RegisterInput is the Huma input for registration.
type RegisterInput struct {
	Body RegisterBody
}

// RegisterOutput is the Huma output for registration.
type RegisterOutput struct {
	Status int
	Body   User
}

type userRegisterer interface {
	Register(ctx context.Context, username, email, password string) (*service.User, error)
}

// RegisterHandler handles POST /api/register.
type RegisterHandler struct {
	AuthService userRegisterer
}

func NewRegisterHandler(svc userRegisterer) *RegisterHandler {
	return &RegisterHandler{AuthService: svc}
}

// Register registers the registration endpoint with the Huma API.
func (h *RegisterHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "register",
		Method:      http.MethodPost,
		Path:        "/api/register",
		Summary:     "Register a user",
		Description: "Creates a user. The password must pass the password policy.",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *RegisterHandler) handle(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	var created *service.User
	err := logging.Time(logging.GetLogData(ctx), "registerMs", func() error {
		var err error
		created, err = h.AuthService.Register(ctx, input.Body.Username, input.Body.Email, input.Body.Password)
		return err
	})
	if err != nil {
		return nil, httperr.From(ctx, "register", err)
	}

	return &RegisterOutput{Status: http.StatusCreated, Body: userResponse(created)}, nil
}
