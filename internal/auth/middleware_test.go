package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type whoAmIOutput struct {
	Body struct {
		UserID string `json:"user_id"`
	}
}

func setupMiddlewareAPI(t *testing.T, issuer *TokenIssuer) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	api.UseMiddleware(Middleware(api, issuer))

	handler := func(ctx context.Context, _ *struct{}) (*whoAmIOutput, error) {
		out := &whoAmIOutput{}
		if userID, ok := UserFromContext(ctx); ok {
			out.Body.UserID = userID.String()
		}
		return out, nil
	}

	huma.Register(api, huma.Operation{
		OperationID: "private",
		Method:      http.MethodGet,
		Path:        "/private",
		Security:    []map[string][]string{{BearerScheme: {}}},
	}, handler)
	huma.Register(api, huma.Operation{
		OperationID: "public",
		Method:      http.MethodGet,
		Path:        "/public",
	}, handler)

	return api
}

func TestMiddleware_ValidToken(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour, 24*time.Hour)
	api := setupMiddlewareAPI(t, issuer)
	userID := uuid.Must(uuid.NewV4())

	access, err := issuer.IssueAccess(userID)
	require.NoError(t, err)

	resp := api.Get("/private", "Authorization: Bearer "+access)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), userID.String())
}

func TestMiddleware_MissingHeader(t *testing.T) {
	api := setupMiddlewareAPI(t, NewTokenIssuer(testSecret, time.Hour, 24*time.Hour))

	resp := api.Get("/private")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "credentials were not provided")
	assert.NotEmpty(t, resp.Header().Get("WWW-Authenticate"))
}

func TestMiddleware_RefreshTokenRejected(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour, 24*time.Hour)
	api := setupMiddlewareAPI(t, issuer)

	pair, err := issuer.IssuePair(uuid.Must(uuid.NewV4()))
	require.NoError(t, err)

	resp := api.Get("/private", "Authorization: Bearer "+pair.Refresh)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "token is invalid")
}

func TestMiddleware_WrongScheme(t *testing.T) {
	api := setupMiddlewareAPI(t, NewTokenIssuer(testSecret, time.Hour, 24*time.Hour))

	resp := api.Get("/private", "Authorization: Basic YWxpY2U6c2VjcmV0")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestMiddleware_PublicOperation(t *testing.T) {
	api := setupMiddlewareAPI(t, NewTokenIssuer(testSecret, time.Hour, 24*time.Hour))

	resp := api.Get("/public")
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestBearerToken(t *testing.T) {
	token, ok := bearerToken("bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", token)

	_, ok = bearerToken("Bearer ")
	assert.False(t, ok)
	_, ok = bearerToken("")
	assert.False(t, ok)
}
