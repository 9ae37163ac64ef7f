// Package handlertest builds humatest APIs wired with the production
// middleware chain for handler tests.
package handlertest

import (
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/logging"
)

const secret = "handlertest-secret-handlertest-secret"

// Caller is an authenticated user for test requests.
type Caller struct {
	ID uuid.UUID
	// Auth is a ready-made "Authorization: Bearer ..." humatest header argument.
	Auth string
}

// New returns a test API running the logging and auth middlewares, plus a
// caller holding a valid access token.
func New(t testing.TB) (humatest.TestAPI, *Caller) {
	t.Helper()
	_, api := humatest.New(t)

	api.OpenAPI().Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		auth.BearerScheme: {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
	}

	issuer := auth.NewTokenIssuer(secret, time.Hour, 24*time.Hour)
	logger := logging.SetupLogging()
	logger.SetOutput(testWriter{t})
	api.UseMiddleware(logging.HumaMiddleware(logger), auth.Middleware(api, issuer))

	return api, NewCaller(t, issuer)
}

func NewCaller(t testing.TB, issuer *auth.TokenIssuer) *Caller {
	t.Helper()
	userID := uuid.Must(uuid.NewV4())
	access, err := issuer.IssueAccess(userID)
	if err != nil {
		t.Fatalf("issue access token: %v", err)
	}
	return &Caller{ID: userID, Auth: "Authorization: Bearer " + access}
}

// testWriter sends log lines to the test log so they only show on failure.
type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}
