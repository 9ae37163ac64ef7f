package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/apperror"
)

// BearerScheme is the OpenAPI security scheme name operations declare to
// require an access token.
const BearerScheme = "bearer"

type accessParser interface {
	ParseAccess(token string) (uuid.UUID, error)
}

// Middleware rejects requests to operations declaring BearerScheme unless they
// carry a valid access token, and stores the caller's id in the request context.
func Middleware(api huma.API, tokens accessParser) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !requiresBearer(ctx.Operation()) {
			next(ctx)
			return
		}

		raw, ok := bearerToken(ctx.Header("Authorization"))
		if !ok {
			ctx.SetHeader("WWW-Authenticate", `Bearer realm="api"`)
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "authentication credentials were not provided")
			return
		}

		userID, err := tokens.ParseAccess(raw)
		if err != nil {
			message := "token is invalid"
			var appErr *apperror.Error
			if errors.As(err, &appErr) {
				message = appErr.Message
			}
			ctx.SetHeader("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, message)
			return
		}

		next(huma.WithContext(ctx, ContextWithUser(ctx.Context(), userID)))
	}
}

func requiresBearer(op *huma.Operation) bool {
	if op == nil {
		return false
	}
	for _, requirement := range op.Security {
		if _, ok := requirement[BearerScheme]; ok {
			return true
		}
	}
	return false
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// BearerSecurity is the security requirement for operations that need an access token.
var BearerSecurity = []map[string][]string{{BearerScheme: {}}}
