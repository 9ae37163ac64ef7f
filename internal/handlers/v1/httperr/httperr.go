// Package httperr turns service errors into huma status errors.
package httperr

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-server/internal/apperror"
	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/logging"
)

const internalMessage = "internal server error"

// statusClientClosedRequest answers requests whose caller went away before
// the work finished. Nobody reads it; it keeps them out of the 5xx logs.
const statusClientClosedRequest = 499

func init() {
	// Schema violations are client errors; report them as 400 rather than 422.
	defaultNewError := huma.NewError
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		if status == http.StatusUnprocessableEntity {
			status = http.StatusBadRequest
		}
		return defaultNewError(status, msg, errs...)
	}
}

// From maps err onto the HTTP status for its kind. Server-side failures are
// recorded on the request's LogData and only a generic message reaches the caller.
func From(ctx context.Context, operation string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) && !apperror.Is(err, apperror.KindCanceled) {
		err = apperror.Canceled(err)
	}

	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		recordFailure(ctx, operation, err)
		return huma.Error500InternalServerError(internalMessage)
	}

	switch appErr.Kind {
	case apperror.KindValidation, apperror.KindInactive:
		return huma.Error400BadRequest(appErr.Message)
	case apperror.KindAuth:
		return huma.Error401Unauthorized(appErr.Message)
	case apperror.KindPermission:
		return huma.Error403Forbidden(appErr.Message)
	case apperror.KindNotFound:
		return huma.Error404NotFound(appErr.Message)
	case apperror.KindUpstream:
		recordFailure(ctx, operation, err)
		return huma.Error502BadGateway(appErr.Message)
	case apperror.KindUpstreamTimeout:
		recordFailure(ctx, operation, err)
		return huma.Error504GatewayTimeout(appErr.Message)
	case apperror.KindCanceled:
		if logData := logging.GetLogData(ctx); logData != nil {
			logData.AddData("canceled", true)
		}
		return huma.NewError(statusClientClosedRequest, appErr.Message)
	default:
		recordFailure(ctx, operation, err)
		message := appErr.Message
		if message == "" {
			message = internalMessage
		}
		return huma.Error500InternalServerError(message)
	}
}

func recordFailure(ctx context.Context, operation string, err error) {
	logData := logging.GetLogData(ctx)
	if logData == nil {
		logrus.WithError(err).Errorf("Handler.%v.Failure", operation)
		return
	}
	logData.AddData("failedOperation", operation)
	logData.AddData("error", err.Error())
}

// Caller returns the authenticated user placed in ctx by the auth middleware.
func Caller(ctx context.Context) (uuid.UUID, error) {
	userID, ok := auth.UserFromContext(ctx)
	if !ok {
		return uuid.Nil, huma.Error401Unauthorized("authentication credentials were not provided")
	}
	return userID, nil
}
