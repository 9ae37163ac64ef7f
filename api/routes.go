package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/handlers/v1/account"
	"github.com/carson-networks/finance-server/internal/handlers/v1/analytics"
	"github.com/carson-networks/finance-server/internal/handlers/v1/budget"
	"github.com/carson-networks/finance-server/internal/handlers/v1/currency"
	"github.com/carson-networks/finance-server/internal/handlers/v1/status"
	"github.com/carson-networks/finance-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/service"
)

const shutdownTimeout = 15 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

type Rest struct {
	Logger         *logrus.Logger
	Port           string
	Service        *service.Service
	Tokens         *auth.TokenIssuer
	Storage        pinger
	AllowedOrigins []string
}

// Handler builds the full HTTP handler: huma operations under /api, the
// status route, and the CORS layer in front of both.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	config := huma.DefaultConfig("Finance Server", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		auth.BearerScheme: {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
	}
	api := humago.New(mux, config)
	api.UseMiddleware(logging.HumaMiddleware(r.Logger), auth.Middleware(api, r.Tokens))

	r.register(api)

	statusHandler := status.NewHandler(r.Storage)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	return NewCORS(r.AllowedOrigins).Wrap(mux)
}

func (r *Rest) register(api huma.API) {
	svc := r.Service

	account.NewRegisterHandler(svc.Auth).Register(api)
	account.NewLoginHandler(svc.Auth).Register(api)
	account.NewRefreshTokenHandler(svc.Auth).Register(api)

	transaction.NewCreateTransactionHandler(svc.Transaction).Register(api)
	transaction.NewListTransactionsHandler(svc.Transaction).Register(api)
	transaction.NewDeleteTransactionHandler(svc.Transaction).Register(api)

	budget.NewCreateBudgetHandler(svc.Budget).Register(api)
	budget.NewListBudgetsHandler(svc.Budget).Register(api)

	analytics.NewMonthlySummaryHandler(svc.Analytics).Register(api)
	analytics.NewSpendingAnalysisHandler(svc.Analytics).Register(api)
	analytics.NewExportTransactionsHandler(svc.Analytics).Register(api)

	currency.NewConversionHandler(svc.Currency).Register(api)
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		return err
	}
	return nil
}
