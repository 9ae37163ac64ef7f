package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/carson-networks/finance-server/api"
	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/config"
	"github.com/carson-networks/finance-server/internal/currency"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/operator"
	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	logger.Info("finance-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logger.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}
	logging.SetDebug(logger, envConfig.Debug)
	logrus.SetFormatter(logger.Formatter)
	logrus.SetLevel(logger.GetLevel())

	if err := envConfig.Validate(); err != nil {
		logger.WithError(err).Fatal("config.Validate")
		return
	}

	if envConfig.AutoMigrate {
		if err := storage.RunMigrations(envConfig.PostgresURL()); err != nil {
			logger.WithError(err).Fatal("storage.RunMigrations")
			return
		}
	}

	if envConfig.CommonPasswordsFile != "" {
		size, err := auth.LoadCommonPasswords(envConfig.CommonPasswordsFile)
		if err != nil {
			logger.WithError(err).Fatal("auth.LoadCommonPasswords")
			return
		}
		logger.WithField("commonPasswords", size).Info("auth.LoadCommonPasswords")
	}

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer dbStorage.Close()

	delegator := operator.NewOperatorDelegator(dbStorage, envConfig.OperatorWorkers)
	delegator.Start()
	defer delegator.Stop()

	tokens := auth.NewTokenIssuer(envConfig.SecretKey, envConfig.AccessTokenTTL, envConfig.RefreshTokenTTL)
	converter := currency.NewClient(envConfig.CurrencyAPIURL, envConfig.CurrencyAPIKey, envConfig.CurrencyTimeout)
	svc := service.NewService(dbStorage, delegator, tokens, auth.NewPasswordHasher(bcrypt.DefaultCost), converter)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpRest := api.Rest{
		Logger:         logger,
		Port:           envConfig.Port,
		Service:        svc,
		Tokens:         tokens,
		Storage:        dbStorage,
		AllowedOrigins: envConfig.CORSAllowedOrigins,
	}
	if err := httpRest.Serve(ctx); err != nil {
		logger.WithError(err).Error("HttpServer.Serve")
	}
	logger.Info("finance-server stopped")
}
