package main

import (
	"github.com/sirupsen/logrus"

	server_config "github.com/carson-networks/finance-server/internal/config"
	"github.com/carson-networks/finance-server/internal/storage"
)

// Applies pending migrations without starting the server.
func main() {
	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("ProcessEnvironmentVariables")
		return
	}

	logrus.WithFields(logrus.Fields{
		"address":  env.PostgresAddress,
		"port":     env.PostgresPort,
		"database": env.PostgresDB,
	}).Info("Running migrations")

	if err := storage.RunMigrations(env.PostgresURL()); err != nil {
		logrus.WithError(err).Fatal("storage.RunMigrations")
		return
	}
}
