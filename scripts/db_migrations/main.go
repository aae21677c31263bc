package main

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	server_config "github.com/carson-networks/expense-tracker/internal/config"
	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

func main() {
	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("ProcessEnvironmentVariables")
		return
	}
	if env.DataBackend != server_config.BackendSQLite {
		logrus.WithField("backend", env.DataBackend).Fatal("migrations only apply to the sqlite backend")
		return
	}

	if err := os.MkdirAll(filepath.Dir(env.SQLiteDBPath), 0o755); err != nil {
		logrus.WithError(err).Fatal("os.MkdirAll")
		return
	}

	preMigrationVersion, postMigrationVersion, err := sqlconfig.RunMigrations(env.SQLiteDBPath)
	if err != nil {
		logrus.WithError(err).Fatal("sqlconfig.RunMigrations")
		return
	}

	logrus.WithFields(logrus.Fields{
		"database":             env.SQLiteDBPath,
		"preMigrationVersion":  preMigrationVersion,
		"postMigrationVersion": postMigrationVersion,
	}).Info("Migration status")
}
