package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Config struct {
	Port string

	// DataBackend selects the ledger store: sqlite or memory.
	DataBackend  string
	SQLiteDBPath string

	LogLevel string
	// Timezone names the location used to decide what "today" is.
	Timezone string

	// CategoryRulesFile optionally replaces the built-in categorization rules.
	CategoryRulesFile string
}

// ProcessEnvironmentVariables reads the configuration from the environment,
// after loading a .env file from the working directory when one exists.
func ProcessEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	// Defaults run a local single-user server backed by a file in ./data.
	env := Config{
		Port:         "9446",
		DataBackend:  BackendSQLite,
		SQLiteDBPath: "./data/ledger.db",
		LogLevel:     "info",
		Timezone:     "Local",
	}

	if v := os.Getenv("PORT"); len(v) != 0 {
		env.Port = v
	}
	if v := os.Getenv("DATA_BACKEND"); len(v) != 0 {
		env.DataBackend = strings.ToLower(v)
	}
	if v := os.Getenv("SQLITE_DB_PATH"); len(v) != 0 {
		env.SQLiteDBPath = v
	}
	if v := os.Getenv("LOG_LEVEL"); len(v) != 0 {
		env.LogLevel = v
	}
	if v := os.Getenv("LEDGER_TIMEZONE"); len(v) != 0 {
		env.Timezone = v
	}
	if v := os.Getenv("CATEGORY_RULES_FILE"); len(v) != 0 {
		env.CategoryRulesFile = v
	}

	return &env, nil
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case BackendMemory:
	case BackendSQLite:
		if c.SQLiteDBPath == "" {
			problems = append(problems, "SQLite database path cannot be empty when using sqlite backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid data backend '%s': must be one of [%s %s]",
			c.DataBackend, BackendSQLite, BackendMemory))
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}

	if _, err := c.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("invalid timezone '%s': %v", c.Timezone, err))
	}

	if c.CategoryRulesFile != "" {
		if _, err := os.Stat(c.CategoryRulesFile); err != nil {
			problems = append(problems, fmt.Sprintf("category rules file is not readable: %v", err))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// Location resolves Timezone; "Local" and the empty string mean the host zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}
