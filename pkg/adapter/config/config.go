// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config loads the configuration settings of the libweb
// project from a YAML file and provisions the configured adapters:
// the database connection pool, the Gin engine, the slog handler,
// and the use case instances. Settings are carried in one explicit
// Config object which is passed into the constructors; no setting is
// kept in a process-wide variable.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/momeni/libweb/pkg/adapter/db/postgres"
	"github.com/momeni/libweb/pkg/core/repo"
	"github.com/momeni/libweb/pkg/core/usecase/lendinguc"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Log      Log      // structured logging settings
	Usecases Usecases // Configuration settings for supported use cases
}

// Database contains the database related configuration settings.
type Database struct {
	Host string // domain name or IP address of the DBMS server
	Port int    // port number of the DBMS server
	Name string // database name, like libweb
	User string // database role to connect with
	Pass string // password of the database role
}

// URL assembles the connection URL of the configured database,
// escaping the credentials as needed.
func (d Database) URL() string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Pass),
		Host:   d.Host + ":" + strconv.Itoa(d.Port),
		Path:   "/" + d.Name,
	}
	return u.String()
}

// ValidateAndNormalize validates the database settings and fills the
// default values where a setting is missing.
func (d *Database) ValidateAndNormalize() error {
	if d.Host == "" {
		d.Host = "127.0.0.1"
	}
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.Port < 0 || d.Port > 65535 {
		return fmt.Errorf("invalid port number: %d", d.Port)
	}
	if d.Name == "" {
		return fmt.Errorf("database name is required")
	}
	if d.User == "" {
		d.User = "libweb"
	}
	return nil
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `c` settings.
func (c *Config) ConnectionPool(ctx context.Context) (repo.Pool, error) {
	p, err := postgres.NewPool(ctx, c.Database.URL())
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	return p, nil
}

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized by the configuration file, letting the
// ValidateAndNormalize method fill the missing ones with defaults.
type Gin struct {
	Logger   *bool // Whether to register the gin.Logger() middleware
	Recovery *bool // Whether to register the gin.Recovery() middleware
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	e := gin.New()
	e.Use(middlewares...)
	return e
}

// Log contains the structured logging settings.
type Log struct {
	Level string // minimum severity: debug, info, warn, or error

	level slog.Level
}

// Setup installs a JSON slog handler, writing to the standard error
// stream with the configured minimum level, as the default logger.
func (l Log) Setup() {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: l.level,
	})
	slog.SetDefault(slog.New(h))
}

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Lending Lending // lending use cases related settings
}

// Lending contains the configuration settings for the lending use
// cases. Zero values ask the use cases layer to apply its default
// policy (14 days period, 3 open loans, 0.25 daily fine).
type Lending struct {
	// LoanPeriodDays indicates after how many calendar days a
	// checked out book falls due.
	LoanPeriodDays int `yaml:"loan-period-days"`
	// MaxOpenLoans indicates how many open loans one borrower may
	// hold simultaneously.
	MaxOpenLoans int `yaml:"max-open-loans"`
	// DailyFineRate indicates the fee which one overdue loan accrues
	// per late day, as a decimal number like "0.25".
	DailyFineRate string `yaml:"daily-fine-rate"`

	rate decimal.Decimal
}

// NewUseCase instantiates a new lending use case based on the
// settings in the `l` struct.
func (l Lending) NewUseCase(
	p repo.Pool,
	books repo.Books,
	borrowers repo.Borrowers,
	loans repo.Loans,
	fines repo.Fines,
) (*lendinguc.UseCase, error) {
	opts := make([]lendinguc.Option, 0, 3)
	if l.LoanPeriodDays != 0 {
		opts = append(opts, lendinguc.WithLoanPeriod(l.LoanPeriodDays))
	}
	if l.MaxOpenLoans != 0 {
		opts = append(opts, lendinguc.WithMaxOpenLoans(l.MaxOpenLoans))
	}
	if !l.rate.IsZero() {
		opts = append(opts, lendinguc.WithDailyFineRate(l.rate))
	}
	return lendinguc.New(p, books, borrowers, loans, fines, opts...)
}

// ValidateAndNormalize validates the settings values and returns an
// error if they were not acceptable. It can also modify settings in
// order to normalize them or replace some zero values with their
// expected default values (if any). So, it takes a pointer receiver
// instead of a non-reference receiver (in contrast to other methods).
func (c *Config) ValidateAndNormalize() error {
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("database settings: %w", err)
	}
	if c.Gin.Logger == nil {
		enabled := true
		c.Gin.Logger = &enabled
	}
	if c.Gin.Recovery == nil {
		enabled := true
		c.Gin.Recovery = &enabled
	}
	switch c.Log.Level {
	case "debug":
		c.Log.level = slog.LevelDebug
	case "", "info":
		c.Log.Level = "info"
		c.Log.level = slog.LevelInfo
	case "warn":
		c.Log.level = slog.LevelWarn
	case "error":
		c.Log.level = slog.LevelError
	default:
		return fmt.Errorf("unsupported log level: %q", c.Log.Level)
	}
	if r := c.Usecases.Lending.DailyFineRate; r != "" {
		rate, err := decimal.NewFromString(r)
		if err != nil {
			return fmt.Errorf("parsing daily-fine-rate: %w", err)
		}
		c.Usecases.Lending.rate = rate
	}
	if d := c.Usecases.Lending.LoanPeriodDays; d < 0 {
		return fmt.Errorf("loan-period-days (%d) is negative", d)
	}
	if n := c.Usecases.Lending.MaxOpenLoans; n < 0 {
		return fmt.Errorf("max-open-loans (%d) is negative", n)
	}
	return nil
}

// Load reads the configuration file at the given path, unmarshals it
// into a Config instance, and validates and normalizes the settings.
// Extra items in the file will be ignored and missing items will take
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return LoadBytes(data)
}

// LoadBytes unmarshals the data byte slice and loads a validated and
// normalized Config instance, assuming that it contains the yaml
// serialized Config settings.
func LoadBytes(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}
