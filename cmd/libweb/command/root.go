// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the libweb
// project. Commands are organized using the cobra library.
// The root command starts the web server itself while the "db"
// sub-command groups the database management actions, namely the
// init-dev and init-prod actions for initialization of the database
// with development or production suitable records and the seed action
// for importing the raw books and borrowers catalogs. The "fines"
// sub-command recomputes unpaid fines for all overdue loans.
//
//	./libweb [-c /path/of/main/config.yaml]          # start web server
//	./libweb db init-dev [-c /path/of/main/config.yaml]
//	./libweb db init-prod [-c /path/of/main/config.yaml]
//	./libweb db seed books /path/of/books.csv
//	./libweb db seed borrowers /path/of/borrowers.csv
//	./libweb fines update [-c /path/of/main/config.yaml]
package command

import (
	"context"
	"fmt"
	"os"

	"github.com/momeni/libweb/pkg/adapter/config"
	"github.com/momeni/libweb/pkg/adapter/restful/gin/routes"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "libweb",
	Short: "A library lending management web service",
	Long: `A library lending management web service which keeps track
of a books catalog, the registered borrowers, and the loans which tie
them together. Each book copy may be lent to at most one borrower at
a time, each borrower may keep a limited number of books, and loans
which are returned after their due date accrue a fine which must be
settled before further checkouts are allowed.
The REST API exposes the checkout, checkin, and fines settlement
operations besides the books availability and borrowers registration
endpoints. Database initialization and catalog seeding actions are
available as CLI sub-commands.`,
	RunE: startWebServer,
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	c.Log.Setup()
	p, err := c.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	e := c.Gin.NewEngine()
	if err = routes.Register(e, p, c.Usecases); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	if err = e.Run(); err != nil {
		return fmt.Errorf("running Gin engine: %w", err)
	}
	return nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		// the default path should usually be in the /etc directory
		cfgPath = "configs/sample-config.yaml"
	}
}
