// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/libweb/pkg/adapter/config"
	"github.com/momeni/libweb/pkg/adapter/db/postgres/schema"
	"github.com/momeni/libweb/pkg/core/repo"
	"github.com/spf13/cobra"
)

var initProdCmd = &cobra.Command{
	Use:   "init-prod",
	Short: "Initialize database contents with production suitable data",
	Long: `Initialize database contents with production suitable data.
The database connection information are read from the config file
which is passed by the -c flag. Only the books, borrowers, loans, and
fines tables are created without any sample records, so the catalogs
are expected to be imported by the db seed sub-commands afterwards.`,
	RunE: initProd,
	Args: cobra.NoArgs,
}

var initDevCmd = &cobra.Command{
	Use:   "init-dev",
	Short: "Initialize database contents with development suitable data",
	Long: `Initialize database contents with development suitable data.
The database connection information are read from the config file
which is passed by the -c flag. In addition to the tables which the
init-prod action creates, a handful of sample books, borrowers, and
loans records are inserted so that the REST API may be tried out
without importing the complete catalogs first.`,
	RunE: initDev,
	Args: cobra.NoArgs,
}

func initProd(_ *cobra.Command, _ []string) error {
	return initSchema(func(ctx context.Context, ini *schema.Initializer) error {
		return ini.InitProdSchema(ctx)
	})
}

func initDev(_ *cobra.Command, _ []string) error {
	return initSchema(func(ctx context.Context, ini *schema.Initializer) error {
		return ini.InitDevSchema(ctx)
	})
}

// initSchema connects to the configured database and runs the given
// schema initialization action in a single transaction, so a failed
// initialization attempt leaves no tables behind.
func initSchema(
	action func(context.Context, *schema.Initializer) error,
) error {
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
	return p.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		return conn.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return action(ctx, schema.New(tx))
		})
	})
}

func init() {
	dbCmd.AddCommand(initProdCmd, initDevCmd)
}
