// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/libweb/pkg/adapter/config"
	"github.com/momeni/libweb/pkg/adapter/db/postgres/booksrp"
	"github.com/momeni/libweb/pkg/adapter/db/postgres/borrowersrp"
	"github.com/momeni/libweb/pkg/adapter/db/postgres/finesrp"
	"github.com/momeni/libweb/pkg/adapter/db/postgres/loansrp"
	"github.com/spf13/cobra"
)

var finesCmd = &cobra.Command{
	Use:   "fines",
	Short: "Fines management actions",
}

var finesUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Recompute unpaid fines for all overdue loans",
	Long: `Recompute unpaid fines for all overdue loans, so borrowers
can observe their accrued fines before returning a book. Fines are
also recomputed whenever a book is checked in, hence, this action is
only needed when up-to-date fines of the still open loans matter,
e.g., right before querying the total unpaid fines of a borrower.
Paid fines are never changed by this action.`,
	RunE: finesUpdate,
	Args: cobra.NoArgs,
}

func finesUpdate(_ *cobra.Command, _ []string) error {
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
	lending, err := c.Usecases.Lending.NewUseCase(
		p,
		booksrp.New(),
		borrowersrp.New(),
		loansrp.New(),
		finesrp.New(),
	)
	if err != nil {
		return fmt.Errorf("instantiating lending use case: %w", err)
	}
	n, err := lending.RefreshFines(ctx)
	if err != nil {
		return fmt.Errorf("refreshing fines: %w", err)
	}
	fmt.Printf("refreshed fines of %d overdue loans\n", n)
	return nil
}

func init() {
	finesCmd.AddCommand(finesUpdateCmd)
	rootCmd.AddCommand(finesCmd)
}
