// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/momeni/libweb/pkg/adapter/config"
	"github.com/momeni/libweb/pkg/adapter/csvnorm"
	"github.com/momeni/libweb/pkg/adapter/db/postgres/booksrp"
	"github.com/momeni/libweb/pkg/adapter/db/postgres/borrowersrp"
	"github.com/momeni/libweb/pkg/core/repo"
	"github.com/momeni/libweb/pkg/core/usecase/booksuc"
	"github.com/momeni/libweb/pkg/core/usecase/borrowersuc"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import a raw catalog CSV file into the database",
	Long: `Import a raw catalog CSV file into the database after
normalizing its records. The books action expects the raw books
catalog with the ISBN and Title columns, while the borrowers action
expects the raw borrowers catalog with the ID0000id, ssn, first_name,
last_name, address, city, state, and phone columns. Records with a
missing or duplicated key are dropped. Records which are already in
the database are updated or kept untouched, hence, the actions may be
repeated safely.`,
}

var seedBooksCmd = &cobra.Command{
	Use:   "books /path/of/books.csv",
	Short: "Import the raw books catalog",
	RunE:  seedBooks,
	Args:  cobra.ExactArgs(1),
}

var seedBorrowersCmd = &cobra.Command{
	Use:   "borrowers /path/of/borrowers.csv",
	Short: "Import the raw borrowers catalog",
	RunE:  seedBorrowers,
	Args:  cobra.ExactArgs(1),
}

func seedBooks(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening books catalog: %w", err)
	}
	defer f.Close()
	books, err := csvnorm.Books(f)
	if err != nil {
		return fmt.Errorf("normalizing books catalog: %w", err)
	}
	ctx := context.Background()
	p, err := loadAndConnect(ctx)
	if err != nil {
		return err
	}
	defer p.Close()
	n, err := booksuc.New(p, booksrp.New()).Seed(ctx, books)
	if err != nil {
		return fmt.Errorf("seeding books: %w", err)
	}
	fmt.Printf("imported %d of %d books\n", n, len(books))
	return nil
}

func seedBorrowers(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening borrowers catalog: %w", err)
	}
	defer f.Close()
	borrowers, err := csvnorm.Borrowers(f)
	if err != nil {
		return fmt.Errorf("normalizing borrowers catalog: %w", err)
	}
	ctx := context.Background()
	p, err := loadAndConnect(ctx)
	if err != nil {
		return err
	}
	defer p.Close()
	n, err := borrowersuc.New(p, borrowersrp.New()).Seed(ctx, borrowers)
	if err != nil {
		return fmt.Errorf("seeding borrowers: %w", err)
	}
	fmt.Printf("imported %d of %d borrowers\n", n, len(borrowers))
	return nil
}

func loadAndConnect(ctx context.Context) (repo.Pool, error) {
	c, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	c.Log.Setup()
	p, err := c.ConnectionPool(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating DB pool: %w", err)
	}
	return p, nil
}

func init() {
	seedCmd.AddCommand(seedBooksCmd, seedBorrowersCmd)
	dbCmd.AddCommand(seedCmd)
}
