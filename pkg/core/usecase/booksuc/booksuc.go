// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package booksuc contains the catalog UseCase: a read-only view of
// books and their availability, plus the bulk seeding entry point
// which the CSV import command uses.
package booksuc

import (
	"context"
	"log/slog"

	"github.com/momeni/libweb/pkg/core/log"
	"github.com/momeni/libweb/pkg/core/model"
	"github.com/momeni/libweb/pkg/core/repo"
)

// UseCase represents the catalog use case, holding a database
// connection pool and the books repository instance.
type UseCase struct {
	pool    repo.Pool
	booksrp repo.Books
}

// New instantiates a catalog use case.
func New(p repo.Pool, books repo.Books) *UseCase {
	return &UseCase{pool: p, booksrp: books}
}

// Availability use case reports the isbn book and whether it may be
// checked out right now. The borrowed flag is read fresh from the
// storage layer; it is never cached across requests.
func (cat *UseCase) Availability(ctx context.Context, isbn string) (book *model.Book, err error) {
	err = cat.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		book, err = cat.booksrp.Conn(c).GetByISBN(ctx, isbn)
		return err
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

// Seed use case stores the given normalized catalog rows, updating
// titles of the already known ISBNs, in a single transaction.
func (cat *UseCase) Seed(ctx context.Context, books []model.Book) (n int64, err error) {
	err = cat.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			n, err = cat.booksrp.Tx(tx).Upsert(ctx, books)
			return err
		})
	})
	if err != nil {
		return 0, err
	}
	log.Info(ctx, "catalog seeded", slog.Int64("books", n))
	return n, nil
}
