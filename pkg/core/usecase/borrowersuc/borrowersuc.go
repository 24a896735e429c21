// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package borrowersuc contains the borrower registry UseCase.
// The lending use cases only need borrower existence and identity;
// this package additionally supports registration of new borrowers
// (with SSN and phone number normalization) and the bulk seeding
// entry point which the CSV import command uses.
package borrowersuc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/momeni/libweb/pkg/core/cerr"
	"github.com/momeni/libweb/pkg/core/log"
	"github.com/momeni/libweb/pkg/core/model"
	"github.com/momeni/libweb/pkg/core/repo"
)

// UseCase represents the borrower registry use case, holding a
// database connection pool and the borrowers repository instance.
type UseCase struct {
	pool        repo.Pool
	borrowersrp repo.Borrowers
}

// New instantiates a borrower registry use case.
func New(p repo.Pool, borrowers repo.Borrowers) *UseCase {
	return &UseCase{pool: p, borrowersrp: borrowers}
}

// Register use case creates a borrower and returns its assigned card
// number. The SSN must contain exactly nine digits after stripping
// any formatting characters and may not be shared with an existing
// borrower. The phone number, if any, is normalized to its first ten
// digits.
func (reg *UseCase) Register(
	ctx context.Context, name, ssn, address, phone string,
) (cardID int64, err error) {
	if name == "" || address == "" {
		return 0, cerr.BadRequest(cerr.CodeBadRequest, errors.New(
			"name and address are required",
		))
	}
	nssn, err := model.ParseSSN(ssn)
	if err != nil {
		return 0, cerr.BadRequest(cerr.CodeBadRequest, err)
	}
	b := &model.Borrower{
		SSN:     nssn,
		Name:    name,
		Address: address,
		Phone:   model.NormalizePhone(phone),
	}
	err = reg.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			cardID, err = reg.borrowersrp.Tx(tx).Create(ctx, b)
			return err
		})
	})
	if err != nil {
		return 0, err
	}
	log.Info(ctx, "borrower registered", slog.Int64("card_id", cardID))
	return cardID, nil
}

// Exists use case reports whether the cardID borrower is registered.
func (reg *UseCase) Exists(ctx context.Context, cardID int64) (known bool, err error) {
	err = reg.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		known, err = reg.borrowersrp.Conn(c).Exists(ctx, cardID)
		return err
	})
	if err != nil {
		return false, err
	}
	return known, nil
}

// Seed use case stores the given normalized borrower rows with their
// pre-assigned card numbers, skipping the already known ones, in a
// single transaction.
func (reg *UseCase) Seed(ctx context.Context, borrowers []model.Borrower) (n int64, err error) {
	err = reg.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			n, err = reg.borrowersrp.Tx(tx).Upsert(ctx, borrowers)
			return err
		})
	})
	if err != nil {
		return 0, err
	}
	log.Info(ctx, "borrowers seeded", slog.Int64("borrowers", n))
	return n, nil
}
