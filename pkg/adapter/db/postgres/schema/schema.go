// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schema provides the Initializer type which provisions the
// library database tables. It can initialize a database either with
// development suitable sample data or as an empty production schema.
// The partial unique index on open loans is part of the schema on
// purpose: it is the storage level backstop which admits at most one
// open loan per ISBN even if two transactions race on the checkout.
package schema

import (
	"context"
	"fmt"

	"github.com/momeni/libweb/pkg/core/repo"
)

// Initializer provides the table creation and sample data insertion
// logic. Each instance wraps a single transaction, but the caller is
// responsible to commit that transaction in order to finalize the
// initialization results.
type Initializer struct {
	tx repo.Tx
}

// New creates a new Initializer instance, wrapping the given tx
// database transaction.
func New(tx repo.Tx) *Initializer {
	return &Initializer{tx: tx}
}

const createTables = `
CREATE TABLE IF NOT EXISTS books (
    isbn varchar(10) PRIMARY KEY,
    title varchar(200) NOT NULL,
    borrowed boolean NOT NULL DEFAULT false
);
CREATE TABLE IF NOT EXISTS borrowers (
    card_id bigint PRIMARY KEY GENERATED BY DEFAULT AS IDENTITY,
    ssn char(9) NOT NULL UNIQUE,
    name varchar(100) NOT NULL,
    address varchar(200) NOT NULL,
    phone varchar(10)
);
CREATE TABLE IF NOT EXISTS book_loans (
    loan_id uuid PRIMARY KEY,
    isbn varchar(10) NOT NULL REFERENCES books (isbn),
    card_id bigint NOT NULL REFERENCES borrowers (card_id),
    date_out date NOT NULL,
    due_date date NOT NULL,
    date_in date
);
CREATE UNIQUE INDEX IF NOT EXISTS book_loans_open_isbn_key
    ON book_loans (isbn) WHERE date_in IS NULL;
CREATE TABLE IF NOT EXISTS fines (
    loan_id uuid PRIMARY KEY REFERENCES book_loans (loan_id),
    fine_amt numeric(10, 2) NOT NULL,
    paid boolean NOT NULL DEFAULT false
);`

const insertDevRows = `
INSERT INTO books (isbn, title, borrowed) VALUES
    ('0195153448', 'Classical Mythology', false),
    ('0002005018', 'Clara Callan', false),
    ('0060973129', 'Decision in Normandy', false),
    ('0374157065', 'Flu: The Story of the Great Influenza', false)
ON CONFLICT (isbn) DO NOTHING;
INSERT INTO borrowers (card_id, ssn, name, address, phone) VALUES
    (1, '123456789', 'Ada Lovelace', '12 Analytical Ln, Denton, TX', '9405550101'),
    (2, '987654321', 'Charles Babbage', '3 Difference Dr, Dallas, TX', NULL)
ON CONFLICT (card_id) DO NOTHING;
SELECT setval(
    pg_get_serial_sequence('borrowers', 'card_id'),
    (SELECT max(card_id) FROM borrowers)
);`

// InitProdSchema creates the books, borrowers, book_loans, and fines
// tables, leaving them empty as suitable for a fresh production
// installation.
func (ini *Initializer) InitProdSchema(ctx context.Context) error {
	if _, err := ini.tx.Exec(ctx, createTables); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// InitDevSchema creates the same tables as InitProdSchema and fills
// them with a handful of development suitable catalog and borrower
// rows. Seeding is idempotent, so re-running it is harmless.
func (ini *Initializer) InitDevSchema(ctx context.Context) error {
	if err := ini.InitProdSchema(ctx); err != nil {
		return err
	}
	if _, err := ini.tx.Exec(ctx, insertDevRows); err != nil {
		return fmt.Errorf("inserting sample rows: %w", err)
	}
	return nil
}
