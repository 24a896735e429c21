package repo

import (
	"context"

	"github.com/momeni/libweb/pkg/core/model"
)

type BorrowersQueryer interface {
	// Exists reports whether a borrower with the given card number is
	// registered. Registration itself happens out of the lending use
	// cases; they only rely on this existence lookup.
	Exists(ctx context.Context, cardID int64) (bool, error)
}

type BorrowersConnQueryer interface {
	BorrowersQueryer
}

type BorrowersTxQueryer interface {
	BorrowersQueryer

	// Lock loads the borrower row while locking it against concurrent
	// transactions, so the open loans count, the unpaid fines check,
	// and the fines settlement of one borrower are serialized.
	// A missing card number is a not-found error.
	Lock(ctx context.Context, cardID int64) (*model.Borrower, error)
	// Create registers a borrower and returns the assigned card
	// number. A duplicate SSN is a conflict error.
	Create(ctx context.Context, b *model.Borrower) (int64, error)
	// Upsert inserts the given borrowers with their pre-assigned card
	// numbers, skipping the already known ones, and returns the
	// number of affected rows.
	Upsert(ctx context.Context, borrowers []model.Borrower) (int64, error)
}

type Borrowers interface {
	Conn(Conn) BorrowersConnQueryer
	Tx(Tx) BorrowersTxQueryer
}
