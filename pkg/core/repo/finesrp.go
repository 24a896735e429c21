package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/libweb/pkg/core/model"
	"github.com/shopspring/decimal"
)

type FinesQueryer interface {
	// Get returns the fine of the given loan, or nil if none was
	// recorded so far.
	Get(ctx context.Context, loanID uuid.UUID) (*model.Fine, error)
	// UnpaidTotal sums the unpaid fine amounts over all loans of the
	// given borrower.
	UnpaidTotal(ctx context.Context, cardID int64) (decimal.Decimal, error)
}

type FinesConnQueryer interface {
	FinesQueryer
}

type FinesTxQueryer interface {
	FinesQueryer

	// Upsert records the recomputed fine amount of a loan. A missing
	// fine is created unpaid, an unpaid fine with a differing amount
	// is updated in place, and a paid fine is never touched.
	Upsert(ctx context.Context, loanID uuid.UUID, amount decimal.Decimal) error
	// MarkAllPaid settles every currently unpaid fine of the given
	// borrower and returns the number of settled fines.
	MarkAllPaid(ctx context.Context, cardID int64) (int64, error)
}

type Fines interface {
	Conn(Conn) FinesConnQueryer
	Tx(Tx) FinesTxQueryer
}
