package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/libweb/pkg/core/model"
)

type LoansQueryer interface {
	// Get finds a loan by its identifier.
	// A missing loan is a not-found error.
	Get(ctx context.Context, loanID uuid.UUID) (*model.Loan, error)
	// CountOpenFor returns the number of open loans which the given
	// borrower currently holds.
	CountOpenFor(ctx context.Context, cardID int64) (int, error)
	// HasOpenFor reports whether the given borrower holds any open
	// loan right now.
	HasOpenFor(ctx context.Context, cardID int64) (bool, error)
	// OpenForISBN returns the open loan of the given ISBN, or nil if
	// that book copy is not checked out right now.
	OpenForISBN(ctx context.Context, isbn string) (*model.Loan, error)
	// Overdue lists loans which are overdue as of the given date,
	// that is, loans which were returned after their due date or are
	// still open with a passed due date.
	Overdue(ctx context.Context, asOf time.Time) ([]model.Loan, error)
}

type LoansConnQueryer interface {
	LoansQueryer
}

type LoansTxQueryer interface {
	LoansQueryer

	// Lock loads a loan row while locking it against concurrent
	// transactions. A missing loan is a not-found error.
	Lock(ctx context.Context, loanID uuid.UUID) (*model.Loan, error)
	// Create appends the given loan record as-is. Business rules are
	// not validated here; only the storage level constraints apply,
	// like the unique index which admits one open loan per ISBN.
	Create(ctx context.Context, l *model.Loan) error
	// Close records the return date of an open loan.
	Close(ctx context.Context, loanID uuid.UUID, dateIn time.Time) error
}

type Loans interface {
	Conn(Conn) LoansConnQueryer
	Tx(Tx) LoansTxQueryer
}
