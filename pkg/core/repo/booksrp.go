package repo

import (
	"context"

	"github.com/momeni/libweb/pkg/core/model"
)

type BooksQueryer interface {
	// GetByISBN finds a book by its ISBN, so its availability flag
	// may be reported. A missing ISBN is a not-found error.
	GetByISBN(ctx context.Context, isbn string) (*model.Book, error)
}

type BooksConnQueryer interface {
	BooksQueryer
}

type BooksTxQueryer interface {
	BooksQueryer

	// LockByISBN loads a book row while locking it against concurrent
	// transactions, so availability checks and the borrowed flag
	// update observe a serialized view of that book.
	LockByISBN(ctx context.Context, isbn string) (*model.Book, error)
	// SetBorrowed updates the denormalized borrowed flag. It must be
	// called in the same transaction which creates or closes the
	// corresponding loan.
	SetBorrowed(ctx context.Context, isbn string, borrowed bool) error
	// Upsert inserts the given books, updating titles of the already
	// known ISBNs, and returns the number of affected rows.
	Upsert(ctx context.Context, books []model.Book) (int64, error)
}

type Books interface {
	Conn(Conn) BooksConnQueryer
	Tx(Tx) BooksTxQueryer
}
