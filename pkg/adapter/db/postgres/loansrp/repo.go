package loansrp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/libweb/pkg/adapter/db/postgres"
	"github.com/momeni/libweb/pkg/core/model"
	"github.com/momeni/libweb/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (loans *Repo) Conn(c repo.Conn) repo.LoansConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Get(ctx context.Context, loanID uuid.UUID) (*model.Loan, error) {
	return Get(ctx, cq.Conn, loanID)
}

func (cq connQueryer) CountOpenFor(ctx context.Context, cardID int64) (int, error) {
	return CountOpenFor(ctx, cq.Conn, cardID)
}

func (cq connQueryer) HasOpenFor(ctx context.Context, cardID int64) (bool, error) {
	return HasOpenFor(ctx, cq.Conn, cardID)
}

func (cq connQueryer) OpenForISBN(ctx context.Context, isbn string) (*model.Loan, error) {
	return OpenForISBN(ctx, cq.Conn, isbn)
}

func (cq connQueryer) Overdue(ctx context.Context, asOf time.Time) ([]model.Loan, error) {
	return Overdue(ctx, cq.Conn, asOf)
}

type txQueryer struct {
	*postgres.Tx
}

func (loans *Repo) Tx(tx repo.Tx) repo.LoansTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Get(ctx context.Context, loanID uuid.UUID) (*model.Loan, error) {
	return Get(ctx, tq.Tx, loanID)
}

func (tq txQueryer) CountOpenFor(ctx context.Context, cardID int64) (int, error) {
	return CountOpenFor(ctx, tq.Tx, cardID)
}

func (tq txQueryer) HasOpenFor(ctx context.Context, cardID int64) (bool, error) {
	return HasOpenFor(ctx, tq.Tx, cardID)
}

func (tq txQueryer) OpenForISBN(ctx context.Context, isbn string) (*model.Loan, error) {
	return OpenForISBN(ctx, tq.Tx, isbn)
}

func (tq txQueryer) Overdue(ctx context.Context, asOf time.Time) ([]model.Loan, error) {
	return Overdue(ctx, tq.Tx, asOf)
}

func (tq txQueryer) Lock(ctx context.Context, loanID uuid.UUID) (*model.Loan, error) {
	return Lock(ctx, tq.Tx, loanID)
}

func (tq txQueryer) Create(ctx context.Context, l *model.Loan) error {
	return Create(ctx, tq.Tx, l)
}

func (tq txQueryer) Close(ctx context.Context, loanID uuid.UUID, dateIn time.Time) error {
	return Close(ctx, tq.Tx, loanID, dateIn)
}
