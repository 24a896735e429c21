package finesrp

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/libweb/pkg/adapter/db/postgres"
	"github.com/momeni/libweb/pkg/core/model"
	"github.com/momeni/libweb/pkg/core/repo"
	"github.com/shopspring/decimal"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (fines *Repo) Conn(c repo.Conn) repo.FinesConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Get(ctx context.Context, loanID uuid.UUID) (*model.Fine, error) {
	return Get(ctx, cq.Conn, loanID)
}

func (cq connQueryer) UnpaidTotal(ctx context.Context, cardID int64) (decimal.Decimal, error) {
	return UnpaidTotal(ctx, cq.Conn, cardID)
}

type txQueryer struct {
	*postgres.Tx
}

func (fines *Repo) Tx(tx repo.Tx) repo.FinesTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Get(ctx context.Context, loanID uuid.UUID) (*model.Fine, error) {
	return Get(ctx, tq.Tx, loanID)
}

func (tq txQueryer) UnpaidTotal(ctx context.Context, cardID int64) (decimal.Decimal, error) {
	return UnpaidTotal(ctx, tq.Tx, cardID)
}

func (tq txQueryer) Upsert(ctx context.Context, loanID uuid.UUID, amount decimal.Decimal) error {
	return Upsert(ctx, tq.Tx, loanID, amount)
}

func (tq txQueryer) MarkAllPaid(ctx context.Context, cardID int64) (int64, error) {
	return MarkAllPaid(ctx, tq.Tx, cardID)
}
