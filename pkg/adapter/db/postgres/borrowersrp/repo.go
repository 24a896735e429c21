package borrowersrp

import (
	"context"

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

func (borrowers *Repo) Conn(c repo.Conn) repo.BorrowersConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Exists(ctx context.Context, cardID int64) (bool, error) {
	return Exists(ctx, cq.Conn, cardID)
}

type txQueryer struct {
	*postgres.Tx
}

func (borrowers *Repo) Tx(tx repo.Tx) repo.BorrowersTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Exists(ctx context.Context, cardID int64) (bool, error) {
	return Exists(ctx, tq.Tx, cardID)
}

func (tq txQueryer) Lock(ctx context.Context, cardID int64) (*model.Borrower, error) {
	return Lock(ctx, tq.Tx, cardID)
}

func (tq txQueryer) Create(ctx context.Context, b *model.Borrower) (int64, error) {
	return Create(ctx, tq.Tx, b)
}

func (tq txQueryer) Upsert(ctx context.Context, borrowers []model.Borrower) (int64, error) {
	return Upsert(ctx, tq.Tx, borrowers)
}
