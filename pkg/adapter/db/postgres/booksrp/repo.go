package booksrp

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

func (books *Repo) Conn(c repo.Conn) repo.BooksConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) GetByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	return GetByISBN(ctx, cq.Conn, isbn)
}

type txQueryer struct {
	*postgres.Tx
}

func (books *Repo) Tx(tx repo.Tx) repo.BooksTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) GetByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	return GetByISBN(ctx, tq.Tx, isbn)
}

func (tq txQueryer) LockByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	return LockByISBN(ctx, tq.Tx, isbn)
}

func (tq txQueryer) SetBorrowed(ctx context.Context, isbn string, borrowed bool) error {
	return SetBorrowed(ctx, tq.Tx, isbn, borrowed)
}

func (tq txQueryer) Upsert(ctx context.Context, books []model.Book) (int64, error) {
	return Upsert(ctx, tq.Tx, books)
}
