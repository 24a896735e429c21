package booksrp

import (
	"context"
	"fmt"

	"github.com/momeni/libweb/pkg/adapter/db/postgres"
	"github.com/momeni/libweb/pkg/core/cerr"
	"github.com/momeni/libweb/pkg/core/model"
	"gorm.io/gorm/clause"
)

type gBook struct {
	ISBN     string `gorm:"primaryKey;column:isbn"`
	Title    string
	Borrowed bool
}

func (gb *gBook) TableName() string {
	return "books"
}

func (gb *gBook) Model() *model.Book {
	return &model.Book{
		ISBN:     gb.ISBN,
		Title:    gb.Title,
		Borrowed: gb.Borrowed,
	}
}

func GetByISBN[Q postgres.Queryer](ctx context.Context, q Q, isbn string) (*model.Book, error) {
	gdb := q.GORM(ctx)
	var gb []gBook
	res := gdb.Where("isbn = ?", isbn).Limit(1).Find(&gb)
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(gb) == 0 {
		return nil, cerr.NotFound(cerr.CodeBookNotFound, fmt.Errorf(
			"no book with isbn %q", isbn,
		))
	}
	return gb[0].Model(), nil
}

func LockByISBN[Q postgres.Queryer](ctx context.Context, q Q, isbn string) (*model.Book, error) {
	gdb := q.GORM(ctx)
	var gb []gBook
	res := gdb.Clauses(clause.Locking{Strength: "UPDATE"}).Where(
		"isbn = ?", isbn,
	).Limit(1).Find(&gb)
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(gb) == 0 {
		return nil, cerr.NotFound(cerr.CodeBookNotFound, fmt.Errorf(
			"no book with isbn %q", isbn,
		))
	}
	return gb[0].Model(), nil
}

func SetBorrowed[Q postgres.Queryer](ctx context.Context, q Q, isbn string, borrowed bool) error {
	gdb := q.GORM(ctx)
	res := gdb.Model(&gBook{}).Where("isbn = ?", isbn).Update(
		"borrowed", borrowed,
	)
	if err := res.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if n := res.RowsAffected; n != 1 {
		return cerr.NotFound(cerr.CodeBookNotFound, fmt.Errorf(
			"expected one row, but got %d", n,
		))
	}
	return nil
}

func Upsert[Q postgres.Queryer](ctx context.Context, q Q, books []model.Book) (int64, error) {
	if len(books) == 0 {
		return 0, nil
	}
	gbs := make([]gBook, 0, len(books))
	for _, b := range books {
		gbs = append(gbs, gBook{
			ISBN:     b.ISBN,
			Title:    b.Title,
			Borrowed: b.Borrowed,
		})
	}
	gdb := q.GORM(ctx)
	res := gdb.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "isbn"}},
		DoUpdates: clause.AssignmentColumns([]string{"title"}),
	}).Create(&gbs)
	if err := res.Error; err != nil {
		return 0, fmt.Errorf("query: %w", err)
	}
	return res.RowsAffected, nil
}
