package loansrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/libweb/pkg/adapter/db/postgres"
	"github.com/momeni/libweb/pkg/core/cerr"
	"github.com/momeni/libweb/pkg/core/model"
	"gorm.io/gorm/clause"
)

type gLoan struct {
	LoanID  uuid.UUID  `gorm:"primaryKey;type:uuid;column:loan_id"`
	ISBN    string     `gorm:"column:isbn"`
	CardID  int64      `gorm:"column:card_id"`
	DateOut time.Time  `gorm:"type:date"`
	DueDate time.Time  `gorm:"type:date"`
	DateIn  *time.Time `gorm:"type:date"`
}

func (gl *gLoan) TableName() string {
	return "book_loans"
}

func (gl *gLoan) Model() *model.Loan {
	l := &model.Loan{
		LoanID:  gl.LoanID,
		ISBN:    gl.ISBN,
		CardID:  gl.CardID,
		DateOut: model.Date(gl.DateOut),
		DueDate: model.Date(gl.DueDate),
	}
	if gl.DateIn != nil {
		in := model.Date(*gl.DateIn)
		l.DateIn = &in
	}
	return l
}

func notFound(loanID uuid.UUID) error {
	return cerr.NotFound(cerr.CodeLoanNotFound, fmt.Errorf(
		"no loan with id %s", loanID,
	))
}

func Get[Q postgres.Queryer](ctx context.Context, q Q, loanID uuid.UUID) (*model.Loan, error) {
	gdb := q.GORM(ctx)
	var gl []gLoan
	res := gdb.Where("loan_id = ?", loanID).Limit(1).Find(&gl)
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(gl) == 0 {
		return nil, notFound(loanID)
	}
	return gl[0].Model(), nil
}

func Lock[Q postgres.Queryer](ctx context.Context, q Q, loanID uuid.UUID) (*model.Loan, error) {
	gdb := q.GORM(ctx)
	var gl []gLoan
	res := gdb.Clauses(clause.Locking{Strength: "UPDATE"}).Where(
		"loan_id = ?", loanID,
	).Limit(1).Find(&gl)
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(gl) == 0 {
		return nil, notFound(loanID)
	}
	return gl[0].Model(), nil
}

func CountOpenFor[Q postgres.Queryer](ctx context.Context, q Q, cardID int64) (int, error) {
	gdb := q.GORM(ctx)
	var n int64
	res := gdb.Model(&gLoan{}).Where(
		"card_id = ? AND date_in IS NULL", cardID,
	).Count(&n)
	if err := res.Error; err != nil {
		return 0, fmt.Errorf("query: %w", err)
	}
	return int(n), nil
}

func HasOpenFor[Q postgres.Queryer](ctx context.Context, q Q, cardID int64) (bool, error) {
	n, err := CountOpenFor(ctx, q, cardID)
	return n > 0, err
}

func OpenForISBN[Q postgres.Queryer](ctx context.Context, q Q, isbn string) (*model.Loan, error) {
	gdb := q.GORM(ctx)
	var gl []gLoan
	res := gdb.Where("isbn = ? AND date_in IS NULL", isbn).Limit(1).Find(&gl)
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(gl) == 0 {
		return nil, nil
	}
	return gl[0].Model(), nil
}

func Overdue[Q postgres.Queryer](ctx context.Context, q Q, asOf time.Time) ([]model.Loan, error) {
	gdb := q.GORM(ctx)
	var gls []gLoan
	res := gdb.Where(
		"(date_in IS NOT NULL AND date_in > due_date)"+
			" OR (date_in IS NULL AND due_date < ?)",
		model.Date(asOf),
	).Order("loan_id").Find(&gls)
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	loans := make([]model.Loan, 0, len(gls))
	for i := range gls {
		loans = append(loans, *gls[i].Model())
	}
	return loans, nil
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, l *model.Loan) error {
	gdb := q.GORM(ctx)
	gl := gLoan{
		LoanID:  l.LoanID,
		ISBN:    l.ISBN,
		CardID:  l.CardID,
		DateOut: l.DateOut,
		DueDate: l.DueDate,
		DateIn:  l.DateIn,
	}
	res := gdb.Create(&gl)
	if err := res.Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" &&
			pgErr.ConstraintName == "book_loans_open_isbn_key" {
			// the storage backstop for one open loan per ISBN fired
			return cerr.Conflict(cerr.CodeBookUnavailable, fmt.Errorf(
				"book %q is currently checked out", l.ISBN,
			))
		}
		return fmt.Errorf("query: %w", err)
	}
	return nil
}

func Close[Q postgres.Queryer](ctx context.Context, q Q, loanID uuid.UUID, dateIn time.Time) error {
	gdb := q.GORM(ctx)
	res := gdb.Model(&gLoan{}).Where(
		"loan_id = ? AND date_in IS NULL", loanID,
	).Update("date_in", model.Date(dateIn))
	if err := res.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if res.RowsAffected == 1 {
		return nil
	}
	if _, err := Get(ctx, q, loanID); err != nil {
		return err
	}
	return cerr.Conflict(cerr.CodeAlreadyCheckedIn, fmt.Errorf(
		"loan %s was already checked in", loanID,
	))
}
