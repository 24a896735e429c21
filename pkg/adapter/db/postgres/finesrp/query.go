package finesrp

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/momeni/libweb/pkg/adapter/db/postgres"
	"github.com/momeni/libweb/pkg/core/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

type gFine struct {
	LoanID  uuid.UUID       `gorm:"primaryKey;type:uuid;column:loan_id"`
	FineAmt decimal.Decimal `gorm:"type:numeric(10,2);column:fine_amt"`
	Paid    bool
}

func (gf *gFine) TableName() string {
	return "fines"
}

func (gf *gFine) Model() *model.Fine {
	return &model.Fine{
		LoanID: gf.LoanID,
		Amount: gf.FineAmt,
		Paid:   gf.Paid,
	}
}

func Get[Q postgres.Queryer](ctx context.Context, q Q, loanID uuid.UUID) (*model.Fine, error) {
	gdb := q.GORM(ctx)
	var gf []gFine
	res := gdb.Where("loan_id = ?", loanID).Limit(1).Find(&gf)
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(gf) == 0 {
		return nil, nil
	}
	return gf[0].Model(), nil
}

// Upsert stores the recomputed amount for the loanID fine. A missing
// fine is created unpaid, an unpaid fine is updated in place when the
// amount differs, and a paid fine is immutable, hence a no-op.
func Upsert[Q postgres.Queryer](ctx context.Context, q Q, loanID uuid.UUID, amount decimal.Decimal) error {
	gdb := q.GORM(ctx)
	var gf []gFine
	res := gdb.Clauses(clause.Locking{Strength: "UPDATE"}).Where(
		"loan_id = ?", loanID,
	).Limit(1).Find(&gf)
	if err := res.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if len(gf) == 0 {
		ins := gdb.Create(&gFine{
			LoanID:  loanID,
			FineAmt: amount,
			Paid:    false,
		})
		if err := ins.Error; err != nil {
			return fmt.Errorf("query: %w", err)
		}
		return nil
	}
	if gf[0].Paid || gf[0].FineAmt.Equal(amount) {
		return nil
	}
	upd := gdb.Model(&gFine{}).Where(
		"loan_id = ? AND NOT paid", loanID,
	).Update("fine_amt", amount)
	if err := upd.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	return nil
}

func UnpaidTotal[Q postgres.Queryer](ctx context.Context, q Q, cardID int64) (decimal.Decimal, error) {
	gdb := q.GORM(ctx)
	var total decimal.Decimal
	row := gdb.Raw(`SELECT COALESCE(SUM(f.fine_amt), 0)
		FROM fines f
		JOIN book_loans bl ON f.loan_id = bl.loan_id
		WHERE bl.card_id = ? AND NOT f.paid`, cardID,
	).Row()
	if err := gdb.Error; err != nil {
		return decimal.Zero, fmt.Errorf("query: %w", err)
	}
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("scanning total: %w", err)
	}
	return total.Round(2), nil
}

func MarkAllPaid[Q postgres.Queryer](ctx context.Context, q Q, cardID int64) (int64, error) {
	gdb := q.GORM(ctx)
	res := gdb.Exec(`UPDATE fines f SET paid = true
		FROM book_loans bl
		WHERE f.loan_id = bl.loan_id
			AND bl.card_id = ? AND NOT f.paid`, cardID,
	)
	if err := res.Error; err != nil {
		return 0, fmt.Errorf("query: %w", err)
	}
	return res.RowsAffected, nil
}
