package borrowersrp

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/libweb/pkg/adapter/db/postgres"
	"github.com/momeni/libweb/pkg/core/cerr"
	"github.com/momeni/libweb/pkg/core/model"
	"gorm.io/gorm/clause"
)

type gBorrower struct {
	CardID  int64  `gorm:"primaryKey;column:card_id"`
	SSN     string `gorm:"column:ssn"`
	Name    string
	Address string
	Phone   *string
}

func (gb *gBorrower) TableName() string {
	return "borrowers"
}

func (gb *gBorrower) Model() *model.Borrower {
	b := &model.Borrower{
		CardID:  gb.CardID,
		SSN:     gb.SSN,
		Name:    gb.Name,
		Address: gb.Address,
	}
	if gb.Phone != nil {
		b.Phone = *gb.Phone
	}
	return b
}

func fromModel(b *model.Borrower) gBorrower {
	gb := gBorrower{
		CardID:  b.CardID,
		SSN:     b.SSN,
		Name:    b.Name,
		Address: b.Address,
	}
	if b.Phone != "" {
		phone := b.Phone
		gb.Phone = &phone
	}
	return gb
}

func Exists[Q postgres.Queryer](ctx context.Context, q Q, cardID int64) (bool, error) {
	gdb := q.GORM(ctx)
	var n int64
	res := gdb.Model(&gBorrower{}).Where("card_id = ?", cardID).Count(&n)
	if err := res.Error; err != nil {
		return false, fmt.Errorf("query: %w", err)
	}
	return n > 0, nil
}

func Lock[Q postgres.Queryer](ctx context.Context, q Q, cardID int64) (*model.Borrower, error) {
	gdb := q.GORM(ctx)
	var gb []gBorrower
	res := gdb.Clauses(clause.Locking{Strength: "UPDATE"}).Where(
		"card_id = ?", cardID,
	).Limit(1).Find(&gb)
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(gb) == 0 {
		return nil, cerr.NotFound(cerr.CodeBorrowerNotFound, fmt.Errorf(
			"no borrower with card number %d", cardID,
		))
	}
	return gb[0].Model(), nil
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, b *model.Borrower) (int64, error) {
	gdb := q.GORM(ctx)
	gb := fromModel(b)
	res := gdb.Create(&gb)
	if err := res.Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, cerr.Conflict(cerr.CodeSSNRegistered, errors.New(
				"that SSN already has a card",
			))
		}
		return 0, fmt.Errorf("query: %w", err)
	}
	return gb.CardID, nil
}

func Upsert[Q postgres.Queryer](ctx context.Context, q Q, borrowers []model.Borrower) (int64, error) {
	if len(borrowers) == 0 {
		return 0, nil
	}
	gbs := make([]gBorrower, 0, len(borrowers))
	for i := range borrowers {
		gbs = append(gbs, fromModel(&borrowers[i]))
	}
	gdb := q.GORM(ctx)
	res := gdb.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "card_id"}},
		DoNothing: true,
	}).Create(&gbs)
	if err := res.Error; err != nil {
		return 0, fmt.Errorf("query: %w", err)
	}
	// Seeded rows carry explicit card numbers, so the identity
	// sequence must be advanced past them for future registrations.
	fix := gdb.Exec(`SELECT setval(
		pg_get_serial_sequence('borrowers', 'card_id'),
		(SELECT max(card_id) FROM borrowers)
	)`)
	if err := fix.Error; err != nil {
		return 0, fmt.Errorf("advancing card_id sequence: %w", err)
	}
	return res.RowsAffected, nil
}
