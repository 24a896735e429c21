// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package lendinguc contains the lending UseCase which owns the loan
// lifecycle and fine accrual rules. Supported use cases are:
//  1. Checking a book out,
//  2. Checking a borrowed book back in,
//  3. Paying the accrued fines of a borrower,
//  4. Reporting the unpaid fines total of a borrower,
//  5. Recomputing fines of all overdue loans in one pass.
//
// Every mutating use case runs as a single transaction. The book row
// and the borrower row are locked before any rule is checked, so two
// concurrent checkouts of one ISBN, or of one borrower, serialize on
// those row locks and observe each other's results. The storage layer
// additionally enforces at most one open loan per ISBN with a unique
// index as the final backstop.
package lendinguc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/libweb/pkg/core/cerr"
	"github.com/momeni/libweb/pkg/core/log"
	"github.com/momeni/libweb/pkg/core/model"
	"github.com/momeni/libweb/pkg/core/repo"
	"github.com/shopspring/decimal"
)

// UseCase represents the lending use case. It holds a database
// connection pool, the books, borrowers, loans, and fines repository
// instances (to be guided with the DB pool), and the lending policy
// settings.
type UseCase struct {
	pool        repo.Pool
	booksrp     repo.Books
	borrowersrp repo.Borrowers
	loansrp     repo.Loans
	finesrp     repo.Fines

	loanPeriodDays int
	maxOpenLoans   int
	dailyFineRate  decimal.Decimal
	today          func() time.Time
}

// New instantiates a lending use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(
	p repo.Pool,
	books repo.Books,
	borrowers repo.Borrowers,
	loans repo.Loans,
	fines repo.Fines,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{
		pool:        p,
		booksrp:     books,
		borrowersrp: borrowers,
		loansrp:     loans,
		finesrp:     fines,
	}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.loanPeriodDays == 0 {
		uc.loanPeriodDays = 14
	}
	if uc.maxOpenLoans == 0 {
		uc.maxOpenLoans = 3
	}
	if uc.dailyFineRate.IsZero() {
		uc.dailyFineRate = model.DefaultDailyFineRate
	}
	if uc.today == nil {
		uc.today = model.Today
	}
	return uc, nil
}

// Checkout use case lends the isbn book copy to the cardID borrower,
// creating an open loan which is due after the configured loan period.
// It fails if the book or the borrower is unknown, if the book copy
// is checked out right now, if the borrower already holds the maximum
// number of open loans, or if the borrower owes any unpaid fine.
// All checks and the loan creation run in one transaction, re-reading
// the book state under a row lock instead of trusting a stale read.
func (lend *UseCase) Checkout(ctx context.Context, isbn string, cardID int64) (loan *model.Loan, err error) {
	err = lend.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			book, err := lend.booksrp.Tx(tx).LockByISBN(ctx, isbn)
			if err != nil {
				return err
			}
			if _, err := lend.borrowersrp.Tx(tx).Lock(ctx, cardID); err != nil {
				return err
			}
			loans := lend.loansrp.Tx(tx)
			if book.Borrowed {
				return cerr.Conflict(cerr.CodeBookUnavailable, fmt.Errorf(
					"book %q is currently checked out", isbn,
				))
			}
			if open, err := loans.OpenForISBN(ctx, isbn); err != nil {
				return err
			} else if open != nil {
				return cerr.Conflict(cerr.CodeBookUnavailable, fmt.Errorf(
					"book %q is currently checked out", isbn,
				))
			}
			n, err := loans.CountOpenFor(ctx, cardID)
			if err != nil {
				return err
			}
			if n >= lend.maxOpenLoans {
				return cerr.Conflict(cerr.CodeLoanLimitExceeded, fmt.Errorf(
					"borrower %d already holds %d open loans", cardID, n,
				))
			}
			owed, err := lend.finesrp.Tx(tx).UnpaidTotal(ctx, cardID)
			if err != nil {
				return err
			}
			if owed.IsPositive() {
				return cerr.Conflict(cerr.CodeUnpaidFines, fmt.Errorf(
					"borrower %d owes %s in unpaid fines",
					cardID, owed.StringFixed(2),
				)).With("amount", owed.StringFixed(2))
			}
			today := model.Date(lend.today())
			loan = &model.Loan{
				LoanID:  uuid.New(),
				ISBN:    isbn,
				CardID:  cardID,
				DateOut: today,
				DueDate: today.AddDate(0, 0, lend.loanPeriodDays),
			}
			if err := loans.Create(ctx, loan); err != nil {
				return err
			}
			return lend.booksrp.Tx(tx).SetBorrowed(ctx, isbn, true)
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "checked out",
		slog.String("isbn", isbn),
		slog.Int64("card_id", cardID),
		slog.String("loan_id", loan.LoanID.String()),
		slog.Time("due_date", loan.DueDate),
	)
	return loan, nil
}

// Checkin use case closes the identified open loan, recording today
// as its return date, releasing the book copy, and recomputing the
// accrued fine of that loan. Checking in an already closed loan fails
// and a closed loan never reopens.
func (lend *UseCase) Checkin(ctx context.Context, loanID uuid.UUID) (loan *model.Loan, err error) {
	err = lend.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			loans := lend.loansrp.Tx(tx)
			loan, err = loans.Lock(ctx, loanID)
			if err != nil {
				return err
			}
			if !loan.Open() {
				return cerr.Conflict(cerr.CodeAlreadyCheckedIn, fmt.Errorf(
					"loan %s was already checked in on %s",
					loanID, loan.DateIn.Format(time.DateOnly),
				))
			}
			today := model.Date(lend.today())
			if err := loans.Close(ctx, loanID, today); err != nil {
				return err
			}
			loan.DateIn = &today
			if err := lend.booksrp.Tx(tx).SetBorrowed(ctx, loan.ISBN, false); err != nil {
				return err
			}
			return lend.refineLoan(ctx, lend.finesrp.Tx(tx), loan, today)
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "checked in",
		slog.String("loan_id", loanID.String()),
		slog.String("isbn", loan.ISBN),
		slog.Int64("card_id", loan.CardID),
	)
	return loan, nil
}

// PayFines use case settles all unpaid fines of the cardID borrower.
// It fails while the borrower still holds any open loan; fines are
// recomputed at checkin time, so settling them earlier would fix the
// fee of a book which keeps accruing late days.
func (lend *UseCase) PayFines(ctx context.Context, cardID int64) (settled int64, err error) {
	err = lend.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			if _, err := lend.borrowersrp.Tx(tx).Lock(ctx, cardID); err != nil {
				return err
			}
			open, err := lend.loansrp.Tx(tx).HasOpenFor(ctx, cardID)
			if err != nil {
				return err
			}
			if open {
				return cerr.Conflict(cerr.CodeStillCheckedOut, fmt.Errorf(
					"borrower %d still has books checked out", cardID,
				))
			}
			settled, err = lend.finesrp.Tx(tx).MarkAllPaid(ctx, cardID)
			return err
		})
	})
	if err != nil {
		return 0, err
	}
	log.Info(ctx, "fines paid",
		slog.Int64("card_id", cardID),
		slog.Int64("settled", settled),
	)
	return settled, nil
}

// UnpaidFines use case reports the unpaid fines total of the cardID
// borrower, failing if no such borrower is registered.
func (lend *UseCase) UnpaidFines(ctx context.Context, cardID int64) (total decimal.Decimal, err error) {
	err = lend.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		known, err := lend.borrowersrp.Conn(c).Exists(ctx, cardID)
		if err != nil {
			return err
		}
		if !known {
			return cerr.NotFound(cerr.CodeBorrowerNotFound, fmt.Errorf(
				"borrower %d is not registered", cardID,
			))
		}
		total, err = lend.finesrp.Conn(c).UnpaidTotal(ctx, cardID)
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// RefreshFines use case recomputes the fine of every loan which is
// overdue as of today, in one transaction. Settled fines are left
// untouched; the per-loan recomputation is the same one which runs
// at checkin time, making this pass idempotent.
func (lend *UseCase) RefreshFines(ctx context.Context) (refreshed int, err error) {
	err = lend.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			today := model.Date(lend.today())
			overdue, err := lend.loansrp.Tx(tx).Overdue(ctx, today)
			if err != nil {
				return err
			}
			fines := lend.finesrp.Tx(tx)
			for i := range overdue {
				l := &overdue[i]
				if err := lend.refineLoan(ctx, fines, l, today); err != nil {
					return fmt.Errorf("loan %s: %w", l.LoanID, err)
				}
			}
			refreshed = len(overdue)
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	log.Info(ctx, "fines refreshed", slog.Int("overdue_loans", refreshed))
	return refreshed, nil
}

// refineLoan recomputes the fine of one loan and stores it. A loan
// which accrued no fee gets no fine row; an existing unpaid fine is
// still corrected, even down to zero, and a paid fine is immutable
// (both enforced by the fines repository Upsert contract).
func (lend *UseCase) refineLoan(
	ctx context.Context, fines repo.FinesTxQueryer,
	l *model.Loan, today time.Time,
) error {
	amount := model.FineAmount(l.OverdueDays(today), lend.dailyFineRate)
	if amount.IsZero() {
		existing, err := fines.Get(ctx, l.LoanID)
		if err != nil || existing == nil {
			return err
		}
	}
	return fines.Upsert(ctx, l.LoanID, amount)
}
