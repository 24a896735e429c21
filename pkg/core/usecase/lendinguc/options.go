// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lendinguc

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Option is a functional option for the lending use case.
type Option func(uc *UseCase) error

// WithLoanPeriod option configures how many calendar days after a
// checkout its due date falls. This option may be passed to the New()
// function; the default period is 14 days.
func WithLoanPeriod(days int) Option {
	return func(uc *UseCase) error {
		if days <= 0 {
			return fmt.Errorf("loan period (%d) is not positive", days)
		}
		if uc.loanPeriodDays != 0 {
			return errors.New("loan period is already configured")
		}
		uc.loanPeriodDays = days
		return nil
	}
}

// WithMaxOpenLoans option configures how many open loans one borrower
// may hold simultaneously. This option may be passed to the New()
// function; the default cap is 3 loans.
func WithMaxOpenLoans(n int) Option {
	return func(uc *UseCase) error {
		if n <= 0 {
			return fmt.Errorf("open loans cap (%d) is not positive", n)
		}
		if uc.maxOpenLoans != 0 {
			return errors.New("open loans cap is already configured")
		}
		uc.maxOpenLoans = n
		return nil
	}
}

// WithDailyFineRate option configures the fee which one overdue loan
// accrues per late day. This option may be passed to the New()
// function; the default rate is 0.25 per day.
func WithDailyFineRate(rate decimal.Decimal) Option {
	return func(uc *UseCase) error {
		if !rate.IsPositive() {
			return fmt.Errorf("daily fine rate (%s) is not positive", rate)
		}
		if !uc.dailyFineRate.IsZero() {
			return errors.New("daily fine rate is already configured")
		}
		uc.dailyFineRate = rate
		return nil
	}
}

// WithClock option overrides how the use case obtains the current
// date. It exists for the test suites which need deterministic due
// dates and fine amounts.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) error {
		if now == nil {
			return errors.New("clock must not be nil")
		}
		if uc.today != nil {
			return errors.New("clock is already configured")
		}
		uc.today = now
		return nil
	}
}
