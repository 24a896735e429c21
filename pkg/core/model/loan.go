// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"time"

	"github.com/google/uuid"
)

// Loan models one lending of one book copy to one borrower.
// A loan with a nil DateIn is open; setting DateIn closes it and a
// closed loan never reopens. At most one open loan may exist per ISBN
// at any time and each borrower may hold a limited number of open
// loans simultaneously. Both rules are enforced by the lending use
// cases (and backstopped by the storage layer for the per-ISBN rule).
type Loan struct {
	LoanID  uuid.UUID
	ISBN    string
	CardID  int64
	DateOut time.Time // calendar date of the checkout
	DueDate time.Time // DateOut plus the configured loan period
	DateIn  *time.Time
}

// Open reports whether the loan has not been checked in yet.
func (l *Loan) Open() bool {
	return l.DateIn == nil
}

// OverdueDays returns the number of whole days by which the loan
// return exceeds its due date. For an open loan, the today argument
// stands in for the (not yet known) return date. Early or punctual
// returns yield zero, never a negative count.
func (l *Loan) OverdueDays(today time.Time) int {
	end := today
	if l.DateIn != nil {
		end = *l.DateIn
	}
	days := int(Date(end).Sub(Date(l.DueDate)) / (24 * time.Hour))
	if days < 0 {
		return 0
	}
	return days
}

// Date truncates t to its calendar date in the UTC timezone.
// All loan and fine computations work with calendar dates only,
// hence, dates are kept normalized to midnight UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date in the UTC timezone.
func Today() time.Time {
	return Date(time.Now())
}
