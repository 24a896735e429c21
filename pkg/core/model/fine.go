// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultDailyFineRate is the amount which an overdue loan accrues
// per late day, unless configured otherwise.
var DefaultDailyFineRate = decimal.NewFromFloat(0.25)

// Fine models the accrued late fee of a single loan. At most one fine
// exists per loan and its amount is always recomputed from the loan
// dates, never accumulated incrementally. Once Paid is set, the fine
// is settled and its amount may not change anymore.
type Fine struct {
	LoanID uuid.UUID
	Amount decimal.Decimal // currency with two decimal digits
	Paid   bool
}

// FineAmount computes the fee owed for a loan which is overdue by
// days whole days, at the given per-day rate, rounded to two decimal
// digits. Recomputing with the same inputs is idempotent.
func FineAmount(days int, rate decimal.Decimal) decimal.Decimal {
	if days <= 0 {
		return decimal.Zero.Round(2)
	}
	return rate.Mul(decimal.NewFromInt(int64(days))).Round(2)
}
