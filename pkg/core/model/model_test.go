// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"testing"
	"time"

	"github.com/momeni/libweb/pkg/core/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOverdueDays(t *testing.T) {
	due := date(2024, time.March, 10)
	for _, tc := range []struct {
		name   string
		dateIn *time.Time
		today  time.Time
		days   int
	}{
		{
			name:  "open not yet due",
			today: date(2024, time.March, 5),
			days:  0,
		},
		{
			name:  "open due today",
			today: date(2024, time.March, 10),
			days:  0,
		},
		{
			name:  "open ten days late",
			today: date(2024, time.March, 20),
			days:  10,
		},
		{
			name:   "closed early",
			dateIn: addr(date(2024, time.March, 8)),
			today:  date(2024, time.June, 1),
			days:   0,
		},
		{
			name:   "closed two days late",
			dateIn: addr(date(2024, time.March, 12)),
			today:  date(2024, time.June, 1),
			days:   2,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			l := &model.Loan{
				DateOut: date(2024, time.February, 25),
				DueDate: due,
				DateIn:  tc.dateIn,
			}
			assert.Equal(t, tc.days, l.OverdueDays(tc.today))
			assert.Equal(t, tc.dateIn == nil, l.Open())
		})
	}
}

func addr(t time.Time) *time.Time {
	return &t
}

func TestOverdueDaysIgnoresTimeOfDay(t *testing.T) {
	tz := time.FixedZone("UTC-6", -6*3600)
	l := &model.Loan{
		DueDate: date(2024, time.March, 10),
	}
	// 2024-03-11 23:30 local is 2024-03-12 05:30 UTC
	today := time.Date(2024, time.March, 11, 23, 30, 0, 0, tz)
	assert.Equal(t, 2, l.OverdueDays(today))
}

func TestFineAmount(t *testing.T) {
	rate := model.DefaultDailyFineRate
	for _, tc := range []struct {
		days int
		amt  string
	}{
		{days: -3, amt: "0"},
		{days: 0, amt: "0"},
		{days: 1, amt: "0.25"},
		{days: 2, amt: "0.5"},
		{days: 10, amt: "2.5"},
		{days: 365, amt: "91.25"},
	} {
		expected, err := decimal.NewFromString(tc.amt)
		require.NoError(t, err)
		assert.True(
			t, expected.Equal(model.FineAmount(tc.days, rate)),
			"wrong fine for %d late days", tc.days,
		)
	}
	// a third-of-a-cent rate must round half away from zero
	odd := decimal.RequireFromString("0.333")
	assert.Equal(
		t, "1.00", model.FineAmount(3, odd).StringFixed(2),
	)
	assert.Equal(
		t, "1.67", model.FineAmount(5, odd).StringFixed(2),
	)
}

func TestParseSSN(t *testing.T) {
	for _, tc := range []struct {
		name    string
		raw     string
		ssn     string
		invalid bool
	}{
		{name: "plain digits", raw: "123456789", ssn: "123456789"},
		{name: "dashed", raw: "123-45-6789", ssn: "123456789"},
		{name: "spaced", raw: "123 45 6789", ssn: "123456789"},
		{name: "too short", raw: "12345", invalid: true},
		{name: "too long", raw: "1234567890", invalid: true},
		{name: "empty", raw: "", invalid: true},
		{name: "letters only", raw: "abc-de-fghi", invalid: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ssn, err := model.ParseSSN(tc.raw)
			if tc.invalid {
				assert.ErrorIs(t, err, model.ErrMalformedSSN)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.ssn, ssn)
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	for _, tc := range []struct {
		raw, phone string
	}{
		{raw: "(217) 555-0134", phone: "2175550134"},
		{raw: "217.555.0199 ext. 12", phone: "2175550199"},
		{raw: "no digits", phone: ""},
		{raw: "", phone: ""},
	} {
		assert.Equal(
			t, tc.phone, model.NormalizePhone(tc.raw),
			"normalizing %q", tc.raw,
		)
	}
}

func TestDate(t *testing.T) {
	tz := time.FixedZone("UTC+3", 3*3600)
	at := time.Date(2024, time.March, 11, 1, 30, 0, 0, tz)
	// 2024-03-11 01:30 local is still 2024-03-10 in UTC
	assert.Equal(t, date(2024, time.March, 10), model.Date(at))
}
