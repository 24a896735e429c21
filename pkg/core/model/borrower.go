// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"strings"
)

// Borrower models a registered library member. CardID is assigned by
// the storage layer as a monotonically increasing integer and is the
// identity which all lending operations refer to. SSN is kept as a
// string of exactly nine digits and is unique among all borrowers.
type Borrower struct {
	CardID  int64
	SSN     string
	Name    string
	Address string
	Phone   string // optional, at most ten digits
}

// ErrMalformedSSN is returned by ParseSSN for values which do not
// contain exactly nine digits.
var ErrMalformedSSN = errors.New("ssn must contain exactly 9 digits")

// ParseSSN strips all non-digit characters from raw and verifies that
// exactly nine digits remain, returning them as the canonical SSN
// representation. Accepted forms therefore include "123-45-6789" and
// "123 45 6789" besides the plain digit run.
func ParseSSN(raw string) (string, error) {
	digits := keepDigits(raw)
	if len(digits) != 9 {
		return "", fmt.Errorf("%w: got %d digits", ErrMalformedSSN, len(digits))
	}
	return digits, nil
}

// NormalizePhone strips all non-digit characters from raw and keeps
// the first ten digits. An empty result means no phone number.
func NormalizePhone(raw string) string {
	digits := keepDigits(raw)
	if len(digits) > 10 {
		digits = digits[:10]
	}
	return digits
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
