// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package csvnorm normalizes the raw source catalogs (books.csv and
// borrowers.csv) into model rows which the seeding use cases can
// store. Rows with a missing key, a duplicated key, or an unusable
// SSN are dropped rather than failing the whole import, matching how
// the source catalogs are actually curated.
package csvnorm

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/momeni/libweb/pkg/core/model"
)

// header maps the column names of a CSV header row to their indices.
type header map[string]int

func readHeader(r *csv.Reader) (header, error) {
	row, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header row: %w", err)
	}
	h := make(header, len(row))
	for i, name := range row {
		h[strings.TrimSpace(name)] = i
	}
	return h, nil
}

func (h header) field(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Books reads the raw books catalog with at least the ISBN and Title
// columns, dropping rows with an empty or over-long ISBN and keeping
// the first row of each ISBN.
func Books(src io.Reader) ([]model.Book, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	var books []model.Book
	seen := make(map[string]bool)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading books row: %w", err)
		}
		isbn := h.field(row, "ISBN")
		if isbn == "" || len(isbn) > 10 || seen[isbn] {
			continue
		}
		seen[isbn] = true
		books = append(books, model.Book{
			ISBN:  isbn,
			Title: h.field(row, "Title"),
		})
	}
	return books, nil
}

// Borrowers reads the raw borrowers catalog with the ID0000id, ssn,
// first_name, last_name, address, city, state, and phone columns.
// Rows without a usable card number or a nine digits SSN are dropped,
// as are rows repeating an already seen card number or SSN.
func Borrowers(src io.Reader) ([]model.Borrower, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	var borrowers []model.Borrower
	seenCard := make(map[int64]bool)
	seenSSN := make(map[string]bool)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading borrowers row: %w", err)
		}
		cardID, err := parseCardID(h.field(row, "ID0000id"))
		if err != nil || seenCard[cardID] {
			continue
		}
		ssn, err := model.ParseSSN(h.field(row, "ssn"))
		if err != nil || seenSSN[ssn] {
			continue
		}
		name := strings.TrimSpace(titleCase(h.field(row, "first_name")) +
			" " + titleCase(h.field(row, "last_name")))
		borrowers = append(borrowers, model.Borrower{
			CardID:  cardID,
			SSN:     ssn,
			Name:    name,
			Address: joinAddress(
				h.field(row, "address"),
				h.field(row, "city"),
				stateCode(h.field(row, "state")),
			),
			Phone: model.NormalizePhone(h.field(row, "phone")),
		})
		seenCard[cardID] = true
		seenSSN[ssn] = true
	}
	return borrowers, nil
}

// parseCardID extracts the numeric card number from identifiers like
// "ID000023" which the source catalog uses.
func parseCardID(raw string) (int64, error) {
	digits := strings.TrimFunc(raw, func(r rune) bool {
		return r < '0' || r > '9'
	})
	if digits == "" {
		return 0, fmt.Errorf("no digits in card id %q", raw)
	}
	return strconv.ParseInt(digits, 10, 64)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		// the initial letter may span multiple bytes
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}

func stateCode(s string) string {
	if len(s) > 2 {
		s = s[:2]
	}
	return strings.ToUpper(s)
}

func joinAddress(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}
