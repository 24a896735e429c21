// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package csvnorm_test

import (
	"strings"
	"testing"

	"github.com/momeni/libweb/pkg/adapter/csvnorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooks(t *testing.T) {
	src := `ISBN,Title,Authors
0195153448,Classical Mythology,Mark P. O. Morford
0002005018,Clara Callan,Richard Bruce Wright
0195153448,Classical Mythology (dup),Mark P. O. Morford
,No ISBN At All,Nobody
01951534480XY,Too Long ISBN,Nobody
`
	books, err := csvnorm.Books(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "0195153448", books[0].ISBN)
	assert.Equal(t, "Classical Mythology", books[0].Title)
	assert.Equal(t, "0002005018", books[1].ISBN)
	assert.Equal(t, "Clara Callan", books[1].Title)
}

func TestBooksWithoutAuthorsColumn(t *testing.T) {
	src := `ISBN,Title
0439064864,Harry Potter and the Chamber of Secrets
`
	books, err := csvnorm.Books(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "0439064864", books[0].ISBN)
}

func TestBorrowers(t *testing.T) {
	src := `ID0000id,ssn,first_name,last_name,email,address,city,state,phone
ID000001,123-45-6789,alice,SMITH,a@x.io,12 Oak St,Springfield,Illinois,(217) 555-0134
ID000002,987654321,BOB,jones,b@x.io,9 Elm Ave,Shelbyville,IL,217.555.0199
ID000003,12345,carol,lee,c@x.io,1 Pine Rd,Ogdenville,IL,2175550111
ID000002,111223333,dave,dupe,d@x.io,2 Birch Ln,Ogdenville,IL,2175550122
ID000004,123456789,erin,same-ssn,e@x.io,3 Ash Ct,Ogdenville,IL,2175550133
`
	bs, err := csvnorm.Borrowers(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, bs, 2)

	assert.Equal(t, int64(1), bs[0].CardID)
	assert.Equal(t, "123456789", bs[0].SSN)
	assert.Equal(t, "Alice Smith", bs[0].Name)
	assert.Equal(t, "12 Oak St, Springfield, IL", bs[0].Address)
	assert.Equal(t, "2175550134", bs[0].Phone)

	assert.Equal(t, int64(2), bs[1].CardID)
	assert.Equal(t, "987654321", bs[1].SSN)
	assert.Equal(t, "Bob Jones", bs[1].Name)
}

func TestBorrowersAccentedNames(t *testing.T) {
	src := `ID0000id,ssn,first_name,last_name,email,address,city,state,phone
ID000007,777889999,émile,ZOLA,z@x.io,88 Rue Laval,Montreal,Quebec,5145550177
`
	bs, err := csvnorm.Borrowers(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, bs, 1)
	assert.Equal(t, "Émile Zola", bs[0].Name)
}

func TestBorrowersMissingCardID(t *testing.T) {
	src := `ID0000id,ssn,first_name,last_name,email,address,city,state,phone
,123456789,no,card,n@x.io,4 Fir St,Ogdenville,IL,2175550144
`
	bs, err := csvnorm.Borrowers(strings.NewReader(src))
	require.NoError(t, err)
	assert.Empty(t, bs)
}
