// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// By the way, it is acceptable to annotate structs in this package with
// multiple frameworks dependent tags (e.g., as required by ORM
// libraries) since adding more tags does not complicate definition of
// a struct, but can prevent unnecessary structs duplication.
package model

// Book models one physical book copy of the library catalog.
// The Borrowed flag is a denormalized cache of "this ISBN has an open
// loan" and is written exclusively by the lending use cases, in the
// same transaction which creates or closes the corresponding loan.
type Book struct {
	ISBN     string // international standard book number, catalog key
	Title    string
	Borrowed bool // true if and only if an open loan exists
}
