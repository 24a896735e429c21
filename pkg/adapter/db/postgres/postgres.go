// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres adapts the pkg/core/repo connection pool,
// connection, and transaction interfaces to a PostgreSQL DBMS using
// the GORM framework. Repository packages, named like loansrp, build
// their entity specific queries on top of the Conn and Tx types of
// this package.
package postgres
