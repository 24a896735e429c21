// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/momeni/libweb/pkg/adapter/config"
	"github.com/momeni/libweb/pkg/adapter/db/postgres/booksrp"
	"github.com/momeni/libweb/pkg/adapter/db/postgres/borrowersrp"
	"github.com/momeni/libweb/pkg/adapter/db/postgres/finesrp"
	"github.com/momeni/libweb/pkg/adapter/db/postgres/loansrp"
	"github.com/momeni/libweb/pkg/adapter/restful/gin/booksrs"
	"github.com/momeni/libweb/pkg/adapter/restful/gin/borrowersrs"
	"github.com/momeni/libweb/pkg/adapter/restful/gin/finesrs"
	"github.com/momeni/libweb/pkg/adapter/restful/gin/loansrs"
	"github.com/momeni/libweb/pkg/core/repo"
	"github.com/momeni/libweb/pkg/core/usecase/booksuc"
	"github.com/momeni/libweb/pkg/core/usecase/borrowersuc"
)

// Register instantiates relevant repositories and use cases based on
// the u configuration settings. The p connections pool is passed to
// the use case instances, so they may acquire/release connections
// and transactions on demand. These connections/transactions will be
// passed to the repositories later in order to run relevant queries on
// them and accomplish those use cases. Each use case package is named
// like lendinguc and each repository package is named like loansrp.
// Register instantiates a series of "resource" structs, from packages
// which are named like loansrs, in order to adapt the use cases
// interfaces with the REST APIs. These resources are registered as
// request handlers using the e gin-gonic engine instance.
// Possible errors will be returned after possible wrapping.
func Register(e *gin.Engine, p repo.Pool, u config.Usecases) error {
	booksRepo := booksrp.New()
	borrowersRepo := borrowersrp.New()
	loansRepo := loansrp.New()
	finesRepo := finesrp.New()

	lending, err := u.Lending.NewUseCase(
		p, booksRepo, borrowersRepo, loansRepo, finesRepo,
	)
	if err != nil {
		return fmt.Errorf("creating lending use case: %w", err)
	}
	catalog := booksuc.New(p, booksRepo)
	registry := borrowersuc.New(p, borrowersRepo)

	r := e.Group("/api/libweb/v1")
	loansrs.Register(r, lending)
	finesrs.Register(r, lending)
	booksrs.Register(r, catalog)
	borrowersrs.Register(r, registry)
	return nil
}
