// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package borrowersrs realizes the borrowers resource, allowing new
// borrowers to be registered through the REST API.
package borrowersrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/libweb/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/libweb/pkg/core/usecase/borrowersuc"
)

type resource struct {
	borrowers *borrowersuc.UseCase
}

// Register instantiates a resource adapting the borrower registry use
// case instance with the relevant REST APIs including:
//  1. POST request to /api/libweb/v1/borrowers
//     in order to register a borrower and obtain its card number.
func Register(r *gin.RouterGroup, borrowers *borrowersuc.UseCase) {
	rs := &resource{borrowers: borrowers}
	r.POST("borrowers", rs.RegisterBorrower)
}

type registerReq struct {
	Name    string `form:"name" binding:"required,max=100"`
	SSN     string `form:"ssn" binding:"required"`
	Address string `form:"address" binding:"required,max=200"`
	Phone   string `form:"phone" binding:"omitempty"`
}

func (rs *resource) RegisterBorrower(c *gin.Context) {
	req := &registerReq{}
	if ok := serdser.Bind(c, req, binding.Form); !ok {
		return
	}
	cardID, err := rs.borrowers.Register(
		c, req.Name, req.SSN, req.Address, req.Phone,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"card_id": cardID})
}
