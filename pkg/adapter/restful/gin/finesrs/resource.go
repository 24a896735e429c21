// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package finesrs realizes the fines resource of a borrower, allowing
// the unpaid total to be queried and all unpaid fines to be settled.
package finesrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/libweb/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/libweb/pkg/core/usecase/lendinguc"
)

type resource struct {
	lending *lendinguc.UseCase
}

// Register instantiates a resource adapting the lending use case
// instance with the fines REST APIs including:
//  1. GET request to /api/libweb/v1/borrowers/:cid/fines
//     in order to query the unpaid fines total of a borrower,
//  2. PATCH request to /api/libweb/v1/borrowers/:cid/fines
//     in order to pay all fines of a borrower.
func Register(r *gin.RouterGroup, lending *lendinguc.UseCase) {
	rs := &resource{lending: lending}
	r.GET("borrowers/:cid/fines", rs.GetFines)
	r.PATCH("borrowers/:cid/fines", rs.UpdateFines)
}

func (rs *resource) GetFines(c *gin.Context) {
	req := rs.DserFinesReq(c, false)
	if req == nil {
		return
	}
	total, err := rs.lending.UnpaidFines(c, req.CardID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"card_id":      req.CardID,
		"unpaid_total": total.StringFixed(2),
	})
}

func (rs *resource) UpdateFines(c *gin.Context) {
	req := rs.DserFinesReq(c, true)
	if req == nil {
		return
	}
	settled, err := rs.lending.PayFines(c, req.CardID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"card_id": req.CardID,
		"settled": settled,
	})
}
