// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package loansrs realizes the loans resource, allowing the checkout
// and checkin REST APIs to be accepted and delegated to the lending
// use cases respectively.
package loansrs

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
// instance with the relevant REST APIs including:
//  1. POST request to /api/libweb/v1/loans
//     in order to check a book out for a borrower,
//  2. PATCH request to /api/libweb/v1/loans/:lid
//     in order to check a borrowed book back in.
func Register(r *gin.RouterGroup, lending *lendinguc.UseCase) {
	rs := &resource{lending: lending}
	r.POST("loans", rs.CheckoutBook)
	r.PATCH("loans/:lid", rs.UpdateLoan)
}

func (rs *resource) CheckoutBook(c *gin.Context) {
	req := rs.DserCheckoutReq(c)
	if req == nil {
		return
	}
	loan, err := rs.lending.Checkout(c, req.ISBN, req.CardID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serLoan(loan))
}

func (rs *resource) UpdateLoan(c *gin.Context) {
	req := rs.DserLoanUpdateReq(c)
	if req == nil {
		return
	}
	switch req.Op {
	case "checkin":
		loan, err := rs.lending.Checkin(c, req.LoanID)
		if err != nil {
			serdser.SerErr(c, err)
			return
		}
		c.JSON(http.StatusOK, serLoan(loan))
	default:
		panic("unexpected op:" + req.Op)
	}
}
