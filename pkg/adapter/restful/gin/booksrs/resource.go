// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package booksrs realizes the books resource, exposing the catalog
// availability lookup through the REST API.
package booksrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/libweb/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/libweb/pkg/core/usecase/booksuc"
)

type resource struct {
	catalog *booksuc.UseCase
}

// Register instantiates a resource adapting the catalog use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/libweb/v1/books/:isbn
//     in order to query a book and its availability.
func Register(r *gin.RouterGroup, catalog *booksuc.UseCase) {
	rs := &resource{catalog: catalog}
	r.GET("books/:isbn", rs.GetBook)
}

type bookReq struct {
	ISBN string `uri:"isbn" binding:"required,max=10"`
}

func (rs *resource) GetBook(c *gin.Context) {
	req := &bookReq{}
	if ok := serdser.BindURI(c, req); !ok {
		return
	}
	book, err := rs.catalog.Availability(c, req.ISBN)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"isbn":      book.ISBN,
		"title":     book.Title,
		"available": !book.Borrowed,
	})
}
