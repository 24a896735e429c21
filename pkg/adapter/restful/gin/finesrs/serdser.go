package finesrs

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/libweb/pkg/adapter/restful/gin/serdser"
)

type rawFinesReq struct {
	CardID string `uri:"cid" binding:"required,number"`
	Op     string `form:"op" binding:"omitempty,oneof=pay"`
}

type finesReq struct {
	CardID int64
}

// DserFinesReq binds the fines request of both APIs. The op form
// field is demanded for the mutating PATCH request only; the GET
// request has no body.
func (rs *resource) DserFinesReq(c *gin.Context, mutating bool) *finesReq {
	req := &rawFinesReq{}
	if ok := serdser.BindURI(c, req); !ok {
		return nil
	}
	var errs map[string][]string
	if mutating {
		if ok := serdser.Bind(c, req, binding.Form); !ok {
			return nil
		}
		if !serdser.Assert(&errs, req.Op == "pay", "op", "The PATCH request requires op=pay.") {
			c.JSON(http.StatusBadRequest, errs)
			return nil
		}
	}
	cardID, err := strconv.ParseInt(req.CardID, 10, 64)
	if !serdser.Assert(&errs, err == nil && cardID > 0, "cid", "Path param cid is not a positive integer.") {
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return &finesReq{CardID: cardID}
}
