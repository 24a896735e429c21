package loansrs

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/libweb/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/libweb/pkg/core/model"
)

type checkoutReq struct {
	ISBN   string `form:"isbn" binding:"required,max=10"`
	CardID int64  `form:"card_id" binding:"required,gt=0"`
}

type rawLoanUpdateReq struct {
	LoanID string `uri:"lid" binding:"required,uuid4"`
	Op     string `form:"op" binding:"required,oneof=checkin"`
}

type loanUpdateReq struct {
	LoanID uuid.UUID
	Op     string
}

// SerLoan represents a loan in REST API responses, with its calendar
// dates serialized in the ISO-8601 date format without a time part.
type SerLoan struct {
	LoanID  string  `json:"loan_id"`
	ISBN    string  `json:"isbn"`
	CardID  int64   `json:"card_id"`
	DateOut string  `json:"date_out"`
	DueDate string  `json:"due_date"`
	DateIn  *string `json:"date_in"`
}

func serLoan(l *model.Loan) *SerLoan {
	s := &SerLoan{
		LoanID:  l.LoanID.String(),
		ISBN:    l.ISBN,
		CardID:  l.CardID,
		DateOut: l.DateOut.Format(time.DateOnly),
		DueDate: l.DueDate.Format(time.DateOnly),
	}
	if l.DateIn != nil {
		in := l.DateIn.Format(time.DateOnly)
		s.DateIn = &in
	}
	return s
}

func (rs *resource) DserCheckoutReq(c *gin.Context) *checkoutReq {
	req := &checkoutReq{}
	if ok := serdser.Bind(c, req, binding.Form); !ok {
		return nil
	}
	return req
}

func (rs *resource) DserLoanUpdateReq(c *gin.Context) *loanUpdateReq {
	req := &rawLoanUpdateReq{}
	if ok := serdser.BindURI(c, req); !ok {
		return nil
	}
	if ok := serdser.Bind(c, req, binding.Form); !ok {
		return nil
	}
	val := &loanUpdateReq{Op: req.Op}
	var err error
	val.LoanID, err = uuid.Parse(req.LoanID)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "lid", "Path param lid is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return val
}
