// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/momeni/libweb/internal/test/dbcontainer"
	"github.com/momeni/libweb/pkg/adapter/config"
	"github.com/momeni/libweb/pkg/adapter/db/postgres"
	"github.com/momeni/libweb/pkg/adapter/db/postgres/booksrp"
	"github.com/momeni/libweb/pkg/adapter/db/postgres/borrowersrp"
	"github.com/momeni/libweb/pkg/adapter/db/postgres/finesrp"
	"github.com/momeni/libweb/pkg/adapter/db/postgres/loansrp"
	"github.com/momeni/libweb/pkg/adapter/restful/gin"
	"github.com/momeni/libweb/pkg/adapter/restful/gin/routes"
	"github.com/momeni/libweb/pkg/core/cerr"
	"github.com/momeni/libweb/pkg/core/repo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type IntegrationGinTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pg   *sqltestutil.PostgresContainer
	Pool *postgres.Pool
	Gin  *gin.Engine
}

func TestIntegrationGinTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationGinTestSuite{
		Ctx:  ctx,
		Pg:   pg,
		Pool: pool,
	})
}

func (igts *IntegrationGinTestSuite) SetupSuite() {
	sql, err := os.ReadFile("testdata/schema.sql")
	igts.Require().NoError(err, "failed to read schema.sql file")
	err = igts.Pool.Conn(
		igts.Ctx, func(ctx context.Context, c repo.Conn) error {
			_, err := c.Exec(ctx, string(sql))
			return err
		},
	)
	igts.Require().NoError(err, "failed to create schema contents")

	igts.Gin = gin.New(gin.Logger(), gin.Recovery())
	igts.Require().NotNil(igts.Gin, "cannot instantiate Gin engine")
	err = routes.Register(igts.Gin, igts.Pool, config.Usecases{})
	igts.Require().NoError(err, "failed to register Gin routes")
}

func stringAddr(s string) *string {
	return &s
}

func urlEncoded(m map[string]string) io.Reader {
	u := url.Values{}
	for k, v := range m {
		u.Set(k, v)
	}
	return strings.NewReader(u.Encode())
}

func today() string {
	return time.Now().UTC().Format(time.DateOnly)
}

func daysFromNow(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format(time.DateOnly)
}

func (igts *IntegrationGinTestSuite) sendReqRecvResp(
	w *httptest.ResponseRecorder, req *http.Request, res any,
) {
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")
	igts.Gin.ServeHTTP(w, req)
	b := w.Body.Bytes()
	igts.NoError(json.Unmarshal(b, res), "body is not json")
}

func (igts *IntegrationGinTestSuite) assertOptContains(
	expectedPart *string, seen []string, msgAndArgs ...any,
) bool {
	if expectedPart == nil {
		return true
	}
	if !igts.Equal(1, len(seen), msgAndArgs...) {
		return false
	}
	return igts.Contains(seen[0], *expectedPart, msgAndArgs...)
}

func (igts *IntegrationGinTestSuite) createBook(
	isbn, title string, borrowed bool,
) {
	err := igts.Pool.Conn(
		igts.Ctx, func(ctx context.Context, c repo.Conn) error {
			count, err := c.Exec(
				ctx,
				`INSERT INTO books(isbn, title, borrowed)
VALUES ($1, $2, $3)`,
				isbn, title, borrowed,
			)
			igts.Equal(int64(1), count, "tried to INSERT one book")
			return err
		},
	)
	igts.Require().NoError(err, "failed to create initial book in DB")
}

func (igts *IntegrationGinTestSuite) createBorrower(
	cardID int64, ssn, name string,
) {
	err := igts.Pool.Conn(
		igts.Ctx, func(ctx context.Context, c repo.Conn) error {
			count, err := c.Exec(
				ctx,
				`INSERT INTO borrowers(card_id, ssn, name, address)
VALUES ($1, $2, $3, $4)`,
				cardID, ssn, name, "12 Test Ln, Denton, TX",
			)
			igts.Equal(int64(1), count, "tried to INSERT one borrower")
			return err
		},
	)
	igts.Require().NoError(
		err, "failed to create initial borrower in DB",
	)
}

// createLoan inserts a loan directly, so tests can fabricate overdue
// or closed loans with dates in the past. An open loan also marks the
// book copy as borrowed, as the checkout operation would.
func (igts *IntegrationGinTestSuite) createLoan(
	isbn string, cardID int64, dateOut, dueDate string, dateIn *string,
) uuid.UUID {
	loanID := uuid.New()
	err := igts.Pool.Conn(
		igts.Ctx, func(ctx context.Context, c repo.Conn) error {
			count, err := c.Exec(
				ctx,
				`INSERT INTO book_loans
(loan_id, isbn, card_id, date_out, due_date, date_in)
VALUES ($1, $2, $3, $4, $5, $6)`,
				loanID, isbn, cardID, dateOut, dueDate, dateIn,
			)
			igts.Equal(int64(1), count, "tried to INSERT one loan")
			if err != nil || dateIn != nil {
				return err
			}
			_, err = c.Exec(
				ctx,
				`UPDATE books SET borrowed=TRUE WHERE isbn=$1`,
				isbn,
			)
			return err
		},
	)
	igts.Require().NoError(err, "failed to create initial loan in DB")
	return loanID
}

func (igts *IntegrationGinTestSuite) createFine(
	loanID uuid.UUID, amount string, paid bool,
) {
	err := igts.Pool.Conn(
		igts.Ctx, func(ctx context.Context, c repo.Conn) error {
			count, err := c.Exec(
				ctx,
				`INSERT INTO fines(loan_id, fine_amt, paid)
VALUES ($1, $2, $3)`,
				loanID, amount, paid,
			)
			igts.Equal(int64(1), count, "tried to INSERT one fine")
			return err
		},
	)
	igts.Require().NoError(err, "failed to create initial fine in DB")
}

type errResp struct {
	Code   string
	Detail string
	Amount string
}

func (igts *IntegrationGinTestSuite) TestBadRequest() {
	missingLoanID := uuid.New()
	for _, tc := range []struct {
		name           string
		method, path   string
		body           io.Reader
		detail         *string
		isbn, cardID   *string
		op, name_, ssn *string
	}{
		{
			name:   "checkout no body",
			method: http.MethodPost,
			path:   "/api/libweb/v1/loans",
			body:   nil,
			detail: stringAddr("missing form body"),
		},
		{
			name:   "checkout empty body",
			method: http.MethodPost,
			path:   "/api/libweb/v1/loans",
			body:   urlEncoded(nil),
			isbn:   stringAddr("failed on the 'required' tag"),
			cardID: stringAddr("failed on the 'required' tag"),
		},
		{
			name:   "checkout long isbn",
			method: http.MethodPost,
			path:   "/api/libweb/v1/loans",
			body: urlEncoded(map[string]string{
				"isbn":    "01234567890",
				"card_id": "1",
			}),
			isbn: stringAddr("failed on the 'max' tag"),
		},
		{
			name:   "checkout negative card",
			method: http.MethodPost,
			path:   "/api/libweb/v1/loans",
			body: urlEncoded(map[string]string{
				"isbn":    "0195153448",
				"card_id": "-3",
			}),
			cardID: stringAddr("failed on the 'gt' tag"),
		},
		{
			name:   "loan update invalid op",
			method: http.MethodPatch,
			path:   "/api/libweb/v1/loans/" + missingLoanID.String(),
			body: urlEncoded(map[string]string{
				"op": "renew",
			}),
			op: stringAddr("failed on the 'oneof' tag"),
		},
		{
			name:   "loan update no op",
			method: http.MethodPatch,
			path:   "/api/libweb/v1/loans/" + missingLoanID.String(),
			body:   urlEncoded(nil),
			op:     stringAddr("failed on the 'required' tag"),
		},
		{
			name:   "loan update malformed lid",
			method: http.MethodPatch,
			path:   "/api/libweb/v1/loans/not-a-uuid",
			body: urlEncoded(map[string]string{
				"op": "checkin",
			}),
			detail: stringAddr("failed on the 'uuid4' tag"),
		},
		{
			name:   "pay fines without op",
			method: http.MethodPatch,
			path:   "/api/libweb/v1/borrowers/1/fines",
			body:   urlEncoded(nil),
			op:     stringAddr("The PATCH request requires op=pay."),
		},
		{
			name:   "register without ssn",
			method: http.MethodPost,
			path:   "/api/libweb/v1/borrowers",
			body: urlEncoded(map[string]string{
				"name":    "Grace Hopper",
				"address": "7 Compiler Ct, Arlington, VA",
			}),
			ssn: stringAddr("failed on the 'required' tag"),
		},
	} {
		igts.Run(tc.name, func() {
			w := httptest.NewRecorder()
			req, err := http.NewRequest(tc.method, tc.path, tc.body)
			igts.Require().NoError(err, "cannot create request")

			// binding errors are keyed by the Go field name
			res := &struct {
				Detail string
				ISBN   []string
				CardID []string
				Op     []string
				Name   []string
				SSN    []string
				LoanID []string
			}{}
			igts.sendReqRecvResp(w, req, res)

			igts.Equal(400, w.Code)
			if tc.detail != nil {
				found := strings.Contains(res.Detail, *tc.detail)
				for _, lid := range res.LoanID {
					found = found ||
						strings.Contains(lid, *tc.detail)
				}
				igts.True(found, "wrong detail: %v / %v",
					res.Detail, res.LoanID)
			}
			igts.assertOptContains(tc.isbn, res.ISBN, "wrong isbn")
			igts.assertOptContains(tc.cardID, res.CardID, "wrong card_id")
			igts.assertOptContains(tc.op, res.Op, "wrong op")
			igts.assertOptContains(tc.name_, res.Name, "wrong name")
			igts.assertOptContains(tc.ssn, res.SSN, "wrong ssn")
		})
	}
}

func (igts *IntegrationGinTestSuite) TestNotFound() {
	igts.createBook("1111111111", "A Known Book", false)
	igts.createBorrower(101, "101000101", "Known Borrower")
	missingLoanID := uuid.New()
	for _, tc := range []struct {
		name         string
		method, path string
		body         io.Reader
		code         string
	}{
		{
			name:   "checkout unknown book",
			method: http.MethodPost,
			path:   "/api/libweb/v1/loans",
			body: urlEncoded(map[string]string{
				"isbn":    "encyclopd",
				"card_id": "101",
			}),
			code: cerr.CodeBookNotFound,
		},
		{
			name:   "checkout unknown borrower",
			method: http.MethodPost,
			path:   "/api/libweb/v1/loans",
			body: urlEncoded(map[string]string{
				"isbn":    "1111111111",
				"card_id": "424242",
			}),
			code: cerr.CodeBorrowerNotFound,
		},
		{
			name:   "checkin unknown loan",
			method: http.MethodPatch,
			path:   "/api/libweb/v1/loans/" + missingLoanID.String(),
			body: urlEncoded(map[string]string{
				"op": "checkin",
			}),
			code: cerr.CodeLoanNotFound,
		},
		{
			name:   "fines of unknown borrower",
			method: http.MethodGet,
			path:   "/api/libweb/v1/borrowers/424242/fines",
			body:   nil,
			code:   cerr.CodeBorrowerNotFound,
		},
		{
			name:   "availability of unknown book",
			method: http.MethodGet,
			path:   "/api/libweb/v1/books/encyclopd",
			body:   nil,
			code:   cerr.CodeBookNotFound,
		},
	} {
		igts.Run(tc.name, func() {
			w := httptest.NewRecorder()
			req, err := http.NewRequest(tc.method, tc.path, tc.body)
			igts.Require().NoError(err, "cannot create request")

			res := &errResp{}
			igts.sendReqRecvResp(w, req, res)

			igts.Equal(404, w.Code)
			igts.Equal(tc.code, res.Code, "wrong code")
		})
	}
}

type loanResp struct {
	LoanID  string  `json:"loan_id"`
	ISBN    string  `json:"isbn"`
	CardID  int64   `json:"card_id"`
	DateOut string  `json:"date_out"`
	DueDate string  `json:"due_date"`
	DateIn  *string `json:"date_in"`
}

func (igts *IntegrationGinTestSuite) checkout(
	isbn string, cardID string,
) (*httptest.ResponseRecorder, *loanResp) {
	w := httptest.NewRecorder()
	req, err := http.NewRequest(
		http.MethodPost,
		"/api/libweb/v1/loans",
		urlEncoded(map[string]string{
			"isbn":    isbn,
			"card_id": cardID,
		}),
	)
	igts.Require().NoError(err, "cannot create POST request")
	res := &loanResp{}
	igts.sendReqRecvResp(w, req, res)
	return w, res
}

func (igts *IntegrationGinTestSuite) checkin(
	loanID uuid.UUID,
) (*httptest.ResponseRecorder, *loanResp) {
	w := httptest.NewRecorder()
	req, err := http.NewRequest(
		http.MethodPatch,
		"/api/libweb/v1/loans/"+loanID.String(),
		urlEncoded(map[string]string{
			"op": "checkin",
		}),
	)
	igts.Require().NoError(err, "cannot create PATCH request")
	res := &loanResp{}
	igts.sendReqRecvResp(w, req, res)
	return w, res
}

func (igts *IntegrationGinTestSuite) TestCheckoutRoundTrip() {
	igts.createBook("2020202020", "The Checkout Round Trip", false)
	igts.createBorrower(201, "201000201", "Round Tripper")

	w, loan := igts.checkout("2020202020", "201")
	igts.Require().Equal(200, w.Code)
	igts.Equal("2020202020", loan.ISBN)
	igts.Equal(int64(201), loan.CardID)
	igts.Equal(today(), loan.DateOut, "wrong date_out")
	igts.Equal(daysFromNow(14), loan.DueDate, "wrong due_date")
	igts.Nil(loan.DateIn, "a fresh loan must be open")
	loanID, err := uuid.Parse(loan.LoanID)
	igts.Require().NoError(err, "loan_id is not UUID")

	// the copy is now checked out
	w = httptest.NewRecorder()
	req, err := http.NewRequest(
		http.MethodGet, "/api/libweb/v1/books/2020202020", nil,
	)
	igts.Require().NoError(err, "cannot create GET request")
	book := &struct {
		ISBN      string `json:"isbn"`
		Title     string `json:"title"`
		Available bool   `json:"available"`
	}{}
	igts.sendReqRecvResp(w, req, book)
	igts.Equal(200, w.Code)
	igts.False(book.Available, "borrowed copy reported available")

	// the same copy may not be checked out twice
	igts.createBorrower(202, "202000202", "Second In Line")
	w, _ = igts.checkout("2020202020", "202")
	igts.Equal(400, w.Code, "double checkout must be rejected")

	// checkin closes the loan and releases the copy
	w, loan = igts.checkin(loanID)
	igts.Require().Equal(200, w.Code)
	igts.Require().NotNil(loan.DateIn, "checked in loan must be closed")
	igts.Equal(today(), *loan.DateIn, "wrong date_in")

	w = httptest.NewRecorder()
	req, err = http.NewRequest(
		http.MethodGet, "/api/libweb/v1/books/2020202020", nil,
	)
	igts.Require().NoError(err, "cannot create GET request")
	igts.sendReqRecvResp(w, req, book)
	igts.Equal(200, w.Code)
	igts.True(book.Available, "returned copy reported unavailable")

	// a closed loan never reopens
	w = httptest.NewRecorder()
	req, err = http.NewRequest(
		http.MethodPatch,
		"/api/libweb/v1/loans/"+loanID.String(),
		urlEncoded(map[string]string{"op": "checkin"}),
	)
	igts.Require().NoError(err, "cannot create PATCH request")
	res := &errResp{}
	igts.sendReqRecvResp(w, req, res)
	igts.Equal(400, w.Code)
	igts.Equal(cerr.CodeAlreadyCheckedIn, res.Code, "wrong code")

	// an in time return accrues no fine
	w = httptest.NewRecorder()
	req, err = http.NewRequest(
		http.MethodGet, "/api/libweb/v1/borrowers/201/fines", nil,
	)
	igts.Require().NoError(err, "cannot create GET request")
	fines := &struct {
		CardID      int64  `json:"card_id"`
		UnpaidTotal string `json:"unpaid_total"`
	}{}
	igts.sendReqRecvResp(w, req, fines)
	igts.Equal(200, w.Code)
	igts.Equal("0.00", fines.UnpaidTotal, "in time return accrued a fine")
}

func (igts *IntegrationGinTestSuite) TestLoanLimit() {
	igts.createBorrower(301, "301000301", "Avid Reader")
	for i, isbn := range []string{
		"3030303031", "3030303032", "3030303033",
	} {
		igts.createBook(isbn, "Open Loan Tome", false)
		w, _ := igts.checkout(isbn, "301")
		igts.Require().Equal(200, w.Code, "checkout %d failed", i+1)
	}
	igts.createBook("3030303034", "One Tome Too Many", false)
	w := httptest.NewRecorder()
	req, err := http.NewRequest(
		http.MethodPost,
		"/api/libweb/v1/loans",
		urlEncoded(map[string]string{
			"isbn":    "3030303034",
			"card_id": "301",
		}),
	)
	igts.Require().NoError(err, "cannot create POST request")
	res := &errResp{}
	igts.sendReqRecvResp(w, req, res)
	igts.Equal(400, w.Code)
	igts.Equal(cerr.CodeLoanLimitExceeded, res.Code, "wrong code")
}

func (igts *IntegrationGinTestSuite) TestOverdueFinesLifecycle() {
	igts.createBook("4040404040", "Ten Days Late", false)
	igts.createBorrower(401, "401000401", "Late Returner")
	loanID := igts.createLoan(
		"4040404040", 401, daysFromNow(-24), daysFromNow(-10), nil,
	)

	// paying fines while a book is still out is rejected
	w := httptest.NewRecorder()
	req, err := http.NewRequest(
		http.MethodPatch,
		"/api/libweb/v1/borrowers/401/fines",
		urlEncoded(map[string]string{"op": "pay"}),
	)
	igts.Require().NoError(err, "cannot create PATCH request")
	res := &errResp{}
	igts.sendReqRecvResp(w, req, res)
	igts.Equal(400, w.Code)
	igts.Equal(cerr.CodeStillCheckedOut, res.Code, "wrong code")

	// returning 10 days late accrues a 2.50 fine
	w, loan := igts.checkin(loanID)
	igts.Require().Equal(200, w.Code)
	igts.Require().NotNil(loan.DateIn, "checked in loan must be closed")

	w = httptest.NewRecorder()
	req, err = http.NewRequest(
		http.MethodGet, "/api/libweb/v1/borrowers/401/fines", nil,
	)
	igts.Require().NoError(err, "cannot create GET request")
	fines := &struct {
		CardID      int64  `json:"card_id"`
		UnpaidTotal string `json:"unpaid_total"`
	}{}
	igts.sendReqRecvResp(w, req, fines)
	igts.Equal(200, w.Code)
	igts.Equal("2.50", fines.UnpaidTotal, "wrong unpaid total")

	// unpaid fines block further checkouts, reporting the owed amount
	igts.createBook("4040404041", "No Loans While Owing", false)
	w = httptest.NewRecorder()
	req, err = http.NewRequest(
		http.MethodPost,
		"/api/libweb/v1/loans",
		urlEncoded(map[string]string{
			"isbn":    "4040404041",
			"card_id": "401",
		}),
	)
	igts.Require().NoError(err, "cannot create POST request")
	res = &errResp{}
	igts.sendReqRecvResp(w, req, res)
	igts.Equal(400, w.Code)
	igts.Equal(cerr.CodeUnpaidFines, res.Code, "wrong code")
	igts.Equal("2.50", res.Amount, "wrong owed amount")

	// settling the fines unblocks the borrower
	w = httptest.NewRecorder()
	req, err = http.NewRequest(
		http.MethodPatch,
		"/api/libweb/v1/borrowers/401/fines",
		urlEncoded(map[string]string{"op": "pay"}),
	)
	igts.Require().NoError(err, "cannot create PATCH request")
	paid := &struct {
		CardID  int64 `json:"card_id"`
		Settled int64 `json:"settled"`
	}{}
	igts.sendReqRecvResp(w, req, paid)
	igts.Equal(200, w.Code)
	igts.Equal(int64(1), paid.Settled, "wrong settled count")

	w, _ = igts.checkout("4040404041", "401")
	igts.Equal(200, w.Code, "checkout after settlement failed")

	// paid fines stay settled
	w = httptest.NewRecorder()
	req, err = http.NewRequest(
		http.MethodGet, "/api/libweb/v1/borrowers/401/fines", nil,
	)
	igts.Require().NoError(err, "cannot create GET request")
	igts.sendReqRecvResp(w, req, fines)
	igts.Equal(200, w.Code)
	igts.Equal("0.00", fines.UnpaidTotal, "settled fines reappeared")
}

func (igts *IntegrationGinTestSuite) TestRefreshFines() {
	// open loan, four days past due, with no fine row yet
	igts.createBook("5050505050", "Accruing As We Speak", false)
	igts.createBorrower(501, "501000501", "Slow Reader")
	igts.createLoan(
		"5050505050", 501, daysFromNow(-18), daysFromNow(-4), nil,
	)

	// closed overdue loan whose fine was fabricated and settled at an
	// amount which a recomputation would never produce
	igts.createBook("5050505051", "Settled Long Ago", false)
	igts.createBorrower(502, "502000502", "Settled Reader")
	closedID := igts.createLoan(
		"5050505051", 502, daysFromNow(-40), daysFromNow(-26),
		stringAddr(daysFromNow(-20)),
	)
	igts.createFine(closedID, "9.75", true)

	lending, err := config.Lending{}.NewUseCase(
		igts.Pool,
		booksrp.New(),
		borrowersrp.New(),
		loansrp.New(),
		finesrp.New(),
	)
	igts.Require().NoError(err, "cannot instantiate lending use case")
	n, err := lending.RefreshFines(igts.Ctx)
	igts.Require().NoError(err, "refreshing fines failed")
	igts.GreaterOrEqual(n, 2, "both overdue loans must be visited")

	// the open loan accrued 4 * 0.25
	w := httptest.NewRecorder()
	req, err := http.NewRequest(
		http.MethodGet, "/api/libweb/v1/borrowers/501/fines", nil,
	)
	igts.Require().NoError(err, "cannot create GET request")
	fines := &struct {
		CardID      int64  `json:"card_id"`
		UnpaidTotal string `json:"unpaid_total"`
	}{}
	igts.sendReqRecvResp(w, req, fines)
	igts.Equal(200, w.Code)
	igts.Equal("1.00", fines.UnpaidTotal, "wrong refreshed total")

	// the settled fine kept its amount and its paid mark
	err = igts.Pool.Conn(
		igts.Ctx, func(ctx context.Context, c repo.Conn) error {
			rows, err := c.Query(
				ctx,
				`SELECT fine_amt, paid FROM fines WHERE loan_id = $1`,
				closedID,
			)
			if err != nil {
				return err
			}
			defer rows.Close()
			igts.Require().True(rows.Next(), "settled fine vanished")
			var amt decimal.Decimal
			var paid bool
			igts.Require().NoError(rows.Scan(&amt, &paid))
			igts.True(paid, "settled fine was reopened")
			igts.Equal(
				"9.75", amt.StringFixed(2),
				"settled fine amount was recomputed",
			)
			return rows.Err()
		},
	)
	igts.Require().NoError(err, "failed to read back the settled fine")

	// a second pass changes nothing
	_, err = lending.RefreshFines(igts.Ctx)
	igts.Require().NoError(err, "second refresh failed")
	w = httptest.NewRecorder()
	req, err = http.NewRequest(
		http.MethodGet, "/api/libweb/v1/borrowers/501/fines", nil,
	)
	igts.Require().NoError(err, "cannot create GET request")
	igts.sendReqRecvResp(w, req, fines)
	igts.Equal(200, w.Code)
	igts.Equal("1.00", fines.UnpaidTotal, "refresh is not idempotent")
}

func (igts *IntegrationGinTestSuite) TestRegisterBorrower() {
	w := httptest.NewRecorder()
	req, err := http.NewRequest(
		http.MethodPost,
		"/api/libweb/v1/borrowers",
		urlEncoded(map[string]string{
			"name":    "Grace Hopper",
			"ssn":     "501-00-0501",
			"address": "7 Compiler Ct, Arlington, VA",
			"phone":   "(703) 555-0142 ext. 9",
		}),
	)
	igts.Require().NoError(err, "cannot create POST request")
	res := &struct {
		CardID int64 `json:"card_id"`
	}{}
	igts.sendReqRecvResp(w, req, res)
	igts.Require().Equal(200, w.Code)
	igts.Positive(res.CardID, "card_id must be assigned")

	// one SSN gets one card
	w = httptest.NewRecorder()
	req, err = http.NewRequest(
		http.MethodPost,
		"/api/libweb/v1/borrowers",
		urlEncoded(map[string]string{
			"name":    "Grace Hopper",
			"ssn":     "501000501",
			"address": "7 Compiler Ct, Arlington, VA",
		}),
	)
	igts.Require().NoError(err, "cannot create POST request")
	dup := &errResp{}
	igts.sendReqRecvResp(w, req, dup)
	igts.Equal(400, w.Code)
	igts.Equal(cerr.CodeSSNRegistered, dup.Code, "wrong code")

	// an SSN needs exactly nine digits
	w = httptest.NewRecorder()
	req, err = http.NewRequest(
		http.MethodPost,
		"/api/libweb/v1/borrowers",
		urlEncoded(map[string]string{
			"name":    "Short Handed",
			"ssn":     "12345",
			"address": "5 Short St, Austin, TX",
		}),
	)
	igts.Require().NoError(err, "cannot create POST request")
	bad := &errResp{}
	igts.sendReqRecvResp(w, req, bad)
	igts.Equal(400, w.Code)
	igts.Equal(cerr.CodeBadRequest, bad.Code, "wrong code")
}
