package transaction_test

import (
	"net/http"
	"testing"

	"github.com/adu-coder/nineteen/pkg/domain/transaction"
	"github.com/adu-coder/nineteen/webapi/testutils"
	"github.com/stretchr/testify/suite"
)

type TransactionTestSuite struct {
	testutils.E2ETestSuite
	user testutils.TestUser
}

func TestTransactionTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionTestSuite))
}

func (s *TransactionTestSuite) SetupTest() {
	s.E2ETestSuite.SetupTest()
	s.user = s.CreateTestUser()
}

func (s *TransactionTestSuite) path(rest string) string {
	return "/users/" + s.user.ID.String() + "/transactions" + rest
}

func (s *TransactionTestSuite) TestCreateAndList() {
	resp := s.MakeRequest(http.MethodPost, s.path(""),
		`{"title":"Coffee","amount":3.5,"isExpense":true,"tags":["food"," "],"date":"2024-05-01T08:00:00Z"}`, s.user.Token)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var tx transaction.Transaction
	s.Decode(resp, &tx)
	s.NotEmpty(tx.ID)
	s.Equal(s.user.ID, tx.UserID)
	s.Equal([]string{"food"}, tx.Tags)

	resp = s.MakeRequest(http.MethodPost, s.path(""),
		`{"title":"Salary","amount":2000,"isExpense":false,"date":"2024-05-02T08:00:00Z"}`, s.user.Token)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp = s.MakeRequest(http.MethodGet, s.path(""), "", s.user.Token)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var list []transaction.Transaction
	s.Decode(resp, &list)
	s.Require().Len(list, 2)
	s.Equal("Salary", list[0].Title, "newest first")
	s.Equal("Coffee", list[1].Title)
}

func (s *TransactionTestSuite) TestCreate_IdempotentClientID() {
	body := `{"id":"offline-1","title":"Taxi","amount":12,"isExpense":true}`
	resp := s.MakeRequest(http.MethodPost, s.path(""), body, s.user.Token)
	s.Equal(http.StatusCreated, resp.StatusCode)

	resp = s.MakeRequest(http.MethodPost, s.path(""), `{"id":"offline-1","title":"Changed","amount":99,"isExpense":true}`, s.user.Token)
	s.Equal(http.StatusOK, resp.StatusCode)
	var tx transaction.Transaction
	s.Decode(resp, &tx)
	s.Equal("Taxi", tx.Title, "a replay returns the stored record")

	var list []transaction.Transaction
	s.Decode(s.MakeRequest(http.MethodGet, s.path(""), "", s.user.Token), &list)
	s.Len(list, 1)
}

func (s *TransactionTestSuite) TestCreate_Invalid() {
	for name, body := range map[string]string{
		"missing title":  `{"amount":1}`,
		"missing amount": `{"title":"x"}`,
		"bad date":       `{"title":"x","amount":1,"date":"yesterday"}`,
	} {
		s.Run(name, func() {
			resp := s.MakeRequest(http.MethodPost, s.path(""), body, s.user.Token)
			s.Equal(http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func (s *TransactionTestSuite) TestUpdateAndDelete() {
	resp := s.MakeRequest(http.MethodPost, s.path(""), `{"id":"t1","title":"Lunch","amount":10,"isExpense":true}`, s.user.Token)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp = s.MakeRequest(http.MethodPut, s.path("/t1"), `{"amount":12.5,"tags":["food"]}`, s.user.Token)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var tx transaction.Transaction
	s.Decode(resp, &tx)
	s.Equal(12.5, tx.Amount)
	s.Equal("Lunch", tx.Title)
	s.Equal([]string{"food"}, tx.Tags)

	s.Equal(http.StatusNotFound, s.MakeRequest(http.MethodPut, s.path("/missing"), `{"amount":1}`, s.user.Token).StatusCode)

	other := s.CreateTestUser()
	s.Equal(http.StatusForbidden, s.MakeRequest(http.MethodDelete, s.path("/t1"), "", other.Token).StatusCode)

	s.Equal(http.StatusOK, s.MakeRequest(http.MethodDelete, s.path("/t1"), "", s.user.Token).StatusCode)
	s.Equal(http.StatusNotFound, s.MakeRequest(http.MethodDelete, s.path("/t1"), "", s.user.Token).StatusCode)
}
