package friend_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/adu-coder/nineteen/pkg/domain/account"
	"github.com/adu-coder/nineteen/pkg/domain/transaction"
	"github.com/adu-coder/nineteen/webapi/friend"
	"github.com/adu-coder/nineteen/webapi/testutils"
	"github.com/stretchr/testify/suite"
)

type FriendTestSuite struct {
	testutils.E2ETestSuite
}

func TestFriendTestSuite(t *testing.T) {
	suite.Run(t, new(FriendTestSuite))
}

func userPath(u testutils.TestUser, rest string) string {
	return "/users/" + u.ID.String() + rest
}

func (s *FriendTestSuite) addTransaction(u testutils.TestUser, title string, amount float64, expense bool, tag string) {
	body := fmt.Sprintf(`{"title":%q,"amount":%v,"isExpense":%t,"tags":[%q]}`, title, amount, expense, tag)
	resp := s.MakeRequest(http.MethodPost, userPath(u, "/transactions"), body, u.Token)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
}

func (s *FriendTestSuite) TestHandshake() {
	alice := s.SignIn("alice@example.com")
	bob := s.SignIn("bob@example.com")

	resp := s.MakeRequest(http.MethodPost, userPath(alice, "/friends/requests"),
		fmt.Sprintf(`{"friendId":%q}`, bob.ID), alice.Token)
	s.Equal(http.StatusCreated, resp.StatusCode)

	var profiles []account.PublicProfile
	s.Decode(s.MakeRequest(http.MethodGet, userPath(alice, "/friends/requests/sent"), "", alice.Token), &profiles)
	s.Require().Len(profiles, 1)
	s.Equal(bob.ID, profiles[0].ID)

	s.Decode(s.MakeRequest(http.MethodGet, userPath(bob, "/friends/requests"), "", bob.Token), &profiles)
	s.Require().Len(profiles, 1)
	s.Equal(alice.ID, profiles[0].ID)

	resp = s.MakeRequest(http.MethodPost, userPath(alice, "/friends/requests"),
		fmt.Sprintf(`{"friendId":%q}`, bob.ID), alice.Token)
	s.Equal(http.StatusConflict, resp.StatusCode, "request already pending")

	resp = s.MakeRequest(http.MethodPost, userPath(bob, "/friends/requests/"+alice.ID.String()+"/accept"), "", bob.Token)
	s.Equal(http.StatusOK, resp.StatusCode)

	s.Decode(s.MakeRequest(http.MethodGet, userPath(alice, "/friends"), "", alice.Token), &profiles)
	s.Require().Len(profiles, 1)
	s.Equal(bob.ID, profiles[0].ID)
	s.Decode(s.MakeRequest(http.MethodGet, userPath(bob, "/friends/requests"), "", bob.Token), &profiles)
	s.Empty(profiles)

	resp = s.MakeRequest(http.MethodDelete, userPath(alice, "/friends/"+bob.ID.String()), "", alice.Token)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Decode(s.MakeRequest(http.MethodGet, userPath(bob, "/friends"), "", bob.Token), &profiles)
	s.Empty(profiles)
}

func (s *FriendTestSuite) TestRequestErrors() {
	alice := s.CreateTestUser()
	bob := s.CreateTestUser()

	resp := s.MakeRequest(http.MethodPost, userPath(alice, "/friends/requests"),
		fmt.Sprintf(`{"friendId":%q}`, alice.ID), alice.Token)
	s.Equal(http.StatusConflict, resp.StatusCode, "self request")

	resp = s.MakeRequest(http.MethodPost, userPath(alice, "/friends/requests"), `{"friendId":"nope"}`, alice.Token)
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp = s.MakeRequest(http.MethodPost, userPath(alice, "/friends/requests"),
		`{"friendId":"6b0f5a36-0a3c-4c0e-9a55-1f1b2b5a9c10"}`, alice.Token)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp = s.MakeRequest(http.MethodPost, userPath(bob, "/friends/requests/"+alice.ID.String()+"/accept"), "", bob.Token)
	s.Equal(http.StatusNotFound, resp.StatusCode, "nothing pending")

	resp = s.MakeRequest(http.MethodPost, userPath(alice, "/friends/requests"),
		fmt.Sprintf(`{"friendId":%q}`, bob.ID), bob.Token)
	s.Equal(http.StatusForbidden, resp.StatusCode, "acting as someone else")
}

func (s *FriendTestSuite) TestDecline() {
	alice := s.CreateTestUser()
	bob := s.CreateTestUser()
	resp := s.MakeRequest(http.MethodPost, userPath(alice, "/friends/requests"),
		fmt.Sprintf(`{"friendId":%q}`, bob.ID), alice.Token)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp = s.MakeRequest(http.MethodPost, userPath(bob, "/friends/requests/"+alice.ID.String()+"/decline"), "", bob.Token)
	s.Equal(http.StatusOK, resp.StatusCode)

	var profiles []account.PublicProfile
	s.Decode(s.MakeRequest(http.MethodGet, userPath(alice, "/friends/requests/sent"), "", alice.Token), &profiles)
	s.Empty(profiles)
	s.Decode(s.MakeRequest(http.MethodGet, userPath(bob, "/friends"), "", bob.Token), &profiles)
	s.Empty(profiles)
}

// A friend may only see analytics once the owner enables sharing, and a stranger
// never can.
func (s *FriendTestSuite) TestFriendAnalytics_Forbidden() {
	owner := s.SignIn("owner@example.com")
	friendUser := s.SignIn("friend@example.com")
	stranger := s.SignIn("stranger@example.com")
	s.Befriend(friendUser, owner)
	s.addTransaction(owner, "groceries", 75, true, "food")
	s.addTransaction(owner, "cinema", 25, true, "fun")

	analytics := userPath(friendUser, "/friends/"+owner.ID.String()+"/analytics")
	resp := s.MakeRequest(http.MethodGet, analytics, "", friendUser.Token)
	s.Equal(http.StatusForbidden, resp.StatusCode, "analytics sharing is off")

	resp = s.MakeRequest(http.MethodPut, userPath(owner, ""), `{"analyticsShareEnabled":true}`, owner.Token)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	resp = s.MakeRequest(http.MethodGet, analytics, "", friendUser.Token)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var a transaction.Analytics
	s.Decode(resp, &a)
	s.Equal(100.0, a.TotalExpense)
	s.Equal(map[string]int{"food": 75, "fun": 25}, a.TagPercentages)

	resp = s.MakeRequest(http.MethodGet, userPath(stranger, "/friends/"+owner.ID.String()+"/analytics"), "", stranger.Token)
	s.Equal(http.StatusForbidden, resp.StatusCode)

	resp = s.MakeRequest(http.MethodGet, analytics, "", stranger.Token)
	s.Equal(http.StatusForbidden, resp.StatusCode, "a stranger cannot borrow the friend's path")
}

func (s *FriendTestSuite) TestSharingGrants() {
	owner := s.CreateTestUser()
	viewer := s.CreateTestUser()
	s.Befriend(owner, viewer)
	s.addTransaction(owner, "salary", 1000, false, "work")
	s.addTransaction(owner, "rent", 400, true, "home")

	balance := userPath(viewer, "/friends/"+owner.ID.String()+"/balance")
	txs := userPath(viewer, "/friends/"+owner.ID.String()+"/transactions")

	s.Equal(http.StatusForbidden, s.MakeRequest(http.MethodGet, balance, "", viewer.Token).StatusCode)
	s.Equal(http.StatusForbidden, s.MakeRequest(http.MethodGet, txs, "", viewer.Token).StatusCode)

	resp := s.MakeRequest(http.MethodPut, userPath(owner, "/friends/"+viewer.ID.String()+"/sharing"),
		`{"balance":true}`, owner.Token)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var grant friend.SharingDTO
	s.Decode(resp, &grant)
	s.True(grant.Balance)
	s.False(grant.Transactions)

	resp = s.MakeRequest(http.MethodGet, balance, "", viewer.Token)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var b transaction.Balance
	s.Decode(resp, &b)
	s.Equal(transaction.Balance{TotalIncome: 1000, TotalExpense: 400, Balance: 600}, b)
	s.Equal(http.StatusForbidden, s.MakeRequest(http.MethodGet, txs, "", viewer.Token).StatusCode)

	resp = s.MakeRequest(http.MethodPut, userPath(owner, "/friends/"+viewer.ID.String()+"/sharing"),
		`{"transactions":true}`, owner.Token)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	resp = s.MakeRequest(http.MethodGet, txs, "", viewer.Token)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var list []transaction.Transaction
	s.Decode(resp, &list)
	s.Len(list, 2)

	resp = s.MakeRequest(http.MethodDelete, userPath(viewer, "/friends/"+owner.ID.String()), "", viewer.Token)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal(http.StatusForbidden, s.MakeRequest(http.MethodGet, balance, "", viewer.Token).StatusCode,
		"unfriending revokes access")

	resp = s.MakeRequest(http.MethodPut, userPath(owner, "/friends/"+viewer.ID.String()+"/sharing"),
		`{"balance":true}`, owner.Token)
	s.Equal(http.StatusForbidden, resp.StatusCode, "grants need a friendship")
}
