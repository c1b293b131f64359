// Package testutils provides an end-to-end HTTP suite running the full Fiber app on
// a private database per test.
package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/adu-coder/nineteen/infra"
	infracache "github.com/adu-coder/nineteen/infra/cache"
	infraeventbus "github.com/adu-coder/nineteen/infra/eventbus"
	"github.com/adu-coder/nineteen/pkg/app"
	"github.com/adu-coder/nineteen/pkg/config"
	"github.com/adu-coder/nineteen/pkg/domain/account"
	pkgtestutils "github.com/adu-coder/nineteen/pkg/testutils"
	"github.com/adu-coder/nineteen/webapi"
	"github.com/adu-coder/nineteen/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// JwtSecret signs the tokens of the suite's app.
const JwtSecret = "e2e-secret"

// E2ETestSuite runs HTTP requests against a freshly wired app. Every test gets an
// empty database (sqlite by default, postgres with TEST_DB_DRIVER=postgres).
type E2ETestSuite struct {
	suite.Suite
	App *app.App
	// Identities plays the identity provider: only credentials it issued sign in.
	Identities *pkgtestutils.Identities
	app        *fiber.App
}

// Config returns the configuration the suite's app is built with.
func (s *E2ETestSuite) Config() *config.App {
	return &config.App{
		Env:       "test",
		Server:    &config.Server{Scheme: "http", Host: "localhost", Port: 3000},
		Log:       &config.Log{},
		DB:        &config.DB{Driver: "sqlite"},
		Auth:      &config.Auth{Jwt: &config.Jwt{Secret: JwtSecret, Expiry: time.Hour}},
		Redis:     &config.Redis{TTL: time.Minute},
		RateLimit: &config.RateLimit{MaxRequests: 10000, Window: time.Minute},
		Sharing: &config.Sharing{
			FriendTransactionsLimit: 50,
			SelfTransactionsLimit:   1000,
		},
	}
}

// NewApp wires a complete app on a new database. opts adjust the configuration.
func (s *E2ETestSuite) NewApp(opts ...func(*config.App)) (*app.App, *fiber.App) {
	cfg := s.Config()
	for _, opt := range opts {
		opt(cfg)
	}
	db := pkgtestutils.NewTestDB(s.T())
	logger := pkgtestutils.Logger()
	deps := &app.Deps{
		Uow:         infra.NewUoW(db),
		EventBus:    infraeventbus.NewWithMemory(logger),
		Cache:       infracache.NewMemoryCache(cfg.Redis.TTL),
		Logger:      logger,
		Identity:    s.identities(),
		HealthCheck: infra.PingFunc(db),
	}
	a := app.New(deps, cfg)
	return a, webapi.SetupApp(a)
}

func (s *E2ETestSuite) identities() *pkgtestutils.Identities {
	if s.Identities == nil {
		s.Identities = pkgtestutils.NewIdentities()
	}
	return s.Identities
}

// SetupTest gives each test its own app, database and identity provider.
func (s *E2ETestSuite) SetupTest() {
	s.Identities = nil
	s.App, s.app = s.NewApp()
}

// MakeRequest is a helper for making HTTP requests in tests
func (s *E2ETestSuite) MakeRequest(method, path, body, token string) *http.Response {
	return s.MakeRequestTo(s.app, method, path, body, token)
}

// MakeRequestTo sends a request to fiberApp instead of the suite's app.
func (s *E2ETestSuite) MakeRequestTo(fiberApp *fiber.App, method, path, body, token string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := fiberApp.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

// Decode reads a success envelope from resp and unmarshals its data into dest.
func (s *E2ETestSuite) Decode(resp *http.Response, dest any) {
	defer resp.Body.Close() //nolint:errcheck
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	var envelope struct {
		common.Response
		Data json.RawMessage `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(raw, &envelope), string(raw))
	if dest != nil && len(envelope.Data) > 0 {
		s.Require().NoError(json.Unmarshal(envelope.Data, dest), string(raw))
	}
}

// Problem reads a problem+json body from resp.
func (s *E2ETestSuite) Problem(resp *http.Response) common.ProblemDetails {
	defer resp.Body.Close() //nolint:errcheck
	var pd common.ProblemDetails
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&pd))
	return pd
}

// TestUser is an account signed in through the API.
type TestUser struct {
	ID    uuid.UUID
	Email string
	Token string
}

// Credential issues an identity-provider credential for p.
func (s *E2ETestSuite) Credential(p account.Profile) string {
	return s.identities().Issue(p)
}

// SignIn signs email in through POST /auth/google with a credential the suite's
// identity provider issued, and returns its id and token.
func (s *E2ETestSuite) SignIn(email string) TestUser {
	credential := s.Credential(account.Profile{Email: email, DisplayName: email})
	body := fmt.Sprintf(`{"idToken":%q}`, credential)
	resp := s.MakeRequest(http.MethodPost, "/auth/google", body, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var session struct {
		User struct {
			ID uuid.UUID `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	s.Decode(resp, &session)
	s.Require().NotEmpty(session.Token, "no token in sign-in response")
	return TestUser{ID: session.User.ID, Email: email, Token: session.Token}
}

// CreateTestUser signs in a user with a random email.
func (s *E2ETestSuite) CreateTestUser() TestUser {
	return s.SignIn(fmt.Sprintf("test_%s@example.com", uuid.NewString()[:8]))
}

// Befriend runs the request/accept handshake between a and b through the API.
func (s *E2ETestSuite) Befriend(a, b TestUser) {
	resp := s.MakeRequest(http.MethodPost, "/users/"+a.ID.String()+"/friends/requests",
		fmt.Sprintf(`{"friendId":%q}`, b.ID), a.Token)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	resp = s.MakeRequest(http.MethodPost,
		"/users/"+b.ID.String()+"/friends/requests/"+a.ID.String()+"/accept", "", b.Token)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
}
