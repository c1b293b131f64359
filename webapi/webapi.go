// Package webapi assembles the HTTP API. Endpoints live in sub-packages per
// resource:
//   - auth: sign-in
//   - account: profiles and search
//   - friend: the friend graph, per-friend grants and friend views
//   - transaction: the caller's ledger
//   - budget: budgets with current spending
package webapi

import (
	"errors"
	"strings"
	"time"

	"github.com/adu-coder/nineteen/pkg/app"
	accountweb "github.com/adu-coder/nineteen/webapi/account"
	authweb "github.com/adu-coder/nineteen/webapi/auth"
	budgetweb "github.com/adu-coder/nineteen/webapi/budget"
	"github.com/adu-coder/nineteen/webapi/common"
	friendweb "github.com/adu-coder/nineteen/webapi/friend"
	transactionweb "github.com/adu-coder/nineteen/webapi/transaction"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, common.ErrorTitle(err), err)
		},
	})
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		PersistAuthorization: true,
	}))

	fiberApp.Use(limiter.New(limiter.Config{
		Max:          a.Config.RateLimit.MaxRequests,
		Expiration:   a.Config.RateLimit.Window,
		KeyGenerator: clientIP,
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	fiberApp.Get("/health", Health(a))

	authweb.Routes(fiberApp, a.AuthService)
	accountweb.Routes(fiberApp, a.AccountService, a.AuthService, a.Config)
	friendweb.Routes(fiberApp, a.AccountService, a.SharingService, a.AuthService, a.Config)
	transactionweb.Routes(fiberApp, a.TransactionService, a.AuthService, a.Config)
	budgetweb.Routes(fiberApp, a.BudgetService, a.AuthService, a.Config)
	return fiberApp
}

// clientIP keys the rate limiter by the first X-Forwarded-For hop, then X-Real-IP,
// then the peer address.
func clientIP(c *fiber.Ctx) string {
	if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
		if first, _, found := strings.Cut(forwardedFor, ","); found {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(forwardedFor)
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.IP()
}

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	DB        string    `json:"db"`
}

// Health returns a Fiber handler reporting liveness and database reachability.
// @Summary Health check
// @Tags ops
// @Produce json
// @Success 200 {object} HealthStatus
// @Failure 503 {object} HealthStatus
// @Router /health [get]
func Health(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := HealthStatus{Status: "ok", Timestamp: time.Now().UTC(), DB: "unchecked"}
		if check := a.Deps.HealthCheck; check != nil {
			if err := check(c.Context()); err != nil {
				a.Deps.Logger.Warn("health check failed", "error", err)
				status.Status = "degraded"
				status.DB = "unreachable"
				return c.Status(fiber.StatusServiceUnavailable).JSON(status)
			}
			status.DB = "connected"
		}
		return c.JSON(status)
	}
}
