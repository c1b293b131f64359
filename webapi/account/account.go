package account

import (
	"net/url"

	"github.com/adu-coder/nineteen/pkg/config"
	"github.com/adu-coder/nineteen/pkg/domain/account"
	"github.com/adu-coder/nineteen/pkg/middleware"
	accountsvc "github.com/adu-coder/nineteen/pkg/service/account"
	authsvc "github.com/adu-coder/nineteen/pkg/service/auth"
	"github.com/adu-coder/nineteen/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the profile endpoints. Search is registered before the
// :userId routes.
func Routes(
	app *fiber.App,
	accountSvc *accountsvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	app.Get("/users/search/:email", middleware.JwtProtected(cfg.Auth.Jwt), SearchByEmail(accountSvc))
	app.Get("/users/:userId", middleware.JwtProtected(cfg.Auth.Jwt), GetProfile(accountSvc, authSvc))
	app.Put("/users/:userId", middleware.JwtProtected(cfg.Auth.Jwt), UpdateProfile(accountSvc, authSvc))
}

// GetProfile returns a Fiber handler for reading the caller's own account.
// @Summary Get profile
// @Description Return the caller's account including relationship sets and grants
// @Tags users
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /users/{userId} [get]
// @Security Bearer
func GetProfile(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.RequireOwner(c, authSvc)
		if !ok {
			return err
		}
		a, err := accountSvc.Get(c.Context(), userID)
		if err != nil {
			return common.ServiceError(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User found", a)
	}
}

// UpdateProfile returns a Fiber handler for a partial profile update.
// @Summary Update profile
// @Description Update display name, photo and sharing flags
// @Tags users
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param request body UpdateProfileInput true "Profile fields"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /users/{userId} [put]
// @Security Bearer
func UpdateProfile(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.RequireOwner(c, authSvc)
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[UpdateProfileInput](c)
		if input == nil {
			return err
		}
		a, err := accountSvc.UpdateProfile(c.Context(), userID, account.ProfilePatch{
			DisplayName:           input.DisplayName,
			PhotoURL:              input.PhotoURL,
			ShareWithFriends:      input.ShareWithFriends,
			AnalyticsShareEnabled: input.AnalyticsShareEnabled,
		})
		if err != nil {
			return common.ServiceError(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User updated successfully", a)
	}
}

// SearchByEmail returns a Fiber handler that looks up a public profile by email.
// @Summary Search user by email
// @Description Case-insensitive exact match on email; public fields only
// @Tags users
// @Produce json
// @Param email path string true "Email"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /users/search/{email} [get]
// @Security Bearer
func SearchByEmail(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, err := url.PathUnescape(c.Params("email"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid email", err, fiber.StatusBadRequest)
		}
		p, err := accountSvc.SearchByEmail(c.Context(), email)
		if err != nil {
			return common.ServiceError(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User found", p)
	}
}
