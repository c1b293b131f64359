package auth

import (
	authsvc "github.com/adu-coder/nineteen/pkg/service/auth"
	"github.com/adu-coder/nineteen/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the authentication endpoints.
func Routes(app *fiber.App, authSvc *authsvc.Service) {
	app.Post("/auth/google", GoogleSignIn(authSvc))
}

// GoogleSignIn returns a Fiber handler that verifies a Google ID token, upserts the
// account it names and issues a session token.
// @Summary Sign in with a Google ID token
// @Description Create the account on first sign-in or refresh it, and return a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body GoogleSignInInput true "Google ID token"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /auth/google [post]
func GoogleSignIn(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[GoogleSignInInput](c)
		if input == nil {
			return err // error response already written
		}
		session, err := authSvc.SignInWithCredential(c.Context(), input.IDToken)
		if err != nil {
			return common.ServiceError(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Signed in", SessionDTO{
			User:      session.Account,
			Token:     session.Token,
			IsNewUser: session.Created,
		})
	}
}
