package common

import (
	"github.com/adu-coder/nineteen/pkg/middleware"
	authsvc "github.com/adu-coder/nineteen/pkg/service/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ParseUUIDParam reads the path parameter name as a UUID, writing a 400 on failure.
func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, bool, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, false, ProblemDetailsJSON(
			c, "Invalid "+name, err, name+" must be a valid UUID", fiber.StatusBadRequest,
		)
	}
	return id, true, nil
}

// CurrentUserID returns the subject of the verified token, writing a 401 on failure.
func CurrentUserID(c *fiber.Ctx, authSvc *authsvc.Service) (uuid.UUID, bool, error) {
	token, ok := middleware.Token(c)
	if !ok {
		return uuid.Nil, false, ProblemDetailsJSON(
			c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized,
		)
	}
	id, err := authSvc.GetCurrentUserID(token)
	if err != nil {
		return uuid.Nil, false, ProblemDetailsJSON(c, "Unauthorized", err)
	}
	return id, true, nil
}

// RequireOwner resolves :userId and checks that it is the caller. ok is false when a
// response has already been written.
//
//	userID, ok, err := common.RequireOwner(c, authSvc)
//	if !ok {
//		return err
//	}
func RequireOwner(c *fiber.Ctx, authSvc *authsvc.Service) (uuid.UUID, bool, error) {
	userID, ok, err := ParseUUIDParam(c, "userId")
	if !ok {
		return uuid.Nil, false, err
	}
	callerID, ok, err := CurrentUserID(c, authSvc)
	if !ok {
		return uuid.Nil, false, err
	}
	if callerID != userID {
		return uuid.Nil, false, ProblemDetailsJSON(
			c, "Forbidden", nil, "You are not allowed to access this user", fiber.StatusForbidden,
		)
	}
	return userID, true, nil
}
