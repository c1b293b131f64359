package common

import (
	"errors"

	"github.com/adu-coder/nineteen/pkg/domain"
	"github.com/gofiber/fiber/v2"
)

// ErrorToStatusCode maps domain error kinds to HTTP status codes.
func ErrorToStatusCode(err error) int {
	var fe *fiber.Error
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case domain.IsConflict(err):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorTitle returns a short problem title for err's kind.
func ErrorTitle(err error) string {
	switch ErrorToStatusCode(err) {
	case fiber.StatusBadRequest:
		return "Invalid request"
	case fiber.StatusNotFound:
		return "Not found"
	case fiber.StatusConflict:
		return "Conflict"
	case fiber.StatusForbidden:
		return "Forbidden"
	case fiber.StatusUnauthorized:
		return "Unauthorized"
	default:
		return "Internal Server Error"
	}
}

// ServiceError writes err with a title derived from its kind. Persistence failures are
// reported without their driver detail.
func ServiceError(c *fiber.Ctx, err error) error {
	if ErrorToStatusCode(err) == fiber.StatusInternalServerError {
		return ProblemDetailsJSON(c, ErrorTitle(err), err, "unexpected server error")
	}
	return ProblemDetailsJSON(c, ErrorTitle(err), err)
}
