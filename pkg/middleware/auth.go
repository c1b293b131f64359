package middleware

import (
	"strings"

	"github.com/adu-coder/nineteen/pkg/config"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// UserContextKey is the fiber.Ctx local holding the verified *jwt.Token.
const UserContextKey = "user"

// JwtProtected verifies the bearer token with the HS256 secret in cfg and stores the
// parsed token under UserContextKey.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{JWTAlg: jwt.SigningMethodHS256.Alg(), Key: []byte(cfg.Secret)},
		ContextKey:   UserContextKey,
		ErrorHandler: jwtError,
	})
}

// Token returns the verified token stored by JwtProtected.
func Token(c *fiber.Ctx) (*jwt.Token, bool) {
	token, ok := c.Locals(UserContextKey).(*jwt.Token)
	return token, ok && token != nil
}

func jwtError(c *fiber.Ctx, err error) error {
	status, title := fiber.StatusUnauthorized, "Invalid or expired JWT"
	if strings.EqualFold(err.Error(), jwtware.ErrJWTMissingOrMalformed.Error()) {
		status, title = fiber.StatusBadRequest, "Missing or malformed JWT"
	}
	return c.Status(status).JSON(fiber.Map{
		"type":     "about:blank",
		"title":    title,
		"status":   status,
		"detail":   err.Error(),
		"instance": c.OriginalURL(),
	}, "application/problem+json")
}
