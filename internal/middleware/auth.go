package middleware

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"inkwell/internal/config"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

var (
	errMissingToken = errors.New("missing bearer token")
	errInvalidToken = errors.New("invalid or expired token")
)

// UserIDFromRequest extracts and validates the bearer token on the request,
// returning the authenticated user ID. Read paths that allow anonymous access
// call this and ignore the error; protected paths go through AuthRequired.
func UserIDFromRequest(c *fiber.Ctx) (uint, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, errMissingToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, errMissingToken
	}

	return parseSubject(parts[1])
}

// parseSubject validates a signed token and returns the user ID from its "sub" claim.
func parseSubject(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errInvalidToken
	}

	subStr, ok := claims["sub"].(string)
	if !ok {
		return 0, errInvalidToken
	}

	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0, errInvalidToken
	}

	return uint(userID), nil
}

// AuthRequired is a middleware that enforces authentication for protected routes.
func AuthRequired(c *fiber.Ctx) error {
	userID, err := UserIDFromRequest(c)
	if err != nil {
		msg := "Invalid or expired token"
		if errors.Is(err, errMissingToken) {
			msg = "Authorization header required"
		}
		return models.RespondWithError(c, models.NewUnauthenticatedError(msg))
	}

	setPrincipal(c, userID)
	return c.Next()
}

// OptionalAuth resolves the principal when a valid token is present but never
// rejects the request. Anonymous requests simply carry no userID local.
func OptionalAuth(c *fiber.Ctx) error {
	if userID, err := UserIDFromRequest(c); err == nil {
		setPrincipal(c, userID)
	}
	return c.Next()
}

// setPrincipal records the authenticated user both in Fiber locals and in the
// request context, so repository and service log lines carry the user ID.
func setPrincipal(c *fiber.Ctx, userID uint) {
	c.Locals("userID", userID)
	c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, userID))
}
