package main

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	UsernameKey  = "username"
	bearerPrefix = "Bearer "
)

var errNoSubject = errors.New("token has no subject")

func (app *App) issueToken(username string) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(app.config.TokenTTL())),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(app.tokenKey)
}

func (app *App) checkToken(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) { return app.tokenKey, nil },
		jwt.WithValidMethods([]string{"HS256"}))

	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errNoSubject
	}

	return claims.Subject, nil
}

// authRequired guards admin-only routes. Missing, malformed, expired and
// badly signed tokens all get the same generic answer.
func authRequired(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		header := ctx.Get(fiber.HeaderAuthorization)

		if !strings.HasPrefix(header, bearerPrefix) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Not authenticated"})
		}

		username, err := app.checkToken(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Not authenticated"})
		}

		ctx.Locals(UsernameKey, username)

		return ctx.Next()
	}
}

func Username(ctx *fiber.Ctx) string {
	u := ctx.Locals(UsernameKey)

	if u == nil {
		return ""
	}

	return u.(string)
}
