// Package auth provides bearer-token authentication and role guards for the
// CDES-M service endpoints.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserRolesKey contextKey = "user_roles"
)

type Claims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles"`
}

type Config struct {
	Issuer string
	// SigningKey verifies HS256 tokens.
	SigningKey []byte
	// DevMode skips token verification and grants the admin role. Only for
	// local development; the server refuses to enable it outside ENV=development.
	DevMode bool
}

// Middleware authenticates requests with a Bearer JWT and stores the subject
// and role claims on the request context.
func Middleware(cfg Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.DevMode {
				ctx := withIdentity(c.Request().Context(), "dev", []string{RoleAdmin})
				c.SetRequest(c.Request().WithContext(ctx))
				return next(c)
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			tokenStr := strings.TrimPrefix(header, "Bearer ")

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return cfg.SigningKey, nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if cfg.Issuer != "" && claims.Issuer != cfg.Issuer {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid issuer")
			}

			ctx := withIdentity(c.Request().Context(), claims.Subject, claims.Roles)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func withIdentity(ctx context.Context, userID string, roles []string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	return context.WithValue(ctx, UserRolesKey, roles)
}

// UserIDFromContext returns the authenticated subject, or "" when anonymous.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}

// RolesFromContext returns the authenticated roles, or nil when anonymous.
func RolesFromContext(ctx context.Context) []string {
	roles, _ := ctx.Value(UserRolesKey).([]string)
	return roles
}
