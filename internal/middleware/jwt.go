package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects its claims into the request context.  Handlers
// behind it read the authenticated staff member via c.Get("user_id"),
// c.Get("role") and c.Get("college_id").  The secret must match the
// one used when issuing tokens at login.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			// Numeric claims decode as float64; convert once here so
			// handlers get int64 IDs without repeating the assertion.
			c.Set("user_id", claimInt64(claims, "sub"))
			c.Set("college_id", claimInt64(claims, "college_id"))
			if role, ok := claims["role"].(string); ok {
				c.Set("role", role)
			}
			return next(c)
		}
	}
}

func claimInt64(claims jwt.MapClaims, key string) int64 {
	switch v := claims[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	}
	return 0
}

// CollegeID reads the authenticated staff member's college from the
// context.  Returns 0 when the request is unauthenticated.
func CollegeID(c echo.Context) int64 {
	if v, ok := c.Get("college_id").(int64); ok {
		return v
	}
	return 0
}

// UserID reads the authenticated staff member's ID from the context.
func UserID(c echo.Context) int64 {
	if v, ok := c.Get("user_id").(int64); ok {
		return v
	}
	return 0
}
