package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const ContextKeyUserID = "user_id"

// NewJWTMiddleware validates a Bearer token signed with the given secret and
// stores the user id claim on the echo context.
func NewJWTMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, Response{
					Status:  http.StatusUnauthorized,
					Message: "Missing or malformed token",
				})
			}

			tokenStr := strings.TrimPrefix(header, "Bearer ")
			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, Response{
					Status:  http.StatusUnauthorized,
					Message: "Invalid or expired token",
				})
			}

			sub, ok := claims["sub"].(float64)
			if !ok {
				return c.JSON(http.StatusUnauthorized, Response{
					Status:  http.StatusUnauthorized,
					Message: "Invalid token subject",
				})
			}

			c.Set(ContextKeyUserID, uint(sub))
			return next(c)
		}
	}
}
