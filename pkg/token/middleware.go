package token

import (
	"strings"

	"github.com/labstack/echo/v4"

	apierr "github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/api/types/errors"
)

// Middleware guards routes with a Bearer token verified by i.
//
// The verified subject is stored in the echo context under "token-subject".
func Middleware(i *Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, found := strings.CutPrefix(auth, "Bearer ")
			if !found || raw == "" {
				return apierr.Unauthorized(`set header "Authorization: Bearer <token>"`, nil)
			}

			subject, err := i.Verify(raw)
			if err != nil {
				return apierr.Unauthorized("token is rejected", err)
			}

			c.Set("token-subject", subject)
			return next(c)
		}
	}
}
