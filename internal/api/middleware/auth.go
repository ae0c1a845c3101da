package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inkpress/blog-system/internal/token"
)

// SubjectKey is the request-context key under which the verified subject id
// is stored for handlers.
const SubjectKey = "subject_id"

// Auth extracts the bearer token from the Authorization header, verifies it,
// and injects the subject id into the request context. The two failure
// classes keep distinct messages, but invalid-signature and expired are never
// distinguished from each other. The gate does not check that the account
// still exists; a stale token reaches the handler, which reports not-found.
func Auth(tokens *token.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing credential")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing credential")
			}

			subjectID, err := tokens.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired credential")
			}

			c.Set(SubjectKey, subjectID)
			return next(c)
		}
	}
}
