package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkpress/blog-system/internal/api/middleware"
)

// ctxSubject extracts the subject id injected by the Auth middleware. A
// missing or zero id means the middleware did not run for this route, which
// is a wiring fault surfaced as 401 rather than a crash.
func ctxSubject(c echo.Context) (int64, error) {
	id, _ := c.Get(middleware.SubjectKey).(int64)
	if id == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing credential")
	}
	return id, nil
}
