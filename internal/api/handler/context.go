package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/task-manager/internal/api/middleware"
	"github.com/taskdesk/task-manager/internal/core/domain"
)

// callerFrom returns the identity attached by the Auth middleware. A route
// mounted without the middleware fails fast with 401 instead of reaching
// the service with an empty caller.
func callerFrom(c echo.Context) (domain.Caller, error) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return domain.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return caller, nil
}

// bindAndValidate decodes the request body into req and runs the struct
// validator when one is registered on the Echo instance.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(req)
}

const headerIdempotencyKey = "Idempotency-Key"

// headerIdempotentReplay is set on responses that returned a resource created
// by an earlier request with the same Idempotency-Key.
const headerIdempotentReplay = "Idempotent-Replayed"
