package http

import (
	"net/http"
	"slices"

	"farmtrade/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"

	actorKey = "actor"
)

// identify reads the caller identity set by the gateway. Missing or malformed identity
// is 401; a role outside roles is 403. No roles means any authenticated caller.
func identify(roles ...kernel.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawID := c.Request().Header.Get(HeaderUserID)
			rawRole := c.Request().Header.Get(HeaderUserRole)
			if rawID == "" || rawRole == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			id, err := kernel.UUIDFromString(rawID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid "+HeaderUserID)
			}
			role, err := kernel.ParseRole(rawRole)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid "+HeaderUserRole)
			}
			actor, err := kernel.NewActor(id, role)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			if len(roles) > 0 && !slices.Contains(roles, role) {
				return echo.NewHTTPError(http.StatusForbidden, "role "+string(role)+" may not access this resource")
			}

			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) kernel.Actor {
	actor, _ := c.Get(actorKey).(kernel.Actor)
	return actor
}
