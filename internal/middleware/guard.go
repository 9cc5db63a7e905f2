package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"storefront-backend/internal/client"
)

// guardMessages maps gate reason codes to user-facing error strings.
var guardMessages = map[string]string{
	"RATE_LIMIT": "Too many requests, please try again later",
	"BOT":        "Automated traffic is not allowed",
	"SHIELD":     "Request blocked by security policy",
}

// Guard consults the abuse-protection gate before the handler runs. A denial
// becomes a 403 with a user-facing message; a gate outage fails open.
func Guard(gate client.GuardClient, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get(ContextUserID).(string)

			decision, err := gate.Check(c.Request().Context(), client.GuardRequest{
				IP:     c.RealIP(),
				Path:   c.Path(),
				Method: c.Request().Method,
				UserID: userID,
			})
			if err != nil {
				logger.Warn("guard check failed", zap.Error(err))
				return next(c)
			}

			if !decision.Allow {
				message, ok := guardMessages[decision.Reason]
				if !ok {
					message = "Request blocked"
				}
				return echo.NewHTTPError(http.StatusForbidden, message)
			}

			return next(c)
		}
	}
}
