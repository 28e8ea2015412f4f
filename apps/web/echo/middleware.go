package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lewisTech25code/lewis/core"
	"github.com/lewisTech25code/lewis/core/user"
)

// sessionMiddleware verifies the session cookie and stores its claims in the context.
// A bad or expired cookie is cleared and the request goes on anonymously.
func sessionMiddleware(conf *core.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			cookie, err := ctx.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				return next(ctx)
			}
			claims, err := parseToken(cookie.Value, conf.SecretKey)
			if err != nil {
				clearSessionCookie(ctx)
				return next(ctx)
			}
			ctx.Set(contextClaimsKey, claims)
			return next(ctx)
		}
	}
}

// authRequired sends anonymous visitors to the login page.
// Sessions of users that no longer exist are dropped.
func authRequired(svc *user.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if _, err := getContextUser(ctx, svc); err != nil {
				if errors.Is(err, errUnauthenticated) || errors.Is(err, user.ErrNotFound) {
					clearSessionCookie(ctx)
					return ctx.Redirect(http.StatusFound, "/login")
				}
				return errors.Wrap(err, "getting context user")
			}
			return next(ctx)
		}
	}
}

// adminRequired sends non admins back to the student dashboard. Use after authRequired.
func adminRequired(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if usr, ok := ctx.Get(contextUserKey).(user.User); ok && usr.IsAdmin {
			return next(ctx)
		}
		return ctx.Redirect(http.StatusFound, "/student")
	}
}

// studentOnly sends admins to the admin dashboard. Use after authRequired.
func studentOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if usr, ok := ctx.Get(contextUserKey).(user.User); ok && usr.IsAdmin {
			return ctx.Redirect(http.StatusFound, "/admin")
		}
		return next(ctx)
	}
}
