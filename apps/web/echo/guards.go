package webapp

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/Shivankitsingh3/School-Management-System/core"
	"github.com/Shivankitsingh3/School-Management-System/core/session"
)

// Protected gates a route to authenticated users. With roles given,
// only those roles may enter; an authenticated user with the wrong
// role lands on their own dashboard, never on the login view. An
// anonymous user is sent to login with the requested location
// preserved for the post-login return.
func Protected(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			snap := requestSnapshot(ctx)
			if !snap.Authenticated() {
				return redirectToLogin(ctx)
			}
			if len(roles) > 0 && !roleAllowed(roles, snap.User.Role) {
				return ctx.Redirect(http.StatusSeeOther, core.LandingPath(snap.User.Role))
			}
			return next(ctx)
		}
	}
}

// Public gates the login/registration views: authenticated users have
// no business there and get sent to their dashboard.
func Public() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if snap := requestSnapshot(ctx); snap.Authenticated() {
				return ctx.Redirect(http.StatusSeeOther, core.LandingPath(snap.User.Role))
			}
			return next(ctx)
		}
	}
}

func roleAllowed(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func redirectToLogin(ctx echo.Context) error {
	target := session.LoginPath
	if requested := ctx.Request().URL.Path; requested != "" && requested != session.LoginPath {
		target += "?next=" + url.QueryEscape(requested)
	}
	return ctx.Redirect(http.StatusSeeOther, target)
}
