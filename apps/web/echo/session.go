package webapp

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Shivankitsingh3/School-Management-System/core/session"
	"github.com/Shivankitsingh3/School-Management-System/services/schoolapi"
)

const (
	sessionCookieName = "sms_sid"
	sessionCookieAge  = 7 * 24 * time.Hour

	ctxManagerKey = "sessionManager"
	ctxClientKey  = "apiClient"
)

// resolveSession binds the request to its browser session: it ensures
// the session id cookie, rebinds the API client to that session's
// token store and bootstraps the session manager. Guards therefore
// never see a session that is still loading.
func (s *server) resolveSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if strings.HasPrefix(ctx.Request().URL.Path, "/static/") {
			return next(ctx)
		}

		var sid string
		if cookie, err := ctx.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
			sid = cookie.Value
		} else {
			sid = uuid.NewString()
			ctx.SetCookie(&http.Cookie{
				Name:     sessionCookieName,
				Value:    sid,
				Path:     "/",
				MaxAge:   int(sessionCookieAge / time.Second),
				HttpOnly: true,
				Secure:   !s.deps.Conf.Debug,
				SameSite: http.SameSiteLaxMode,
			})
		}

		store := s.deps.Stores.Session(sid)
		client := s.deps.API.WithStore(store)
		mgr := session.NewManager(store, client)
		mgr.Bootstrap(ctx.Request().Context())

		ctx.Set(ctxManagerKey, mgr)
		ctx.Set(ctxClientKey, client)
		return next(ctx)
	}
}

func requestManager(ctx echo.Context) *session.Manager {
	mgr, _ := ctx.Get(ctxManagerKey).(*session.Manager)
	return mgr
}

func requestClient(ctx echo.Context) *schoolapi.Client {
	client, _ := ctx.Get(ctxClientKey).(*schoolapi.Client)
	return client
}

// requestSnapshot returns the resolved session state; an unresolved
// request (no manager in context) reads as Anonymous.
func requestSnapshot(ctx echo.Context) session.Snapshot {
	if mgr := requestManager(ctx); mgr != nil {
		return mgr.Snapshot()
	}
	return session.Snapshot{}
}
