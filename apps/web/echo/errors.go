package webapp

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Shivankitsingh3/School-Management-System/core"
	"github.com/Shivankitsingh3/School-Management-System/core/session"
	"github.com/Shivankitsingh3/School-Management-System/services/schoolapi"
)

// newAppHTTPErrorHandler is the single place where transport errors
// become navigation: the session-invalidated signal raised by the API
// client turns into a redirect to the login view here, so neither the
// client nor the feature handlers touch routing. Everything else
// renders the error page. signalShutdown is called whenever an
// integrity error is caught.
func newAppHTTPErrorHandler(logger core.Logger, trans ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		if errors.Is(err, schoolapi.ErrSessionInvalid) {
			// the interceptor already cleared the token store; drop the
			// in-memory user too, then force re-login
			if mgr := requestManager(ctx); mgr != nil {
				mgr.Invalidate()
			}
			_ = ctx.Redirect(http.StatusSeeOther, session.LoginPath)
			return
		}

		var code int
		var message string

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			code = origErr.Code
			if msg, ok := origErr.Message.(string); ok {
				message = msg
			} else {
				message = http.StatusText(code)
			}
		case validator.ValidationErrors:
			code = http.StatusBadRequest
			message = "invalid input"
			for _, vErr := range origErr {
				message = vErr.Translate(trans)
				break
			}
		case *core.ValidationError:
			code = http.StatusBadRequest
			message = origErr.Error()
			if message == "" && len(origErr.Fields) > 0 {
				message = origErr.Fields[0].Error
			}
		case *schoolapi.APIError:
			// the backend's verdict, passed through to the user
			code = origErr.StatusCode
			if code < http.StatusBadRequest {
				code = http.StatusBadGateway
			}
			message = origErr.UserMessage()
		default:
			code = http.StatusInternalServerError
			message = http.StatusText(code)

			args := []interface{}{errors.Wrap(err, message)}
			if snap := requestSnapshot(ctx); snap.User != nil {
				args = append(args, *snap.User)
			}
			logger.Error(message, args...)

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		}

		data := errorPage{Code: code, Message: message}
		if rErr := ctx.Render(code, "error", newPage(ctx, data)); rErr != nil {
			_ = ctx.String(code, message)
		}
	}
}

type errorPage struct {
	Code    int
	Message string
}
