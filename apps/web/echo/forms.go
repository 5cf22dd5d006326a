package webapp

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Shivankitsingh3/School-Management-System/core"
	"github.com/Shivankitsingh3/School-Management-System/services/schoolapi"
)

// formError flattens a validation or backend failure into the one-line
// message forms re-render with.
func formError(err error, trans ut.Translator) string {
	switch origErr := errors.Cause(err).(type) {
	case validator.ValidationErrors:
		for _, vErr := range origErr {
			return vErr.Translate(trans)
		}
		return "invalid input"
	case *core.ValidationError:
		if msg := origErr.Error(); msg != "" {
			return msg
		}
		if len(origErr.Fields) > 0 {
			return origErr.Fields[0].Field + ": " + origErr.Fields[0].Error
		}
		return "invalid input"
	case *schoolapi.APIError:
		return origErr.UserMessage()
	default:
		return err.Error()
	}
}

// safeNext keeps post-login redirects inside the app.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return ""
}
