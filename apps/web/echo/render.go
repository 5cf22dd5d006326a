package webapp

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/Shivankitsingh3/School-Management-System/core/nav"
	"github.com/Shivankitsingh3/School-Management-System/core/session"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

type renderer struct {
	templates *template.Template
}

var _ echo.Renderer = (*renderer)(nil)

func newRenderer() *renderer {
	return &renderer{
		templates: template.Must(template.ParseFS(templatesFS, "templates/*.gohtml")),
	}
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// page is what every template receives: the resolved session user, the
// role's menu (recomputed on every render; it is pure) and the
// page-specific payload.
type page struct {
	AppName string
	Path    string
	User    *session.Profile
	Menu    []nav.MenuEntry
	Error   string
	Notice  string
	Next    string
	Data    interface{}
}

func newPage(ctx echo.Context, data interface{}) page {
	p := page{
		AppName: "SchoolMS",
		Path:    ctx.Request().URL.Path,
		Data:    data,
	}
	if snap := requestSnapshot(ctx); snap.User != nil {
		p.User = snap.User
		p.Menu = nav.Compose(snap.User.Role)
	}
	return p
}
