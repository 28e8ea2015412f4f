package echoweb

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lewisTech25code/lewis/core/result"
	"github.com/lewisTech25code/lewis/core/user"
)

const baseTemplate = "_base.gohtml"

//go:embed all:templates
var templateFS embed.FS

// viewData is the data passed to every page.
type viewData struct {
	AppName  string
	Title    string
	User     *user.User
	Form     map[string]string
	Errors   map[string]string
	Message  string
	Results  []result.Result
	Students []user.User
	Code     int
}

// renderer renders the embedded pages, each one wrapped in the base layout.
type renderer struct {
	appName   string
	templates map[string]*template.Template
}

var _ echo.Renderer = (*renderer)(nil)

func newRenderer(appName string, strict bool) (*renderer, error) {
	pages, err := fs.Glob(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, errors.Wrap(err, "listing templates")
	}

	r := &renderer{appName: appName, templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		base := path.Base(page)
		if base == baseTemplate {
			continue
		}
		tmpl := template.New(base)
		if strict {
			tmpl = tmpl.Option("missingkey=error")
		}
		tmpl, err = tmpl.ParseFS(templateFS, "templates/"+baseTemplate, page)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing template %s", base)
		}
		r.templates[strings.TrimSuffix(base, ".gohtml")] = tmpl
	}
	return r, nil
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, ctx echo.Context) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return errors.Errorf("template %q not found", name)
	}

	vd, _ := data.(viewData)
	vd.AppName = r.appName
	if vd.User == nil {
		if usr, ok := ctx.Get(contextUserKey).(user.User); ok {
			vd.User = &usr
		}
	}
	return tmpl.ExecuteTemplate(w, "base", vd)
}
