package echoweb

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lewisTech25code/lewis/core"
	"github.com/lewisTech25code/lewis/core/user"
)

const invalidFormText = "Please correct the errors below."

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type userWeb struct {
	conf       *core.Config
	svc        *user.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerUserWeb(app *echo.Echo, auth echo.MiddlewareFunc, deps ServerDeps) {
	web := userWeb{
		conf:       deps.Conf,
		svc:        deps.UserSvc,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	app.GET("/register", web.registerForm)
	app.POST("/register", web.register)
	app.GET("/login", web.loginForm)
	app.POST("/login", web.login)

	app.GET("/student", web.studentDashboard, auth, studentOnly)
	app.GET("/admin", web.adminDashboard, auth, adminRequired)
	app.GET("/logout", web.logout, auth)
}

// Handlers

func (web *userWeb) registerForm(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "register", viewData{Title: "Register"})
}

func (web *userWeb) register(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}

	rctx := ctx.Request().Context()
	err := data.Validate(rctx, web.validate, web.svc)
	if err == nil {
		_, err = web.svc.Create(rctx, data)
	}
	if err != nil {
		if flds, ok := formErrors(err, web.translator); ok {
			return ctx.Render(http.StatusBadRequest, "register", viewData{
				Title:   "Register",
				Form:    map[string]string{"username": data.Username},
				Errors:  flds,
				Message: invalidFormText,
			})
		}
		return errors.Wrap(err, "creating user")
	}

	return ctx.Redirect(http.StatusFound, "/login")
}

func (web *userWeb) loginForm(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "login", viewData{Title: "Login"})
}

func (web *userWeb) login(ctx echo.Context) error {
	var data loginForm
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to loginForm")
	}

	claims, err := authenticate(ctx.Request().Context(), data.Username, data.Password, web.svc, web.conf)
	if err != nil {
		if errors.Is(err, errInvalidCredentials) {
			return ctx.Render(http.StatusOK, "login", viewData{
				Title:   "Login",
				Form:    map[string]string{"username": data.Username},
				Message: invalidCredentialsText,
			})
		}
		return errors.Wrap(err, "authenticating")
	}
	token, err := GenerateToken(claims, web.conf.SecretKey)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	setSessionCookie(ctx, token, web.conf)

	if claims.IsAdmin {
		return ctx.Redirect(http.StatusFound, "/admin")
	}
	return ctx.Redirect(http.StatusFound, "/student")
}

func (web *userWeb) studentDashboard(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "student_dashboard", viewData{Title: "Student dashboard"})
}

func (web *userWeb) adminDashboard(ctx echo.Context) error {
	return renderAdminDashboard(ctx, web.svc, http.StatusOK, viewData{})
}

func (web *userWeb) logout(ctx echo.Context) error {
	clearSessionCookie(ctx)
	return ctx.Redirect(http.StatusFound, "/login")
}

// renderAdminDashboard renders the result entry form along with the registered students.
func renderAdminDashboard(ctx echo.Context, svc *user.Service, code int, data viewData) error {
	students, err := svc.QueryStudents(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	data.Title = "Admin dashboard"
	data.Students = students
	return ctx.Render(code, "admin_dashboard", data)
}
