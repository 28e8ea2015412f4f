package echoweb

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lewisTech25code/lewis/core/result"
	"github.com/lewisTech25code/lewis/core/user"
)

type resultWeb struct {
	svc        *result.Service
	usrSvc     *user.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerResultWeb(app *echo.Echo, auth echo.MiddlewareFunc, deps ServerDeps) {
	web := resultWeb{
		svc:        deps.ResultSvc,
		usrSvc:     deps.UserSvc,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	app.GET("/results", web.list, auth)
	app.POST("/add_result", web.add, auth, adminRequired)
}

// Handlers

func (web *resultWeb) list(ctx echo.Context) error {
	usr, err := getContextUser(ctx, web.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	results, err := web.svc.ListForStudent(ctx.Request().Context(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "listing results")
	}
	return ctx.Render(http.StatusOK, "results", viewData{Title: "Results", Results: results})
}

func (web *resultWeb) add(ctx echo.Context) error {
	var data result.NewResult
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewResult")
	}

	rctx := ctx.Request().Context()
	if err := data.Validate(rctx, web.validate); err != nil {
		if flds, ok := formErrors(err, web.translator); ok {
			return renderAdminDashboard(ctx, web.usrSvc, http.StatusBadRequest, viewData{
				Form: map[string]string{
					"student_id": data.StudentID,
					"subject":    data.Subject,
					"marks":      data.Marks,
				},
				Errors:  flds,
				Message: invalidFormText,
			})
		}
		return errors.Wrap(err, "validating result")
	}

	if _, err := web.svc.Add(rctx, data); err != nil {
		return errors.Wrap(err, "adding result")
	}
	return ctx.Redirect(http.StatusFound, "/admin")
}
