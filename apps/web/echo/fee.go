package echoweb

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lewisTech25code/lewis/core/user"
	"github.com/lewisTech25code/lewis/services/statement"
)

type feeWeb struct {
	svc      *user.Service
	exporter *statement.Exporter
}

func registerFeeWeb(app *echo.Echo, auth echo.MiddlewareFunc, deps ServerDeps) {
	web := feeWeb{svc: deps.UserSvc, exporter: deps.Exporter}

	app.GET("/fees", web.view, auth)
	app.GET("/pay", web.pay, auth)
	app.GET("/download_fee_statement", web.downloadStatement, auth)
}

// Handlers

func (web *feeWeb) view(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "fees", viewData{Title: "Fees"})
}

func (web *feeWeb) pay(ctx echo.Context) error {
	usr, err := getContextUser(ctx, web.svc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	if _, err = web.svc.PayFees(ctx.Request().Context(), usr.ID); err != nil {
		return errors.Wrap(err, "paying fees")
	}
	return ctx.Redirect(http.StatusFound, "/fees")
}

func (web *feeWeb) downloadStatement(ctx echo.Context) error {
	usr, err := getContextUser(ctx, web.svc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var buf bytes.Buffer
	if err = web.exporter.Render(&buf, statement.Statement{Student: usr.Username, Balance: usr.Balance}); err != nil {
		return errors.Wrap(err, "rendering statement")
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", statement.Filename))
	return ctx.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}
