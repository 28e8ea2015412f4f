package main

import (
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoweb "github.com/lewisTech25code/lewis/apps/web/echo"
	"github.com/lewisTech25code/lewis/core"
	"github.com/lewisTech25code/lewis/core/result"
	"github.com/lewisTech25code/lewis/core/user"
	logsvc "github.com/lewisTech25code/lewis/services/logger"
	"github.com/lewisTech25code/lewis/services/statement"
	"github.com/lewisTech25code/lewis/storage/database"
	"github.com/lewisTech25code/lewis/storage/database/sqlxrepos"
)

type dbLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

type serverParams struct {
	dig.In
	Conf       *core.Config
	Logger     core.Logger
	DB         *sqlx.DB
	UserSvc    *user.Service
	ResultSvc  *result.Service
	Exporter   *statement.Exporter
	Validate   *validator.Validate
	Translator ut.Translator
}

func newLogger(conf *core.Config) core.Logger {
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "WEB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)
	return logger
}

func newDBLogger(conf *core.Config) core.Logger {
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)
	return logger
}

// newDB opens and migrates the database.
func newDB(conf *core.Config, param dbLoggerParam) (*sqlx.DB, error) {
	db, err := database.Open(conf)
	if err != nil {
		return nil, errors.Wrap(err, "setting up database")
	}
	if err = database.Migrate(db); err != nil {
		param.Logger.Error("migration failed", err)
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func newValidation() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	return validate, translator
}

func newExporter() *statement.Exporter {
	return statement.NewExporter(true)
}

func newServer(p serverParams) (*echoweb.Server, error) {
	return echoweb.NewServer(echoweb.ServerDeps{
		Conf:       p.Conf,
		Logger:     p.Logger,
		DB:         p.DB,
		UserSvc:    p.UserSvc,
		ResultSvc:  p.ResultSvc,
		Exporter:   p.Exporter,
		Validate:   p.Validate,
		Translator: p.Translator,
	})
}

// newContainer returns the dependency injection dig.Container of the web app.
func newContainer() (*dig.Container, error) {
	c := dig.New()

	providers := []struct {
		ctor interface{}
		opts []dig.ProvideOption
	}{
		{ctor: core.NewConfig},
		{ctor: newLogger},
		{ctor: newDBLogger, opts: []dig.ProvideOption{dig.Name("dbLogger")}},
		{ctor: newDB},
		{ctor: func(db *sqlx.DB) core.DB { return db }},
		{ctor: sqlxrepos.NewUserRepository},
		{ctor: sqlxrepos.NewResultRepository},
		{ctor: user.NewService},
		{ctor: result.NewService},
		{ctor: newValidation},
		{ctor: newExporter},
		{ctor: newServer},
	}
	for _, p := range providers {
		if err := c.Provide(p.ctor, p.opts...); err != nil {
			return nil, errors.Wrap(err, "failed to provide dependency")
		}
	}
	return c, nil
}
