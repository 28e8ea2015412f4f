package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jmoiron/sqlx"

	echoweb "github.com/lewisTech25code/lewis/apps/web/echo"
	"github.com/lewisTech25code/lewis/core"
	"github.com/lewisTech25code/lewis/core/user"
)

func main() {
	c, err := newContainer()
	if err != nil {
		log.Fatal(err)
	}

	err = c.Invoke(func(
		conf *core.Config,
		logger core.Logger,
		dbParam dbLoggerParam,
		db *sqlx.DB,
		usrSvc *user.Service,
		server *echoweb.Server,
	) {
		defer func() {
			if err := db.Close(); err != nil {
				dbParam.Logger.Error("Failed to close", err)
			}
		}()
		run(conf, logger, usrSvc, server)
	})
	if err != nil {
		log.Printf("starting application: %+v", err)
		os.Exit(1)
	}
}

func run(conf *core.Config, logger core.Logger, usrSvc *user.Service, server *echoweb.Server) {
	// =========================================================================
	// Initialize App

	if err := conf.Check(); err != nil {
		logger.Error(fmt.Sprintf("checking config: %v", err), err)
		return
	}

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	admin, created, err := usrSvc.EnsureAdmin(context.Background(), conf.AdminPassword)
	if err != nil {
		logger.Error(fmt.Sprintf("seeding admin: %v", err), err)
		return
	}
	if created {
		logger.Info(fmt.Sprintf("admin account %q created", admin.Username))
	}

	// =========================================================================
	// Start Debug Service
	//
	// /debug/vars - Added to the default mux by importing the expvar package.

	if conf.Server.DebugHost != "" {
		// Expose important info under /debug/vars.
		expvar.NewString("build").Set(conf.Build)
		expvar.NewString("env").Set(conf.Env)

		go func() {
			if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
				logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
			}
		}()
	}

	// =========================================================================
	// Start Web Service

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Error(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Error(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
