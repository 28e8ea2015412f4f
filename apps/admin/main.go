package main

import (
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/lewisTech25code/lewis/core"
	"github.com/lewisTech25code/lewis/core/result"
	"github.com/lewisTech25code/lewis/core/user"
	"github.com/lewisTech25code/lewis/storage/database"
	"github.com/lewisTech25code/lewis/storage/database/sqlxrepos"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)

	// start CLI
	cli := commandLine{
		db:     db,
		usrSvc: user.NewService(sqlxrepos.NewUserRepository(db)),
		resSvc: result.NewService(sqlxrepos.NewResultRepository(db)),
		out:    os.Stdout,
	}
	err = cli.run(os.Args)
	_ = db.Close()
	if err != nil {
		if !errors.Is(err, errHelp) {
			logger.Printf("\nerror: %+v\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
