package main

import (
	"github.com/lewisTech25code/lewis/storage/database"
)

var migrateFunc = database.RunMigration // mockable

func (cli *commandLine) migrate(args []string) error {
	if err := migrateFunc(cli.db, args[0], args[1:]...); err != nil {
		return err
	}
	success.Fprintf(cli.out, "migrate %s: done\n", args[0])
	return nil
}
