package main

import (
	"context"
)

func (cli *commandLine) createAdmin(pwd string) error {
	admin, created, err := cli.usrSvc.EnsureAdmin(context.Background(), pwd)
	if err != nil {
		return err
	}
	if !created {
		notice.Fprintf(cli.out, "admin account %q already exists (id %d)\n", admin.Username, admin.ID)
		return nil
	}
	success.Fprintf(cli.out, "admin account %q created (id %d)\n", admin.Username, admin.ID)
	return nil
}
