package main

import (
	"context"
)

func (cli *commandLine) resetPassword(uname, pwd string) error {
	if err := cli.usrSvc.ResetPassword(context.Background(), uname, pwd); err != nil {
		return err
	}
	success.Fprintf(cli.out, "password of %q has been reset\n", uname)
	return nil
}
