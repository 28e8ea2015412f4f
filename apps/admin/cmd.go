package main

import (
	"flag"
	"fmt"
	"io"
	"syscall"

	"github.com/fatih/color"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/lewisTech25code/lewis/core/result"
	"github.com/lewisTech25code/lewis/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")

	success = color.New(color.FgGreen)
	notice  = color.New(color.FgYellow)
)

type commandLine struct {
	db     *sqlx.DB
	usrSvc *user.Service
	resSvc *result.Service
	out    io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run a database migration command (up, down, status, version, redo, reset...)")
	fmt.Fprintln(cli.out, "  createadmin - create the administrator account if missing")
	fmt.Fprintln(cli.out, "  resetpassword -username USERNAME - reset user's password")
	fmt.Fprintln(cli.out, "  users - list the registered users")
	fmt.Fprintln(cli.out, "  results -student ID - list the results of a student")
}

// promptPassword reads a password from the terminal without echoing it.
func (cli *commandLine) promptPassword() (string, error) {
	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", errors.Wrap(err, "reading password")
	}
	return string(pwd), nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ContinueOnError)
	resetPasswordCmd.SetOutput(cli.out)
	resetPasswordUname := resetPasswordCmd.String("username", "", "The user's username. The password will be prompted next.")

	resultsCmd := flag.NewFlagSet("results", flag.ContinueOnError)
	resultsCmd.SetOutput(cli.out)
	resultsStudent := resultsCmd.Int("student", 0, "The student's ID.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])

	case "createadmin":
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			cli.printUsage()
			return errHelp
		}
		return cli.createAdmin(pwd)

	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *resetPasswordUname == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordUname, pwd)

	case "users":
		return cli.listUsers()

	case "results":
		if err := resultsCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *resultsStudent == 0 {
			resultsCmd.Usage()
			return errHelp
		}
		return cli.listResults(*resultsStudent)

	default:
		cli.printUsage()
		return errHelp
	}
}
