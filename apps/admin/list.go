package main

import (
	"context"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

func (cli *commandLine) listUsers() error {
	users, err := cli.usrSvc.QueryAll(context.Background())
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(cli.out)
	table.SetHeader([]string{"ID", "Username", "Role", "Balance"})
	for _, usr := range users {
		role := "student"
		if usr.IsAdmin {
			role = "admin"
		}
		table.Append([]string{strconv.Itoa(usr.ID), usr.Username, role, strconv.Itoa(usr.Balance)})
	}
	table.Render()
	return nil
}

func (cli *commandLine) listResults(studentID int) error {
	results, err := cli.resSvc.ListForStudent(context.Background(), studentID)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		notice.Fprintf(cli.out, "no results for student %d\n", studentID)
		return nil
	}

	table := tablewriter.NewWriter(cli.out)
	table.SetHeader([]string{"ID", "Subject", "Marks", "Grade"})
	for _, res := range results {
		table.Append([]string{strconv.Itoa(res.ID), res.Subject, strconv.Itoa(res.Marks), res.Band().String()})
	}
	table.Render()
	return nil
}
