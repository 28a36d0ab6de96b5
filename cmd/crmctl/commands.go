package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/jrsteele09/go-crm-workspace/apiclient"
	"github.com/jrsteele09/go-crm-workspace/customers"
	crmerrors "github.com/jrsteele09/go-crm-workspace/internal/errors"
	"github.com/pkg/errors"
)

type command struct {
	args int // minimum number of arguments
	auth bool
	run  func(a *app, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"login":   {args: 2, run: (*app).login},
	"logout":  {run: (*app).logout},
	"whoami":  {run: (*app).whoami},
	"search":  {args: 3, auth: true, run: (*app).search},
	"open":    {args: 2, auth: true, run: (*app).open},
	"tabs":    {run: (*app).tabs},
	"switch":  {args: 1, auth: true, run: (*app).switchTab},
	"close":   {args: 1, auth: true, run: (*app).closeTab},
	"refresh": {args: 1, auth: true, run: (*app).refresh},
	"note":    {args: 2, auth: true, run: (*app).note},
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	name, rest := args[0], args[1:]
	cmd, ok := commands[name]
	if !ok {
		return errors.Errorf("unknown command %q", name)
	}
	if len(rest) < cmd.args {
		return errors.Errorf("%s needs at least %d argument(s)", name, cmd.args)
	}
	if cmd.auth && !a.session.IsAuthenticated() {
		return crmerrors.Wrapf(crmerrors.ErrNotAuthenticated, "%s", name)
	}
	if err := cmd.run(a, ctx, rest); err != nil {
		if crmerrors.Is(err, apiclient.ErrSessionEnded) {
			fmt.Fprintln(a.out, "Session ended, please log in again.")
			return nil
		}
		return err
	}
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	user, err := a.session.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s <%s>\n", user.Name, user.Email)
	a.printLocation()
	return nil
}

func (a *app) logout(context.Context, []string) error {
	a.session.Logout()
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *app) whoami(context.Context, []string) error {
	user := a.session.User()
	if user == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>\nroles: %s\n", user.Name, user.Email, strings.Join(user.Roles, ", "))
	return nil
}

func (a *app) search(ctx context.Context, args []string) error {
	custType, err := parseCustomerType(args[0])
	if err != nil {
		return err
	}
	result, err := a.api.SearchCustomers(ctx, apiclient.SearchParams{
		CustType: custType,
		Field:    args[1],
		Value:    strings.Join(args[2:], " "),
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tNAME\tSTATUS")
	for _, c := range result.List() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.CustomerID, c.CustType, c.Title(), c.Status)
	}
	fmt.Fprintf(w, "(%d total)\n", result.Total())
	return w.Flush()
}

func (a *app) open(ctx context.Context, args []string) error {
	id, err := parseCustomerID(args[0])
	if err != nil {
		return err
	}
	custType, err := parseCustomerType(args[1])
	if err != nil {
		return err
	}

	light := customers.LightCustomer{CustomerID: id, CustType: custType}
	names := args[2:]
	if custType == customers.TypeB2B {
		light.B2B = &customers.B2B{CompanyName: strings.Join(names, " ")}
	} else {
		light.B2C = &customers.B2C{}
		if len(names) > 0 {
			light.B2C.FirstName = names[0]
			light.B2C.LastName = strings.Join(names[1:], " ")
		}
	}

	a.workspace.OpenTab(ctx, light)
	return a.tabs(ctx, nil)
}

func (a *app) tabs(context.Context, []string) error {
	tabs := a.workspace.Tabs()
	if len(tabs) == 0 {
		fmt.Fprintln(a.out, "No open tabs.")
		return nil
	}

	active := a.workspace.ActiveTabID()
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, t := range tabs {
		marker := " "
		if t.ID == active {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", marker, t.ID, t.Type, t.Title)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	a.printLocation()
	return nil
}

func (a *app) switchTab(ctx context.Context, args []string) error {
	if !a.strip.Switch(args[0]) {
		fmt.Fprintln(a.out, "Stayed on the current tab.")
		return nil
	}
	return a.tabs(ctx, nil)
}

func (a *app) closeTab(ctx context.Context, args []string) error {
	if !a.strip.Close(args[0]) {
		fmt.Fprintln(a.out, "Tab kept open.")
		return nil
	}
	return a.tabs(ctx, nil)
}

func (a *app) refresh(ctx context.Context, args []string) error {
	id, err := parseCustomerID(args[0])
	if err != nil {
		return err
	}
	if err := a.workspace.RefreshTab(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Refreshed customer %d.\n", id)
	return nil
}

// note adds a note and refreshes the customer's tab so it shows the new entry.
func (a *app) note(ctx context.Context, args []string) error {
	id, err := parseCustomerID(args[0])
	if err != nil {
		return err
	}
	created, err := a.api.CreateNote(ctx, id, customers.Note{Content: strings.Join(args[1:], " ")})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added note %d.\n", created.NoteID)

	if err := a.workspace.RefreshTab(ctx, id); err != nil && !crmerrors.Is(err, crmerrors.ErrNotFound) {
		return err
	}
	return nil
}

func (a *app) printLocation() {
	fmt.Fprintf(a.out, "at %s\n", a.history.Pathname())
}

func parseCustomerID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, crmerrors.Wrapf(crmerrors.ErrInvalidRequest, "customer id %q", s)
	}
	return id, nil
}

func parseCustomerType(s string) (customers.CustomerType, error) {
	switch t := customers.CustomerType(strings.ToUpper(s)); t {
	case customers.TypeB2B, customers.TypeB2C:
		return t, nil
	default:
		return "", crmerrors.Wrapf(crmerrors.ErrInvalidRequest, "customer type %q", s)
	}
}
