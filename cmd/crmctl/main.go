package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-crm-workspace/internal/config"
	"github.com/jrsteele09/go-crm-workspace/internal/logging"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Error().Err(err).Msg("crmctl failed")
		os.Exit(1)
	}
}

func run(args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	logging.Setup(c.GetEnv(), c.GetLogLevel())

	flags := flag.NewFlagSet("crmctl", flag.ContinueOnError)
	editing := flags.Bool("editing", false, "treat the active tab as having unsaved changes")
	flags.Usage = func() { usage(c.GetAppName(), flags) }
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(c)
	if err != nil {
		return err
	}
	defer closeStore()

	a, err := newApp(ctx, c, store, appOptions{editing: *editing, in: os.Stdin, out: os.Stdout})
	if err != nil {
		return err
	}
	return a.dispatch(ctx, flags.Args())
}

func usage(appName string, flags *flag.FlagSet) {
	displayAppname(appName)
	fmt.Fprintf(flags.Output(), `Usage: crmctl [--editing] <command> [args]

Commands:
  login <user> <password>          sign in and restore saved tabs
  logout                           sign out and clear the workspace
  whoami                           show the signed in user
  search <B2B|B2C> <field> <value> search customers
  open <id> <B2B|B2C> [name...]    open a customer tab
  tabs                             list open tabs
  switch <tabId>                   activate a tab
  close <tabId>                    close a tab
  refresh <id>                     re-fetch an open customer
  note <id> <content>              add a note to a customer
`)
	flags.PrintDefaults()
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
