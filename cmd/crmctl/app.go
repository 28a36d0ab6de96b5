package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jrsteele09/go-crm-workspace/apiclient"
	"github.com/jrsteele09/go-crm-workspace/internal/config"
	"github.com/jrsteele09/go-crm-workspace/navigation"
	"github.com/jrsteele09/go-crm-workspace/session"
	"github.com/jrsteele09/go-crm-workspace/session/oidcverify"
	"github.com/jrsteele09/go-crm-workspace/storage"
	"github.com/jrsteele09/go-crm-workspace/storage/sealed"
	"github.com/jrsteele09/go-crm-workspace/storage/sqlitestore"
	"github.com/jrsteele09/go-crm-workspace/workspace"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type appOptions struct {
	editing bool
	in      io.Reader
	out     io.Writer
}

// app is one CLI invocation: the client library wired against local storage.
type app struct {
	api       *apiclient.Client
	history   *navigation.History
	session   *session.Manager
	workspace *workspace.Manager
	strip     *workspace.Strip
	out       io.Writer
}

// openStore opens the SQLite store, sealed when a storage secret is set.
func openStore(c config.Config) (storage.Store, func(), error) {
	db, err := sqlitestore.Open(c.GetStoragePath())
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("closing store")
		}
	}

	secret := c.GetStorageSecret()
	if secret == "" {
		return db, closeFn, nil
	}
	s, err := sealed.New(db, secret)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return s, closeFn, nil
}

func newApp(ctx context.Context, c config.Config, store storage.Store, opts appOptions) (*app, error) {
	api := apiclient.NewClient(c.GetAPIBaseURL(),
		apiclient.WithAuthEndpoint(c.GetAuthEndpoint()),
		apiclient.WithTimeout(c.GetRequestTimeout()),
		apiclient.WithRetries(c.GetMaxRetries()),
		apiclient.WithRateLimit(c.GetRequestsPerSecond()),
		apiclient.WithUserAgent("crmctl"),
	)

	sessionOptions := []session.ManagerOption{session.WithRoleClientID(c.GetRoleClientID())}
	if issuer := c.GetOIDCIssuer(); issuer != "" {
		v, err := oidcverify.New(ctx, issuer, "")
		if err != nil {
			return nil, errors.Wrap(err, "[newApp] token verifier")
		}
		sessionOptions = append(sessionOptions, session.WithVerifier(v))
	}

	history := navigation.NewHistory(navigation.RouteRoot)
	sess := session.NewManager(store, api, api, history, sessionOptions...)
	ws := workspace.NewManager(store, api, history)
	history.Subscribe(ws.SyncLocation)
	sess.Subscribe(ws.SetToken)

	guard := workspace.NewEditGuard(confirmFrom(opts.in, opts.out))
	guard.SetEditing(opts.editing)

	sess.Initialize(ctx)

	return &app{
		api:       api,
		history:   history,
		session:   sess,
		workspace: ws,
		strip:     workspace.NewStrip(ws, guard),
		out:       opts.out,
	}, nil
}

// confirmFrom asks on out and accepts y or yes from in.
func confirmFrom(in io.Reader, out io.Writer) func(prompt string) bool {
	scanner := bufio.NewScanner(in)
	return func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		if !scanner.Scan() {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		return answer == "y" || answer == "yes"
	}
}
