package cmd

import (
	"fmt"

	"github.com/userdeck/userdeck/internal/access"
	"github.com/userdeck/userdeck/internal/api"
	"github.com/userdeck/userdeck/internal/auth"
	"github.com/userdeck/userdeck/internal/config"
	"github.com/userdeck/userdeck/internal/directory"
	"github.com/userdeck/userdeck/internal/log"
	"github.com/userdeck/userdeck/internal/profile"
	"github.com/userdeck/userdeck/internal/session"
	"github.com/userdeck/userdeck/internal/ux"
)

// app wires the client stack for one command invocation: config, the
// persisted session, the API client, and the gateways over it.
type app struct {
	cfg     config.Config
	store   *session.FileStore
	client  *api.Client
	gateway *auth.Gateway
	logger  *log.Logger
}

// newApp builds the stack from config and the persisted session.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagAPIURL != "" {
		cfg.APIURL = flagAPIURL
	}

	logger := log.New(log.Config{
		Level:  log.ParseLevel(cfg.LogLevel),
		Format: log.ParseFormat(cfg.LogFormat),
		Output: log.DefaultConfig().Output,
	})
	log.SetDefault(logger)

	store, err := session.NewFileStore(cfg.Home())
	if err != nil {
		return nil, err
	}

	client := api.New(cfg.APIURL, cfg.Timeout, store, logger)

	return &app{
		cfg:     cfg,
		store:   store,
		client:  client,
		gateway: auth.NewGateway(client, store, logger),
		logger:  logger,
	}, nil
}

// directory builds the admin directory over this app's client.
func (a *app) directory() *directory.Directory {
	return directory.NewDirectory(a.client, a.logger)
}

// profileEditor builds the self-service editor over this app's client.
func (a *app) profileEditor() *profile.Editor {
	return profile.NewEditor(a.client, a.logger)
}

// requires gates a command on the declared requirement. The decision is the
// same pure check every screen uses; here a redirect becomes an error that
// names the command to run instead.
func (a *app) requires(req access.Requirement) error {
	decision := access.Decide(a.store.Get(), req)
	if decision.Allow {
		return nil
	}

	switch decision.RedirectTo {
	case access.ScreenLogin:
		return fmt.Errorf("not logged in; run 'userdeck auth login' first")
	default:
		return fmt.Errorf("this command requires the admin role")
	}
}

// formatter builds the output formatter selected by the global flags.
func formatter() (ux.Formatter, error) {
	return ux.NewFormatter(flagFormat, &ux.Options{NoColor: flagNoColor})
}
