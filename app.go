package main

import (
	"context"
	"fmt"
	"os"

	"github.com/raghavtripped/subscription-tracker/internal"
	"github.com/sirupsen/logrus"
)

// GlobalParams are the flags every command accepts.
type GlobalParams struct {
	Config  string `descr:"Path to config file (default: ~/.subscription-tracker/config.yaml)" optional:"true"`
	Verbose bool   `descr:"Enable debug logging" optional:"true"`
}

// app holds what a command needs once config is loaded.
type app struct {
	cfg      *internal.Config
	log      *logrus.Logger
	cal      *internal.Calendar
	currency internal.Currency
	store    internal.Store
}

// loadApp loads config, builds the calendar and opens the store. Callers
// close the store.
func loadApp(g GlobalParams) (*app, error) {
	a, err := loadAppWithoutStore(g)
	if err != nil {
		return nil, err
	}
	a.store, err = internal.OpenStore(a.cfg.Store.Driver, a.cfg.Store.Path, a.log)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func loadAppWithoutStore(g GlobalParams) (*app, error) {
	cfg, err := internal.LoadConfig(g.Config)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if g.Verbose {
		level = "debug"
	}
	log := internal.NewLogger(level, cfg.LogFormat)

	cal, err := cfg.Calendar()
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"timezone": cal.Location().String(),
		"today":    cal.Today().String(),
		"config":   g.Config,
	}).Debug("config loaded")

	return &app{
		cfg:      cfg,
		log:      log,
		cal:      cal,
		currency: internal.NewCurrency(cfg.Currency, internal.ResolveLocale(cfg.Locale)),
	}, nil
}

func (a *app) close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		a.log.WithError(err).Warn("closing store")
	}
}

// run loads the app, runs fn and exits non-zero on failure.
func run(g GlobalParams, fn func(ctx context.Context, a *app) error) {
	a, err := loadApp(g)
	if err != nil {
		fail(err)
	}
	err = fn(context.Background(), a)
	a.close()
	if err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
