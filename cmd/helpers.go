package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/starboard-re/comps-cli/internal/session"
	"github.com/starboard-re/comps-cli/pkg/comparable"
)

// initStore opens the configured session store and runs migrations.
func initStore(ctx context.Context) (session.Store, error) {
	var (
		st  session.Store
		err error
	)
	switch cfg.Session.Driver {
	case "sqlite":
		st, err = session.NewSQLite(cfg.Session.Path)
	case "postgres":
		st, err = session.NewPostgres(ctx, cfg.Session.DatabaseURL)
	case "memory":
		st = session.NewMemory()
	default:
		return nil, eris.Errorf("unknown session driver %q", cfg.Session.Driver)
	}
	if err != nil {
		return nil, eris.Wrap(err, "open session store")
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "migrate session store")
	}
	return st, nil
}

// initClient builds the comparable-search client from config.
func initClient() comparable.Client {
	return comparable.NewClient(
		comparable.WithBaseURL(cfg.API.BaseURL),
		comparable.WithTimeout(time.Duration(cfg.API.TimeoutSecs)*time.Second),
	)
}
