// Package cli implements the interactive terminal client: a small REPL over
// the synchronizer and the upload flow.
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/sireesha-siri/geotag-plants/internal/client/api"
	"github.com/sireesha-siri/geotag-plants/internal/client/config"
	"github.com/sireesha-siri/geotag-plants/internal/client/mirror"
	"github.com/sireesha-siri/geotag-plants/internal/client/sync"
	"github.com/sireesha-siri/geotag-plants/internal/logging"
)

type App struct {
	config *config.Config
	client api.Client
	sync   *sync.Synchronizer
	log    logging.Logger
	reader *bufio.Reader

	loggedIn bool
}

func NewApp(c *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	client := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout, api.RetryPolicy{
		MaxAttempts: c.RetryMaxAttempts,
		BaseDelay:   c.RetryBaseDelay,
	})

	store := mirror.NewFileStore(c.MirrorPath)
	synchronizer := sync.New(client, store, log, sync.WithFreshnessWindow(c.FreshnessWindow))

	return &App{
		config: c,
		client: client,
		sync:   synchronizer,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.client.Close() }()

	// First paint comes from the mirror before any network round trip.
	initial := a.sync.LoadInitial()
	printlnFn("Loaded", len(initial), "plant(s) from local mirror")

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn
}

func (a *App) status() string {
	if a.loggedIn {
		return "online"
	}
	return "guest"
}
