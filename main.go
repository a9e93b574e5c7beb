// Campusfeed is the school feed aggregation daemon.
//
// It periodically pulls the five upstream feeds (schedules, events, lunch,
// daily announcements, news) into a local store and serves the grouped,
// display-ready views over HTTP.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/oklog/run"
	"github.com/sethvargo/go-envconfig"
	_ "modernc.org/sqlite"

	"github.com/mwhitley/campusfeed/internal/migrations"
	"github.com/mwhitley/campusfeed/internal/server"
	"github.com/mwhitley/campusfeed/internal/sqlite"
	"github.com/mwhitley/campusfeed/internal/sync"
	"github.com/mwhitley/campusfeed/logger"
)

type config struct {
	Port     int    `env:"PORT, default=8080"`
	Database string `env:"DATABASE, required"`

	// Which format to use for logging: either text or json
	LoggerFormat string `env:"LOGGER_FORMAT, default=text"`

	// How often to refresh all feeds.
	SyncInterval time.Duration `env:"SYNC_INTERVAL, default=30m"`

	SchedulesURL string `env:"SCHEDULES_URL, required"`
	EventsURL    string `env:"EVENTS_URL, required"`
	LunchURL     string `env:"LUNCH_URL, required"`
	DailyAnnURL  string `env:"DAILYANN_URL, required"`
	NewsURL      string `env:"NEWS_URL, required"`

	// Key for the news feed API.
	FeedAPIKey string `env:"FEED_API_KEY"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Parse the config
	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		log.Fatalf("error parsing config: %s", err)
	}

	logger.Setup(cfg.LoggerFormat)

	// Connect to the sqlite db and bring the schema up to date
	dbx, err := sqlx.Open("sqlite", cfg.Database)
	if err != nil {
		log.Fatalf("error opening database: %s", err)
	}
	defer dbx.Close()

	if err := migrations.Run(dbx); err != nil {
		log.Fatalf("error running migrations: %s", err)
	}

	repo := sqlite.New(dbx)
	syncer := sync.New(repo, sync.NewHTTPFetcher(nil), sync.Endpoints{
		Schedules: cfg.SchedulesURL,
		Events:    cfg.EventsURL,
		Lunch:     cfg.LunchURL,
		DailyAnn:  cfg.DailyAnnURL,
		News:      cfg.NewsURL,
		APIKey:    cfg.FeedAPIKey,
	})

	api := server.NewAPI(repo, syncer)
	srv, router := server.NewServer(cfg.Port)
	api.Attach(router)

	var g run.Group

	g.Add(run.SignalHandler(ctx, os.Interrupt, syscall.SIGTERM))

	// The read API
	g.Add(func() error {
		slog.Info("starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}, func(error) {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	})

	// The periodic refresh loop
	syncCtx, syncCancel := context.WithCancel(ctx)
	g.Add(func() error {
		syncer.SyncAll(syncCtx)

		ticker := time.NewTicker(cfg.SyncInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				syncer.SyncAll(syncCtx)
			case <-syncCtx.Done():
				return nil
			}
		}
	}, func(error) {
		syncCancel()
	})

	// Completion signals flush the section cache so readers see new data
	g.Add(func() error {
		for {
			select {
			case res := <-syncer.Completions():
				slog.Info("sync completed", "count", res.Count, "source", res.Source)
				api.Purge()
			case <-syncCtx.Done():
				return nil
			}
		}
	}, func(error) {
		syncCancel()
	})

	if err := g.Run(); err != nil && !errors.As(err, &run.SignalError{}) {
		log.Fatalf("error running: %s", err)
	}
}
