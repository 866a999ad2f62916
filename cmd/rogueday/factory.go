package main

import (
	"context"
	"fmt"
	"log"

	"github.com/ShayCichocki/rogueday/internal/api"
	"github.com/ShayCichocki/rogueday/internal/config"
	"github.com/ShayCichocki/rogueday/internal/journal"
	"github.com/ShayCichocki/rogueday/internal/store"
)

// Bootstrap is the wired application: config, backend client, journal
// cache, and synchronized store.
type Bootstrap struct {
	Config  *config.Config
	Client  *api.Client
	Journal *journal.DB
	Store   *store.Store
}

// bootstrap loads config and wires the client, journal, and store. The
// journal cache is optional: a failure to open it degrades to no local
// history rather than blocking the session. The initial sync is also
// best-effort, so cached data stays reachable with the backend down.
func bootstrap() (*Bootstrap, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := api.NewClient(api.ClientConfig{
		BaseURL:    cfg.API.BaseURL,
		InitData:   cfg.API.InitData,
		TelegramID: cfg.API.TelegramID,
		Timeout:    cfg.API.Timeout,
	})
	if err != nil {
		return nil, err
	}

	jdb := openJournal(cfg)

	var cache store.Journal
	if jdb != nil {
		cache = jdb
	}
	s := store.New(client, cache)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout)
	defer cancel()
	if err := s.Refresh(ctx); err != nil {
		log.Printf("[rogueday] initial sync failed: %v", err)
	}
	if err := s.RefreshStats(ctx); err != nil {
		log.Printf("[rogueday] stats fetch failed: %v", err)
	}

	return &Bootstrap{
		Config:  cfg,
		Client:  client,
		Journal: jdb,
		Store:   s,
	}, nil
}

func openJournal(cfg *config.Config) *journal.DB {
	path := cfg.Journal.Path
	if path == "" {
		path = journal.DefaultDBPath()
	}
	jdb, err := journal.Open(path)
	if err != nil {
		log.Printf("[rogueday] journal cache unavailable: %v", err)
		return nil
	}
	if err := jdb.Migrate(); err != nil {
		log.Printf("[rogueday] journal migrate failed: %v", err)
		jdb.Close()
		return nil
	}
	return jdb
}

// Close releases the bootstrap's resources.
func (b *Bootstrap) Close() {
	if b.Journal != nil {
		b.Journal.Close()
	}
}

// actionCtx returns a context bounded by the configured API timeout.
func (b *Bootstrap) actionCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), b.Config.API.Timeout)
}
