package dbs

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/Semantics3/go-amazon-media/data"
	"github.com/Semantics3/go-amazon-media/sources/amazon"
	"github.com/Semantics3/go-amazon-media/sources/amazon/ecs"
	ecstypes "github.com/Semantics3/go-amazon-media/sources/amazon/ecs/types"
	"github.com/Semantics3/go-amazon-media/stats"
	"github.com/Semantics3/go-amazon-media/types"
)

// ClientSettings maps the amazon config block onto request settings
func ClientSettings(ac types.AmazonConfig) (ecs.Settings, error) {
	settings := ecs.Settings{
		Version:          ac.Version,
		ResponseGroup:    ac.ResponseGroup,
		ParticipantTypes: ac.ParticipantTypes,
		ImageSizes:       ac.ImageSizes,
	}
	if ac.Endpoint == "" {
		return settings, nil
	}
	u, err := url.Parse(ac.Endpoint)
	if err != nil || u.Host == "" {
		return settings, fmt.Errorf("CONFIG_ENDPOINT_ERR: invalid endpoint %q", ac.Endpoint)
	}
	settings.Endpoint = ecstypes.LocaleEndpoint{
		Name:   u.Host,
		Scheme: u.Scheme,
		Host:   u.Host,
		Path:   u.Path,
	}
	return settings, nil
}

// NewAmazon builds the lookup orchestrator from a loaded config. Items are
// kept in postgres when pg_items is configured, in memory otherwise.
func NewAmazon(ctx context.Context, appC *types.Config) (*amazon.Amazon, error) {
	ac := appC.ConfigData.Amazon
	settings, err := ClientSettings(ac)
	if err != nil {
		return nil, err
	}
	client := ecs.NewClient(appC.Credentials, settings)

	var store data.Store
	if appC.PGItems != nil {
		pgStore := data.NewPGStore(appC.PGItems)
		if err = pgStore.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("PG_SCHEMA_ERR: %v", err)
		}
		store = pgStore
	} else {
		log.Printf("AMAZON_STORE: pg_items not configured, keeping items in memory\n")
		store = data.NewMemoryStore()
	}

	var recorder *stats.Recorder
	if appC.StatsdClient != nil || appC.ConfigData.Influx.Server != "" {
		var statter stats.Statter
		if appC.StatsdClient != nil {
			statter = appC.StatsdClient
		}
		recorder = stats.NewRecorder(statter, appC.ConfigData.Influx.Server)
	}

	return amazon.New(amazon.Options{
		Client:       client,
		Store:        store,
		Stats:        recorder,
		Redis:        appC.Redis,
		Concurrency:  ac.Concurrency,
		ChunkTimeout: time.Duration(ac.ChunkTimeoutSeconds) * time.Second,
		MaxRetry:     ac.RateLimitRetries,
	}), nil
}

// BatchWait is how long the item handle waits to fill a request
func BatchWait(ac types.AmazonConfig) time.Duration {
	if ac.BatchWaitMillis <= 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(ac.BatchWaitMillis) * time.Millisecond
}
