package main

// @title           CMA Core API
// @version         1.0
// @description     Comparative market analysis report builder: design provider integration, listings statistics and report publishing.

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /
// @schemes   http https

import (
	"context"
	"fmt"
	"os"
	"time"

	_ "github.com/custodia-labs/cma-core/docs"
	"github.com/custodia-labs/cma-core/internal/adapters/driven/auth"
	"github.com/custodia-labs/cma-core/internal/adapters/driven/design"
	"github.com/custodia-labs/cma-core/internal/adapters/driven/httpclient"
	"github.com/custodia-labs/cma-core/internal/adapters/driven/listings"
	"github.com/custodia-labs/cma-core/internal/adapters/driven/postgres"
	redisadapter "github.com/custodia-labs/cma-core/internal/adapters/driven/redis"
	"github.com/custodia-labs/cma-core/internal/adapters/driving/http"
	"github.com/custodia-labs/cma-core/internal/config"
	"github.com/custodia-labs/cma-core/internal/core/ports/driven"
	"github.com/custodia-labs/cma-core/internal/core/services"
	"github.com/custodia-labs/cma-core/internal/logging"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "cma-core: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Version == "dev" {
		cfg.Version = version
	}

	logger, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer logger.Close()
	log := logger.Logger
	log.Info("cma-core starting", "version", cfg.Version)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Keys for the OAuth state and the token cookie
	keys, err := auth.DeriveKeys(cfg.AppSecret)
	if err != nil {
		return err
	}
	stateCodec := auth.NewStateCodec(keys.StateSigning)
	sealer, err := auth.NewSealer(keys.CookieSeal)
	if err != nil {
		return fmt.Errorf("token sealer: %w", err)
	}

	// PostgreSQL
	db, err := postgres.Connect(ctx, postgres.DefaultConfig(cfg.DatabaseURL))
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.InitSchema(ctx); err != nil {
		return err
	}
	log.Info("database connected")

	// Redis (optional): export job metadata
	var jobs driven.ExportJobStore
	var redisPinger http.Pinger
	if cfg.RedisURL != "" {
		redisClient, err := redisadapter.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		jobs = redisadapter.NewExportJobStore(redisClient)
		redisPinger = redisadapter.NewPinger(redisClient)
		log.Info("redis connected")
	} else {
		log.Warn("REDIS_URL not set, export polls will not carry design id and format")
	}

	// Upstream clients
	designHTTP := newUpstream("design", cfg.Upstream)
	designAPI := design.NewClient(cfg.Design.APIBaseURL,
		httpclient.NewCircuitBreakerClient(designHTTP, httpclient.DefaultCircuitBreakerConfig("design"), log))
	authorizer := design.NewAuthorizer(design.OAuthConfig{
		ClientID:     cfg.Design.ClientID,
		ClientSecret: cfg.Design.ClientSecret,
		AuthURL:      cfg.Design.AuthURL,
		TokenURL:     cfg.Design.TokenURL,
		RedirectURL:  cfg.Design.RedirectURL,
		Scopes:       cfg.Design.Scopes,
	}, designHTTP.HTTPClient())

	listingsHTTP := newUpstream("listings", cfg.Upstream)
	listingsAPI := listings.NewClient(cfg.Listings.BaseURL, cfg.Listings.APIKey,
		httpclient.NewCircuitBreakerClient(listingsHTTP, httpclient.DefaultCircuitBreakerConfig("listings"), log))

	// Services
	svc := http.Services{
		AuthFlow: services.NewAuthFlowService(services.AuthFlowServiceConfig{
			Authorizer:      authorizer,
			StateCodec:      stateCodec,
			DefaultReturnTo: cfg.DashboardPath,
			StateTTL:        cfg.Design.StateTTL,
			Logger:          log,
		}),
		Exports: services.NewExportService(services.ExportServiceConfig{
			API:       designAPI,
			Jobs:      jobs,
			RecordTTL: cfg.Design.ExportRecordTTL,
			Logger:    log,
		}),
		Templates: services.NewTemplateService(designAPI),
		Listings: services.NewListingsService(services.ListingsServiceConfig{
			API:    listingsAPI,
			Logger: log,
		}),
		Publisher: services.NewPublishService(services.PublishServiceConfig{
			Store:   postgres.NewReportStore(db),
			BaseURL: cfg.BaseURL,
			Logger:  log,
		}),
	}

	server := http.NewServer(http.Config{
		Host:               cfg.Host,
		Port:               cfg.Port,
		Version:            cfg.Version,
		DashboardPath:      cfg.DashboardPath,
		ExportPollInterval: cfg.Design.ExportPoll,
		CORSOrigins:        cfg.CORSOrigins,
		Logger:             log,
	}, svc, http.NewTokenStore(sealer, cfg.CookieSecure), db, redisPinger)

	return server.Start()
}

func newUpstream(name string, cfg config.UpstreamConfig) *httpclient.Client {
	c := httpclient.DefaultConfig(name)
	c.Timeout = cfg.Timeout
	return httpclient.New(c)
}
