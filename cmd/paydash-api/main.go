// @title         paydash API
// @version       0.1.0
// @description   Read only reporting over payroll and savings fund records

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paydash/internal/core/category"
	"paydash/internal/core/version"
	"paydash/internal/modkit/repokit"
	"paydash/internal/platform/config"
	"paydash/internal/platform/logger"
	phttp "paydash/internal/platform/net/http"
	"paydash/internal/platform/store"

	"paydash/internal/services/api"
)

// pgConfig reads one source under SERVICE_<NAME>_PGSQL_*, a source without DBURL stays disabled
func pgConfig(c config.Conf) store.PGConfig {
	url := c.MayString("DBURL", "")
	return store.PGConfig{
		Enabled:          url != "",
		URL:              url,
		MaxConns:         int32(c.MayIntAtLeast("MAX_CONNS", 4, 1)),
		SlowQueryMs:      c.MayInt("SLOW_MS", 500),
		LogSQL:           c.MayBool("LOG_SQL", false),
		StatementTimeout: c.MayDuration("STATEMENT_TIMEOUT", 0),
		ConnectRetries:   c.MayIntAtLeast("CONNECT_RETRIES", 20, 1),
		PingTimeout:      c.MayDuration("PING_TIMEOUT", 3*time.Second),
	}
}

func main() {
	// .env before anything reads the environment
	loaded, envErr := config.LoadDotEnv()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_") // service-scoped config for HTTP and reports (CORE_API_*)

	// bring up logging early
	l := logger.Get()
	if envErr != nil {
		l.Panic().Err(envErr).Msg("dotenv load failed")
	}
	l.Info().Strs("dotenv", loaded).Str("service", version.Service).Str("version", version.Info().Version).Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// open both report pools
	st, err := store.Open(
		ctx,
		store.Config{
			AppName: version.Service,
			Payroll: pgConfig(root.Prefix("SERVICE_PAYROLL_PGSQL_")),
			Funds:   pgConfig(root.Prefix("SERVICE_FUNDS_PGSQL_")),
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	// the category index is soft: a missing file serves every title as Uncategorized
	var src category.Source
	if path := root.MayString("CATEGORIES_CSV", ""); path != "" {
		src = category.CSVFile{Path: path}
	}
	cats := category.NewHolder(ctx, src)
	go reloadOnHangup(ctx, cats, l)

	// http server (reads CORE_API_API_PORT)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Categories:     cats,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	// run until SIGINT/SIGTERM, then drain
	if err := srv.Serve(ctx, apiCfg.MayDuration("SHUTDOWN_TIMEOUT", 15*time.Second)); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("stopped")
}

// reloadOnHangup rebuilds the category index on every SIGHUP
func reloadOnHangup(ctx context.Context, cats *category.Holder, l *logger.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			ix := cats.Reload(ctx)
			l.Info().Int("titles", ix.Len()).Int("categories", len(ix.Categories())).Msg("category index reloaded")
		}
	}
}
