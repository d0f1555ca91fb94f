package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fuzzydates/config"
	"fuzzydates/db"
	"fuzzydates/log"
	"fuzzydates/routes"

	"github.com/spf13/cobra"
)

var Serve *cobra.Command

func init() {
	Serve = &cobra.Command{
		Use:   "serve",
		Short: "Serve normalization and table_records over HTTP",
		Run: func(_ *cobra.Command, _ []string) {
			runServer()
		},
	}
}

func runServer() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool := db.MustOpen(context.Background(), config.Cfg.DB)
	defer pool.Close()

	// Development databases are migrated on start, production ones by the deploy
	if config.Cfg.Env.IsDevOrTest() {
		if _, err := db.Migrate(pool); err != nil {
			panic(err)
		}
	}
	if err := db.EnsureLatestMigration(pool); err != nil {
		panic(err)
	}

	server := &http.Server{
		Addr:              config.Cfg.HttpAddr,
		Handler:           routes.NewRouter(pool),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Shutdown error")
		}
	}()

	log.Info().Str("addr", server.Addr).Str("env", config.Cfg.Env.String()).Msg("Started")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	}
	log.Info().Msg("Stopped")
}
