// Command matchbookd runs a single-symbol matching engine behind a
// TCP front end, adapted from saiputravu-Exchange/cmd/main.go. It
// drops the teacher's unfinished gRPC debug server in favour of an
// HTTP metrics listener alongside the order TCP listener.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"matchbook/internal/config"
	"matchbook/internal/engine"
	"matchbook/internal/metrics"
	"matchbook/internal/netsrv"
)

func main() {
	configPath := flag.String("config", "", "path to a matchbookd.yaml config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("matchbookd: failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer stop()

	book := engine.NewOrderBook(cfg.Engine.ArenaCapacity, cfg.Engine.QueueCapacity, cfg.Engine.TrackStats)
	srv := netsrv.New(cfg.Server.Address, cfg.Server.Port, book)

	if cfg.Metrics.Enabled {
		go serveMetrics(cfg.Metrics.Address, cfg.Metrics.Port)
	}

	go func() {
		if err := srv.Run(ctx); err != nil {
			log.Error().Err(err).Msg("matchbookd: server exited")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("matchbookd: shutting down")
}

func serveMetrics(address string, port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	addr := fmt.Sprintf("%s:%d", address, port)
	log.Info().Str("address", addr).Msg("matchbookd: serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("matchbookd: metrics server exited")
	}
}
