// @title         Parachute API
// @version       0.1.0
// @description   Skip-point inference over danmaku buffers and comment lists

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"parachute/internal/core/rulepack"
	"parachute/internal/core/version"
	"parachute/internal/platform/config"
	"parachute/internal/platform/logger"
	"parachute/internal/platform/metrics"
	phttp "parachute/internal/platform/net/http"

	"parachute/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (PARACHUTE_API_*)
	root := config.New()
	apiCfg := root.Prefix("PARACHUTE_API_")

	// bring up logging early
	opt := logger.FromEnv()
	if opt.Service == "" {
		opt.Service = version.Service + "-api"
	}
	logger.Init(opt)
	l := logger.Get()

	// a bad catalogue is a build defect; fail before listening
	pack, err := rulepack.Load()
	if err != nil {
		l.Panic().Err(err).Msg("rulepack.Load failed")
	}

	reg := metrics.New(metrics.Options{GoRuntime: true, Process: true})

	// http server (reads PARACHUTE_API_PORT etc)
	srv := phttp.NewServer(apiCfg)

	o := api.FromConfig(apiCfg)
	o.Logger = l
	o.Rules = pack
	o.Metrics = reg
	api.Mount(srv.Router(), o)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l.Info().
		Str("addr", srv.Addr()).
		Str("version", version.Info().Version).
		Int("rules_version", pack.Version).
		Int("rules", len(pack.Rules)).
		Msg("parachute api starting")

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
