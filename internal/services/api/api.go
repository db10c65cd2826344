// Package api composes the HTTP API from its modules
package api

import (
	"time"

	"parachute/internal/core/rulepack"
	"parachute/internal/platform/config"
	"parachute/internal/platform/logger"
	"parachute/internal/platform/metrics"
	phttp "parachute/internal/platform/net/http"

	"parachute/internal/modkit"
	"parachute/internal/modkit/httpkit"
	"parachute/internal/modkit/module"
	"parachute/internal/modkit/swaggerkit"

	infermod "parachute/internal/services/api/infer/module"
	metamod "parachute/internal/services/api/meta/module"
	rulesmod "parachute/internal/services/api/rules/module"
)

// Base is the versioned API root every module mounts under
const Base = "/api/v1"

// Options are the API options
type Options struct {
	Config  config.Conf
	Logger  *logger.Logger
	Metrics *metrics.Registry
	Rules   *rulepack.Pack

	MaxBodyBytes   int64
	BatchWorkers   int
	Timeout        time.Duration
	SlowRequest    time.Duration
	CORSOrigins    []string
	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
}

// FromConfig reads API options from cfg, e.g. the PARACHUTE_API_ view
func FromConfig(cfg config.Conf) Options {
	return Options{
		Config:         cfg,
		MaxBodyBytes:   cfg.MayBytes("MAX_BODY_BYTES", infermod.DefaultBodyLimit),
		BatchWorkers:   cfg.MayInt("BATCH_WORKERS", 4),
		Timeout:        cfg.MayDuration("TIMEOUT", 30*time.Second),
		SlowRequest:    cfg.MayDuration("SLOW_REQUEST", time.Second),
		CORSOrigins:    cfg.MayCSV("CORS_ORIGINS", nil),
		EnableSwagger:  cfg.MayBool("SWAGGER", true),
		EnableProfiler: cfg.MayBool("PROFILER", false),
		EnableMetrics:  cfg.MayBool("METRICS", true),
	}
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	if opt.Rules == nil {
		opt.Rules = rulepack.MustLoad()
	}
	if opt.Metrics == nil {
		opt.Metrics = metrics.New(metrics.Options{})
	}

	deps := modkit.Deps{
		Log:     opt.Logger,
		Cfg:     opt.Config,
		Metrics: opt.Metrics,
		Rules:   opt.Rules,
	}

	// the infer module owns the engine; rules shares its matcher
	inferOpts := []modkit.Option{modkit.WithWorkers(opt.BatchWorkers)}
	if opt.MaxBodyBytes > 0 {
		inferOpts = append(inferOpts, modkit.WithBodyLimit(opt.MaxBodyBytes))
	}
	infer := infermod.New(deps, inferOpts...)
	eng := module.MustPortsOf[infermod.Ports](infer).Engine

	mods := []module.Module{
		metamod.New(deps),
		infer,
		rulesmod.New(deps, modkit.WithPorts(rulesmod.Ports{Matcher: eng.Matcher()})),
	}

	stack := httpkit.StackOptions{
		Timeout:     opt.Timeout,
		SlowRequest: opt.SlowRequest,
		CORSOrigins: opt.CORSOrigins,
	}
	if opt.EnableMetrics {
		stack.Metrics = opt.Metrics
		r.Handle("/metrics", opt.Metrics.Handler())
	}

	swaggerkit.Mount(r, opt.EnableSwagger, Base)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, httpkit.CommonStack(stack), func(api httpkit.Router) {
		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
