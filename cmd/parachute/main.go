// Command parachute finds video skip points from local danmaku files
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"parachute/internal/platform/logger"
	"parachute/internal/services/cli"
)

func main() {
	// results go to stdout; logs stay on stderr
	opt := logger.FromEnv()
	opt.Writer = os.Stderr
	if opt.Level == "info" {
		opt.Level = "warn"
	}
	logger.Init(opt)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
