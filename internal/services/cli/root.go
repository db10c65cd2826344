// Package cli is the parachute command line. It reads local files only and
// prints results as text, json or yaml
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"parachute/internal/core/inference"
	"parachute/internal/core/rulepack"
	"parachute/internal/core/version"
	perr "parachute/internal/platform/errors"
	"parachute/internal/platform/logger"

	"github.com/spf13/cobra"
)

// Output formats accepted by --output
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// DefaultWorkers bounds concurrent file reads
const DefaultWorkers = 4

type rootOptions struct {
	output  string
	workers int
}

// app carries what every subcommand needs
type app struct {
	opts *rootOptions
	pack *rulepack.Pack
	eng  *inference.Engine
	log  *logger.Logger
}

// NewRootCommand builds the command tree over pack. A nil pack loads the
// embedded catalogue
func NewRootCommand(pack *rulepack.Pack) *cobra.Command {
	if pack == nil {
		pack = rulepack.MustLoad()
	}
	log := logger.Named("cli")
	a := &app{
		opts: &rootOptions{},
		pack: pack,
		eng:  inference.New(pack, log),
		log:  log,
	}

	bi := version.Info()
	cmd := &cobra.Command{
		Use:   "parachute",
		Short: "Find the skip point of a video from its danmaku",
		Long: "parachute reads danmaku buffers or comment dumps, extracts the timestamps\n" +
			"viewers post to skip an intro or ad, and votes on the consensus skip point.",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", bi.Version, bi.Commit, bi.Date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.opts.validate()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.opts.output, "output", OutputText, "output format (text, json, yaml)")
	pf.IntVar(&a.opts.workers, "workers", DefaultWorkers, "concurrent file reads")

	cmd.AddCommand(
		a.inferCmd(),
		a.decodeCmd(),
		a.matchCmd(),
		a.encodeCmd(),
		a.rulesCmd(),
	)
	return cmd
}

func (o *rootOptions) validate() error {
	o.output = strings.ToLower(strings.TrimSpace(o.output))
	switch o.output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return perr.WithField(perr.InvalidArgf("unknown output format %q", o.output), "output")
	}
	if o.workers < 1 {
		return perr.WithField(perr.InvalidArgf("workers must be at least 1"), "workers")
	}
	return nil
}

// Execute runs the command line with args and returns the process exit code
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand(nil)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	c, err := cmd.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}
	err = perr.WithOp(err, c.Name())
	if e, ok := perr.As(err); ok {
		logger.Named("cli").Debug().
			Str("op", e.Op()).
			Str("code", e.Code().String()).
			AnErr("cause", perr.Root(err)).
			Msg("command failed")
		_, _ = fmt.Fprintf(stderr, "error: %s: %v\n", e.Op(), err)
		return 1
	}
	_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
	return 1
}
