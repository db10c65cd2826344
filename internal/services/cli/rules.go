package cli

import (
	"fmt"
	"io"

	rulesvc "parachute/internal/services/api/rules/service"

	"github.com/spf13/cobra"
)

func (a *app) rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the compiled rule catalogue in priority order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat := rulesvc.New(a.pack, a.eng.Matcher()).Catalogue(cmd.Context())
			return render(cmd.OutOrStdout(), a.opts.output, cat, func(w io.Writer) error {
				for _, r := range cat.Rules {
					_, _ = fmt.Fprintf(w, "%2d  %-24s %-18s %s\n", r.Priority, r.ID, r.Kind, r.Pattern)
				}
				_, err := fmt.Fprintf(w, "%d rules, version %d\n", len(cat.Rules), cat.Version)
				return err
			})
		},
	}
}
