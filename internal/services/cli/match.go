package cli

import (
	"fmt"
	"io"
	"strings"

	"parachute/internal/services/api/rules/domain"
	rulesvc "parachute/internal/services/api/rules/service"

	"github.com/spf13/cobra"
)

func (a *app) matchCmd() *cobra.Command {
	var duration int
	cmd := &cobra.Command{
		Use:   "match TEXT",
		Short: "Show how one comment is read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := rulesvc.New(a.pack, a.eng.Matcher())
			out, err := svc.Match(cmd.Context(), domain.MatchInput{Text: args[0], DurationSeconds: duration})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.opts.output, out, func(w io.Writer) error {
				return writeMatch(w, out)
			})
		},
	}
	cmd.Flags().IntVar(&duration, "duration", 0, "video duration in seconds (0 is unknown)")
	return cmd
}

func writeMatch(w io.Writer, out domain.MatchOutput) error {
	ids := make([]string, 0, len(out.Matched))
	for _, m := range out.Matched {
		ids = append(ids, m.ID)
	}
	if len(ids) == 0 {
		ids = append(ids, "-")
	}
	_, _ = fmt.Fprintf(w, "normalized  %s\n", out.Normalized)
	_, _ = fmt.Fprintf(w, "matched     %s\n", strings.Join(ids, ", "))
	if out.Best == nil {
		_, err := fmt.Fprintln(w, "best        none")
		return err
	}
	_, err := fmt.Fprintf(w, "best        %s (%ds) via %s from %q\n", out.Label, out.Best.Seconds, out.Best.RuleID, out.Best.Extracted)
	return err
}
