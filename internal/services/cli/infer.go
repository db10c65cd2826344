package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"parachute/internal/core/inference"
	"parachute/internal/core/timeexpr"
	perr "parachute/internal/platform/errors"

	"github.com/spf13/cobra"
)

type inferOptions struct {
	duration int
	kind     string
}

func (a *app) inferCmd() *cobra.Command {
	o := &inferOptions{}
	cmd := &cobra.Command{
		Use:   "infer FILE...",
		Short: "Vote on the skip point of one video",
		Long: "Each FILE is a binary danmaku buffer, or a .json comment list\n" +
			"[{\"time\": 12.3, \"text\": \"...\"}]. All files belong to the same video.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.duration < 0 {
				return perr.WithField(perr.InvalidArgf("duration must be 0 or greater"), "duration")
			}
			kind, err := inference.ParseKind(o.kind)
			if err != nil {
				return perr.WithField(perr.Wrap(err, perr.ErrorCodeInvalidArgument, "invalid buffer kind"), "kind")
			}

			files, err := readFiles(cmd.Context(), args, a.opts.workers)
			if err != nil {
				return err
			}

			var (
				buffers []inference.Buffer
				extra   []inference.Comment
			)
			for _, f := range files {
				if f.isCommentList() {
					cs, err := parseComments(f)
					if err != nil {
						return err
					}
					extra = append(extra, cs...)
					continue
				}
				buffers = append(buffers, inference.Buffer{
					Kind:  kind,
					Label: filepath.Base(f.path),
					Data:  f.data,
				})
			}

			res := a.eng.RunMixed(buffers, extra, nil, inference.Options{DurationSeconds: o.duration})
			a.log.Debug().
				Int("files", len(files)).
				Int("candidates", res.Stats.Candidates).
				Bool("found", res.Found()).
				Msg("infer done")

			return render(cmd.OutOrStdout(), a.opts.output, res, func(w io.Writer) error {
				return writeResult(w, res)
			})
		},
	}
	cmd.Flags().IntVar(&o.duration, "duration", 0, "video duration in seconds (0 is unknown)")
	cmd.Flags().StringVar(&o.kind, "kind", string(inference.KindSegment), "buffer kind: segment, history or view")
	return cmd
}

func writeResult(w io.Writer, res inference.Result) error {
	if !res.Found() {
		_, err := fmt.Fprintf(w, "no skip point (%d comments, %d candidates)\n", res.Stats.Processed, res.Stats.Candidates)
		return err
	}
	s := res.Stats
	_, _ = fmt.Fprintf(w, "skip point  %s (%ds)\n", res.BestLabel, *res.BestTime)
	_, _ = fmt.Fprintf(w, "votes       %d\n", res.VoteCount)
	_, _ = fmt.Fprintf(w, "comments    %d processed, %d duplicates, %d filtered\n", s.Processed, s.Duplicates, s.Filtered)
	_, _ = fmt.Fprintln(w, "clusters")
	for _, c := range res.Clusters {
		span := timeexpr.Format(c.Min)
		if c.Max != c.Min {
			span += "-" + timeexpr.Format(c.Max)
		}
		_, _ = fmt.Fprintf(w, "  %-12s %d\n", span, c.Count)
	}
	return nil
}
