package cli

import (
	"fmt"
	"os"

	"parachute/internal/core/dmseg"
	perr "parachute/internal/platform/errors"

	"github.com/spf13/cobra"
)

func (a *app) encodeCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "encode IN.json",
		Short: "Write a binary danmaku buffer from a comment list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readFile(args[0])
			if err != nil {
				return err
			}
			cs, err := parseComments(file{path: args[0], data: b})
			if err != nil {
				return err
			}

			recs := make([]dmseg.Record, 0, len(cs))
			for i, c := range cs {
				recs = append(recs, dmseg.Record{
					ID:         uint64(i + 1),
					ProgressMs: c.ProgressMs(),
					Mode:       1,
					FontSize:   25,
					Color:      0xffffff,
					Content:    c.Text,
				})
			}
			buf := dmseg.Encode(recs)

			if out == "-" {
				_, err := cmd.OutOrStdout().Write(buf)
				return err
			}
			if err := perr.WrapIf(os.WriteFile(out, buf, 0o644), perr.ErrorCodeUnknown, "write "+out); err != nil {
				return err
			}
			a.log.Debug().Str("out", out).Int("records", len(recs)).Msg("buffer written")
			_, err = fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d records, %d bytes)\n", out, len(recs), len(buf))
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output path or '-' for stdout")
	return cmd
}
