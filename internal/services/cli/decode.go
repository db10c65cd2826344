package cli

import (
	"fmt"
	"io"

	"parachute/internal/core/dmseg"
	"parachute/internal/core/timeexpr"

	"github.com/spf13/cobra"
)

// decoded is the decode command output
type decoded struct {
	File    string         `json:"file" yaml:"file"`
	Report  dmseg.Report   `json:"report" yaml:"report"`
	Records []dmseg.Record `json:"records" yaml:"records"`
}

func (a *app) decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode FILE",
		Short: "Dump the records of a binary danmaku buffer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readFile(args[0])
			if err != nil {
				return err
			}
			recs, rep := dmseg.DecodeReport(b)
			out := decoded{File: args[0], Report: rep, Records: recs}
			if out.Records == nil {
				out.Records = []dmseg.Record{}
			}
			return render(cmd.OutOrStdout(), a.opts.output, out, func(w io.Writer) error {
				for _, r := range recs {
					ms := r.ProgressMs % 1000
					_, _ = fmt.Fprintf(w, "%s.%03d  %s\n", timeexpr.Format(int(r.ProgressMs/1000)), ms, r.Content)
				}
				_, err := fmt.Fprintf(w, "%d records, %d dropped, corrupt=%t\n", rep.Kept, rep.Dropped, rep.Corrupt)
				return err
			})
		},
	}
}
