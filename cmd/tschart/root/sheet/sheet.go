package sheet

import (
	"fmt"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/wandb/tschart/cmd/tschart/root/session"
	"github.com/wandb/tschart/internal/export"
)

// NewSheetCmd creates a command that exports a dataset as an XLSX workbook.
func NewSheetCmd() *cobra.Command {
	var (
		out      string
		timeZone string
	)

	cmd := &cobra.Command{
		Use:   "sheet [dataset]",
		Short: "Export a dataset to an XLSX workbook",
		Long:  `Write the samples as a table with one column per series, plus a spreadsheet line chart in the series colors.`,
		Example: heredoc.Doc(`
			$ tschart sheet metrics.json -o metrics.xlsx --tz Europe/Berlin
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := time.LoadLocation(timeZone)
			if err != nil {
				return fmt.Errorf("invalid time zone %q: %w", timeZone, err)
			}

			s, err := session.Start(session.Params{Stderr: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			defer s.Close()
			defer s.Logger.Reraise()

			ds, _, err := s.LoadDataset(args)
			if err != nil {
				return err
			}
			if err := export.WriteXLSX(s.Fs, out, ds, loc); err != nil {
				s.Logger.CaptureError(err)
				return err
			}

			charmlog.NewWithOptions(cmd.ErrOrStderr(), charmlog.Options{}).
				Info("Wrote workbook", "path", out, "samples", ds.SampleCount())
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Path of the XLSX file (required)")
	cmd.Flags().StringVar(&timeZone, "tz", "UTC", "Time zone of the date column")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
