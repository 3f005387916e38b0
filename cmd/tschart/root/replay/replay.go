package replay

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/wandb/tschart/cmd/tschart/root/session"
	"github.com/wandb/tschart/internal/chart"
	"github.com/wandb/tschart/internal/export"
	"github.com/wandb/tschart/internal/frame"
)

// NewReplayCmd creates a command that feeds a recorded pointer trace to
// the renderer and writes every painted frame.
func NewReplayCmd() *cobra.Command {
	var (
		tracePath string
		dir       string
		interval  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "replay [dataset]",
		Short: "Replay a pointer trace into PNG frames",
		Long: heredoc.Doc(`
			Replay a YAML pointer trace against a chart on a virtual frame
			clock. Pointer events within one frame interval are coalesced,
			so each written frame matches one repaint.
		`),
		Example: heredoc.Doc(`
			# trace.yaml
			# - {at_ms: 0, x: 12.5}
			# - {at_ms: 16, x: 40}
			# - {at_ms: 48, leave: true}
			$ tschart replay metrics.yaml -t trace.yaml --frames-dir out
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			trace, err := export.LoadTrace(s.Fs, tracePath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			n, err := export.Replay(ctx, export.ReplayParams{
				Fs:       s.Fs,
				Dir:      dir,
				Data:     ds,
				Trace:    trace,
				Interval: interval,
				Logger:   s.Logger,
				Options:  []chart.Option{chart.WithMetrics(s.Metrics)},
			})
			if err != nil {
				s.Logger.CaptureError(fmt.Errorf("replay: %v", err))
				return err
			}

			charmlog.NewWithOptions(cmd.ErrOrStderr(), charmlog.Options{}).
				Info("Wrote frames", "count", n, "dir", dir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&tracePath, "trace", "t", "", "Path to the YAML pointer trace (required)")
	cmd.Flags().StringVar(&dir, "frames-dir", "frames", "Directory for frame-NNNN.png files")
	cmd.Flags().DurationVar(&interval, "interval", frame.DefaultInterval, "Virtual frame period")
	_ = cmd.MarkFlagRequired("trace")

	return cmd
}
