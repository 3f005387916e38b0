package render

import (
	"github.com/MakeNowJust/heredoc/v2"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/wandb/tschart/cmd/tschart/root/session"
	"github.com/wandb/tschart/internal/chart"
	"github.com/wandb/tschart/internal/export"
)

// NewRenderCmd creates a command that paints a dataset once to a PNG file.
func NewRenderCmd() *cobra.Command {
	var (
		out    string
		hoverX float64
	)

	cmd := &cobra.Command{
		Use:   "render [dataset]",
		Short: "Render a chart to a PNG file",
		Long:  `Paint a dataset once, optionally with the pointer hovering at a logical x position, and write the device-resolution image as PNG.`,
		Example: heredoc.Doc(`
			# Render the built-in sample
			$ tschart render -o chart.png

			# Render a dataset with the pointer over x=100
			$ tschart render metrics.yaml -o chart.png --hover 100
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

			var hover *float64
			if hoverX >= 0 {
				hover = &hoverX
			}

			raster, err := export.Render(ds, hover,
				chart.WithLogger(s.Logger),
				chart.WithMetrics(s.Metrics))
			if err != nil {
				return err
			}
			if err := export.WritePNG(s.Fs, out, raster.Image()); err != nil {
				s.Logger.CaptureError(err)
				return err
			}

			w, h := raster.BufferSize()
			charmlog.NewWithOptions(cmd.ErrOrStderr(), charmlog.Options{}).
				Info("Rendered chart", "path", out, "width", w, "height", h)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Path of the PNG file (required)")
	cmd.Flags().Float64Var(&hoverX, "hover", -1, "Hover this logical x position")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
