package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wandb/tschart/cmd/tschart/root/config"
	"github.com/wandb/tschart/cmd/tschart/root/render"
	"github.com/wandb/tschart/cmd/tschart/root/replay"
	"github.com/wandb/tschart/cmd/tschart/root/session"
	"github.com/wandb/tschart/cmd/tschart/root/sheet"
	"github.com/wandb/tschart/cmd/tschart/root/version"
	"github.com/wandb/tschart/cmd/tschart/root/view"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tschart <command>",
		Short: "Time-series line chart viewer",
		Long: heredoc.Doc(`
			Draws time-series datasets as line charts with a hover guide,
			point highlights and a tooltip.

			Datasets are JSON or YAML files with columns, types, names and
			colors. Without a dataset a built-in sample is shown.
		`),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().Bool(session.KeyDebug, false, "Write a debug log (env TSCHART_DEBUG)")
	cmd.PersistentFlags().String(session.KeyLogFile, session.DefaultLogFile,
		"Debug log path, or - for stderr outside the viewer")
	cmd.PersistentFlags().String(session.KeySentryDSN, "", "Report errors to this Sentry project (env TSCHART_SENTRY_DSN)")
	_ = viper.BindPFlag(session.KeyDebug, cmd.PersistentFlags().Lookup(session.KeyDebug))
	_ = viper.BindPFlag(session.KeyLogFile, cmd.PersistentFlags().Lookup(session.KeyLogFile))
	_ = viper.BindPFlag(session.KeySentryDSN, cmd.PersistentFlags().Lookup(session.KeySentryDSN))

	cmd.AddCommand(view.NewViewCmd())
	cmd.AddCommand(render.NewRenderCmd())
	cmd.AddCommand(replay.NewReplayCmd())
	cmd.AddCommand(sheet.NewSheetCmd())
	cmd.AddCommand(config.NewConfigCmd())
	cmd.AddCommand(version.NewVersionCmd())

	return cmd
}
