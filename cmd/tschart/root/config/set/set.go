package set

import (
	"fmt"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/wandb/tschart/cmd/tschart/root/session"
	"github.com/wandb/tschart/internal/viewer"
)

func NewSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a viewer configuration value",
		Long: heredoc.Docf(`
			Set a viewer setting that will be persisted in the config file.

			Valid keys: %s
		`, strings.Join(viewer.Keys, ", ")),
		Example: heredoc.Doc(`
			# Repaint at most every 33ms
			$ tschart config set frame-interval-ms 33

			# Print x-axis dates in Berlin time
			$ tschart config set time-zone Europe/Berlin

			# Start with the tooltip hidden
			$ tschart config set show-tooltip false
		`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]

			s, err := session.Start(session.Params{Stderr: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			defer s.Close()

			path, err := viewer.DefaultConfigPath(os.Getenv)
			if err != nil {
				return err
			}

			cm := viewer.NewConfigManager(s.Fs, path, s.Logger)
			if err := cm.Set(key, value); err != nil {
				return fmt.Errorf("failed to set %s: %w", key, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Successfully set %s = %s in %s\n", key, value, cm.Path())
			return nil
		},
	}

	return cmd
}
