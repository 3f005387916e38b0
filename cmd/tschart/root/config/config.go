package config

import (
	"github.com/spf13/cobra"

	"github.com/wandb/tschart/cmd/tschart/root/config/set"
)

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config <command>",
		Short: "Viewer configuration commands",
		Long:  `Commands for managing the persisted viewer settings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(set.NewSetCmd())

	return cmd
}
