package view

import (
	"errors"
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/moby/term"
	"github.com/spf13/cobra"

	"github.com/wandb/tschart/cmd/tschart/root/session"
	"github.com/wandb/tschart/internal/viewer"
)

var errNotTerminal = errors.New("view: stdout is not a terminal, use render instead")

// NewViewCmd creates the interactive terminal viewer command.
func NewViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [dataset]",
		Short: "Explore a chart in the terminal",
		Long: heredoc.Doc(`
			Open a dataset in the terminal. Move the mouse over the chart to
			see the guide line, highlighted points and the tooltip.

			Keys: left/right step through samples, esc clears the hover,
			t toggles the tooltip, q quits.
		`),
		Example: heredoc.Doc(`
			$ tschart view metrics.json
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, isTerm := term.GetFdInfo(cmd.OutOrStdout()); !isTerm {
				return errNotTerminal
			}

			// The viewer owns the terminal, so the debug log never goes to stderr.
			s, err := session.Start(session.Params{})
			if err != nil {
				return err
			}
			defer s.Close()
			defer s.Logger.Reraise()

			ds, title, err := s.LoadDataset(args)
			if err != nil {
				return err
			}

			configPath, err := viewer.DefaultConfigPath(os.Getenv)
			if err != nil {
				return err
			}

			model, err := viewer.NewModel(viewer.ModelParams{
				Title:   title,
				Data:    ds,
				Config:  viewer.NewConfigManager(s.Fs, configPath, s.Logger),
				Logger:  s.Logger,
				Metrics: s.Metrics,
			})
			if err != nil {
				return err
			}

			// Hover needs motion events without a pressed button.
			p := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithMouseAllMotion(),
				tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				s.Logger.Error(fmt.Sprintf("viewer: %v", err))
				return err
			}
			return nil
		},
	}

	return cmd
}
