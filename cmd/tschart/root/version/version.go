package version

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Version is set at build time using ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

type info struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"gitCommit" yaml:"gitCommit"`
	BuildDate string `json:"buildDate" yaml:"buildDate"`
}

// NewVersionCmd creates a new command that displays version information
func NewVersionCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  `Display the version, git commit, and build date of tschart.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := info{Version: Version, GitCommit: GitCommit, BuildDate: BuildDate}

			var out []byte
			var err error
			switch format {
			case "json":
				out, err = json.MarshalIndent(v, "", "  ")
				out = append(out, '\n')
			case "yaml":
				out, err = yaml.Marshal(v)
			default:
				return fmt.Errorf("invalid format %q: use json or yaml", format)
			}
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format. Accepts 'json' or 'yaml'")

	return cmd
}
