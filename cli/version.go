package cli

import (
	"github.com/spf13/cobra"

	"pedro.to/valgo/cli/output"
	cfg "pedro.to/valgo/config"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the valgo version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := getIO()
			if jsonOutputRequested(cmd) {
				return output.PrintJSON(s.Out, map[string]any{"version": cfg.Version})
			}
			s.Printf("valgo version %s\n", cfg.Version)
			return nil
		},
	}
}
