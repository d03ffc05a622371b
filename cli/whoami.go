package cli

import (
	"github.com/spf13/cobra"

	"pedro.to/valgo/cli/output"
)

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, persist, err := authedClient(cmd.Context())
			if err != nil {
				return err
			}
			defer persist()

			u := c.User()
			r := c.Region()
			data := map[string]any{
				"puuid":     c.PUUID(),
				"game_name": u.Acct.GameName,
				"tag_line":  u.Acct.TagLine,
				"country":   u.Country,
				"region":    r.Region,
				"shard":     r.Shard,
			}
			if handled, err := handleJSONOutput(cmd, data); handled {
				return err
			}

			s := getIO()
			headers := []string{"PUUID", "NAME", "REGION", "SHARD"}
			rows := [][]string{{
				c.PUUID(),
				u.Acct.GameName + "#" + u.Acct.TagLine,
				r.Region,
				r.Shard,
			}}
			output.PrintTable(s.Out, headers, rows, s.IsTerminal())
			return nil
		},
	}
}
