package cli

import (
	"github.com/spf13/cobra"

	"pedro.to/valgo/cli/output"
	"pedro.to/valgo/valorant"
)

func newPregameCmd() *cobra.Command {
	var flagLoadouts bool

	pregameCmd := &cobra.Command{
		Use:   "pregame",
		Short: "Show the current agent select",
		Long: `Shows the agent-select state of the match the account currently sits
in. Fails with a 404 from the backend when the account is not in agent
select.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, persist, err := authedClient(cmd.Context())
			if err != nil {
				return err
			}
			defer persist()

			if flagLoadouts {
				lo, err := c.PregameLoadout(&valorant.PregameLoadoutParams{Context: cmd.Context()})
				if err != nil {
					return err
				}
				if handled, err := handleJSONOutput(cmd, lo); handled {
					return err
				}
				return output.PrintJSON(getIO().Out, lo)
			}

			m, err := c.PregameMatch(&valorant.PregameMatchParams{Context: cmd.Context()})
			if err != nil {
				return err
			}
			if handled, err := handleJSONOutput(cmd, m); handled {
				return err
			}

			s := getIO()
			headers := []string{"MATCH", "MAP", "STATE"}
			rows := [][]string{{m.ID, m.MapID, m.PregameState}}
			output.PrintTable(s.Out, headers, rows, s.IsTerminal())
			return nil
		},
	}
	pregameCmd.Flags().BoolVar(&flagLoadouts, "loadouts", false, "Show the visible loadouts instead of the match state")
	return pregameCmd
}

func newLiveCmd() *cobra.Command {
	var flagLoadouts bool

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "Show the running match",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, persist, err := authedClient(cmd.Context())
			if err != nil {
				return err
			}
			defer persist()

			if flagLoadouts {
				lo, err := c.LiveGameLoadout(&valorant.LiveGameLoadoutParams{Context: cmd.Context()})
				if err != nil {
					return err
				}
				if handled, err := handleJSONOutput(cmd, lo); handled {
					return err
				}
				return output.PrintJSON(getIO().Out, lo)
			}

			m, err := c.LiveGameMatch(&valorant.LiveGameMatchParams{Context: cmd.Context()})
			if err != nil {
				return err
			}
			if handled, err := handleJSONOutput(cmd, m); handled {
				return err
			}

			s := getIO()
			headers := []string{"MATCH", "MAP", "MODE", "STATE"}
			rows := [][]string{{m.MatchID, m.MapID, m.ModeID, m.State}}
			output.PrintTable(s.Out, headers, rows, s.IsTerminal())
			return nil
		},
	}
	liveCmd.Flags().BoolVar(&flagLoadouts, "loadouts", false, "Show the loadouts instead of the match state")
	return liveCmd
}
