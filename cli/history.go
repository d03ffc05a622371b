package cli

import (
	"time"

	"github.com/spf13/cobra"

	"pedro.to/valgo/cli/output"
	"pedro.to/valgo/valorant"
)

func newHistoryCmd() *cobra.Command {
	var (
		flagPlayer string
		flagStart  int
		flagEnd    int
		flagQueue  string
	)

	histCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent matches, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := playerID(flagPlayer)
			if err != nil {
				return err
			}

			c, persist, err := authedClient(cmd.Context())
			if err != nil {
				return err
			}
			defer persist()

			h, err := c.MatchHistory(&valorant.MatchHistoryParams{
				PlayerID:   pid,
				StartIndex: flagStart,
				EndIndex:   flagEnd,
				Queue:      flagQueue,
				Context:    cmd.Context(),
			})
			if err != nil {
				return err
			}
			if handled, err := handleJSONOutput(cmd, h); handled {
				return err
			}

			s := getIO()
			headers := []string{"MATCH", "QUEUE", "STARTED"}
			rows := make([][]string, 0, len(h.History))
			for _, m := range h.History {
				started := time.UnixMilli(m.GameStartTime).Format("2006-01-02 15:04")
				rows = append(rows, []string{m.MatchID, m.QueueID, started})
			}
			output.PrintTable(s.Out, headers, rows, s.IsTerminal())
			return nil
		},
	}

	histCmd.Flags().StringVar(&flagPlayer, "player", "", "Player id (defaults to the session account)")
	histCmd.Flags().IntVar(&flagStart, "start", 0, "First match index")
	histCmd.Flags().IntVar(&flagEnd, "end", 20, "Last match index (max page size 25)")
	histCmd.Flags().StringVar(&flagQueue, "queue", "", "Filter by queue id (competitive, unrated, deathmatch...)")

	histCmd.AddCommand(newMatchCmd())
	return histCmd
}

func newMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <match-id>",
		Short: "Show the full scoreboard of a finished match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mid, err := matchID(args[0])
			if err != nil {
				return err
			}

			c, persist, err := authedClient(cmd.Context())
			if err != nil {
				return err
			}
			defer persist()

			d, err := c.MatchDetails(&valorant.MatchDetailsParams{
				MatchID: mid,
				Context: cmd.Context(),
			})
			if err != nil {
				return err
			}
			// Match details are too nested for a table; always JSON.
			if handled, err := handleJSONOutput(cmd, d); handled {
				return err
			}
			return output.PrintJSON(getIO().Out, d)
		},
	}
}
