package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"pedro.to/valgo/cli/output"
	"pedro.to/valgo/valorant"
)

func newMMRCmd() *cobra.Command {
	var flagPlayer string

	mmrCmd := &cobra.Command{
		Use:   "mmr",
		Short: "Show ranked skill data",
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

			m, err := c.MMR(&valorant.MMRParams{
				PlayerID: pid,
				Context:  cmd.Context(),
			})
			if err != nil {
				return err
			}
			// QueueSkills is a deep per-season document, always JSON.
			if handled, err := handleJSONOutput(cmd, m); handled {
				return err
			}
			return output.PrintJSON(getIO().Out, m)
		},
	}
	mmrCmd.Flags().StringVar(&flagPlayer, "player", "", "Player id (defaults to the session account)")

	mmrCmd.AddCommand(newLeaderboardCmd())
	mmrCmd.AddCommand(newPenaltiesCmd())
	return mmrCmd
}

func newLeaderboardCmd() *cobra.Command {
	var (
		flagStart int
		flagSize  int
		flagQuery string
	)

	lbCmd := &cobra.Command{
		Use:   "leaderboard <season-id>",
		Short: "Show a page of the competitive leaderboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, persist, err := authedClient(cmd.Context())
			if err != nil {
				return err
			}
			defer persist()

			lb, err := c.Leaderboard(&valorant.LeaderboardParams{
				SeasonID:   args[0],
				StartIndex: flagStart,
				Size:       flagSize,
				Query:      flagQuery,
				Context:    cmd.Context(),
			})
			if err != nil {
				return err
			}
			if handled, err := handleJSONOutput(cmd, lb); handled {
				return err
			}

			s := getIO()
			headers := []string{"RANK", "NAME", "RATING", "WINS"}
			rows := make([][]string, 0, len(lb.Players))
			for _, p := range lb.Players {
				name := p.GameName + "#" + p.TagLine
				if p.IsAnonymized {
					name = "(hidden)"
				}
				rows = append(rows, []string{
					strconv.Itoa(p.LeaderboardRank),
					name,
					strconv.Itoa(p.RankedRating),
					strconv.Itoa(p.NumberOfWins),
				})
			}
			output.PrintTable(s.Out, headers, rows, s.IsTerminal())
			s.Printf("\n%s\n", s.Muted(strconv.Itoa(lb.TotalPlayers)+" ranked players"))
			return nil
		},
	}
	lbCmd.Flags().IntVar(&flagStart, "start", 0, "First rank index")
	lbCmd.Flags().IntVar(&flagSize, "size", 0, "Page size (defaults to 510)")
	lbCmd.Flags().StringVar(&flagQuery, "query", "", "Filter by game name")
	return lbCmd
}

func newPenaltiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "penalties",
		Short: "Show active matchmaking restrictions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, persist, err := authedClient(cmd.Context())
			if err != nil {
				return err
			}
			defer persist()

			p, err := c.Penalties(&valorant.PenaltiesParams{Context: cmd.Context()})
			if err != nil {
				return err
			}
			if handled, err := handleJSONOutput(cmd, p); handled {
				return err
			}

			s := getIO()
			if len(p.Penalties) == 0 {
				s.Printf("%s\n", s.Success("no active penalties"))
				return nil
			}
			return output.PrintJSON(s.Out, p)
		},
	}
}
