package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pedro.to/valgo/cli/output"
	"pedro.to/valgo/valorant"
)

func newRawCmd() *cobra.Command {
	var (
		flagServer string
		flagMethod string
		flagBody   string
	)

	rawCmd := &cobra.Command{
		Use:   "raw <path>",
		Short: "Dispatch an arbitrary routed API call",
		Long: `Sends a request to the routed game-data servers with the full auth
header set and prints the JSON response. Useful for endpoints without a
dedicated command.

The path is appended verbatim to the routed base URL, e.g.:

  valgo raw /store/v1/offers/
  valgo raw --server glz /pregame/v1/players/<puuid>`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !strings.HasPrefix(path, "/") {
				return fmt.Errorf("path must start with a slash, got %q", path)
			}

			server := valorant.PD
			switch strings.ToLower(flagServer) {
			case "", "pd":
			case "glz":
				server = valorant.GLZ
			default:
				return fmt.Errorf("unknown server %q; must be pd or glz", flagServer)
			}

			var body any
			if flagBody != "" {
				if err := json.Unmarshal([]byte(flagBody), &body); err != nil {
					return fmt.Errorf("body is not valid json: %w", err)
				}
			}

			c, persist, err := authedClient(cmd.Context())
			if err != nil {
				return err
			}
			defer persist()

			raw, err := c.Raw(&valorant.RawParams{
				Server:  server,
				Method:  strings.ToUpper(flagMethod),
				Path:    path,
				Body:    body,
				Context: cmd.Context(),
			})
			if err != nil {
				return err
			}
			if handled, err := handleJSONOutput(cmd, raw); handled {
				return err
			}
			return output.PrintJSON(getIO().Out, raw)
		},
	}
	rawCmd.Flags().StringVar(&flagServer, "server", "pd", "Target server: pd or glz")
	rawCmd.Flags().StringVarP(&flagMethod, "method", "X", "GET", "HTTP method")
	rawCmd.Flags().StringVarP(&flagBody, "body", "d", "", "JSON request body")
	return rawCmd
}
