package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pedro.to/valgo/cli/output"
	"pedro.to/valgo/credstore"
	"pedro.to/valgo/valorant"
)

// authedClient builds an authenticated client, restoring the saved session
// for the configured username when one exists and falling back to a
// credential login. The returned persist func snapshots the session back to
// the store; commands call it after their API work so refreshed tokens and
// cookies survive the process.
func authedClient(ctx context.Context) (*valorant.Client, func(), error) {
	username := viper.GetString("username")
	if username == "" {
		return nil, nil, errors.New("username is required; set via `--username`, `VALGO_USERNAME` env, or `valgo config set username <name>`")
	}

	st, err := credstore.NewFileStore(viper.GetString("sessions_dir"))
	if err != nil {
		return nil, nil, err
	}

	c, err := valorant.New(&valorant.Opts{
		Username:      username,
		Password:      os.Getenv("VALGO_PASSWORD"),
		Affinity:      viper.GetString("region"),
		ClientVersion: viper.GetString("client_version"),
	})
	if err != nil {
		return nil, nil, err
	}

	persist := func() {
		s, err := c.Session()
		if err != nil {
			return
		}
		if err := st.Save(username, s); err != nil {
			log.Warn().Str("ctx", "cli").Err(err).Msg("could not save session")
		}
	}

	sess, err := st.Load(username)
	switch {
	case err == nil:
		if rerr := c.Restore(ctx, sess); rerr == nil {
			return c, persist, nil
		}
		// Stale snapshot, fall through to a fresh login.
	case !errors.Is(err, credstore.ErrNotFound):
		return nil, nil, err
	}

	if os.Getenv("VALGO_PASSWORD") == "" {
		return nil, nil, errors.New("no saved session; export VALGO_PASSWORD and run `valgo login`")
	}
	if err := c.Login(ctx); err != nil {
		return nil, nil, err
	}
	persist()
	return c, persist, nil
}

// playerID validates an optional player id flag. Player ids are uuids, so a
// typo fails here instead of as a confusing 400 from the backend.
func playerID(v string) (string, error) {
	if v == "" {
		return "", nil
	}
	if _, err := uuid.Parse(v); err != nil {
		return "", fmt.Errorf("invalid player id %q: %w", v, err)
	}
	return v, nil
}

// matchID validates a required match id argument.
func matchID(v string) (string, error) {
	if _, err := uuid.Parse(v); err != nil {
		return "", fmt.Errorf("invalid match id %q: %w", v, err)
	}
	return v, nil
}

// handleJSONOutput prints data as JSON, optionally through --jq. It returns
// true when JSON output was requested and handled.
func handleJSONOutput(cmd *cobra.Command, data any) (bool, error) {
	if !jsonOutputRequested(cmd) {
		return false, nil
	}
	s := getIO()
	if jq, _ := cmd.Flags().GetString("jq"); jq != "" {
		return true, output.ApplyJQ(s.Out, data, jq)
	}
	return true, output.PrintJSON(s.Out, data)
}
