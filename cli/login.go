package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pedro.to/valgo/credstore"
	"pedro.to/valgo/valorant"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate and save the session",
		Long: `Runs the full credential handshake against the Riot auth backend and
saves the resulting session (tokens plus cookie jar) for later commands.

The password is read from the VALGO_PASSWORD environment variable and is
never written to disk. Accounts with multifactor enabled are not supported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			username := viper.GetString("username")
			if username == "" {
				return errors.New("username is required; set via `--username`, `VALGO_USERNAME` env, or `valgo config set username <name>`")
			}
			if os.Getenv("VALGO_PASSWORD") == "" {
				return errors.New("VALGO_PASSWORD is not set")
			}

			c, err := valorant.New(&valorant.Opts{
				Username:      username,
				Password:      os.Getenv("VALGO_PASSWORD"),
				Affinity:      viper.GetString("region"),
				ClientVersion: viper.GetString("client_version"),
			})
			if err != nil {
				return err
			}
			if err := c.Login(cmd.Context()); err != nil {
				return err
			}

			st, err := credstore.NewFileStore(viper.GetString("sessions_dir"))
			if err != nil {
				return err
			}
			sess, err := c.Session()
			if err != nil {
				return err
			}
			if err := st.Save(username, sess); err != nil {
				return err
			}

			s := getIO()
			u := c.User()
			s.Printf("%s logged in as %s [%s]\n",
				s.Success("✓"),
				s.Bold(u.Acct.GameName+"#"+u.Acct.TagLine),
				c.Region().Region,
			)
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Delete the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			username := viper.GetString("username")
			if username == "" {
				return errors.New("username is required; set via `--username`, `VALGO_USERNAME` env, or `valgo config set username <name>`")
			}
			st, err := credstore.NewFileStore(viper.GetString("sessions_dir"))
			if err != nil {
				return err
			}
			if err := st.Delete(username); err != nil {
				if errors.Is(err, credstore.ErrNotFound) {
					getIO().Printf("no saved session for %s\n", username)
					return nil
				}
				return err
			}
			s := getIO()
			s.Printf("%s session deleted\n", s.Success("✓"))
			return nil
		},
	}
}
