// Package cli defines the valgo commands.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pedro.to/valgo/cli/iostreams"
	"pedro.to/valgo/logger"
	"pedro.to/valgo/region"
)

var (
	// Global flag values bound to viper.
	cfgUsername string
	cfgRegion   string
	cfgQuiet    bool
	cfgJSON     bool
	cfgJQ       string

	io *iostreams.IOStreams
)

var rootCmd = &cobra.Command{
	Use:   "valgo",
	Short: "valgo - Valorant platform API client",
	Long: `valgo talks to the Valorant game-platform API: daily store, wallet,
match history, ranked data and live matches.

Authentication uses the Riot cookie flow. The first login needs credentials
(username via flag/config, password via the VALGO_PASSWORD env var); the
session is then saved under ~/.config/valgo/sessions and reused until Riot
rejects it.

Configuration is stored in ~/.config/valgo/config.yaml and can be
overridden with flags or environment variables (VALGO_USERNAME,
VALGO_REGION).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		io = iostreams.New()
		io.SetQuiet(viper.GetBool("quiet"))

		// Client logs go to stderr and would drown table output, keep them
		// to warnings unless debugging.
		if os.Getenv("VALGO_DEBUG") == "1" {
			logger.SetLevel(int8(zerolog.DebugLevel))
			logger.Pretty()
		} else {
			logger.SetLevel(int8(zerolog.WarnLevel))
		}

		if r := viper.GetString("region"); r != "" {
			if _, err := region.FromAffinity(strings.ToLower(r)); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	home, _ := os.UserHomeDir()
	if home != "" {
		viper.SetConfigFile(home + "/.config/valgo/config.yaml")
		viper.SetConfigType("yaml")
		_ = viper.ReadInConfig() // Ignore error if file doesn't exist yet.
	}

	viper.SetEnvPrefix("VALGO")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgUsername, "username", "u", "", "Riot account username (env: VALGO_USERNAME)")
	pf.StringVarP(&cfgRegion, "region", "r", "", "Region affinity: na1, euw1, as2... (env: VALGO_REGION)")
	pf.BoolVarP(&cfgQuiet, "quiet", "q", false, "Suppress non-essential output (env: VALGO_QUIET)")
	pf.BoolVar(&cfgJSON, "json", false, "Output raw JSON")
	pf.StringVar(&cfgJQ, "jq", "", "Filter JSON output with a jq expression (implies --json)")

	_ = viper.BindPFlag("username", pf.Lookup("username"))
	_ = viper.BindPFlag("region", pf.Lookup("region"))
	_ = viper.BindPFlag("quiet", pf.Lookup("quiet"))

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newStoreCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newMMRCmd())
	rootCmd.AddCommand(newPregameCmd())
	rootCmd.AddCommand(newLiveCmd())
	rootCmd.AddCommand(newRawCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd())
}

// Execute runs the root command. Called from main.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		s := iostreams.New()
		fmt.Fprintln(s.ErrOut, s.Failure("Error: "+err.Error()))
		return err
	}
	return nil
}

func getIO() *iostreams.IOStreams {
	if io == nil {
		io = iostreams.New()
	}
	return io
}

// jsonOutputRequested reports whether --json or --jq was explicitly set.
func jsonOutputRequested(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("json") || cmd.Flags().Changed("jq")
}
