package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/mftree/internal/config"
	"github.com/ppiankov/mftree/internal/model"
)

// Version is the CLI version string.
const Version = "mftree v0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mftree",
	Short: "mftree - reproducible family tree synthesis",
	Long: `mftree synthesizes genealogical trees from a small configuration:
a seed, an originating person and a few demographic rates.

The same configuration and generation depth always produce the same
sequence of Original, Partner and Child records.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.mftree/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.mftree")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	config.Configure(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		newLogger().Debug("using config file", "path", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", cfgFile, err)
	}
}

// loadConfig resolves defaults, config file, env and bound flags.
func loadConfig() (*model.Config, error) {
	return config.Load(viper.GetViper())
}

// newLogger returns a stderr logger; debug records are shown with --verbose.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose || viper.GetBool("output.verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
