package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reviewlens/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "reviewlens",
	Short: "Prepare and analyze review datasets in Snowflake",
	Long: `ReviewLens - A CLI for partitioning large newline-delimited JSON review
datasets into parallel-loadable chunks, bulk loading them into Snowflake,
and running sentiment reports on top of a warehouse-side scoring function.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.ShowError(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if configFile := os.Getenv("REVIEWLENS_CONFIG"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home + "/.reviewlens")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found is okay for now
	}
}

// viperFallback returns the config-file value for key when the structured
// config left the field blank, so values viper picked up from the working
// directory still apply.
func viperFallback(value, key string) string {
	if value != "" {
		return value
	}
	return viper.GetString(key)
}
