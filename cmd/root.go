package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ewoodward/gridshift/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "gridshift",
	Short: "Household load-shifting scenario engine",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (built-in defaults when empty)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	return config.Load(cfgPath)
}
