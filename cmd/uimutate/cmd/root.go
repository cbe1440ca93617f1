package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jask/uimutate/internal/config"
)

var (
	cfgFile     string
	metricsAddr string
	cfg         config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:           "uimutate",
	Short:         "Drive loop-owned widgets from background goroutines",
	Long:          `uimutate hosts widgets on a single owning event loop and lets background workers change them through mutations that hop onto that loop when needed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if metricsAddr != "" {
			loaded.Metrics.Addr = metricsAddr
		}
		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/uimutate/config.toml)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(widgetsCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(configCmd)
}
