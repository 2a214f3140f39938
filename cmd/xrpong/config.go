package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/xr-pong/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after file lookup and XRPONG_* environment
overrides, as YAML. Redirect it to ~/.xrpong/config.yaml to start a
custom configuration.`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatalf("%v", err)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		fatalf("%v", err)
	}
	os.Stdout.Write(data)
}
