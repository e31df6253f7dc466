package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yairfalse/merkki/config"
)

var (
	version    = "0.1.0"
	configPath string

	rootCmd = &cobra.Command{
		Use:   "merkki",
		Short: "CloudTrail resource tagger",
		Long: `Merkki - CloudTrail resource tagger

Merkki reads resource creation events from AWS CloudTrail and tags the
created resources with who created them and when. No agents, no IaC
integration: the audit trail already knows the answer.

Fetch events, extract resource identifiers, apply owner and
creation-time tags through the service APIs.`,
		Version: version,
	}
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// init sets up the root command
func init() {
	rootCmd.SetVersionTemplate(`Merkki {{.Version}} - CloudTrail resource tagger
`)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
}

// loadConfig returns file config when --config is set, defaults otherwise.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	cfg := config.Default()
	return &cfg, nil
}
