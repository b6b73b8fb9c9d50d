package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bugminer-dev/bugminer/cmd/batch"
	"github.com/bugminer-dev/bugminer/cmd/extract"
	"github.com/bugminer-dev/bugminer/cmd/version"
	"github.com/bugminer-dev/bugminer/pkg/shared/config"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "bugminer [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Bugminer batch-runs the Infer analyzer over Java projects and extracts normalized bug records.",
		Long: `Bugminer is an orchestrator for dataset generation from static analysis:
	it discovers Maven and Gradle projects under a directory, runs the Infer
	analyzer against each of them grouped by required JDK version, and converts
	the raw findings into normalized, method-scoped bug records.
	`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml)")
	rootCmd.AddCommand(version.NewVersionCmd())
	rootCmd.AddCommand(batch.BatchCmd)
	rootCmd.AddCommand(extract.ExtractCmd)
}

func Execute() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func initConfig() {
	var err error

	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	batch.Init(AppConfig)
	extract.Init(AppConfig)
}
