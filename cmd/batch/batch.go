package batch

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bugminer-dev/bugminer/internal/jdk"
	"github.com/bugminer-dev/bugminer/internal/project"
	"github.com/bugminer-dev/bugminer/internal/runner"
	"github.com/bugminer-dev/bugminer/internal/scheduler"
	"github.com/bugminer-dev/bugminer/internal/summary"
	"github.com/bugminer-dev/bugminer/pkg/shared/config"
	"github.com/bugminer-dev/bugminer/pkg/shared/logger"
)

// RunOptionsBatch holds the arguments for the batch command.
type RunOptionsBatch struct {
	Workers     int
	ResultsDir  string
	DefaultJava string
	DryRun      bool
}

var (
	AppConfig         *config.Config
	batchOptions      RunOptionsBatch
	exampleBatchUsage = `  # Analyzing every Maven/Gradle project under a directory
  bugminer batch /path/to/projects

  # Analyzing with 4 concurrent workers per JDK group
  bugminer batch -j 4 /path/to/projects

  # Writing the batch summary to a custom results directory
  bugminer batch --results-dir /path/to/results /path/to/projects

  # Listing the projects that would be analyzed, without running anything
  bugminer batch --dry-run /path/to/projects`
)

// BatchCmd represents the batch command.
var BatchCmd = &cobra.Command{
	Use:                   "batch [-j WORKERS] [--results-dir PATH] [--default-java VERSION] PATH",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleBatchUsage,
	Short:                 "Discovers Java projects under a directory and batch-runs the Infer analyzer against them",
	RunE:                  runBatchCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runBatchCommand executes the batch command.
func runBatchCommand(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger(AppConfig, "core-batch")

	rootDir, err := validateBatchArgs(&batchOptions, args)
	if err != nil {
		log.Error("invalid batch arguments", "error", err)
		return err
	}
	applyBatchOverrides(AppConfig, &batchOptions)

	discovery := project.NewDiscovery(log)
	projects, err := discovery.Discover(rootDir)
	if err != nil {
		log.Error("project discovery failed", "error", err)
		return err
	}
	if len(projects) == 0 {
		log.Info("no analyzable projects found", "root", rootDir)
		return nil
	}

	if batchOptions.DryRun {
		for _, p := range projects {
			cmd.Printf("%s\t%s\n", p.RootPath, p.BuildSystem)
		}
		return nil
	}

	resolver := jdk.NewResolver(AppConfig.Jdk.DefaultVersion, log)
	toolchain := jdk.NewToolchain(AppConfig.Jdk.HomePattern, AppConfig.Batch.MavenOpts)
	projectRunner := runner.New(AppConfig, log)

	sched := scheduler.New(AppConfig.Batch.Workers, resolver, toolchain, projectRunner, log)
	outcomes := sched.Run(projects)

	aggregator := summary.NewAggregator(AppConfig.Batch.ResultsDir, log)
	batchSummary := aggregator.Collect(outcomes)

	path, err := aggregator.Save(batchSummary)
	if err != nil {
		log.Error("failed to persist batch summary", "error", err)
		return err
	}

	aggregator.PrintTally(os.Stdout, batchSummary)
	log.Info("batch command completed", "summary", path)
	return nil
}

// applyBatchOverrides lets command flags take precedence over the YAML file.
func applyBatchOverrides(cfg *config.Config, options *RunOptionsBatch) {
	if options.Workers > 0 {
		cfg.Batch.Workers = options.Workers
	}
	if options.ResultsDir != "" {
		cfg.Batch.ResultsDir = options.ResultsDir
	}
	if options.DefaultJava != "" {
		cfg.Jdk.DefaultVersion = options.DefaultJava
	}
}

// Initialize flags for the batch command.
func init() {
	BatchCmd.Flags().IntVarP(&batchOptions.Workers, "workers", "j", 0, "Number of concurrent workers per JDK version group.")
	BatchCmd.Flags().StringVarP(&batchOptions.ResultsDir, "results-dir", "o", "", "Directory where the batch summary will be saved.")
	BatchCmd.Flags().StringVar(&batchOptions.DefaultJava, "default-java", "", "Java version assumed when a project declares none.")
	BatchCmd.Flags().BoolVar(&batchOptions.DryRun, "dry-run", false, "Only discover and list projects, do not run the analyzer.")
}
