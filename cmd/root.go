package cmd

import (
	"fmt"
	"os"

	"srccat/pkg/aggregate"
	"srccat/pkg/logging"
	"srccat/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootOptions holds the flag values of the root command.
type rootOptions struct {
	configPath string
	suffix     string
	maxDepth   int
	output     string
	ignore     []string
	ignoreFile string
	debug      bool
}

// NewRootCmd builds the srccat command tree. The root command itself performs the
// aggregation over the current working directory.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   version.AppName,
		Short: "srccat concatenates source files into one labeled text file",
		Long: `srccat scans the current directory and its immediate subdirectories for files
ending in a suffix (.ts by default), sorts them by relative path and writes them to
source.txt, each preceded by a "######## <relative path>" header line.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logging.Setup(opts.debug, version.AppName, version.Get().Version); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAggregate(cmd, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML config file (suffix, max_depth, output_name, ignore, ignore_file)")
	flags.StringVarP(&opts.suffix, "suffix", "s", aggregate.DefaultSuffix, "Collect files whose name ends with this suffix")
	flags.IntVarP(&opts.maxDepth, "max-depth", "d", aggregate.DefaultMaxDepth, "Deepest directory level to scan (0 = current directory only)")
	flags.StringVarP(&opts.output, "output", "o", aggregate.DefaultOutputName, "Output file name, written in the current directory")
	flags.StringArrayVarP(&opts.ignore, "ignore", "i", nil, "Gitignore-style pattern to exclude (repeatable)")
	flags.StringVar(&opts.ignoreFile, "ignore-file", "", "File of gitignore-style exclusion patterns")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable development logging")

	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// resolveConfig merges defaults, the optional config file and explicitly set flags,
// in increasing order of precedence.
func resolveConfig(cmd *cobra.Command, opts *rootOptions) (aggregate.Config, error) {
	cfg := aggregate.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := aggregate.LoadConfigFile(opts.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("suffix") {
		cfg.Suffix = opts.suffix
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = opts.maxDepth
	}
	if flags.Changed("output") {
		cfg.OutputName = opts.output
	}
	if flags.Changed("ignore-file") {
		cfg.IgnoreFile = opts.ignoreFile
	}
	cfg.Ignore = append(cfg.Ignore, opts.ignore...)

	return cfg, cfg.Validate()
}

func runAggregate(cmd *cobra.Command, opts *rootOptions) error {
	logger := logging.Get()

	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger.Debug("Resolved configuration",
		zap.String("suffix", cfg.Suffix),
		zap.Int("maxDepth", cfg.MaxDepth),
		zap.String("output", cfg.OutputName),
		zap.Strings("ignore", cfg.Ignore))

	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	if _, err := aggregate.Run(root, cfg, logger); err != nil {
		return err
	}
	return nil
}
