package cmd

import (
	"fmt"

	"glue/pkg/config"
	"glue/pkg/logging"
	"glue/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd is the base command. Given patterns, it writes a bundle of the matching files.
var RootCmd = &cobra.Command{
	Use:   "glue [patterns...]",
	Short: "Glue is a CLI tool for bundling files into one document",
	Long: `Glue concatenates the text files matching the given glob patterns into a single
delimited document, designed to give project context to LLMs.

Files ignored by .gitignore, .ignore or .glueignore are left out unless --no-ignore is
set, binary files unless --include-binary is set. The .git directory is always skipped.`,
	Example: `  glue '**/*.go' -e '**/*_test.go'
  glue 'src/*.rs' -o - | pbcopy`,
	Version:       version.Get().Version,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGlue,
}

// options holds the raw flag values. Only flags set on the command line override the
// config file and environment.
type options struct {
	exclude        []string
	output         string
	root           string
	configPath     string
	noIgnore       bool
	includeBinary  bool
	skipHidden     bool
	noGlobalIgnore bool
	debug          bool
	logFormat      string
}

var opts options

func init() {
	pf := RootCmd.PersistentFlags()
	pf.StringArrayVarP(&opts.exclude, "exclude", "e", nil, "Patterns to exclude (in addition to ignore files)")
	pf.StringVar(&opts.root, "root", ".", "Directory to walk")
	pf.BoolVar(&opts.noIgnore, "no-ignore", false, "Include files that would be ignored by ignore files")
	pf.BoolVar(&opts.skipHidden, "skip-hidden", false, "Leave out dot-files and dot-directories")
	pf.BoolVar(&opts.noGlobalIgnore, "no-global-ignore", false, "Do not read the git core.excludesFile")
	pf.StringVar(&opts.configPath, "config", "", "Config file (default: .glue.yaml in the root, if present)")
	pf.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	pf.StringVar(&opts.logFormat, "log-format", "", "Diagnostics format: console or json (default: console on a terminal)")

	RootCmd.Flags().StringVarP(&opts.output, "output", "o", config.DefaultOutput, "Output file, or - for standard output")
	RootCmd.Flags().BoolVar(&opts.includeBinary, "include-binary", false, "Include binary files (they are skipped by default)")
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

// prepare loads the configuration for cmd and installs the logger it asks for.
func prepare(cmd *cobra.Command, args []string) (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return nil, nil, err
	}

	if err := logging.Setup(logging.Options{Debug: cfg.Debug, Format: cfg.LogFormat}); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logging.Logger, nil
}

// loadConfig layers the flags set on the command line over the file and environment
// configuration, then validates the result.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	flags := cmd.Flags()

	// Without --root, Load looks for the default config file under GLUE_ROOT. A root set
	// inside the config file cannot choose the file it is read from.
	root := ""
	if flags.Changed("root") {
		root = opts.root
	}

	cfg, err := config.Load(opts.configPath, root)
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.Patterns = args
	}
	if flags.Changed("exclude") {
		cfg.Exclude = opts.exclude
	}
	if flags.Changed("root") {
		cfg.Root = opts.root
	}
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("no-ignore") {
		cfg.NoIgnore = opts.noIgnore
	}
	if flags.Changed("include-binary") {
		cfg.IncludeBinary = opts.includeBinary
	}
	if flags.Changed("skip-hidden") {
		cfg.SkipHidden = opts.skipHidden
	}
	if flags.Changed("no-global-ignore") {
		cfg.NoGlobalIgnore = opts.noGlobalIgnore
	}
	if flags.Changed("debug") {
		cfg.Debug = opts.debug
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = opts.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
