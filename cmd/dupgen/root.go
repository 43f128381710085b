package main

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"type-duplicate/internal/common"
	"type-duplicate/internal/config"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dupgen",
		Short: "Generate heap-size methods and companion records for annotated types",
		Long: `dupgen generates code for every type annotated with //dupgen:derive.

For a type T it emits into duplicate_gen.go:
  • func (x *T) HeapSizeOfChildren() int, summing the heap size of every field
  • type TBson struct{ a, b uint32 } with String and JSON methods
  • func (T) DuplicateMarker() and a duplicate.Marker assertion

Typical use is a go:generate line next to the annotated types:
  //go:generate go run type-duplicate/cmd/dupgen gen`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./dupgen.yaml when present)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, error")

	rootCmd.AddCommand(NewGenCommand())
	rootCmd.AddCommand(NewCheckCommand())
	rootCmd.AddCommand(NewAnalyzeCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			titleColor := color.New(color.FgCyan, color.Bold)
			out := cmd.OutOrStdout()

			titleColor.Fprint(out, "dupgen version: ")
			fmt.Fprintln(out, Version)

			titleColor.Fprint(out, "Git commit: ")
			fmt.Fprintln(out, GitCommit)

			titleColor.Fprint(out, "Go version: ")
			fmt.Fprintln(out, runtime.Version())
		},
	}
}

// addGenFlags registers the flags shared by gen, check and analyze.
func addGenFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("pattern", "p", []string{"."}, "package patterns to process")
	cmd.Flags().StringP("output", "o", "duplicate_gen.go", "name of the generated file in each package")
	cmd.Flags().String("output-dir", "", "write generated files below this directory, one subdirectory per import path")
	cmd.Flags().Bool("line-directives", false, "attribute each size term to its field with /*line*/ directives")
	cmd.Flags().String("debug-dir", "", "write unformatted output here when formatting fails")
}

// setup loads the configuration and installs the logger.
func setup(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, err := cfg.Log.Logger()
	if err != nil {
		return nil, err
	}

	common.SetLogger(logger)
	common.Logger().Debug("configuration loaded",
		zap.Strings("patterns", cfg.Patterns),
		zap.String("output", cfg.Output.File),
		zap.Bool("line_directives", cfg.Output.LineDirectives))

	return cfg, nil
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)

		return err
	}

	return nil
}
