package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"type-duplicate/internal/analyze"
	"type-duplicate/internal/common"
	"type-duplicate/internal/config"
	"type-duplicate/internal/gen"
)

var errStale = errors.New("generated files are out of date; run dupgen gen")

// NewGenCommand creates the gen command
func NewGenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate code for annotated types",
		Long: `Load the packages matching the patterns, analyze every annotated type and
write one generated file per package. Nothing is written when any type has
an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}

			files, err := generate(cmd, cfg)
			if err != nil {
				return err
			}

			if err := gen.WriteFiles(files, cfg.Output.Dir); err != nil {
				return err
			}

			successColor := color.New(color.FgGreen, color.Bold)
			for _, f := range files {
				successColor.Fprint(cmd.OutOrStdout(), "generated ")
				fmt.Fprintln(cmd.OutOrStdout(), outputPath(f, cfg.Output.Dir))
			}

			return nil
		},
	}

	addGenFlags(cmd)

	return cmd
}

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fail when generated files are missing or out of date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}

			files, err := generate(cmd, cfg)
			if err != nil {
				return err
			}

			stale, err := gen.Stale(gen.Relocate(files, cfg.Output.Dir))
			if err != nil {
				return err
			}

			if len(stale) == 0 {
				color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "generated files are up to date")
				return nil
			}

			warningColor := color.New(color.FgYellow, color.Bold)
			for _, p := range stale {
				warningColor.Fprint(cmd.OutOrStdout(), "stale ")
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}

			return errStale
		},
	}

	addGenFlags(cmd)

	return cmd
}

// NewAnalyzeCommand creates the analyze command
func NewAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print the shapes and artifacts of annotated types as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}

			infos, diags, err := analyze.NewLoader(cfg.Output.File).Load(cfg.Patterns...)
			if err != nil {
				return err
			}

			g := gen.NewGenerator(cfg.Generator())

			a, synthDiags := g.Analyze(infos)
			diags.Merge(synthDiags)
			printDiagnostics(cmd.ErrOrStderr(), diags)

			out, err := g.ExportYAML(a)
			if err != nil {
				return fmt.Errorf("exporting report: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(out)

			return err
		},
	}

	addGenFlags(cmd)

	return cmd
}

// generate loads and generates everything, printing diagnostics. It fails
// when any diagnostic is an error.
func generate(cmd *cobra.Command, cfg *config.Config) ([]gen.GeneratedFile, error) {
	infos, diags, err := analyze.NewLoader(cfg.Output.File).Load(cfg.Patterns...)
	if err != nil {
		return nil, err
	}

	files, genDiags, genErr := gen.NewGenerator(cfg.Generator()).Generate(infos)
	diags.Merge(genDiags)
	printDiagnostics(cmd.ErrOrStderr(), diags)

	if diags.HasErrors() {
		return nil, fmt.Errorf("%d error(s) in annotated types, nothing written", len(diags.Errors))
	}

	if genErr != nil {
		return nil, genErr
	}

	common.Logger().Info("generation finished",
		zap.Int("packages", len(infos)),
		zap.Int("files", len(files)))

	return files, nil
}

func outputPath(f gen.GeneratedFile, dir string) string {
	return gen.Relocate([]gen.GeneratedFile{f}, dir)[0].Path()
}
