package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/meysamhadeli/jjgen/compiler"
	"github.com/meysamhadeli/jjgen/constants/lipgloss"
	"github.com/meysamhadeli/jjgen/generator"
	"github.com/meysamhadeli/jjgen/generator/contracts"
	"github.com/meysamhadeli/jjgen/project"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// generateCmd: jjgen generate
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Regenerate the parsers of stale grammars",
	Long: `The 'generate' command runs JavaCC on every grammar whose marker in the timestamp
directory is missing or older than the grammar, records a new marker for each grammar it
processed and registers the output directory as a compile source root.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		return handleGenerateCommand(cmd, rootDependencies)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func handleGenerateCommand(cmd *cobra.Command, rootDependencies *RootDependencies) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := rootDependencies.Config
	genConfig := cfg.GenerationConfig(rootDependencies.Cwd)

	// a nil *Manifest stored in the interface would not compare equal to nil
	var projectContext contracts.IProjectContext
	if manifestPath := cfg.SourceRootsPath(rootDependencies.Cwd); manifestPath != "" {
		manifest, err := project.NewManifest(manifestPath)
		if err != nil {
			return err
		}
		projectContext = manifest
	}

	execCompiler := compiler.NewExecCompiler(cfg.CompilerCommand)
	execCompiler.Dir = rootDependencies.Cwd
	execCompiler.Stdout = cmd.OutOrStdout()
	execCompiler.Stderr = cmd.ErrOrStderr()

	driver := generator.NewDriver(genConfig, execCompiler, projectContext, rootDependencies.Logger)

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100).WithRemoveWhenDone(true).WithWriter(os.Stderr)
	spinnerInstance, _ := spinner.Start("Generating parsers...")

	result, err := driver.Execute(ctx)
	_ = spinnerInstance.Stop()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(result.Processed) == 0 {
		fmt.Fprintln(out, lipgloss.Gray.Render("All grammars are up to date."))
	} else {
		fmt.Fprintln(out, lipgloss.Green.Render(fmt.Sprintf("✓ Processed %d grammar(s).", len(result.Processed))))
	}
	if result.SourceRootRegistered {
		fmt.Fprintln(out, lipgloss.Info.Render(fmt.Sprintf("Compile source root: %s", genConfig.OutputDirectory)))
	}
	return nil
}
