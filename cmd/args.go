package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/meysamhadeli/jjgen/compiler"
	"github.com/meysamhadeli/jjgen/generator"
	"github.com/meysamhadeli/jjgen/utils"
	"github.com/spf13/cobra"
)

// argsCmd: jjgen args <grammar>
var argsCmd = &cobra.Command{
	Use:   "args <grammar>",
	Short: "Print the JavaCC command line for a grammar",
	Long: `The 'args' command prints the command that 'generate' would run for the given grammar,
with the configured generation options translated into JavaCC arguments. Nothing is executed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		return handleArgsCommand(cmd, rootDependencies, args[0])
	},
}

func init() {
	rootCmd.AddCommand(argsCmd)
}

func commandLineFor(rootDependencies *RootDependencies, grammar string) []string {
	genConfig := rootDependencies.Config.GenerationConfig(rootDependencies.Cwd)

	grammarPath := grammar
	if !filepath.IsAbs(grammarPath) {
		grammarPath = filepath.Join(rootDependencies.Cwd, grammarPath)
	}

	arguments := generator.BuildArguments(genConfig.Options, genConfig.OutputDirectory, grammarPath)
	return compiler.NewExecCompiler(rootDependencies.Config.CompilerCommand).CommandLine(arguments)
}

func handleArgsCommand(cmd *cobra.Command, rootDependencies *RootDependencies, grammar string) error {
	commandLine := commandLineFor(rootDependencies, grammar)
	if err := utils.HighlightCommandLine(cmd.OutOrStdout(), commandLine, rootDependencies.Config.Theme); err != nil {
		return fmt.Errorf("failed to print command line: %w", err)
	}
	return nil
}
