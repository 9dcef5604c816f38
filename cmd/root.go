package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/meysamhadeli/jjgen/config"
	"github.com/meysamhadeli/jjgen/constants/lipgloss"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// RootDependencies holds what every subcommand needs once the configuration is loaded.
type RootDependencies struct {
	Cwd    string
	Config *config.Config
	Logger *pterm.Logger
}

// rootCmd: jjgen
var rootCmd = &cobra.Command{
	Use:   "jjgen",
	Short: "Incremental JavaCC grammar generation",
	Long: `jjgen finds the JavaCC grammars (*.jj, *.JJ) under the source directory, regenerates
only the ones that changed since their last successful generation and registers the output
directory as a compile source root for the host build.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if version, _ := cmd.Flags().GetBool("version"); version {
			fmt.Println(lipgloss.BlueSky.Render(fmt.Sprintf("jjgen version %s", config.DefaultConfig.Version)))
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, lipgloss.Red.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}

func init() {
	config.InitFlags(rootCmd)
}

func handleRootCommand(cmd *cobra.Command) (*RootDependencies, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get the working directory: %w", err)
	}

	cfg, err := config.LoadConfigs(cmd.Root(), cwd)
	if err != nil {
		return nil, err
	}

	level, err := parseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	return &RootDependencies{
		Cwd:    cwd,
		Config: cfg,
		Logger: pterm.DefaultLogger.WithLevel(level).WithWriter(cmd.OutOrStdout()),
	}, nil
}

func parseLogLevel(level string) (pterm.LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return pterm.LogLevelDebug, nil
	case "", "info":
		return pterm.LogLevelInfo, nil
	case "warn", "warning":
		return pterm.LogLevelWarn, nil
	case "error":
		return pterm.LogLevelError, nil
	default:
		return pterm.LogLevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}
