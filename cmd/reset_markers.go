package cmd

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/meysamhadeli/jjgen/constants/lipgloss"
	"github.com/meysamhadeli/jjgen/markers"
	"github.com/meysamhadeli/jjgen/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// resetMarkersCmd represents the reset-markers command
var resetMarkersCmd = &cobra.Command{
	Use:   "reset-markers",
	Short: "Remove all grammar markers",
	Long: `The 'reset-markers' command removes every marker from the timestamp directory, so the
next 'generate' run regenerates all grammars. Use --stats to only show what the directory holds.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		stats, _ := cmd.Flags().GetBool("stats")

		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		return handleResetMarkersCommand(cmd, rootDependencies, force, stats)
	},
}

func init() {
	resetMarkersCmd.Flags().BoolP("force", "f", false, "Remove the markers without confirmation")
	resetMarkersCmd.Flags().BoolP("stats", "s", false, "Show marker statistics instead of removing them")

	rootCmd.AddCommand(resetMarkersCmd)
}

func handleResetMarkersCommand(cmd *cobra.Command, rootDependencies *RootDependencies, force bool, showStats bool) error {
	genConfig := rootDependencies.Config.GenerationConfig(rootDependencies.Cwd)
	store := markers.NewStore(genConfig.TimestampDirectory)
	out := cmd.OutOrStdout()

	if showStats {
		stats, err := store.Stats()
		if err != nil {
			return err
		}
		lines := []string{
			lipgloss.Info.Render("Marker Statistics:"),
			fmt.Sprintf("Marker Directory: %s", stats.Dir),
			fmt.Sprintf("Markers: %d", stats.Markers),
			fmt.Sprintf("Total Size: %.2f KB", float64(stats.TotalBytes)/1024),
		}
		if stats.Markers > 0 {
			lines = append(lines,
				fmt.Sprintf("Oldest: %s", stats.Oldest.Format(time.RFC3339)),
				fmt.Sprintf("Newest: %s", stats.Newest.Format(time.RFC3339)))
		}
		fmt.Fprintln(out, lipgloss.BoxStyle.Render(strings.Join(lines, "\n")))
		return nil
	}

	if !force {
		confirmed, err := utils.ConfirmPrompt(bufio.NewReader(cmd.InOrStdin()), out,
			fmt.Sprintf("Remove all markers in %s?", store.Dir()))
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(out, lipgloss.Yellow.Render("Marker reset cancelled."))
			return nil
		}
	}

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgCyan)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100).WithRemoveWhenDone(true).WithWriter(cmd.ErrOrStderr())
	spinnerInstance, _ := spinner.Start("Removing markers...")

	removed, err := store.Clear()
	_ = spinnerInstance.Stop()
	if err != nil {
		return fmt.Errorf("error removing markers: %w", err)
	}

	fmt.Fprintln(out, lipgloss.Green.Render(fmt.Sprintf("✓ Removed %d marker(s). All grammars will be regenerated.", removed)))
	return nil
}
