package cmd

import (
	"fmt"

	"github.com/meysamhadeli/jjgen/constants/lipgloss"
	"github.com/meysamhadeli/jjgen/generator"
	"github.com/meysamhadeli/jjgen/markers"
	"github.com/meysamhadeli/jjgen/stale_scanner/models"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

const (
	stateStale    = "stale"
	stateUpToDate = "up-to-date"
	stateNoMarker = "no marker"
)

// statusCmd: jjgen status
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which grammars would be regenerated",
	Long: `The 'status' command lists every grammar under the source directory together with the
state of its marker. It never writes anything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		return handleStatusCommand(cmd, rootDependencies)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// grammarStatus is one row of the status table.
type grammarStatus struct {
	RelativePath  string
	State         string
	ContentsMatch bool
}

func collectStatus(rootDependencies *RootDependencies) ([]grammarStatus, error) {
	genConfig := rootDependencies.Config.GenerationConfig(rootDependencies.Cwd)

	scanner, err := generator.NewScanner(genConfig)
	if err != nil {
		return nil, err
	}
	grammars, err := scanner.Candidates(genConfig.SourceDirectory)
	if err != nil {
		return nil, err
	}

	rows := make([]grammarStatus, 0, len(grammars))
	for _, grammar := range grammars {
		state := scanner.Inspect(grammar, genConfig.TimestampDirectory)
		row := grammarStatus{RelativePath: grammar.RelativePath, State: describeState(state)}

		if !state.Missing {
			row.ContentsMatch = true
			for _, markerPath := range state.MarkerPaths {
				match, err := markers.Matches(grammar.Path, markerPath)
				if err != nil {
					return nil, err
				}
				row.ContentsMatch = row.ContentsMatch && match
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func describeState(state models.MarkerState) string {
	switch {
	case state.Missing:
		return stateNoMarker
	case state.Stale:
		return stateStale
	default:
		return stateUpToDate
	}
}

func handleStatusCommand(cmd *cobra.Command, rootDependencies *RootDependencies) error {
	rows, err := collectStatus(rootDependencies)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(out, lipgloss.Gray.Render("No grammars found."))
		return nil
	}

	tableData := pterm.TableData{{"Grammar", "State", "Marker matches"}}
	pending := 0
	for _, row := range rows {
		state := lipgloss.Green.Render(row.State)
		if row.State != stateUpToDate {
			state = lipgloss.Yellow.Render(row.State)
			pending++
		}
		match := "-"
		if row.State != stateNoMarker {
			match = fmt.Sprintf("%t", row.ContentsMatch)
		}
		tableData = append(tableData, []string{row.RelativePath, state, match})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(tableData).WithWriter(out).Render(); err != nil {
		return err
	}
	fmt.Fprintln(out, lipgloss.Info.Render(fmt.Sprintf("%d of %d grammar(s) need regeneration.", pending, len(rows))))
	return nil
}
