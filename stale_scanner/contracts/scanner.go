package contracts

import "github.com/meysamhadeli/jjgen/stale_scanner/models"

type ISourceInclusionScanner interface {
	Candidates(sourceDir string) ([]models.GrammarFile, error)
	GetIncludedSources(sourceDir string, targetDir string) (*models.StaleSet, error)
	MarkerRelativePaths(grammar models.GrammarFile) []string
	Inspect(grammar models.GrammarFile, targetDir string) models.MarkerState
}
