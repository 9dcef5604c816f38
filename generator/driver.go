package generator

import (
	"context"
	"fmt"
	"os"

	"github.com/meysamhadeli/jjgen/generator/contracts"
	"github.com/meysamhadeli/jjgen/generator/models"
	"github.com/meysamhadeli/jjgen/markers"
	"github.com/meysamhadeli/jjgen/stale_scanner"
	"github.com/meysamhadeli/jjgen/utils"
	"github.com/pterm/pterm"
)

// Driver regenerates the grammars whose markers are missing or out of date.
type Driver struct {
	config   models.Config
	compiler contracts.ICompiler
	project  contracts.IProjectContext
	markers  *markers.Store
	logger   *pterm.Logger
}

// Result describes a successful run.
type Result struct {
	// Processed holds the absolute paths of the regenerated grammars in the
	// order they were compiled.
	Processed []string
	// SourceRootRegistered is false when there was no project context.
	SourceRootRegistered bool
}

// NewDriver creates a driver. project may be nil, in which case the output
// directory is not registered anywhere. A nil logger logs at info level to stdout.
func NewDriver(config models.Config, compiler contracts.ICompiler, project contracts.IProjectContext, logger *pterm.Logger) *Driver {
	if logger == nil {
		logger = pterm.DefaultLogger.WithLevel(pterm.LogLevelInfo)
	}
	return &Driver{
		config:   config,
		compiler: compiler,
		project:  project,
		markers:  markers.NewStore(config.TimestampDirectory),
		logger:   logger,
	}
}

// NewScanner returns the scanner the driver uses: the JavaCC suffix mappings,
// the configured tolerance and the exclusion patterns of the source root. The
// timestamp and output directories are never scanned, so markers and generated
// files below the source root are not taken for grammars.
func NewScanner(config models.Config) (*stale_scanner.StaleSourceScanner, error) {
	scanner := stale_scanner.NewStaleSourceScanner(config.StaleMillis)
	for _, mapping := range stale_scanner.DefaultMappings() {
		scanner.AddSourceMapping(mapping)
	}

	excludes, err := utils.GetExcludePatterns(config.SourceDirectory, config.Excludes)
	if err != nil {
		return nil, err
	}
	scanner.SetExcludes(excludes)
	scanner.SkipDirectories(config.TimestampDirectory, config.OutputDirectory)

	return scanner, nil
}

// Execute runs one generation pass. Grammars are compiled one at a time and
// the first failure aborts the pass; markers written before the failure are kept.
func (d *Driver) Execute(ctx context.Context) (*Result, error) {
	for _, dir := range []string{d.config.OutputDirectory, d.config.TimestampDirectory} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("%w: failed to create %s: %w", ErrDirectoryCreation, dir, err)
		}
	}

	scanner, err := NewScanner(d.config)
	if err != nil {
		return nil, fmt.Errorf("%w: error scanning source root '%s' for stale grammars to reprocess: %w", ErrScan, d.config.SourceDirectory, err)
	}
	staleGrammars, err := scanner.GetIncludedSources(d.config.SourceDirectory, d.config.TimestampDirectory)
	if err != nil {
		return nil, fmt.Errorf("%w: error scanning source root '%s' for stale grammars to reprocess: %w", ErrScan, d.config.SourceDirectory, err)
	}

	result := &Result{}

	if staleGrammars.IsEmpty() {
		d.logger.Info("Nothing to process - all grammars are up to date")
		if err := d.registerSourceRoot(result); err != nil {
			return nil, err
		}
		return result, nil
	}

	for _, grammar := range staleGrammars.Files() {
		d.logger.Info("Processing grammar", d.logger.Args("grammar", grammar.RelativePath))

		args := BuildArguments(d.config.Options, d.config.OutputDirectory, grammar.Path)
		d.logger.Debug("JavaCC arguments", d.logger.Args("args", args))

		if err := d.compiler.Compile(ctx, args); err != nil {
			return nil, fmt.Errorf("%w for %s: %w", ErrGeneration, grammar.Path, err)
		}

		for _, relative := range scanner.MarkerRelativePaths(grammar) {
			if _, err := d.markers.Write(grammar.Path, relative); err != nil {
				return nil, fmt.Errorf("%w for %s: %w", ErrMarkerWrite, grammar.Path, err)
			}
		}

		result.Processed = append(result.Processed, grammar.Path)
	}

	if err := d.registerSourceRoot(result); err != nil {
		return nil, err
	}
	return result, nil
}

func (d *Driver) registerSourceRoot(result *Result) error {
	if d.project == nil {
		return nil
	}
	if err := d.project.AddCompileSourceRoot(d.config.OutputDirectory); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSourceRoot, d.config.OutputDirectory, err)
	}
	result.SourceRootRegistered = true
	return nil
}
