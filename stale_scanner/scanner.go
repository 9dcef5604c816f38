package stale_scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/meysamhadeli/jjgen/stale_scanner/contracts"
	"github.com/meysamhadeli/jjgen/stale_scanner/models"
	"github.com/meysamhadeli/jjgen/utils"
)

// StaleSourceScanner finds grammars under a source root whose markers under a
// target root are missing or older than the grammar.
type StaleSourceScanner struct {
	staleMillis int64
	mappings    []SuffixMapping
	excludes    []string
	skipDirs    []string
}

var _ contracts.ISourceInclusionScanner = (*StaleSourceScanner)(nil)

// NewStaleSourceScanner creates a scanner that tolerates a marker being up to
// staleMillis older than its grammar.
func NewStaleSourceScanner(staleMillis int) *StaleSourceScanner {
	return &StaleSourceScanner{
		staleMillis: int64(staleMillis),
	}
}

// AddSourceMapping registers a suffix mapping. A file matching any registered
// mapping is a candidate.
func (s *StaleSourceScanner) AddSourceMapping(mapping SuffixMapping) {
	s.mappings = append(s.mappings, mapping)
}

// SetExcludes replaces the exclusion patterns, see utils.IsExcluded.
func (s *StaleSourceScanner) SetExcludes(patterns []string) {
	s.excludes = append([]string(nil), patterns...)
}

// SkipDirectories names directories the walk never enters, such as the marker
// and output directories when they live under the source root.
func (s *StaleSourceScanner) SkipDirectories(dirs ...string) {
	s.skipDirs = append(s.skipDirs, dirs...)
}

// Candidates lists every grammar under sourceDir matched by a mapping, ordered
// by path. Symbolic links to files and directories are followed; dangling
// links are skipped. A source root that does not exist has no candidates.
func (s *StaleSourceScanner) Candidates(sourceDir string) ([]models.GrammarFile, error) {
	root, err := filepath.Abs(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source root %s: %w", sourceDir, err)
	}

	rootInfo, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read source root %s: %w", root, err)
	}
	if !rootInfo.IsDir() {
		return nil, fmt.Errorf("source root %s is not a directory", root)
	}

	walker := &sourceWalker{
		scanner: s,
		visited: make(map[string]struct{}),
		skipped: resolveAll(s.skipDirs),
	}
	if err := walker.walk(root, ""); err != nil {
		return nil, fmt.Errorf("failed to scan source root %s: %w", root, err)
	}

	grammars := walker.grammars
	sort.Slice(grammars, func(i, j int) bool {
		return grammars[i].Path < grammars[j].Path
	})
	return grammars, nil
}

// sourceWalker holds the state of one Candidates pass.
type sourceWalker struct {
	scanner  *StaleSourceScanner
	visited  map[string]struct{}
	skipped  map[string]struct{}
	grammars []models.GrammarFile
}

// walk descends into dir, whose path relative to the source root is
// relativeDir. Directories are identified by their resolved path so link
// cycles terminate.
func (w *sourceWalker) walk(dir string, relativeDir string) error {
	resolvedDir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return err
	}
	if _, seen := w.visited[resolvedDir]; seen {
		return nil
	}
	w.visited[resolvedDir] = struct{}{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		filePath := filepath.Join(dir, entry.Name())
		relativePath := path.Join(relativeDir, entry.Name())

		// Stat follows symlinks, so linked grammars carry the target's
		// modification time.
		fileInfo, err := os.Stat(filePath)
		if err != nil {
			if entry.Type()&fs.ModeSymlink != 0 {
				continue
			}
			return fmt.Errorf("failed to get file info: %s, error: %w", relativePath, err)
		}

		if utils.IsExcluded(relativePath, fileInfo.IsDir(), w.scanner.excludes) {
			continue
		}

		if fileInfo.IsDir() {
			if w.isSkipped(filePath) {
				continue
			}
			if err := w.walk(filePath, relativePath); err != nil {
				return err
			}
			continue
		}
		if !fileInfo.Mode().IsRegular() || !w.scanner.matches(entry.Name()) {
			continue
		}

		resolved, err := filepath.EvalSymlinks(filePath)
		if err != nil {
			resolved = filePath
		}

		w.grammars = append(w.grammars, models.GrammarFile{
			Path:         filePath,
			RelativePath: relativePath,
			ResolvedPath: resolved,
			ModTime:      fileInfo.ModTime(),
		})
	}
	return nil
}

func (w *sourceWalker) isSkipped(dir string) bool {
	if len(w.skipped) == 0 {
		return false
	}
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return false
	}
	_, skip := w.skipped[resolved]
	return skip
}

// resolveAll maps each directory to its absolute path with symbolic links
// evaluated. Directories that do not exist cannot be reached by a walk and are
// left out.
func resolveAll(dirs []string) map[string]struct{} {
	resolved := make(map[string]struct{}, len(dirs))
	for _, dir := range dirs {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		if realDir, err := filepath.EvalSymlinks(absDir); err == nil {
			resolved[realDir] = struct{}{}
		}
	}
	return resolved
}

// GetIncludedSources returns the stale grammars under sourceDir. The file
// system is not modified.
func (s *StaleSourceScanner) GetIncludedSources(sourceDir string, targetDir string) (*models.StaleSet, error) {
	grammars, err := s.Candidates(sourceDir)
	if err != nil {
		return nil, err
	}

	staleSet := models.NewStaleSet()
	for _, grammar := range grammars {
		if s.Inspect(grammar, targetDir).Stale {
			staleSet.Add(grammar)
		}
	}
	return staleSet, nil
}

// MarkerRelativePaths returns the marker paths of grammar relative to the
// target root, one per target suffix of every matching mapping.
func (s *StaleSourceScanner) MarkerRelativePaths(grammar models.GrammarFile) []string {
	dir, name := path.Split(grammar.RelativePath)

	seen := make(map[string]struct{})
	var paths []string
	for _, mapping := range s.mappings {
		for _, targetName := range mapping.TargetNames(name) {
			relative := dir + targetName
			if _, exists := seen[relative]; exists {
				continue
			}
			seen[relative] = struct{}{}
			paths = append(paths, relative)
		}
	}
	return paths
}

// Inspect compares grammar with each of its markers under targetDir.
// A marker that cannot be read counts as missing.
func (s *StaleSourceScanner) Inspect(grammar models.GrammarFile, targetDir string) models.MarkerState {
	state := models.MarkerState{Grammar: grammar}
	tolerance := time.Duration(s.staleMillis) * time.Millisecond

	for _, relative := range s.MarkerRelativePaths(grammar) {
		markerPath := filepath.Join(targetDir, filepath.FromSlash(relative))
		state.MarkerPaths = append(state.MarkerPaths, markerPath)

		markerInfo, err := os.Stat(markerPath)
		if err != nil {
			state.Missing = true
			state.Stale = true
			continue
		}
		if grammar.ModTime.After(markerInfo.ModTime().Add(tolerance)) {
			state.Stale = true
		}
	}
	return state
}

func (s *StaleSourceScanner) matches(name string) bool {
	for _, mapping := range s.mappings {
		if mapping.Matches(name) {
			return true
		}
	}
	return false
}
