package models

import (
	"sort"
	"time"
)

// GrammarFile identifies a grammar source discovered during one scan pass.
type GrammarFile struct {
	// Path is the absolute path of the grammar as found under the source root.
	Path string
	// RelativePath is Path relative to the source root, slash separated.
	RelativePath string
	// ResolvedPath is Path with symbolic links evaluated and is the identity
	// used by StaleSet.
	ResolvedPath string
	ModTime      time.Time
}

// key returns the identity of the grammar inside a StaleSet.
func (g GrammarFile) key() string {
	if g.ResolvedPath != "" {
		return g.ResolvedPath
	}
	return g.Path
}

// MarkerState describes how a grammar compares against its markers.
type MarkerState struct {
	Grammar     GrammarFile
	MarkerPaths []string
	// Missing is set when at least one expected marker does not exist.
	Missing bool
	Stale   bool
}

// StaleSet holds the grammars that must be regenerated.
type StaleSet struct {
	files map[string]GrammarFile
}

// NewStaleSet creates an empty set.
func NewStaleSet() *StaleSet {
	return &StaleSet{files: make(map[string]GrammarFile)}
}

// Add inserts the grammar and reports whether it was not already present.
func (s *StaleSet) Add(grammar GrammarFile) bool {
	key := grammar.key()
	if _, exists := s.files[key]; exists {
		return false
	}
	s.files[key] = grammar
	return true
}

// Contains reports whether a grammar with the given path is in the set.
func (s *StaleSet) Contains(path string) bool {
	if _, exists := s.files[path]; exists {
		return true
	}
	for _, grammar := range s.files {
		if grammar.Path == path {
			return true
		}
	}
	return false
}

func (s *StaleSet) Len() int {
	return len(s.files)
}

func (s *StaleSet) IsEmpty() bool {
	return len(s.files) == 0
}

// Files returns the grammars ordered by path.
func (s *StaleSet) Files() []GrammarFile {
	files := make([]GrammarFile, 0, len(s.files))
	for _, grammar := range s.files {
		files = append(files, grammar)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files
}
