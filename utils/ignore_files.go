package utils

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// IgnoreFileName is read from the source root and lists extra exclusion patterns.
const IgnoreFileName = ".jjgen-ignore"

// ignoreCacheEntry holds parsed patterns with the mtime they were read at
type ignoreCacheEntry struct {
	patterns []string
	modTime  time.Time
}

var (
	ignoreCache = make(map[string]*ignoreCacheEntry)
	cacheMutex  sync.RWMutex
)

// DefaultExcludes are version-control and editor artifacts that are never grammars.
var DefaultExcludes = []string{
	".git/",
	".svn/",
	".hg/",
	"CVS/",
	".idea/",
	".vscode/",
	"*~",
	"#*#",
	".#*",
	"*.swp",
	"*.bak",
	".DS_Store",
}

// GetExcludePatterns returns the default excludes, the configured patterns and
// the patterns listed in the ignore file of sourceDir, in that order.
// A missing ignore file contributes nothing.
func GetExcludePatterns(sourceDir string, configured []string) ([]string, error) {
	patterns := make([]string, 0, len(DefaultExcludes)+len(configured))
	patterns = append(patterns, DefaultExcludes...)
	patterns = append(patterns, configured...)

	fromFile, err := readIgnoreFileCached(filepath.Join(sourceDir, IgnoreFileName))
	if err != nil {
		return nil, err
	}
	return append(patterns, fromFile...), nil
}

func readIgnoreFileCached(ignorePath string) ([]string, error) {
	fileInfo, err := os.Stat(ignorePath)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("error checking %s: %w", IgnoreFileName, err)
	}

	cacheMutex.RLock()
	if cached, exists := ignoreCache[ignorePath]; exists && fileInfo.ModTime().Equal(cached.modTime) {
		cacheMutex.RUnlock()
		return cached.patterns, nil
	}
	cacheMutex.RUnlock()

	patterns, err := readIgnoreFile(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", IgnoreFileName, err)
	}

	cacheMutex.Lock()
	ignoreCache[ignorePath] = &ignoreCacheEntry{
		patterns: patterns,
		modTime:  fileInfo.ModTime(),
	}
	cacheMutex.Unlock()

	return patterns, nil
}

// readIgnoreFile returns the non-empty, non-comment lines of the file.
func readIgnoreFile(ignorePath string) ([]string, error) {
	content, err := os.ReadFile(ignorePath)
	if err != nil {
		return nil, err
	}
	var patterns []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			patterns = append(patterns, line)
		}
	}
	return patterns, nil
}

// IsExcluded checks a slash separated path, relative to the source root,
// against the patterns. A pattern ending in "/" excludes a directory of that
// name at any depth. A pattern containing "/" is matched against the whole
// relative path, any other pattern against each path element.
func IsExcluded(relativePath string, isDir bool, patterns []string) bool {
	elements := strings.Split(relativePath, "/")
	for _, pattern := range patterns {
		if dirPattern, ok := strings.CutSuffix(pattern, "/"); ok {
			// the last element only counts when it is itself a directory
			candidates := elements[:len(elements)-1]
			if isDir {
				candidates = elements
			}
			if strings.Contains(dirPattern, "/") {
				if isDir && matchPattern(dirPattern, relativePath) {
					return true
				}
				continue
			}
			for _, element := range candidates {
				if matchPattern(dirPattern, element) {
					return true
				}
			}
			continue
		}

		if strings.Contains(pattern, "/") {
			if matchPattern(pattern, relativePath) {
				return true
			}
			continue
		}
		for _, element := range elements {
			if matchPattern(pattern, element) {
				return true
			}
		}
	}
	return false
}

func matchPattern(pattern, name string) bool {
	match, err := path.Match(pattern, name)
	return err == nil && match
}

// ClearIgnoreCache drops all cached ignore files.
func ClearIgnoreCache() {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	ignoreCache = make(map[string]*ignoreCacheEntry)
}
