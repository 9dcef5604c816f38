package markers

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/zeebo/xxh3"
)

// Store manages the marker copies of processed grammars. A marker is a full
// copy of the grammar whose modification time records when it was processed.
type Store struct {
	dir   string
	mutex sync.RWMutex
}

// Stats summarizes the markers held by a Store.
type Stats struct {
	Dir        string
	Markers    int
	TotalBytes int64
	Oldest     time.Time
	Newest     time.Time
}

// NewStore creates a store rooted at dir. The directory is created on the
// first write, not here.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

// Path returns the marker location for a slash separated relative path.
func (s *Store) Path(relativePath string) string {
	return filepath.Join(s.dir, filepath.FromSlash(relativePath))
}

// Write copies sourcePath byte for byte to the marker at relativePath and
// returns the marker location. The marker's modification time is set to the
// later of now and the source's modification time.
func (s *Store) Write(sourcePath string, relativePath string) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	target := s.Path(relativePath)

	sourceInfo, err := os.Stat(sourcePath)
	if err != nil {
		return "", fmt.Errorf("failed to get file info: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", fmt.Errorf("failed to create marker directory: %w", err)
	}

	if err := copyFile(sourcePath, target, sourceInfo.Mode().Perm()); err != nil {
		return "", err
	}

	modTime := time.Now()
	if sourceInfo.ModTime().After(modTime) {
		modTime = sourceInfo.ModTime()
	}
	if err := os.Chtimes(target, modTime, modTime); err != nil {
		return "", fmt.Errorf("failed to set marker time: %w", err)
	}

	return target, nil
}

func copyFile(sourcePath string, target string, perm fs.FileMode) error {
	in, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", sourcePath, err)
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm|0200)
	if err != nil {
		return fmt.Errorf("failed to create marker %s: %w", target, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", sourcePath, target, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write marker %s: %w", target, err)
	}
	return nil
}

// Stats walks the store. A store whose directory does not exist is empty.
func (s *Store) Stats() (*Stats, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	stats := &Stats{Dir: s.dir}
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == s.dir {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		stats.Markers++
		stats.TotalBytes += info.Size()
		if stats.Oldest.IsZero() || info.ModTime().Before(stats.Oldest) {
			stats.Oldest = info.ModTime()
		}
		if info.ModTime().After(stats.Newest) {
			stats.Newest = info.ModTime()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read marker directory: %w", err)
	}
	return stats, nil
}

// Clear removes every marker and returns how many were removed. The store
// directory itself is kept.
func (s *Store) Clear() (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read marker directory: %w", err)
	}

	var deletedCount int
	for _, entry := range entries {
		entryPath := filepath.Join(s.dir, entry.Name())
		count, err := countFiles(entryPath)
		if err != nil {
			return deletedCount, err
		}
		if err := os.RemoveAll(entryPath); err != nil {
			return deletedCount, fmt.Errorf("failed to delete %s: %w", entryPath, err)
		}
		deletedCount += count
	}
	return deletedCount, nil
}

func countFiles(root string) (int, error) {
	var count int
	err := filepath.WalkDir(root, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})
	return count, err
}

// Digest returns the xxh3 hash of the file's contents.
func Digest(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	hasher := xxh3.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hasher.Sum64(), nil
}

// Matches reports whether the marker holds the same bytes as the grammar.
// A missing marker does not match.
func Matches(grammarPath string, markerPath string) (bool, error) {
	markerDigest, err := Digest(markerPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	grammarDigest, err := Digest(grammarPath)
	if err != nil {
		return false, err
	}
	return grammarDigest == markerDigest, nil
}
