package scanner

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/vvka-141/pgstar/internal/files/filesystem"
	"github.com/vvka-141/pgstar/pkg/pgstar"
)

// Scanner discovers data files from a directory tree.
// Scanner is safe for concurrent use when its fsProvider is.
type Scanner struct {
	pattern    string
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a scanner over the OS filesystem matching pgstar.DataFilePattern.
func NewScanner() *Scanner {
	return &Scanner{
		pattern:    pgstar.DataFilePattern,
		fsProvider: filesystem.NewOSFileSystem(),
	}
}

// NewScannerWithFS creates a scanner with a custom filesystem provider and pattern.
// An empty pattern means pgstar.DataFilePattern.
// Panics if fsProvider is nil or pattern is malformed.
func NewScannerWithFS(fsProvider filesystem.FileSystemProvider, pattern string) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if pattern == "" {
		pattern = pgstar.DataFilePattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		panic(fmt.Sprintf("invalid pattern %q: %v", pattern, err))
	}
	return &Scanner{
		pattern:    pattern,
		fsProvider: fsProvider,
	}
}

// Discover recursively walks root and returns the sorted absolute paths of
// the files whose base name matches the scanner's pattern.
func (s *Scanner) Discover(root string) ([]string, error) {
	dir, err := s.fsProvider.Open(root)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %v: %w", root, err, pgstar.ErrDiscoveryFailed)
	}

	var paths []string
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return err
		}
		if file.Info().IsDir() {
			return nil
		}

		// Pattern was validated at construction, Match cannot fail here.
		matched, _ := filepath.Match(s.pattern, file.Info().Name())
		if matched {
			paths = append(paths, file.Path())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %v: %w", root, err, pgstar.ErrDiscoveryFailed)
	}

	sort.Strings(paths)
	return paths, nil
}

// OpenFile opens a discovered file for reading. A file that vanished or
// became unreadable since discovery is a discovery failure.
func (s *Scanner) OpenFile(path string) (io.ReadCloser, error) {
	rc, err := s.fsProvider.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w: %w", path, err, pgstar.ErrDiscoveryFailed)
	}
	return rc, nil
}

var _ pgstar.FileDiscoverer = (*Scanner)(nil)
