// Package fileops provides the filesystem primitives the organizer is built
// on: a secure recursive document scanner and an atomic-as-possible move.
//
// Scanning is bounded by an os.Root so that symlinks can never walk the scan
// outside the target tree.
package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"
)

// markdownExtensions contains the document extensions the scanner yields.
var markdownExtensions = []string{
	".md", ".mdown", ".mkdn", ".mkd", ".markdown",
}

// defaultSkipDirs are directory names never worth descending into.
var defaultSkipDirs = []string{
	"node_modules", ".git", "vendor", "target", "build", ".next",
	"dist", ".cache", "__pycache__", ".vscode", ".idea",
}

// ScanOptions configures document enumeration.
type ScanOptions struct {
	// MaxDepth limits recursion depth. Zero selects the default of 20.
	MaxDepth int

	// ExcludeDirs are additional directory names to skip, matched as
	// substrings of the directory name.
	ExcludeDirs []string

	// IncludeHidden includes dot-directories in the walk. Dot-files with a
	// markdown extension are always yielded.
	IncludeHidden bool
}

// DocInfo describes one discovered document.
type DocInfo struct {
	// Name is the base filename.
	Name string

	// Path is the path relative to the scan root, using forward slashes.
	Path string

	// Dir is the directory component of Path ("." for the root).
	Dir string

	// Size is the file size in bytes.
	Size int64

	// ModTime is the last modification time.
	ModTime time.Time
}

// ScanResult holds discovered documents plus any non-fatal errors hit along
// the way. An unreadable subdirectory is recorded here and the walk continues
// elsewhere.
type ScanResult struct {
	Docs   []DocInfo
	Errors []error
}

// Scanner enumerates markdown documents under a root directory.
type Scanner struct {
	root     *os.Root
	rootPath string
	opts     ScanOptions
	visited  map[string]bool
}

// NewScanner creates a scanner rooted at scanPath. The caller must Close it.
func NewScanner(scanPath string, opts ScanOptions) (*Scanner, error) {
	if strings.TrimSpace(scanPath) == "" {
		return nil, fmt.Errorf("scan path cannot be empty")
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = 20
	}

	absPath, err := filepath.Abs(ExpandPath(scanPath))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve scan path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("cannot access scan path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan path is not a directory: %s", absPath)
	}

	root, err := os.OpenRoot(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open scan root: %w", err)
	}

	return &Scanner{
		root:     root,
		rootPath: absPath,
		opts:     opts,
	}, nil
}

// Close releases the scanner's root handle.
func (s *Scanner) Close() error {
	if s.root != nil {
		err := s.root.Close()
		s.root = nil
		return err
	}
	return nil
}

// Scan walks the tree and returns every markdown document found, in
// deterministic (sorted, depth-first) order. Directory read failures are
// collected as non-fatal errors; only a closed scanner errors outright.
func (s *Scanner) Scan() (ScanResult, error) {
	if s.root == nil {
		return ScanResult{}, fmt.Errorf("scanner has been closed")
	}

	s.visited = make(map[string]bool)
	var result ScanResult
	s.scanRecursive(".", 1, &result)
	return result, nil
}

func (s *Scanner) scanRecursive(relativePath string, depth int, result *ScanResult) {
	if depth > s.opts.MaxDepth {
		return
	}

	// Loop guard against symlinked directory cycles.
	cleanPath := filepath.Clean(relativePath)
	if s.visited[cleanPath] {
		return
	}
	s.visited[cleanPath] = true

	dir, err := s.root.Open(relativePath)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("failed to open directory %s: %w", relativePath, err))
		return
	}

	entries, err := dir.ReadDir(-1)
	_ = dir.Close()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("failed to read directory %s: %w", relativePath, err))
		return
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		entryPath := filepath.ToSlash(filepath.Join(relativePath, entry.Name()))

		if entry.IsDir() {
			if s.shouldSkipDirectory(entry.Name()) {
				continue
			}
			s.scanRecursive(entryPath, depth+1, result)
			continue
		}

		if !isMarkdownFile(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to stat %s: %w", entryPath, err))
			continue
		}

		docDir := filepath.ToSlash(filepath.Dir(entryPath))
		result.Docs = append(result.Docs, DocInfo{
			Name:    entry.Name(),
			Path:    entryPath,
			Dir:     docDir,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
}

func (s *Scanner) shouldSkipDirectory(dirName string) bool {
	if !s.opts.IncludeHidden && strings.HasPrefix(dirName, ".") {
		return true
	}
	if slices.Contains(defaultSkipDirs, dirName) {
		return true
	}
	for _, excl := range s.opts.ExcludeDirs {
		if excl != "" && strings.Contains(dirName, excl) {
			return true
		}
	}
	return false
}

// isMarkdownFile checks if a filename has a markdown extension.
func isMarkdownFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return slices.Contains(markdownExtensions, ext)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
