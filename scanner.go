package html2wf

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// ScanStats tracks input discovery statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files kept after filtering
	FilesSkipped    int // Files skipped as vendored or ignored
}

// FileLocation is a position inside a source file
type FileLocation struct {
	File   string
	Line   int    // 1-based, 0 when unknown
	Column int    // 1-based, 0 when unknown
	Text   string // Full line content for source display
}

var (
	// gitignore caching
	gitIgnoreCache *ignore.GitIgnore
	gitIgnoreOnce  sync.Once
)

// isVendored reports whether path lives in a dependency directory.
func isVendored(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "node_modules" || part == "bower_components" {
			return true
		}
	}
	return false
}

// loadGitIgnore loads the .gitignore file once (thread-safe).
// A missing .gitignore is not an error.
func loadGitIgnore() *ignore.GitIgnore {
	gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			gitIgnoreCache = nil
			return
		}
		gitIgnoreCache = gi
	})
	return gitIgnoreCache
}

// shouldSkipFile determines if a file should be excluded from conversion.
//
// Two-layer filtering:
// 1. Pattern check (fast): skip vendored dependency directories
// 2. Gitignore check: skip gitignored files (only for relative paths)
func shouldSkipFile(path string) bool {
	if isVendored(path) {
		return true
	}

	// Absolute paths (like /tmp/...) are outside the project gitignore
	if !filepath.IsAbs(path) {
		gi := loadGitIgnore()
		if gi != nil && gi.MatchesPath(path) {
			return true
		}
	}

	return false
}

// expandGlobPatterns expands glob patterns to file paths, without stats
func expandGlobPatterns(patterns []string) ([]string, error) {
	files, _, err := expandGlobPatternsWithStats(patterns)
	return files, err
}

// expandGlobPatternsWithStats expands globs and tracks statistics.
// Matches are deduplicated and directories are dropped; order follows
// the patterns, then the glob's own order.
func expandGlobPatternsWithStats(patterns []string) ([]string, ScanStats, error) {
	var allFiles []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, err
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			seen[match] = true
			stats.FilesDiscovered++

			if shouldSkipFile(match) {
				stats.FilesSkipped++
				continue
			}
			allFiles = append(allFiles, match)
			stats.FilesScanned++
		}
	}

	return allFiles, stats, nil
}

// findClassColumn locates the column where className starts inside a
// class attribute on line. Returns 0 when the line has no such attribute
// token.
func findClassColumn(line string, className string) int {
	rest := line
	offset := 0
	for {
		idx := strings.Index(rest, "class=")
		if idx == -1 {
			return 0
		}
		start := idx + len("class=")
		if start >= len(rest) {
			return 0
		}

		quote := rest[start]
		valueStart := start
		valueEnd := len(rest)
		if quote == '"' || quote == '\'' {
			valueStart++
			if end := strings.IndexByte(rest[valueStart:], quote); end != -1 {
				valueEnd = valueStart + end
			}
		} else if end := strings.IndexAny(rest[valueStart:], " \t>"); end != -1 {
			valueEnd = valueStart + end
		}

		// Whole-token match inside the attribute value
		value := rest[valueStart:valueEnd]
		pos := 0
		for _, token := range strings.Fields(value) {
			at := strings.Index(value[pos:], token) + pos
			if token == className {
				return offset + valueStart + at + 1
			}
			pos = at + len(token)
		}

		offset += valueEnd
		rest = rest[valueEnd:]
	}
}

// locateClass finds the first class attribute in source listing className.
func locateClass(file, source, className string) FileLocation {
	for i, line := range strings.Split(source, "\n") {
		if col := findClassColumn(line, className); col > 0 {
			return FileLocation{File: file, Line: i + 1, Column: col, Text: strings.TrimRight(line, "\r")}
		}
	}
	return FileLocation{File: file}
}

// locateSelector finds the line where selector starts in a stylesheet.
// Whitespace inside selectors is normalized by the parser, so the first
// comma part is tried when the whole list is not found verbatim.
func locateSelector(file, source, selector string) FileLocation {
	candidates := []string{selector}
	if i := strings.IndexByte(selector, ','); i > 0 {
		candidates = append(candidates, strings.TrimSpace(selector[:i]))
	}

	lines := strings.Split(source, "\n")
	for _, needle := range candidates {
		for i, line := range lines {
			if idx := strings.Index(line, needle); idx != -1 {
				return FileLocation{File: file, Line: i + 1, Column: idx + 1, Text: strings.TrimRight(line, "\r")}
			}
		}
	}
	return FileLocation{File: file}
}

// GetRelativePath converts an absolute path to a path relative to the
// current directory when possible.
func GetRelativePath(absPath string) string {
	if !filepath.IsAbs(absPath) {
		return absPath
	}
	cwd, err := os.Getwd()
	if err != nil {
		return absPath
	}
	rel, err := filepath.Rel(cwd, absPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return absPath
	}
	return rel
}
