package util

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
)

// IgnoreFileName is the per-root file holding additional ignore patterns.
const IgnoreFileName = ".pagegenignore"

// MatchesPattern checks if a slash-separated relative path matches a
// gitignore-style pattern.
//
//   - "*.md" or "allegro" match at any depth (unrooted)
//   - "/help/*" only matches from the root (rooted)
//   - "integrations/" matches the directory and therefore everything below it
//
// Note: This is a simplified implementation using path.Match and does not cover
// "**" or negation.
func MatchesPattern(pattern, relPath string) bool {
	pattern = strings.TrimSpace(strings.ReplaceAll(pattern, `\`, "/"))
	relPath = path.Clean(strings.ReplaceAll(relPath, `\`, "/"))
	if pattern == "" || pattern == "/" || relPath == "." || relPath == "" {
		return false
	}

	isRooted := strings.HasPrefix(pattern, "/")
	dirOnly := strings.HasSuffix(pattern, "/")
	pattern = strings.Trim(pattern, "/")
	// A pattern with an inner slash is anchored to the root, as in gitignore.
	if strings.Contains(pattern, "/") {
		isRooted = true
	}

	parts := strings.Split(relPath, "/")
	last := len(parts) - 1
	for start := range parts {
		if isRooted && start > 0 {
			break
		}
		for end := start; end <= last; end++ {
			// A directory-only pattern never matches the final (file) segment.
			if dirOnly && end == last {
				continue
			}
			if match, _ := path.Match(pattern, strings.Join(parts[start:end+1], "/")); match {
				return true
			}
		}
	}
	return false
}

// MatchesAny reports whether relPath matches any of the patterns and returns
// the first matching pattern.
func MatchesAny(patterns []string, relPath string) (string, bool) {
	for _, p := range patterns {
		if MatchesPattern(p, relPath) {
			return p, true
		}
	}
	return "", false
}

// LoadPatternsFile reads an ignore file and returns its patterns, skipping
// blank lines and "#" comments. A missing file yields no patterns and no error.
func LoadPatternsFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open ignore file %s: %w", filePath, err)
	}
	defer file.Close()

	var patterns []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			patterns = append(patterns, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ignore file %s: %w", filePath, err)
	}
	return patterns, nil
}
