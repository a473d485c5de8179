// Package docload discovers the case documents under a workspace directory.
package docload

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/counselops/brief/internal/core/casefile"
)

// Options controls which files under the case directory become documents.
type Options struct {
	// Include is the set of doublestar glob patterns a file must match.
	Include []string
	// Exclude patterns are checked against every path segment prefix, so
	// "node_modules/**" excludes the whole tree.
	Exclude []string
}

// Load walks dir and returns the matching files as documents, sorted by
// title. The document ID is the slash-separated path relative to dir.
func Load(dir string, opts Options, log zerolog.Logger) ([]casefile.Document, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat case directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("case path %s is not a directory", dir)
	}

	var docs []casefile.Document
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if excluded(rel, opts.Exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		if !included(rel, opts.Include) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", rel, err)
		}

		docs = append(docs, casefile.Document{
			ID:      rel,
			Title:   titleFor(rel),
			Content: string(content),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk case directory: %w", err)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Title < docs[j].Title })

	log.Debug().Int("count", len(docs)).Str("dir", dir).Msg("documents discovered")
	return docs, nil
}

// ValidatePatterns checks every glob for syntax errors up front so a broken
// config fails loudly instead of silently matching nothing.
func ValidatePatterns(opts Options) error {
	for _, p := range append(append([]string{}, opts.Include...), opts.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid glob pattern %q", p)
		}
	}
	return nil
}

func included(rel string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func excluded(rel string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		// Let "node_modules/**" style patterns prune the directory itself.
		if base, found := strings.CutSuffix(p, "/**"); found {
			if ok, _ := doublestar.Match(base, rel); ok {
				return true
			}
		}
	}
	return false
}

// titleFor turns "briefs/initial_filing.md" into "Initial Filing".
func titleFor(rel string) string {
	base := filepath.Base(rel)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")

	words := strings.Fields(base)
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 {
			words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
		}
	}
	if len(words) == 0 {
		return rel
	}
	return strings.Join(words, " ")
}
