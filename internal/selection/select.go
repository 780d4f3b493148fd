// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package selection

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// Compile builds the matcher for pattern. Matching ignores case and is
// anchored at the start of the name but not at the end, so ".*pdf" and
// "chapter" both match "Chapter1.PDF".
func Compile(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)^(?:" + pattern + ")")
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return re, nil
}

// Select lists dir and returns the names of the regular files matching
// pattern, in natural order. Directories are never selected.
func Select(dir, pattern string) ([]string, error) {
	re, err := Compile(pattern)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading folder %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if re.MatchString(entry.Name()) {
			names = append(names, entry.Name())
		}
	}

	SortNatural(names)
	return names, nil
}

// Resolve returns the path of name inside dir. Absolute names and an empty
// dir leave name unchanged.
func Resolve(dir, name string) string {
	if dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

// ResolveAll applies Resolve to every name.
func ResolveAll(dir string, names []string) []string {
	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = Resolve(dir, n)
	}
	return paths
}
