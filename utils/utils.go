// Package utils holds small helpers shared by the store implementations.
package utils

import (
	"regexp"
	"sort"
	"strings"
)

// regex to test whether the first character is a '/'
var hasLeadingSlash = regexp.MustCompile("^/")

// RemoveTrailingSlash removes trailing slash, if any
func RemoveTrailingSlash(path string) string {
	return strings.TrimRight(path, "/")
}

// EnsureLeadingSlash will only ever use / since it's used for remote paths, never a Windows OS path.
func EnsureLeadingSlash(dir string) string {
	if hasLeadingSlash.MatchString(dir) {
		return dir
	}
	return "/" + dir
}

// SortedNames returns names sorted with duplicates and empty entries removed. The result is never nil.
func SortedNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// ValidateName ensures a container or object name is usable as a single path segment on directory-based stores.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.Contains(name, "/") {
		return ErrBadName
	}
	return nil
}
