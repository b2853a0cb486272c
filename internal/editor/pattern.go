package editor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

// pathFilter holds compiled path patterns in the order they were given.
// Matching is a logical OR with short-circuit on the first hit; an empty
// filter matches everything.
type pathFilter struct {
	patterns []func(string) bool
}

// compilePatterns compiles each pattern string. A pattern beginning with "/"
// is a regular expression (surrounding slashes are delimiters) matched
// against the "/"-prefixed repo-relative path; anything else is a shell glob
// matched against the bare repo-relative path, with "/" as a separator so
// "*.txt" does not cross directories.
func compilePatterns(patterns []string) (*pathFilter, error) {
	f := &pathFilter{}

	for _, p := range patterns {
		if strings.HasPrefix(p, "/") {
			expr := strings.TrimSuffix(strings.TrimPrefix(p, "/"), "/")
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("invalid regex pattern %q: %w", p, err)
			}
			f.patterns = append(f.patterns, func(path string) bool {
				return re.MatchString("/" + path)
			})
			continue
		}

		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", p, err)
		}
		f.patterns = append(f.patterns, g.Match)
	}

	return f, nil
}

// Match reports whether a repo-relative path passes the filter.
func (f *pathFilter) Match(path string) bool {
	if len(f.patterns) == 0 {
		return true
	}
	for _, match := range f.patterns {
		if match(path) {
			return true
		}
	}
	return false
}
