package editor

import "testing"

func TestPathFilterMatch(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		path     string
		want     bool
	}{
		{
			name:     "empty filter matches everything",
			patterns: nil,
			path:     "docs/readme.md",
			want:     true,
		},
		{
			name:     "glob matches top-level file",
			patterns: []string{"*.txt"},
			path:     "a.txt",
			want:     true,
		},
		{
			name:     "glob does not cross directories",
			patterns: []string{"*.txt"},
			path:     "docs/notes.txt",
			want:     false,
		},
		{
			name:     "glob with directory prefix",
			patterns: []string{"docs/*.md"},
			path:     "docs/readme.md",
			want:     true,
		},
		{
			name:     "superstar glob crosses directories",
			patterns: []string{"**.go"},
			path:     "internal/editor/editor.go",
			want:     true,
		},
		{
			name:     "regex matches docs tree",
			patterns: []string{`/^\/docs\//`},
			path:     "docs/readme.md",
			want:     true,
		},
		{
			name:     "regex does not match top-level file",
			patterns: []string{`/^\/docs\//`},
			path:     "a.txt",
			want:     false,
		},
		{
			name:     "regex without trailing delimiter",
			patterns: []string{`/\.md$`},
			path:     "docs/readme.md",
			want:     true,
		},
		{
			name:     "first of several patterns wins",
			patterns: []string{"*.txt", "*.md"},
			path:     "a.txt",
			want:     true,
		},
		{
			name:     "later pattern still matches",
			patterns: []string{"*.txt", `/^\/docs\//`},
			path:     "docs/readme.md",
			want:     true,
		},
		{
			name:     "no pattern matches",
			patterns: []string{"*.txt", "*.md"},
			path:     "main.go",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := compilePatterns(tt.patterns)
			if err != nil {
				t.Fatalf("compilePatterns(%v) unexpected error: %v", tt.patterns, err)
			}
			if got := filter.Match(tt.path); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v (patterns %v)", tt.path, got, tt.want, tt.patterns)
			}
		})
	}
}

func TestCompilePatternsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
	}{
		{name: "invalid regex", pattern: `/([/`},
		{name: "invalid glob", pattern: `[`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := compilePatterns([]string{tt.pattern}); err == nil {
				t.Errorf("compilePatterns(%q) expected error, got nil", tt.pattern)
			}
		})
	}
}
