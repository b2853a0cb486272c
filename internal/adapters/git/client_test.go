package git

import (
	"os/exec"
	"testing"

	"github.com/xwillq/git-stage-editor/internal/domain"
	"github.com/xwillq/git-stage-editor/internal/domain/ports"
)

func TestParseDiffIndex(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected []ports.DiffEntry
	}{
		{
			name:     "empty output",
			output:   "",
			expected: []ports.DiffEntry{},
		},
		{
			name:   "added file",
			output: ":000000 100644 0000000000000000000000000000000000000000 ce013625030ba8dba906f756967f9e9ca394464a A\ta.txt\n",
			expected: []ports.DiffEntry{
				{
					SrcMode: "000000",
					DstMode: "100644",
					SrcHash: "0000000000000000000000000000000000000000",
					DstHash: "ce013625030ba8dba906f756967f9e9ca394464a",
					Status:  "A",
					SrcPath: "a.txt",
				},
			},
		},
		{
			name:   "modified file in subdirectory",
			output: ":100644 100644 ce013625030ba8dba906f756967f9e9ca394464a 980a0d5f19a64b4b30a87d4206aade58726b60e3 M\tdocs/readme.md\n",
			expected: []ports.DiffEntry{
				{
					SrcMode: "100644",
					DstMode: "100644",
					SrcHash: "ce013625030ba8dba906f756967f9e9ca394464a",
					DstHash: "980a0d5f19a64b4b30a87d4206aade58726b60e3",
					Status:  "M",
					SrcPath: "docs/readme.md",
				},
			},
		},
		{
			name:   "rename with score and destination path",
			output: ":100644 100644 ce013625030ba8dba906f756967f9e9ca394464a ce013625030ba8dba906f756967f9e9ca394464a R100\told.txt\tnew.txt\n",
			expected: []ports.DiffEntry{
				{
					SrcMode: "100644",
					DstMode: "100644",
					SrcHash: "ce013625030ba8dba906f756967f9e9ca394464a",
					DstHash: "ce013625030ba8dba906f756967f9e9ca394464a",
					Status:  "R",
					Score:   "100",
					SrcPath: "old.txt",
					DstPath: "new.txt",
				},
			},
		},
		{
			name: "multiple entries keep order",
			output: ":000000 100644 0000000000000000000000000000000000000000 ce013625030ba8dba906f756967f9e9ca394464a A\ta.txt\n" +
				":100644 100755 ce013625030ba8dba906f756967f9e9ca394464a 980a0d5f19a64b4b30a87d4206aade58726b60e3 M\tbin/run.sh\n",
			expected: []ports.DiffEntry{
				{
					SrcMode: "000000",
					DstMode: "100644",
					SrcHash: "0000000000000000000000000000000000000000",
					DstHash: "ce013625030ba8dba906f756967f9e9ca394464a",
					Status:  "A",
					SrcPath: "a.txt",
				},
				{
					SrcMode: "100644",
					DstMode: "100755",
					SrcHash: "ce013625030ba8dba906f756967f9e9ca394464a",
					DstHash: "980a0d5f19a64b4b30a87d4206aade58726b60e3",
					Status:  "M",
					SrcPath: "bin/run.sh",
				},
			},
		},
		{
			name:   "path with spaces",
			output: ":100644 100644 ce013625030ba8dba906f756967f9e9ca394464a 980a0d5f19a64b4b30a87d4206aade58726b60e3 M\tmy notes.txt\n",
			expected: []ports.DiffEntry{
				{
					SrcMode: "100644",
					DstMode: "100644",
					SrcHash: "ce013625030ba8dba906f756967f9e9ca394464a",
					DstHash: "980a0d5f19a64b4b30a87d4206aade58726b60e3",
					Status:  "M",
					SrcPath: "my notes.txt",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseDiffIndex(tt.output)
			if err != nil {
				t.Fatalf("parseDiffIndex() unexpected error: %v", err)
			}

			if len(result) != len(tt.expected) {
				t.Fatalf("parseDiffIndex() returned %d entries, want %d", len(result), len(tt.expected))
			}

			for i, got := range result {
				if got != tt.expected[i] {
					t.Errorf("entry[%d] = %+v, want %+v", i, got, tt.expected[i])
				}
			}
		})
	}
}

func TestParseDiffIndexMalformed(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{
			name:   "missing leading colon",
			output: "100644 100644 ce013625030ba8dba906f756967f9e9ca394464a 980a0d5f19a64b4b30a87d4206aade58726b60e3 M\ta.txt\n",
		},
		{
			name:   "missing path",
			output: ":100644 100644 ce013625030ba8dba906f756967f9e9ca394464a 980a0d5f19a64b4b30a87d4206aade58726b60e3 M\n",
		},
		{
			name:   "too few metadata fields",
			output: ":100644 ce013625030ba8dba906f756967f9e9ca394464a M\ta.txt\n",
		},
		{
			name:   "too many paths",
			output: ":100644 100644 ce013625030ba8dba906f756967f9e9ca394464a 980a0d5f19a64b4b30a87d4206aade58726b60e3 M\ta\tb\tc\n",
		},
		{
			name:   "garbage line",
			output: "warning: something unexpected\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseDiffIndex(tt.output)
			if err == nil {
				t.Fatal("parseDiffIndex() expected error, got nil")
			}
			if _, ok := err.(*domain.ParseError); !ok {
				t.Errorf("parseDiffIndex() error = %T, want *domain.ParseError", err)
			}
		})
	}
}

func TestNewClientNotARepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	_, err := NewClient(t.TempDir(), "git")
	if err != domain.ErrNotGitRepo {
		t.Errorf("NewClient() error = %v, want %v", err, domain.ErrNotGitRepo)
	}
}
