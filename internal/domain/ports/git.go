// Package ports defines the contracts between the editor core and its
// collaborators.
package ports

import "context"

// Diff status letters as emitted by git diff-index.
const (
	DiffStatusAdded    = "A"
	DiffStatusModified = "M"
)

// Mode strings relevant to staged-file editing.
const (
	ModeSymlink = "120000"
)

// DiffEntry represents one machine-readable diff record between the index
// and HEAD. Entries are ephemeral: parsed, consumed within a single pass,
// never mutated after construction.
type DiffEntry struct {
	SrcMode string // e.g. "100644", "000000" for additions
	DstMode string // mode of the staged version
	SrcHash string // object ID before the staged change
	DstHash string // object ID of the staged content
	Status  string // single-letter classification (A, M, ...)
	Score   string // optional similarity score, unused downstream
	SrcPath string // path as recorded in the index, relative to the root
	DstPath string // rename destination, unused downstream
}

// IndexClient is the set of git operations the editor needs. Implementations
// drive the real git CLI; tests inject a fake instead of spawning
// subprocesses.
type IndexClient interface {
	// Root returns the absolute repository root.
	Root() string

	// DiffIndex lists staged additions and modifications versus HEAD,
	// with rename/copy detection disabled.
	DiffIndex(ctx context.Context) ([]DiffEntry, error)

	// ReadBlob returns the raw content of an object by hash.
	ReadBlob(ctx context.Context, hash string) ([]byte, error)

	// HashObject computes the object ID for a file's current on-disk
	// content. When store is true the object is also written to the
	// object database.
	HashObject(ctx context.Context, path string, store bool) (string, error)

	// UpdateIndex replaces one index entry's mode, hash, and path.
	UpdateIndex(ctx context.Context, mode, hash, path string) error

	// DiffBlobs returns a unified diff between two objects. The patch
	// labels reference the hashes, not working-tree paths.
	DiffBlobs(ctx context.Context, oldHash, newHash string) (string, error)

	// ApplyToWorkingTree applies unified patch text to the working tree.
	ApplyToWorkingTree(ctx context.Context, patch string) error
}
