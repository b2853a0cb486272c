// Package editor implements staged-file editing: it runs a caller-supplied
// transformation against the indexed content of each staged file and writes
// the result back into the index, optionally reconciling the working tree.
package editor

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	gitcli "github.com/xwillq/git-stage-editor/internal/adapters/git"
	"github.com/xwillq/git-stage-editor/internal/domain"
	"github.com/xwillq/git-stage-editor/internal/domain/ports"
)

// Callback is invoked once per eligible staged file with an open read/write
// handle to a temporary copy of the indexed content and that copy's path.
// It mutates the file in place (or leaves it unchanged) and must flush its
// writes before returning; the re-hash reads the on-disk contents.
type Callback func(f *os.File, path string) error

// Options controls one Execute invocation.
type Options struct {
	// Patterns filters entries by repo-relative path. Each pattern is a
	// regular expression when it begins with "/", otherwise a shell glob.
	// An empty list matches everything; otherwise any match includes the
	// entry.
	Patterns []string

	// Write enables index mutation. When false the callback still runs,
	// but nothing is written and no paths are reported as updated.
	Write bool

	// UpdateWorkingTree patches the on-disk file after a successful index
	// update so index and working tree stay in sync.
	UpdateWorkingTree bool
}

// DefaultOptions returns the options Execute is normally run with: no path
// filter, index writes enabled, working tree kept in sync.
func DefaultOptions() Options {
	return Options{
		Write:             true,
		UpdateWorkingTree: true,
	}
}

// Editor coordinates the git index operations for one repository.
type Editor struct {
	client ports.IndexClient
}

// New creates an editor rooted at repoPath (current directory when empty).
// It fails fast when the path is not inside a git repository.
func New(repoPath string) (*Editor, error) {
	client, err := gitcli.NewClient(repoPath, "")
	if err != nil {
		return nil, err
	}
	return &Editor{client: client}, nil
}

// NewWithClient creates an editor over an injected index client.
func NewWithClient(client ports.IndexClient) *Editor {
	return &Editor{client: client}
}

// Execute enumerates staged additions and modifications, runs the callback
// against each eligible entry, and returns the repo-relative paths whose
// index entries were updated, in diff order.
//
// Entries are processed strictly sequentially. Any failure aborts the whole
// run; index updates already applied before the failure are not rolled back.
func (e *Editor) Execute(ctx context.Context, cb Callback, opts Options) ([]string, error) {
	if cb == nil {
		return nil, domain.ErrCallbackNil
	}

	filter, err := compilePatterns(opts.Patterns)
	if err != nil {
		return nil, err
	}

	entries, err := e.client.DiffIndex(ctx)
	if err != nil {
		return nil, err
	}

	updated := make([]string, 0)
	for _, entry := range entries {
		if entry.DstMode == ports.ModeSymlink {
			log.Debug().Str("path", entry.SrcPath).Msg("skipping symlink entry")
			continue
		}

		absPath, err := resolveInRoot(e.client.Root(), entry.SrcPath)
		if err != nil {
			return nil, err
		}

		if !filter.Match(entry.SrcPath) {
			continue
		}

		log.Debug().
			Str("path", entry.SrcPath).
			Str("abs_path", absPath).
			Str("status", entry.Status).
			Msg("processing staged entry")

		changed, err := e.processEntry(ctx, cb, entry, opts)
		if err != nil {
			return nil, err
		}
		if changed {
			updated = append(updated, entry.SrcPath)
		}
	}

	return updated, nil
}

// processEntry materializes one indexed blob, runs the callback, and commits
// the result. It reports whether the index entry was updated.
func (e *Editor) processEntry(ctx context.Context, cb Callback, entry ports.DiffEntry, opts Options) (bool, error) {
	tmpPath, f, err := e.materialize(ctx, entry)
	if err != nil {
		return false, err
	}
	// The temp file is scoped to this entry on every exit path.
	defer func() {
		f.Close()
		os.Remove(tmpPath)
	}()

	if err := cb(f, tmpPath); err != nil {
		return false, domain.NewCallbackError(entry.SrcPath, err)
	}

	newHash, err := e.client.HashObject(ctx, tmpPath, false)
	if err != nil {
		return false, err
	}

	if !opts.Write || newHash == entry.DstHash {
		return false, nil
	}

	info, err := os.Stat(tmpPath)
	if err != nil {
		return false, err
	}
	// Never write an empty blob back; an emptied file is treated as a
	// misbehaving callback, not a requested truncation.
	if info.Size() == 0 {
		log.Debug().Str("path", entry.SrcPath).Msg("skipping empty result")
		return false, nil
	}

	storedHash, err := e.client.HashObject(ctx, tmpPath, true)
	if err != nil {
		return false, err
	}

	if err := e.client.UpdateIndex(ctx, entry.DstMode, storedHash, entry.SrcPath); err != nil {
		return false, err
	}

	if opts.UpdateWorkingTree {
		patch, err := e.client.DiffBlobs(ctx, entry.DstHash, storedHash)
		if err != nil {
			return false, err
		}
		patch = rewritePatchPaths(patch, entry.DstHash, storedHash, entry.SrcPath)
		if err := e.client.ApplyToWorkingTree(ctx, patch); err != nil {
			return false, err
		}
	}

	log.Info().
		Str("path", entry.SrcPath).
		Str("old_hash", entry.DstHash).
		Str("new_hash", storedHash).
		Msg("index entry updated")

	return true, nil
}

// materialize writes the entry's staged blob into a fresh temp file and
// returns the path plus an open read/write handle positioned at the start.
func (e *Editor) materialize(ctx context.Context, entry ports.DiffEntry) (string, *os.File, error) {
	content, err := e.client.ReadBlob(ctx, entry.DstHash)
	if err != nil {
		return "", nil, err
	}

	// Keep the original extension so filter commands can sniff the type.
	id := uuid.New().String()[:12]
	tmpPath := filepath.Join(os.TempDir(), "stage-edit-"+id+filepath.Ext(entry.SrcPath))

	f, err := os.OpenFile(tmpPath, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", nil, err
	}

	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", nil, err
	}

	return tmpPath, f, nil
}

// resolveInRoot resolves a repo-relative path to an absolute path and
// verifies it stays inside the repository root.
func resolveInRoot(root, rel string) (string, error) {
	absPath, err := filepath.Abs(filepath.Join(root, rel))
	if err != nil {
		return "", err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}

	if !strings.HasPrefix(absPath, absRoot) {
		return "", domain.ErrPathOutsideRepo
	}

	return absPath, nil
}

// rewritePatchPaths replaces the blob-hash labels git puts in a blob-to-blob
// diff with the real repo-relative path, so the patch applies cleanly to the
// working tree.
func rewritePatchPaths(patch, oldHash, newHash, relPath string) string {
	patch = strings.ReplaceAll(patch, "a/"+oldHash, "a/"+relPath)
	patch = strings.ReplaceAll(patch, "b/"+newHash, "b/"+relPath)
	return patch
}
