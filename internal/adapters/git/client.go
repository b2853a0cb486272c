// Package git implements the Git CLI wrapper backing the staged-file editor.
package git

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xwillq/git-stage-editor/internal/domain"
	"github.com/xwillq/git-stage-editor/internal/domain/ports"
)

const detectTimeout = 5 * time.Second

// Client implements the ports.IndexClient interface over the git CLI.
type Client struct {
	command  string
	repoRoot string
}

// NewClient creates a git client rooted at repoPath. An empty repoPath means
// the current working directory; an empty command means "git". The path must
// be inside a git repository, otherwise domain.ErrNotGitRepo is returned.
func NewClient(repoPath, command string) (*Client, error) {
	if repoPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		repoPath = cwd
	}
	if command == "" {
		command = "git"
	}

	ctx, cancel := context.WithTimeout(context.Background(), detectTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, command, "rev-parse", "--show-toplevel")
	cmd.Dir = repoPath
	output, err := cmd.Output()
	if err != nil {
		stderr := ""
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = string(exitErr.Stderr)
		}
		log.Warn().
			Str("path", repoPath).
			Str("command", command).
			Str("stderr", stderr).
			Err(err).
			Msg("not a git repository")
		return nil, domain.ErrNotGitRepo
	}

	c := &Client{
		command:  command,
		repoRoot: strings.TrimSpace(string(output)),
	}

	log.Debug().
		Str("root", c.repoRoot).
		Msg("git repository detected")

	return c, nil
}

// Root returns the absolute repository root.
func (c *Client) Root() string {
	return c.repoRoot
}

// run executes one git command at the repo root, capturing output. Non-zero
// exits become domain.GitError with the captured stderr.
func (c *Client) run(ctx context.Context, stdin []byte, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.command, args...)
	cmd.Dir = c.repoRoot

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	if err := cmd.Run(); err != nil {
		return nil, domain.NewGitError(args[0], stderr.String(), err)
	}

	log.Debug().
		Strs("args", args).
		Int("stdout_bytes", stdout.Len()).
		Msg("git command completed")

	return stdout.Bytes(), nil
}

// DiffIndex lists staged additions and modifications versus HEAD. Rename and
// copy detection is disabled so each entry is evaluated independently.
func (c *Client) DiffIndex(ctx context.Context) ([]ports.DiffEntry, error) {
	output, err := c.run(ctx, nil, "diff-index", "--cached", "--no-renames", "--diff-filter=AM", "HEAD")
	if err != nil {
		return nil, err
	}
	return parseDiffIndex(string(output))
}

// parseDiffIndex parses raw diff-index output. The record grammar is
// :<src_mode> <dst_mode> <src_hash> <dst_hash> <status><score>?\t<src_path>(\t<dst_path>)?
// and any deviation is fatal.
func parseDiffIndex(output string) ([]ports.DiffEntry, error) {
	entries := make([]ports.DiffEntry, 0)

	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	for _, line := range lines {
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, ":") {
			return nil, domain.NewParseError(line, "missing leading colon")
		}

		parts := strings.Split(line[1:], "\t")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, domain.NewParseError(line, "expected one or two tab-separated paths")
		}

		meta := strings.Fields(parts[0])
		if len(meta) != 5 {
			return nil, domain.NewParseError(line, "expected five metadata fields")
		}
		if meta[4] == "" {
			return nil, domain.NewParseError(line, "missing status")
		}

		entry := ports.DiffEntry{
			SrcMode: meta[0],
			DstMode: meta[1],
			SrcHash: meta[2],
			DstHash: meta[3],
			Status:  meta[4][:1],
			Score:   meta[4][1:],
			SrcPath: parts[1],
		}
		if len(parts) == 3 {
			entry.DstPath = parts[2]
		}
		if entry.SrcPath == "" {
			return nil, domain.NewParseError(line, "empty source path")
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// ReadBlob returns the raw content of an object by hash.
func (c *Client) ReadBlob(ctx context.Context, hash string) ([]byte, error) {
	return c.run(ctx, nil, "cat-file", "blob", hash)
}

// HashObject computes the object ID of a file's current on-disk content.
// When store is true the object is written to the object database as well.
func (c *Client) HashObject(ctx context.Context, path string, store bool) (string, error) {
	args := []string{"hash-object"}
	if store {
		args = append(args, "-w")
	}
	args = append(args, "--", path)

	output, err := c.run(ctx, nil, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// UpdateIndex replaces one index entry's mode, hash, and path.
func (c *Client) UpdateIndex(ctx context.Context, mode, hash, path string) error {
	_, err := c.run(ctx, nil, "update-index", "--cacheinfo", mode+","+hash+","+path)
	return err
}

// DiffBlobs returns a unified diff between two objects. The labels in the
// patch reference the hashes; callers rewrite them before applying.
func (c *Client) DiffBlobs(ctx context.Context, oldHash, newHash string) (string, error) {
	output, err := c.run(ctx, nil, "diff", oldHash, newHash)
	if err != nil {
		return "", err
	}
	return string(output), nil
}

// ApplyToWorkingTree applies unified patch text to the working tree.
func (c *Client) ApplyToWorkingTree(ctx context.Context, patch string) error {
	_, err := c.run(ctx, []byte(patch), "apply", "--whitespace=nowarn")
	return err
}

// Ensure Client implements ports.IndexClient.
var _ ports.IndexClient = (*Client)(nil)
