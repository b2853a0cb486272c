// Package testutil provides shared test utilities and mocks for
// git-stage-editor tests.
package testutil

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/xwillq/git-stage-editor/internal/domain/ports"
)

// IndexUpdate records one UpdateIndex call.
type IndexUpdate struct {
	Mode string
	Hash string
	Path string
}

// MockIndexClient implements ports.IndexClient for testing. Staged entries
// and blob contents are scripted; mutations are recorded instead of touching
// a real repository.
type MockIndexClient struct {
	mu      sync.Mutex
	root    string
	entries []ports.DiffEntry
	blobs   map[string][]byte

	diffIndexErr error
	readBlobErr  error
	hashErr      error
	updateErr    error
	diffBlobsErr error
	applyErr     error

	updates []IndexUpdate
	applied []string
}

// NewMockIndexClient creates a mock client rooted at root.
func NewMockIndexClient(root string) *MockIndexClient {
	return &MockIndexClient{
		root:  root,
		blobs: make(map[string][]byte),
	}
}

// AddStaged scripts one staged entry and registers its blob content under
// the entry's destination hash.
func (m *MockIndexClient) AddStaged(entry ports.DiffEntry, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	m.blobs[entry.DstHash] = content
}

// Root returns the configured repository root.
func (m *MockIndexClient) Root() string {
	return m.root
}

// DiffIndex returns the scripted entries.
func (m *MockIndexClient) DiffIndex(ctx context.Context) ([]ports.DiffEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.diffIndexErr != nil {
		return nil, m.diffIndexErr
	}
	result := make([]ports.DiffEntry, len(m.entries))
	copy(result, m.entries)
	return result, nil
}

// ReadBlob returns a registered blob's content.
func (m *MockIndexClient) ReadBlob(ctx context.Context, hash string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readBlobErr != nil {
		return nil, m.readBlobErr
	}
	content, ok := m.blobs[hash]
	if !ok {
		return nil, fmt.Errorf("unknown blob %s", hash)
	}
	return append([]byte(nil), content...), nil
}

// HashObject hashes the file's current content. Content identical to a
// registered blob yields that blob's hash, so unchanged files short-circuit
// the same way they do against real git. When store is true the content is
// registered under the computed hash.
func (m *MockIndexClient) HashObject(ctx context.Context, path string, store bool) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hashErr != nil {
		return "", m.hashErr
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	hash := ""
	for h, b := range m.blobs {
		if bytes.Equal(b, content) {
			hash = h
			break
		}
	}
	if hash == "" {
		sum := sha1.Sum(content)
		hash = hex.EncodeToString(sum[:])
	}

	if store {
		m.blobs[hash] = append([]byte(nil), content...)
	}
	return hash, nil
}

// UpdateIndex records the index mutation.
func (m *MockIndexClient) UpdateIndex(ctx context.Context, mode, hash, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updates = append(m.updates, IndexUpdate{Mode: mode, Hash: hash, Path: path})
	return nil
}

// DiffBlobs returns a minimal patch whose labels reference the hashes, the
// way git labels blob-to-blob diffs.
func (m *MockIndexClient) DiffBlobs(ctx context.Context, oldHash, newHash string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.diffBlobsErr != nil {
		return "", m.diffBlobsErr
	}
	return fmt.Sprintf("diff --git a/%s b/%s\n--- a/%s\n+++ b/%s\n", oldHash, newHash, oldHash, newHash), nil
}

// ApplyToWorkingTree records the applied patch text.
func (m *MockIndexClient) ApplyToWorkingTree(ctx context.Context, patch string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.applyErr != nil {
		return m.applyErr
	}
	m.applied = append(m.applied, patch)
	return nil
}

// Updates returns all recorded index mutations.
func (m *MockIndexClient) Updates() []IndexUpdate {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]IndexUpdate, len(m.updates))
	copy(result, m.updates)
	return result
}

// AppliedPatches returns all recorded working-tree patches.
func (m *MockIndexClient) AppliedPatches() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, len(m.applied))
	copy(result, m.applied)
	return result
}

// Blob returns a registered blob's content and whether it exists.
func (m *MockIndexClient) Blob(hash string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.blobs[hash]
	return content, ok
}

// SetDiffIndexError configures DiffIndex to fail.
func (m *MockIndexClient) SetDiffIndexError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.diffIndexErr = err
}

// SetReadBlobError configures ReadBlob to fail.
func (m *MockIndexClient) SetReadBlobError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readBlobErr = err
}

// SetUpdateIndexError configures UpdateIndex to fail.
func (m *MockIndexClient) SetUpdateIndexError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateErr = err
}

// SetApplyError configures ApplyToWorkingTree to fail.
func (m *MockIndexClient) SetApplyError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applyErr = err
}

// Ensure MockIndexClient implements ports.IndexClient.
var _ ports.IndexClient = (*MockIndexClient)(nil)

// AssertEqual is a simple equality assertion helper.
func AssertEqual(t *testing.T, expected, actual interface{}, msg string) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

// AssertTrue asserts that a condition is true.
func AssertTrue(t *testing.T, condition bool, msg string) {
	t.Helper()
	if !condition {
		t.Errorf("%s: expected true, got false", msg)
	}
}

// AssertFalse asserts that a condition is false.
func AssertFalse(t *testing.T, condition bool, msg string) {
	t.Helper()
	if condition {
		t.Errorf("%s: expected false, got true", msg)
	}
}

// AssertNoError asserts that an error is nil.
func AssertNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Errorf("%s: unexpected error: %v", msg, err)
	}
}

// AssertError asserts that an error is not nil.
func AssertError(t *testing.T, err error, msg string) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: expected error, got nil", msg)
	}
}
