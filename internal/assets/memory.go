package assets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"storyshare/internal/story"
)

// MemoryAssets is an in-memory AssetSource, useful for testing.
// This implementation is safe for concurrent use.
type MemoryAssets struct {
	content map[string][]byte // ref -> bytes
	mu      sync.RWMutex
}

// NewMemoryAssets creates an empty in-memory asset source.
func NewMemoryAssets() *MemoryAssets {
	return &MemoryAssets{content: make(map[string][]byte)}
}

// Put stores data under ref, replacing any previous value.
func (m *MemoryAssets) Put(ref string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read asset: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.content[ref] = data
	return nil
}

// Get writes the asset stored under ref to w.
func (m *MemoryAssets) Get(_ context.Context, ref string, w io.Writer) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.content[ref]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, ref)
	}

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write asset: %w", err)
	}
	return nil
}

// ValidateSetup always succeeds for in-memory assets.
func (m *MemoryAssets) ValidateSetup(context.Context) error {
	return nil
}

var _ story.AssetSource = (*MemoryAssets)(nil)
