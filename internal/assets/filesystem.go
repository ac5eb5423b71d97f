package assets

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"storyshare/internal/story"
)

// FileSystemAssets reads images from a directory. References are paths
// relative to root and may not escape it.
type FileSystemAssets struct {
	root string
}

// NewFileSystemAssets creates an asset source rooted at root.
func NewFileSystemAssets(root string) *FileSystemAssets {
	return &FileSystemAssets{root: root}
}

// Get writes the file at root/ref to w.
func (a *FileSystemAssets) Get(_ context.Context, ref string, w io.Writer) error {
	if !filepath.IsLocal(ref) {
		return fmt.Errorf("%w: reference escapes asset root: %q", ErrAssetNotFound, ref)
	}

	f, err := os.Open(filepath.Join(a.root, ref))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrAssetNotFound, ref)
		}
		return fmt.Errorf("failed to open asset: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat asset: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrAssetNotFound, ref)
	}

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to read asset: %w", err)
	}
	return nil
}

// ValidateSetup verifies that the asset root exists and is a directory.
func (a *FileSystemAssets) ValidateSetup(context.Context) error {
	info, err := os.Stat(a.root)
	if err != nil {
		return fmt.Errorf("asset root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("asset root is not a directory: %s", a.root)
	}
	return nil
}

var _ story.AssetSource = (*FileSystemAssets)(nil)
