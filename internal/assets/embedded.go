package assets

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"

	"storyshare/internal/story"
)

//go:embed images
var images embed.FS

// EmbeddedAssets serves the placeholder images compiled into the binary.
type EmbeddedAssets struct {
	fsys fs.FS
}

// NewEmbeddedAssets returns the built-in placeholder images.
func NewEmbeddedAssets() *EmbeddedAssets {
	return &EmbeddedAssets{fsys: images}
}

// Get writes the image named ref to w.
func (e *EmbeddedAssets) Get(_ context.Context, ref string, w io.Writer) error {
	name := path.Join("images", ref)
	if !fs.ValidPath(ref) || !fs.ValidPath(name) {
		return fmt.Errorf("%w: invalid reference %q", ErrAssetNotFound, ref)
	}

	f, err := e.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrAssetNotFound, ref)
		}
		return fmt.Errorf("failed to open asset: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to read asset: %w", err)
	}
	return nil
}

// ValidateSetup always succeeds; embedded assets are part of the binary.
func (e *EmbeddedAssets) ValidateSetup(context.Context) error {
	return nil
}

var _ story.AssetSource = (*EmbeddedAssets)(nil)
