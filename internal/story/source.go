package story

import (
	"context"
	"io"
)

// CatalogSource loads named catalogs. Catalogs are read once and never written.
type CatalogSource interface {
	// Catalog returns the catalog with the given name.
	Catalog(ctx context.Context, name string) (*Catalog, error)

	// Names lists the available catalogs.
	Names() []string
}

// AssetSource resolves opaque image references to their bytes.
type AssetSource interface {
	// Get writes the asset identified by ref to w.
	Get(ctx context.Context, ref string, w io.Writer) error

	// ValidateSetup verifies that the source is reachable and configured.
	ValidateSetup(ctx context.Context) error
}
