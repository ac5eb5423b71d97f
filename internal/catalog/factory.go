package catalog

import (
	"fmt"

	"storyshare/internal/config"
	"storyshare/internal/story"
)

// NewSourceFromConfig creates a CatalogSource based on the catalog config type.
func NewSourceFromConfig(cfg config.CatalogConfig) (story.CatalogSource, error) {
	switch cfg.Type {
	case "embedded", "":
		return NewEmbeddedSource()
	case "file":
		if cfg.Path == "" {
			return nil, fmt.Errorf("file catalog requires path to be set")
		}
		return NewFileSource(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown catalog type: %s", cfg.Type)
	}
}
