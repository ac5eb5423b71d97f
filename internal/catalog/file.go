package catalog

import (
	"fmt"
	"os"
)

// NewFileSource reads catalogs from a TOML file. The file is read once.
func NewFileSource(path string) (*MemorySource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	src, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("reading catalog from %s: %w", path, err)
	}
	return src, nil
}
