package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
)

//go:embed data/sample.toml
var sample []byte

// NewEmbeddedSource returns the sample catalogs built into the binary.
func NewEmbeddedSource() (*MemorySource, error) {
	src, err := Decode(bytes.NewReader(sample))
	if err != nil {
		return nil, fmt.Errorf("decoding embedded catalog: %w", err)
	}
	return src, nil
}
