// Package assets resolves story image references to bytes.
package assets

import "errors"

// ErrAssetNotFound is returned when no asset exists for a reference.
var ErrAssetNotFound = errors.New("asset not found")
