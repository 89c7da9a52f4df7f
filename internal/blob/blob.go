// Package blob stores uploaded media and hands back opaque storage paths.
package blob

import "context"

// Store writes media bytes under a path and reports where they live
type Store interface {
	// Put stores data under path, overwriting any existing object.
	Put(ctx context.Context, path string, data []byte, contentType string) error
	// PublicURL returns the externally reachable URL for a stored path,
	// empty when no public base is configured.
	PublicURL(path string) string
}
