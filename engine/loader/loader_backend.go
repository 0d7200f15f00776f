package loader

import (
	"context"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/model"
)

// Backend fetches and decodes one asset.
// Concrete implementations (e.g., the glTF backend) handle transport and format details.
// A Backend is called from worker goroutines and must be safe for concurrent use.
type Backend interface {
	// Load performs a full import of the asset at path: the node hierarchy and the
	// animation clip descriptors.
	//
	// Parameters:
	//   - ctx: cancels the fetch
	//   - path: a file path or an http(s) URL
	//
	// Returns:
	//   - model.Model: the imported model
	//   - error: error if fetching or decoding fails
	Load(ctx context.Context, path string) (model.Model, error)
}

// BackendFunc adapts an ordinary function to the Backend interface.
type BackendFunc func(ctx context.Context, path string) (model.Model, error)

// Load calls f(ctx, path).
func (f BackendFunc) Load(ctx context.Context, path string) (model.Model, error) {
	return f(ctx, path)
}
