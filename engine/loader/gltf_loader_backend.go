package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/model"

	"github.com/qmuntal/gltf"
)

const defaultHTTPTimeout = 30 * time.Second

// gltfLoaderBackendImpl is the implementation of gltfLoaderBackend.
type gltfLoaderBackendImpl struct {
	client *http.Client
}

// gltfLoaderBackend is a Backend implementation for glTF/GLB assets.
// Local paths are opened from disk; http and https URLs are downloaded first.
type gltfLoaderBackend interface {
	Backend
}

var _ gltfLoaderBackend = &gltfLoaderBackendImpl{}

// newGLTFLoaderBackend creates a new glTF loader backend.
//
// Parameters:
//   - client: the HTTP client for remote assets; nil uses a client with a default timeout
//
// Returns:
//   - gltfLoaderBackend: the loader backend for glTF/GLB files
func newGLTFLoaderBackend(client *http.Client) gltfLoaderBackend {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &gltfLoaderBackendImpl{client: client}
}

func (b *gltfLoaderBackendImpl) Load(ctx context.Context, ref string) (model.Model, error) {
	remote, ext, err := classifyAssetRef(ref)
	if err != nil {
		return nil, err
	}
	if ext != ".gltf" && ext != ".glb" {
		return nil, fmt.Errorf("unsupported model format: %s", ext)
	}

	var doc *gltf.Document
	if remote {
		doc, err = b.download(ctx, ref)
	} else {
		doc, err = gltf.Open(ref)
	}
	if err != nil {
		return nil, fmt.Errorf("gltf decode %s: %w", ref, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return importDocument(doc, assetName(ref))
}

// download fetches a remote asset and decodes it from memory.
func (b *gltfLoaderBackendImpl) download(ctx context.Context, ref string) (*gltf.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// classifyAssetRef reports whether ref is an http(s) URL and returns its lowercased extension.
func classifyAssetRef(ref string) (bool, string, error) {
	if ref == "" {
		return false, "", fmt.Errorf("empty asset path")
	}
	if u, err := url.Parse(ref); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return true, strings.ToLower(path.Ext(u.Path)), nil
	}
	return false, strings.ToLower(filepath.Ext(ref)), nil
}

// assetName derives a model name from the asset reference's base name.
func assetName(ref string) string {
	base := ref
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" && u.Path != "" {
		base = u.Path
	}
	base = path.Base(filepath.ToSlash(base))
	if name := strings.TrimSuffix(base, path.Ext(base)); name != "" && name != "." && name != "/" {
		return name
	}
	return "unnamed_model"
}
