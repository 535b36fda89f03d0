// Package media abstracts the image hosting collaborator. Posts and profile
// images are stored as URLs; deletion works off an asset id derived from the
// stored URL.
package media

import (
	"context"
	"strings"
)

type Store interface {
	// Upload persists an image payload (a data URI or remote URL) and
	// returns the durable URL to store.
	Upload(ctx context.Context, image string) (string, error)
	// Destroy removes the asset with the given id.
	Destroy(ctx context.Context, assetID string) error
}

// AssetID derives the provider asset id from a stored URL: the last path
// segment with its extension stripped.
func AssetID(url string) string {
	seg := url
	if i := strings.LastIndex(seg, "/"); i >= 0 {
		seg = seg[i+1:]
	}
	if i := strings.LastIndex(seg, "."); i >= 0 {
		seg = seg[:i]
	}
	return seg
}

// Discard is a Store that keeps nothing: Upload echoes the payload back as
// the URL and Destroy is a no-op. Used when no provider is configured.
type Discard struct{}

func (Discard) Upload(_ context.Context, image string) (string, error) { return image, nil }

func (Discard) Destroy(context.Context, string) error { return nil }
