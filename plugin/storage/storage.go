// Package storage defines the object-store publishing boundary for
// generated images.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/lithammer/shortuuid/v4"
)

// PublishedAsset describes one uploaded object.
type PublishedAsset struct {
	// Key is the object key inside the bucket, scoped to the owner.
	Key string
	// PublicURL is a publicly reachable URL for the uploaded object.
	PublicURL string
}

// UploadError carries the object store's failure reason verbatim.
type UploadError struct {
	Reason string
	Err    error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed: %s", e.Reason)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// Publisher uploads verified image bytes under an identity-scoped key and
// resolves a public retrieval URL. Implementations must refuse to
// overwrite an existing key.
type Publisher interface {
	Publish(ctx context.Context, ownerID string, data []byte, contentType string) (*PublishedAsset, error)
}

// NewObjectKey builds a collision-resistant, identity-scoped object key.
// The random token only disambiguates uploads within the same millisecond;
// it does not need to be unpredictable.
func NewObjectKey(ownerID string) string {
	return fmt.Sprintf("images/%s/%d-%s.png", ownerID, time.Now().UnixMilli(), shortuuid.New())
}
