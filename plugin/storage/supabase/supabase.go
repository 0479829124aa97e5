// Package supabase publishes objects through the Supabase Storage REST API.
package supabase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hrygo/notewise/plugin/storage"
)

// Config holds connection settings for the storage service.
type Config struct {
	// URL is the storage service base URL, e.g. https://project.supabase.co
	URL string
	// ServiceKey is the service role key used for server-side uploads.
	ServiceKey string
	// Bucket is the bucket generated images are published into.
	Bucket string
}

// Client publishes objects to a Supabase-compatible storage service.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a new storage client.
func NewClient(config *Config) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
				ForceAttemptHTTP2:   true,
			},
		},
	}
}

// Publish uploads the bytes under a fresh identity-scoped key and returns
// the key with its public URL. Overwriting an existing key is refused by
// the service (x-upsert: false), so a key collision fails the upload
// instead of silently replacing the object.
func (c *Client) Publish(ctx context.Context, ownerID string, data []byte, contentType string) (*storage.PublishedAsset, error) {
	key := storage.NewObjectKey(ownerID)

	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", strings.TrimRight(c.config.URL, "/"), c.config.Bucket, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, &storage.UploadError{Reason: err.Error(), Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.config.ServiceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "false")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("storage: upload failed", "key", key, "error", err)
		return nil, &storage.UploadError{Reason: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		reason := fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		slog.Error("storage: upload rejected", "key", key, "status", resp.StatusCode)
		return nil, &storage.UploadError{Reason: reason}
	}

	slog.Debug("storage: object published", "key", key, "size", len(data))

	return &storage.PublishedAsset{
		Key:       key,
		PublicURL: c.PublicURL(key),
	}, nil
}

// PublicURL resolves the publicly reachable URL for an object key.
func (c *Client) PublicURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", strings.TrimRight(c.config.URL, "/"), c.config.Bucket, key)
}
