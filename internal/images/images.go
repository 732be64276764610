// Package images resolves item keywords to photos and fetches them for the proxy.
package images

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vytor/bengalibuddy/internal/logger"
)

const (
	DefaultBaseURL = "https://source.unsplash.com"
	// MaxImageBytes bounds a proxied image.
	MaxImageBytes = 5 << 20
	imageSize     = "300x300"
)

// Resolver builds photo URLs from keywords.
type Resolver struct {
	base string
}

func NewResolver(baseURL string) *Resolver {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Resolver{base: strings.TrimRight(baseURL, "/")}
}

// URL returns the featured photo URL for keyword.
func (r *Resolver) URL(keyword string) string {
	return fmt.Sprintf("%s/featured/%s?%s", r.base, imageSize, url.QueryEscape(keyword))
}

// Image is a fetched photo.
type Image struct {
	ContentType string
	Body        []byte
}

// Fetcher is the proxy's view of Client.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Image, error)
}

type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{httpClient: &http.Client{Timeout: timeout}}
}

// Fetch downloads an image, rejecting non-200 and non-image responses.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Image, error) {
	log := logger.FromContext(ctx).WithPrefix("images").WithField("url", rawURL)
	log.Debug("fetching image")
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("failed to fetch image: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("image response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image status %d", resp.StatusCode)
	}
	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("unexpected content type %q", contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		log.Warn("failed to read image body: %v", err)
		return nil, err
	}
	if len(body) > MaxImageBytes {
		return nil, fmt.Errorf("image larger than %d bytes", MaxImageBytes)
	}
	return &Image{ContentType: contentType, Body: body}, nil
}

var _ Fetcher = (*Client)(nil)
