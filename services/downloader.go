// Package services provides the network side of vksetup: fetching the
// vendor installer over HTTP and writing it to disk.
package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/louiss0/vulkan-sdk-setup/build_info"
)

// Downloader fetches url and writes the response body byte-for-byte to destination.
type Downloader interface {
	Fetch(ctx context.Context, url, destination string) error
}

type httpDownloader struct {
	client    *http.Client
	userAgent string
}

// NewDownloader returns a Downloader backed by a client without a timeout;
// the installer is several hundred megabytes, so cancellation comes from ctx.
func NewDownloader() Downloader {
	return &httpDownloader{
		client:    &http.Client{},
		userAgent: "vksetup/" + build_info.Version(),
	}
}

// NewDownloaderWithClient allows injecting a custom HTTP client, e.g. the one
// from an httptest.Server.
func NewDownloaderWithClient(client *http.Client) Downloader {
	return &httpDownloader{
		client:    client,
		userAgent: "vksetup/" + build_info.Version(),
	}
}

// Fetch performs a single GET. There is no retry, and a partially written
// file is left in place on failure.
func (d *httpDownloader) Fetch(ctx context.Context, url, destination string) error {
	if url == "" {
		return fmt.Errorf("download url cannot be empty")
	}
	if destination == "" {
		return fmt.Errorf("download destination cannot be empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make HTTP request to %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("%s returned status %d: %s", url, resp.StatusCode, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", destination, err)
	}

	file, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", destination, err)
	}

	written, copyErr := io.Copy(file, resp.Body)
	closeErr := file.Close()
	if copyErr != nil {
		return fmt.Errorf("failed to write %s: %w", destination, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close %s: %w", destination, closeErr)
	}

	log.Debug("Downloaded installer", "url", url, "destination", destination, "bytes", written, "expected", resp.ContentLength)
	return nil
}
