// Package download implements resumable HTTP downloads for SDK archives.
// The pack never truncates a partial file: a restarted download continues
// from the bytes already on disk, and a destination that already covers the
// remote length is skipped entirely.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/kobaltcore/renutil/internal/core/logger"
)

const copyChunkSize = 32 * 1024

// ProgressFunc is invoked as bytes arrive. written counts bytes present on
// disk so far (including any resumed prefix); total is the remote length.
type ProgressFunc func(written, total int64)

// Client downloads files over HTTP with resume support.
type Client struct {
	httpClient *http.Client
	logger     logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithLogger sets the client logger.
func WithLogger(log logger.Logger) Option {
	return func(cl *Client) {
		cl.logger = log
	}
}

// NewClient creates a download client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Minute},
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch downloads url to dest. If dest already holds at least the remote
// length, no body request is made and the file is left untouched; otherwise
// the request covers only the missing byte range and the response is
// appended to the existing file.
func (c *Client) Fetch(ctx context.Context, url, dest string, progress ProgressFunc) error {
	total, err := c.remoteLength(ctx, url)
	if err != nil {
		return err
	}

	var offset int64
	if fi, err := os.Stat(dest); err == nil {
		offset = fi.Size()
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", dest, err)
	}

	if offset >= total {
		c.logger.Debug("download already complete", "url", url, "size", offset)
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if offset > 0 {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", offset))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case offset > 0 && resp.StatusCode != http.StatusPartialContent:
		return fmt.Errorf("server did not honor range request for %s: %s", url, resp.Status)
	case offset == 0 && resp.StatusCode != http.StatusOK:
		return fmt.Errorf("unexpected status fetching %s: %s", url, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create download directory: %w", err)
	}

	f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", dest, err)
	}
	defer func() { _ = f.Close() }()

	c.logger.Debug("downloading", "url", url, "offset", offset, "total", total)

	written := offset
	buf := make([]byte, copyChunkSize)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, err := f.Write(buf[:n]); err != nil {
				return fmt.Errorf("failed to write %s: %w", dest, err)
			}
			written += int64(n)
			if progress != nil {
				progress(written, total)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fmt.Errorf("failed to read response for %s: %w", url, readErr)
		}
	}

	return nil
}

// remoteLength asks the server for the content length of url.
func (c *Client) remoteLength(ctx context.Context, url string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to reach %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status for %s: %s", url, resp.Status)
	}
	if resp.ContentLength < 0 {
		return 0, fmt.Errorf("server reported no content length for %s", url)
	}
	return resp.ContentLength, nil
}
