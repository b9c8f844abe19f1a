// Package release discovers SDK versions available for download. The Ren'Py
// download index is a plain directory listing; every anchor whose text is a
// version-named folder corresponds to one downloadable release.
package release

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/kobaltcore/renutil/internal/core/logger"
	"github.com/kobaltcore/renutil/internal/core/version"
)

// Release is a remotely discoverable, not-yet-installed SDK version.
type Release struct {
	Version version.Version
	URL     string
}

// Client discovers releases from a download index.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the download index URL. The URL must end with a
// slash.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the client logger.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		c.logger = log
	}
}

// NewClient creates a release client for the given download index.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if !strings.HasSuffix(c.baseURL, "/") {
		c.baseURL += "/"
	}
	return c
}

// SDKURL returns the download location of the SDK archive for a version.
func (c *Client) SDKURL(v version.Version) string {
	return fmt.Sprintf("%s%s/renpy-%s-sdk.zip", c.baseURL, v, v)
}

// RAPTURL returns the download location of the Android-support archive for a
// version.
func (c *Client) RAPTURL(v version.Version) string {
	return fmt.Sprintf("%s%s/renpy-%s-rapt.zip", c.baseURL, v, v)
}

// FetchAvailable lists the releases offered by the download index, most
// recent first. A network failure is reported to the caller; there is no
// retry.
func (c *Client) FetchAvailable(ctx context.Context) ([]Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve version list: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("could not retrieve version list: %s", resp.Status)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse version listing: %w", err)
	}

	var releases []Release
	for _, link := range anchorTexts(doc) {
		v, ok := version.ParseFolder(link)
		if !ok {
			continue
		}
		releases = append(releases, Release{
			Version: v,
			URL:     c.SDKURL(v),
		})
	}

	sort.Slice(releases, func(i, j int) bool {
		return releases[j].Version.Less(releases[i].Version)
	})

	c.logger.Debug("fetched release listing", "count", len(releases))
	return releases, nil
}

// anchorTexts collects the text content of every <a> element in the
// document.
func anchorTexts(doc *html.Node) []string {
	var out []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			var sb strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					sb.WriteString(c.Data)
				}
			}
			if text := strings.TrimSpace(sb.String()); text != "" {
				out = append(out, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}
