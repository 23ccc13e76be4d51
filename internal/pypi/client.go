// Package pypi looks up package metadata from a PyPI-compatible JSON API.
package pypi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/indaco/pyscaf/internal/deps"
	"github.com/tidwall/gjson"
)

// DefaultIndexURL is the base of the public PyPI JSON API.
const DefaultIndexURL = "https://pypi.org/pypi"

// maxResponseSize bounds the metadata document read from the index.
const maxResponseSize = 32 << 20

// Client queries <baseURL>/<name>/json.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a Client for baseURL. An empty baseURL selects
// DefaultIndexURL and a nil httpClient selects http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultIndexURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

var _ deps.Resolver = (*Client)(nil)

// LatestVersion returns info.version of the package document.
// Every failure wraps deps.ErrResolution.
func (c *Client) LatestVersion(ctx context.Context, name string) (string, error) {
	endpoint := c.baseURL + "/" + url.PathEscape(name) + "/json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %s: failed to create request: %w", deps.ErrResolution, name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", deps.ErrResolution, name, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("%w: %s: package not found on %s", deps.ErrResolution, name, c.baseURL)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("%w: %s: unexpected status %s", deps.ErrResolution, name, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("%w: %s: failed to read response: %w", deps.ErrResolution, name, err)
	}
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("%w: %s: malformed JSON response", deps.ErrResolution, name)
	}

	version := gjson.GetBytes(body, "info.version")
	if version.Type != gjson.String || strings.TrimSpace(version.Str) == "" {
		return "", fmt.Errorf("%w: %s: response has no info.version", deps.ErrResolution, name)
	}
	return strings.TrimSpace(version.Str), nil
}
