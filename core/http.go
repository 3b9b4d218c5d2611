package core

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// UserAgent is sent with every request made to a registry or loader meta server
var UserAgent = "packwiz/clientpack"

// DefaultTimeout bounds every individual request; there is no global deadline
const DefaultTimeout = 30 * time.Second

// NewHTTPClient creates a client whose requests each time out after the given duration (DefaultTimeout if zero)
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// FetchJSON requests the given URL and decodes the JSON response into v.
// Failures are returned as *RequestError, *HTTPError or *ParseError.
func FetchJSON(ctx context.Context, client *http.Client, u string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &RequestError{URL: u, Err: err}
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return &RequestError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{URL: u, StatusCode: resp.StatusCode}
	}

	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(v); err != nil {
		return &ParseError{URL: u, Err: err}
	}
	return nil
}

// ReencodeURL re-encodes URLs for RFC3986 compliance, as required by the Modrinth pack format
func ReencodeURL(u string) (string, error) {
	// Go's URL library isn't entirely RFC3986 compliant :(
	// Manually replace [ and ] with %5B and %5D
	u = strings.ReplaceAll(u, "[", "%5B")
	u = strings.ReplaceAll(u, "]", "%5D")
	parsed, err := url.Parse(u)
	if err != nil {
		return "", fmt.Errorf("failed to parse url: %s, %w", u, err)
	}
	return parsed.String(), nil
}
