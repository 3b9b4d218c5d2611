package modrinth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	modrinthApi "codeberg.org/jmansfield/go-modrinth/modrinth"
	"github.com/packwiz/clientpack/core"
)

// DefaultAPIURL is the base URL of the Modrinth v2 API
const DefaultAPIURL = "https://api.modrinth.com/v2"

// Registry fetches project and version metadata from Modrinth
type Registry interface {
	// GetProject fetches a project by slug or ID
	GetProject(ctx context.Context, projectID string) (*modrinthApi.Project, error)
	// GetProjectVersion fetches a version of a project by version ID or version number
	GetProjectVersion(ctx context.Context, projectID string, version string) (*ProjectVersion, error)
}

// ProjectVersion is a version of a project. Files are left undecoded until one is selected, so malformed
// metadata on a file that is never used can't fail the version.
type ProjectVersion struct {
	ID            string            `json:"id"`
	VersionNumber string            `json:"version_number"`
	Files         []json.RawMessage `json:"files"`
}

type apiRegistry struct {
	client *modrinthApi.Client
}

// NewRegistry creates a Registry for the Modrinth API at baseURL (DefaultAPIURL if empty)
func NewRegistry(baseURL string, httpClient *http.Client) (Registry, error) {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	// Relative paths are resolved against the base URL, so it has to end in a slash
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
	if err != nil || !base.IsAbs() {
		return nil, &core.ConfigError{Field: "api-url", Reason: "not an absolute URL: " + baseURL}
	}
	if httpClient == nil {
		httpClient = core.NewHTTPClient(core.DefaultTimeout)
	}

	client := modrinthApi.NewClient(httpClient)
	client.BaseURL = base
	client.UserAgent = core.UserAgent
	return &apiRegistry{client: client}, nil
}

func (r *apiRegistry) GetProject(ctx context.Context, projectID string) (*modrinthApi.Project, error) {
	var project modrinthApi.Project
	if err := r.get(ctx, "project/"+url.PathEscape(projectID), &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *apiRegistry) GetProjectVersion(ctx context.Context, projectID string, version string) (*ProjectVersion, error) {
	var v ProjectVersion
	if err := r.get(ctx, "project/"+url.PathEscape(projectID)+"/version/"+url.PathEscape(version), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// get performs a request with the API client, mapping its errors onto the core error kinds
func (r *apiRegistry) get(ctx context.Context, path string, v interface{}) error {
	req, err := r.client.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return &core.RequestError{URL: r.client.BaseURL.String() + path, Err: err}
	}
	u := req.URL.String()

	resp, err := r.client.Do(req.WithContext(ctx), v)
	if err == nil {
		return nil
	}
	if resp == nil {
		return &core.RequestError{URL: u, Err: err}
	}
	// Error bodies that aren't JSON come back as a decode error, but the status is what matters
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &core.HTTPError{URL: u, StatusCode: resp.StatusCode}
	}
	return &core.ParseError{URL: u, Err: err}
}
