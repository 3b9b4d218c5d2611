package modrinth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	modrinthApi "codeberg.org/jmansfield/go-modrinth/modrinth"
	"github.com/packwiz/clientpack/core"
	"github.com/stretchr/testify/require"
)

var (
	testSha1   = strings.Repeat("1a", 20)
	testSha512 = strings.Repeat("5b", 64)
)

// fakeRegistry serves projects and versions from memory, recording every call
type fakeRegistry struct {
	projects map[string]*modrinthApi.Project
	versions map[string]*ProjectVersion
	errs     map[string]error

	mu    sync.Mutex
	calls []string
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		projects: make(map[string]*modrinthApi.Project),
		versions: make(map[string]*ProjectVersion),
		errs:     make(map[string]error),
	}
}

func (r *fakeRegistry) record(call string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
	return r.errs[call]
}

func (r *fakeRegistry) GetProject(ctx context.Context, projectID string) (*modrinthApi.Project, error) {
	if err := r.record("project " + projectID); err != nil {
		return nil, err
	}
	p, ok := r.projects[projectID]
	if !ok {
		return nil, &core.HTTPError{URL: "/project/" + projectID, StatusCode: 404}
	}
	return p, nil
}

func (r *fakeRegistry) GetProjectVersion(ctx context.Context, projectID string, version string) (*ProjectVersion, error) {
	if err := r.record("version " + projectID + ":" + version); err != nil {
		return nil, err
	}
	v, ok := r.versions[projectID+":"+version]
	if !ok {
		return nil, &core.HTTPError{URL: "/project/" + projectID + "/version/" + version, StatusCode: 404}
	}
	return v, nil
}

func (r *fakeRegistry) called(call string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.calls {
		if c == call {
			return true
		}
	}
	return false
}

func projectFromJSON(t *testing.T, data string) *modrinthApi.Project {
	var p modrinthApi.Project
	require.NoError(t, json.Unmarshal([]byte(data), &p))
	return &p
}

func versionFromJSON(t *testing.T, data string) *ProjectVersion {
	var v ProjectVersion
	require.NoError(t, json.Unmarshal([]byte(data), &v))
	return &v
}

func fileJSON(filename string, primary bool) string {
	return fmt.Sprintf(`{"filename":%q,"url":"https://cdn.modrinth.com/data/x/versions/y/%s","primary":%t,"size":1024,`+
		`"hashes":{"sha1":%q,"sha512":%q}}`, filename, filename, primary, testSha1, testSha512)
}

// addMod registers a project with the given client support, and a version with a single primary file
func (r *fakeRegistry) addMod(t *testing.T, modID string, version string, clientSide string) {
	r.projects[modID] = projectFromJSON(t, fmt.Sprintf(`{"slug":%q,"client_side":%q,"server_side":"optional"}`, modID, clientSide))
	r.versions[modID+":"+version] = versionFromJSON(t, `{"files":[`+fileJSON(modID+"-"+version+".jar", true)+`]}`)
}

func pinsRequest(pins ...core.Pin) core.ResolutionRequest {
	return core.ResolutionRequest{GameVersion: "1.21.1", Loader: "fabric", Pins: pins}
}
