package cmdshared

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/packwiz/clientpack/core"
	"golang.org/x/exp/slices"
)

const mcVersionManifestURL = "https://launchermeta.mojang.com/mc/game/version_manifest.json"

type McVersionManifest struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []McVersion `json:"versions"`
}

type McVersion struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	URL         string    `json:"url"`
	Time        time.Time `json:"time"`
	ReleaseTime time.Time `json:"releaseTime"`
}

// CheckValid returns an error if version isn't a known Minecraft version
func (m McVersionManifest) CheckValid(version string) error {
	idx := slices.IndexFunc(m.Versions, func(v McVersion) bool {
		return v.ID == version
	})
	if idx < 0 {
		return &core.ConfigError{Field: "game-version", Reason: fmt.Sprintf("%q is not a valid Minecraft version", version)}
	}
	return nil
}

// GetValidMCVersions fetches Mojang's list of Minecraft versions
func GetValidMCVersions(ctx context.Context, client *http.Client) (McVersionManifest, error) {
	out := McVersionManifest{}
	if err := core.FetchJSON(ctx, client, mcVersionManifestURL, &out); err != nil {
		return McVersionManifest{}, err
	}
	return out, nil
}
