package core

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/unascribed/FlexVer/go/flexver"
)

// Last known good loader versions, used when no loader meta endpoint gives a usable answer
const (
	FabricFallbackVersion = "0.18.4"
	QuiltFallbackVersion  = "0.29.2"
)

// DefaultLoader is the loader used when the pin file doesn't name one
const DefaultLoader = "fabric"

type ModLoaderComponent struct {
	Name         string
	FriendlyName string
	// DependencyKey is the key of this loader in the dependencies of a Modrinth pack
	DependencyKey string
	// MetaURL lists every loader version; MetaURL/<game version> lists the ones for a single game version
	MetaURL         string
	FallbackVersion string
}

var ModLoaders = map[string]ModLoaderComponent{
	"fabric": {
		Name:            "fabric",
		FriendlyName:    "Fabric loader",
		DependencyKey:   "fabric-loader",
		MetaURL:         "https://meta.fabricmc.net/v2/versions/loader",
		FallbackVersion: FabricFallbackVersion,
	},
	"quilt": {
		Name:            "quilt",
		FriendlyName:    "Quilt loader",
		DependencyKey:   "quilt-loader",
		MetaURL:         "https://meta.quiltmc.org/v3/versions/loader",
		FallbackVersion: QuiltFallbackVersion,
	},
}

// LoaderTier identifies which source a loader version was taken from
type LoaderTier int

const (
	TierGameVersion LoaderTier = iota + 1
	TierFullList
	TierFallback
)

func (t LoaderTier) String() string {
	switch t {
	case TierGameVersion:
		return "game-version"
	case TierFullList:
		return "full-list"
	case TierFallback:
		return "fallback"
	}
	return "unknown"
}

// ErrNoLoaderCandidates is recorded for a tier that answered, but had nothing usable for the game version
var ErrNoLoaderCandidates = errors.New("no usable loader versions")

// LoaderCandidate is a single loader build offered by a meta server
type LoaderCandidate struct {
	Version     string
	GameVersion string
	Stable      bool
}

// TierAttempt records the outcome of querying one tier
type TierAttempt struct {
	Tier       LoaderTier
	URL        string
	Candidates int
	Err        error
}

// LoaderSelection is the loader version chosen for a run, and how it was chosen
type LoaderSelection struct {
	Loader   ModLoaderComponent
	Version  string
	Tier     LoaderTier
	Attempts []TierAttempt
}

// LoaderResolver picks a loader version for a game version. It never fails: when every tier is unusable it
// falls back to the loader's last known good version.
type LoaderResolver struct {
	Loader ModLoaderComponent
	Client *http.Client
}

func (r LoaderResolver) Resolve(ctx context.Context, gameVersion string) LoaderSelection {
	logger := LoggerFromContext(ctx)
	sel := LoaderSelection{Loader: r.Loader}

	tiers := []struct {
		tier   LoaderTier
		url    string
		filter bool
	}{
		// The game version endpoint is already filtered by the server
		{TierGameVersion, strings.TrimSuffix(r.Loader.MetaURL, "/") + "/" + url.PathEscape(gameVersion), false},
		{TierFullList, r.Loader.MetaURL, true},
	}

	for _, t := range tiers {
		attempt := TierAttempt{Tier: t.tier, URL: t.url}
		candidates, err := r.fetchCandidates(ctx, t.url)
		if err == nil && t.filter {
			candidates = filterGameVersion(candidates, gameVersion)
		}
		attempt.Candidates = len(candidates)
		version, ok := "", false
		if err == nil {
			version, ok = PickLoaderVersion(candidates)
			if !ok {
				err = ErrNoLoaderCandidates
			}
		}
		attempt.Err = err
		sel.Attempts = append(sel.Attempts, attempt)

		if ok {
			logger.Debug("resolved loader version", "loader", r.Loader.Name, "version", version, "tier", t.tier)
			sel.Version = version
			sel.Tier = t.tier
			if flexver.Less(version, r.Loader.FallbackVersion) {
				logger.Warn("resolved loader version is older than the last known good version",
					"loader", r.Loader.Name, "version", version, "known-good", r.Loader.FallbackVersion)
			}
			return sel
		}
		logger.Debug("loader tier unusable", "tier", t.tier, "url", t.url, "err", err)
	}

	logger.Warn("no loader version could be resolved, using last known good version",
		"loader", r.Loader.Name, "game", gameVersion, "version", r.Loader.FallbackVersion)
	sel.Version = r.Loader.FallbackVersion
	sel.Tier = TierFallback
	sel.Attempts = append(sel.Attempts, TierAttempt{Tier: TierFallback, Candidates: 1})
	return sel
}

func (r LoaderResolver) fetchCandidates(ctx context.Context, u string) ([]LoaderCandidate, error) {
	var raw []interface{}
	if err := FetchJSON(ctx, r.Client, u, &raw); err != nil {
		return nil, err
	}
	candidates := make([]LoaderCandidate, 0, len(raw))
	for _, item := range raw {
		if c, ok := decodeLoaderEntry(item); ok {
			candidates = append(candidates, c)
		}
	}
	return candidates, nil
}

// loaderMetaEntry covers both the flat shape (full loader list) and the nested shape (per game version list)
type loaderMetaEntry struct {
	Version     string `mapstructure:"version"`
	GameVersion string `mapstructure:"gameVersion"`
	Stable      *bool  `mapstructure:"stable"`
	Loader      *struct {
		Version string `mapstructure:"version"`
		Stable  *bool  `mapstructure:"stable"`
	} `mapstructure:"loader"`
	Intermediary *struct {
		Version string `mapstructure:"version"`
	} `mapstructure:"intermediary"`
}

func decodeLoaderEntry(item interface{}) (LoaderCandidate, bool) {
	m, ok := item.(map[string]interface{})
	if !ok {
		return LoaderCandidate{}, false
	}
	var entry loaderMetaEntry
	if err := mapstructure.Decode(m, &entry); err != nil {
		return LoaderCandidate{}, false
	}

	c := LoaderCandidate{Version: entry.Version, GameVersion: entry.GameVersion}
	if entry.Stable != nil {
		c.Stable = *entry.Stable
	}
	if entry.Loader != nil {
		if c.Version == "" {
			c.Version = entry.Loader.Version
		}
		if entry.Stable == nil && entry.Loader.Stable != nil {
			c.Stable = *entry.Loader.Stable
		}
	}
	if c.GameVersion == "" && entry.Intermediary != nil {
		c.GameVersion = entry.Intermediary.Version
	}
	if c.Version == "" {
		return LoaderCandidate{}, false
	}
	return c, true
}

func filterGameVersion(candidates []LoaderCandidate, gameVersion string) []LoaderCandidate {
	filtered := make([]LoaderCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.GameVersion == gameVersion {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// PickLoaderVersion returns the first stable candidate, or the first candidate if none are stable.
// Registry order is trusted; the server lists its preferred build first.
func PickLoaderVersion(candidates []LoaderCandidate) (string, bool) {
	for _, c := range candidates {
		if c.Stable {
			return c.Version, true
		}
	}
	if len(candidates) > 0 {
		return candidates[0].Version, true
	}
	return "", false
}
