package modrinth

import (
	"fmt"
	"strings"
	"time"

	"github.com/packwiz/clientpack/core"
	"golang.org/x/exp/slices"
)

// DefaultSummary is used when the pin file doesn't give the pack a summary
const DefaultSummary = "Client-side import pack generated from resolved Modrinth mods."

// PackInfo holds the descriptive metadata of a generated pack
type PackInfo struct {
	// Slug is the fixed identifier of the pack, used in its version ID and output file names
	Slug    string
	Name    string
	Summary string
}

// Validate checks that the slug can be used in a version ID and in file names
func (info PackInfo) Validate() error {
	return core.ValidateSlug(info.Slug)
}

// BuildManifest assembles the pack manifest. Files are ordered by mod ID, so the manifest only depends on its inputs
// and the UTC date of now.
func BuildManifest(info PackInfo, gameVersion string, loader core.LoaderSelection, res Resolution, now time.Time) (Pack, error) {
	if err := info.Validate(); err != nil {
		return Pack{}, err
	}
	if loader.Loader.DependencyKey == "" || loader.Version == "" {
		return Pack{}, &core.ConfigError{Field: "loader", Reason: "no loader version selected"}
	}

	included := slices.Clone(res.Included)
	slices.SortFunc(included, func(a, b ResolvedMod) int {
		return strings.Compare(a.Pin.ModID, b.Pin.ModID)
	})

	files := make([]PackFile, 0, len(included))
	pathOwners := make(map[string]string, len(included))
	for _, mod := range included {
		if owner, ok := pathOwners[mod.File.Path]; ok {
			return Pack{}, &core.DuplicatePathError{Path: mod.File.Path, ModIDs: [2]string{owner, mod.Pin.ModID}}
		}
		pathOwners[mod.File.Path] = mod.Pin.ModID
		files = append(files, mod.File)
	}

	name := info.Name
	if name == "" {
		name = info.Slug
	}

	return Pack{
		FormatVersion: packFormatVersion,
		Game:          packGame,
		VersionID:     fmt.Sprintf("%s-%s-%s", info.Slug, gameVersion, now.UTC().Format("20060102")),
		Name:          fmt.Sprintf("%s (%s)", name, gameVersion),
		Summary:       info.Summary,
		Files:         files,
		Dependencies: map[string]string{
			"minecraft":                 gameVersion,
			loader.Loader.DependencyKey: loader.Version,
		},
	}, nil
}
