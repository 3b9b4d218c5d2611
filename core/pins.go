package core

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

// Keys read from a legacy .env pin file
const (
	EnvGameVersionKey = "GENERATED_MC_VERSION"
	DefaultEnvModsKey = "MODRINTH_PROJECTS"
)

// Slug/ID regex from https://github.com/modrinth/labrinth/blob/1679a3f844497d756d0cf272c5374a5236eabd42/src/util/validate.rs#L8
var modIDRegex = regexp.MustCompile("^[a-zA-Z0-9!@$()`.+,_\"-]{3,64}$")

// PinFile stores the pinned mod versions of a pack, usually in pins.toml
type PinFile struct {
	Name        string            `toml:"name,omitempty"`
	Slug        string            `toml:"slug,omitempty"`
	Summary     string            `toml:"summary,omitempty"`
	GameVersion string            `toml:"game-version"`
	Loader      string            `toml:"loader,omitempty"`
	Mods        map[string]string `toml:"mods"`
	path        string
}

// Pin is a single mod identifier pinned to a version identifier
type Pin struct {
	ModID   string
	Version string
}

func (p Pin) String() string {
	return p.ModID + ":" + p.Version
}

// ResolutionRequest is the validated input of a run. Pins are sorted by mod ID, and mod IDs are unique.
type ResolutionRequest struct {
	GameVersion string
	Loader      string
	Pins        []Pin
}

// LoadPinFile loads a pin file, picking the format from the file extension (.env files use the legacy format)
func LoadPinFile(path string, envModsKey string) (PinFile, error) {
	if filepath.Ext(path) == ".env" || filepath.Base(path) == ".env" {
		return LoadEnvPinFile(path, envModsKey)
	}
	return LoadTomlPinFile(path)
}

// LoadTomlPinFile loads a TOML pin file
func LoadTomlPinFile(path string) (PinFile, error) {
	var pins PinFile
	if _, err := toml.DecodeFile(path, &pins); err != nil {
		return PinFile{}, err
	}
	if pins.Mods == nil {
		pins.Mods = make(map[string]string)
	}
	pins.path = path
	return pins, nil
}

// LoadEnvPinFile loads a .env pin file, where modsKey holds a comma separated list of slug:version pairs
func LoadEnvPinFile(path string, modsKey string) (PinFile, error) {
	if modsKey == "" {
		modsKey = DefaultEnvModsKey
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return PinFile{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !v.IsSet(EnvGameVersionKey) {
		return PinFile{}, &ConfigError{Field: EnvGameVersionKey, Reason: "not set in " + path}
	}
	if !v.IsSet(modsKey) {
		return PinFile{}, &ConfigError{Field: modsKey, Reason: "not set in " + path}
	}

	mods, err := ParsePinList(v.GetString(modsKey))
	if err != nil {
		return PinFile{}, err
	}
	return PinFile{
		GameVersion: strings.TrimSpace(v.GetString(EnvGameVersionKey)),
		Mods:        mods,
		path:        path,
	}, nil
}

// ParsePinList parses a comma separated list of slug:version pairs. Blank items are ignored.
func ParsePinList(list string) (map[string]string, error) {
	mods := make(map[string]string)
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		modID, version, found := strings.Cut(item, ":")
		modID, version = strings.TrimSpace(modID), strings.TrimSpace(version)
		if !found || modID == "" || version == "" {
			return nil, &ConfigError{Field: "mods", Reason: fmt.Sprintf("%q is not a slug:version pair", item)}
		}
		if _, ok := mods[modID]; ok {
			return nil, &ConfigError{Field: "mods", Reason: modID + " is pinned more than once"}
		}
		mods[modID] = version
	}
	return mods, nil
}

// ValidateSlug checks that a pack slug can be used in a version ID and in file names
func ValidateSlug(slug string) error {
	if slug == "" {
		return &ConfigError{Field: "slug", Reason: "pack slug must not be empty"}
	}
	if strings.ContainsAny(slug, `/\ `) || strings.Contains(slug, "..") {
		return &ConfigError{Field: "slug", Reason: fmt.Sprintf("%q must not contain spaces, slashes or ..", slug)}
	}
	return nil
}

// Path returns the file this pin file was loaded from
func (p PinFile) Path() string {
	return p.path
}

// SetPath changes the file this pin file is written to
func (p *PinFile) SetPath(path string) {
	p.path = path
}

// Request converts the pin file into a validated ResolutionRequest
func (p PinFile) Request() (ResolutionRequest, error) {
	req := ResolutionRequest{
		GameVersion: strings.TrimSpace(p.GameVersion),
		Loader:      strings.ToLower(strings.TrimSpace(p.Loader)),
		Pins:        make([]Pin, 0, len(p.Mods)),
	}
	if req.Loader == "" {
		req.Loader = DefaultLoader
	}
	for modID, version := range p.Mods {
		req.Pins = append(req.Pins, Pin{ModID: modID, Version: version})
	}
	slices.SortFunc(req.Pins, func(a, b Pin) int {
		return strings.Compare(a.ModID, b.ModID)
	})
	if err := req.Validate(); err != nil {
		return ResolutionRequest{}, err
	}
	return req, nil
}

// Validate checks that every required field is present
func (r ResolutionRequest) Validate() error {
	if r.GameVersion == "" {
		return &ConfigError{Field: "game-version", Reason: "no Minecraft version specified"}
	}
	if _, ok := ModLoaders[r.Loader]; !ok {
		return &ConfigError{Field: "loader", Reason: fmt.Sprintf("unsupported mod loader %q", r.Loader)}
	}
	if len(r.Pins) == 0 {
		return &ConfigError{Field: "mods", Reason: "no mods are pinned"}
	}
	for i, pin := range r.Pins {
		if err := ValidatePin(pin); err != nil {
			return err
		}
		if i > 0 && r.Pins[i-1].ModID >= pin.ModID {
			return &ConfigError{Field: "mods", Reason: "pins must be unique and sorted by mod ID"}
		}
	}
	return nil
}

// ValidatePin checks that a pin names a plausible Modrinth project and a version
func ValidatePin(pin Pin) error {
	if !modIDRegex.MatchString(pin.ModID) {
		return &ConfigError{Field: "mods", Reason: fmt.Sprintf("%q is not a valid Modrinth slug or ID", pin.ModID)}
	}
	if strings.TrimSpace(pin.Version) == "" {
		return &ConfigError{Field: "mods." + pin.ModID, Reason: "no version pinned"}
	}
	return nil
}

// Write saves the pin file in TOML format
func (p PinFile) Write() error {
	if p.path == "" {
		return &ConfigError{Field: "pins", Reason: "no file to write to"}
	}
	if filepath.Ext(p.path) == ".env" || filepath.Base(p.path) == ".env" {
		return &ConfigError{Field: "pins", Reason: p.path + " is a .env pin file, which is read only"}
	}
	buf := new(bytes.Buffer)
	enc := toml.NewEncoder(buf)
	// Disable indentation
	enc.Indent = ""
	if err := enc.Encode(p); err != nil {
		return err
	}
	return WriteFilesAtomic([]PendingFile{{Path: p.path, Data: buf.Bytes()}})
}
