package modrinth

import (
	"encoding/json"
	"math"
	"strings"

	modrinthApi "codeberg.org/jmansfield/go-modrinth/modrinth"
	"github.com/packwiz/clientpack/core"
)

// SideSupport is the value of a project's client_side or server_side field
type SideSupport string

const (
	SideRequired    SideSupport = "required"
	SideOptional    SideSupport = "optional"
	SideUnsupported SideSupport = "unsupported"
	SideUnknown     SideSupport = "unknown"
)

func ParseSideSupport(side *string) SideSupport {
	if side == nil {
		return SideUnknown
	}
	switch s := SideSupport(*side); s {
	case SideRequired, SideOptional, SideUnsupported:
		return s
	}
	return SideUnknown
}

// IncludeOnClient reports whether a project belongs in a client pack. Only projects explicitly marked as
// unsupported on the client are left out; unknown support is given the benefit of the doubt.
func IncludeOnClient(project *modrinthApi.Project) bool {
	if project == nil {
		return true
	}
	return ParseSideSupport(project.ClientSide) != SideUnsupported
}

// SelectFile returns the primary file entry of a version, or the first entry if none is marked primary.
// Entries that can't be decoded are never treated as primary. It returns nil if there are no files.
func SelectFile(files []json.RawMessage) json.RawMessage {
	for _, f := range files {
		var header struct {
			Primary bool `json:"primary"`
		}
		if err := json.Unmarshal(f, &header); err == nil && header.Primary {
			return f
		}
	}
	if len(files) > 0 {
		return files[0]
	}
	return nil
}

// fileEntry is a version file as the API describes it. Size is decoded separately so files larger than
// 4 GiB and malformed sizes are reported per file.
type fileEntry struct {
	modrinthApi.File
	Primary json.RawMessage `json:"primary"`
	Size    json.RawMessage `json:"size"`
}

// maxFileSize is the largest size a JSON number can hold exactly
const maxFileSize = 1 << 53

func parseFileSize(raw json.RawMessage) (int64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var size *float64
	if err := json.Unmarshal(raw, &size); err != nil || size == nil {
		return 0, false
	}
	if *size < 0 || *size > maxFileSize || math.Trunc(*size) != *size {
		return 0, false
	}
	return int64(*size), true
}

// BuildPackFile creates the client pack entry for a pinned version, validating the selected file
func BuildPackFile(pin core.Pin, version *ProjectVersion) (PackFile, error) {
	fileErr := func(reason string) error {
		return &core.FileDataError{ModID: pin.ModID, Version: pin.Version, Reason: reason}
	}

	if version == nil {
		return PackFile{}, fileErr("no version data")
	}
	raw := SelectFile(version.Files)
	if raw == nil {
		return PackFile{}, fileErr("version has no files")
	}
	var file fileEntry
	if err := json.Unmarshal(raw, &file); err != nil {
		return PackFile{}, fileErr("malformed file entry: " + err.Error())
	}
	if file.Filename == nil || *file.Filename == "" {
		return PackFile{}, fileErr("file has no filename")
	}
	filename := *file.Filename
	if strings.ContainsAny(filename, `/\`) || filename == "." || filename == ".." {
		return PackFile{}, fileErr("filename " + filename + " is not a plain file name")
	}
	if file.URL == nil || *file.URL == "" {
		return PackFile{}, fileErr("file has no download URL")
	}
	size, ok := parseFileSize(file.Size)
	if !ok {
		return PackFile{}, fileErr("file has no size")
	}

	hashes := core.FilterHashes(file.Hashes)
	if len(hashes) == 0 {
		return PackFile{}, &core.HashError{ModID: pin.ModID, Version: pin.Version}
	}

	// Modrinth URLs must be RFC3986
	u, err := core.ReencodeURL(*file.URL)
	if err != nil {
		return PackFile{}, fileErr(err.Error())
	}

	return PackFile{
		Path:      packModsFolder + "/" + filename,
		Hashes:    hashes,
		Env:       clientOnlyEnv(),
		Downloads: []string{u},
		FileSize:  size,
	}, nil
}
