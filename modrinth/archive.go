package modrinth

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/packwiz/clientpack/core"
)

// Artifacts are the output paths of a generated pack
type Artifacts struct {
	IndexPath   string
	ArchivePath string
	ReportPath  string
}

// ArtifactPaths returns the output paths for a pack in outDir
func ArtifactPaths(outDir string, slug string, gameVersion string) Artifacts {
	base := slug + "-" + gameVersion
	return Artifacts{
		IndexPath:   filepath.Join(outDir, base+".modrinth.index.json"),
		ArchivePath: filepath.Join(outDir, base+".mrpack"),
		ReportPath:  filepath.Join(outDir, base+".excluded-server-only.txt"),
	}
}

// EncodeIndex serialises the manifest; pretty output is indented and ends with a newline, compact output has neither
func EncodeIndex(pack Pack, pretty bool) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "    ") // Documentation uses 4 spaces
	}
	if err := enc.Encode(pack); err != nil {
		return nil, err
	}
	if pretty {
		return buf.Bytes(), nil
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// BuildArchive creates a .mrpack containing only the compact manifest
func BuildArchive(pack Pack) ([]byte, error) {
	index, err := EncodeIndex(pack, false)
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}

	buf := new(bytes.Buffer)
	exp := zip.NewWriter(buf)
	manifestFile, err := exp.Create(packIndexFile)
	if err != nil {
		_ = exp.Close()
		return nil, fmt.Errorf("failed to create manifest: %w", err)
	}
	if _, err = manifestFile.Write(index); err != nil {
		_ = exp.Close()
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}
	if err = exp.Close(); err != nil {
		return nil, fmt.Errorf("failed to write export file: %w", err)
	}
	return buf.Bytes(), nil
}

// ExclusionReport lists one excluded mod ID per line; it is empty when nothing was excluded
func ExclusionReport(excluded []string) []byte {
	if len(excluded) == 0 {
		return []byte{}
	}
	return []byte(strings.Join(excluded, "\n") + "\n")
}

// WriteArtifacts writes the pretty manifest, the .mrpack and the exclusion report. Either all three are written,
// or none are.
func WriteArtifacts(paths Artifacts, pack Pack, excluded []string) error {
	index, err := EncodeIndex(pack, true)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	archive, err := BuildArchive(pack)
	if err != nil {
		return err
	}
	return core.WriteFilesAtomic([]core.PendingFile{
		{Path: paths.IndexPath, Data: index},
		{Path: paths.ArchivePath, Data: archive},
		{Path: paths.ReportPath, Data: ExclusionReport(excluded)},
	})
}
