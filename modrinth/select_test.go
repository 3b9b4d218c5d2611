package modrinth

import (
	"encoding/json"
	"testing"

	"github.com/packwiz/clientpack/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPin = core.Pin{ModID: "sodium", Version: "mc1.21.1-0.6.0"}

func TestParseSideSupport(t *testing.T) {
	side := func(s string) *string { return &s }
	assert.Equal(t, SideRequired, ParseSideSupport(side("required")))
	assert.Equal(t, SideOptional, ParseSideSupport(side("optional")))
	assert.Equal(t, SideUnsupported, ParseSideSupport(side("unsupported")))
	assert.Equal(t, SideUnknown, ParseSideSupport(side("Unsupported")))
	assert.Equal(t, SideUnknown, ParseSideSupport(nil))
}

func TestIncludeOnClient(t *testing.T) {
	assert.True(t, IncludeOnClient(projectFromJSON(t, `{"client_side":"required"}`)))
	assert.True(t, IncludeOnClient(projectFromJSON(t, `{"client_side":"optional"}`)))
	assert.True(t, IncludeOnClient(projectFromJSON(t, `{"client_side":"unknown"}`)))
	assert.True(t, IncludeOnClient(projectFromJSON(t, `{}`)))
	assert.True(t, IncludeOnClient(nil))
	assert.False(t, IncludeOnClient(projectFromJSON(t, `{"client_side":"unsupported"}`)))
}

func selectedFilename(t *testing.T, v *ProjectVersion) string {
	raw := SelectFile(v.Files)
	require.NotNil(t, raw)
	var f struct {
		Filename string `json:"filename"`
	}
	require.NoError(t, json.Unmarshal(raw, &f))
	return f.Filename
}

func TestSelectFilePrimary(t *testing.T) {
	v := versionFromJSON(t, `{"files":[`+fileJSON("sodium-sources.jar", false)+`,`+fileJSON("sodium.jar", true)+`]}`)
	assert.Equal(t, "sodium.jar", selectedFilename(t, v))
}

func TestSelectFileFirst(t *testing.T) {
	v := versionFromJSON(t, `{"files":[`+fileJSON("first.jar", false)+`,`+fileJSON("second.jar", false)+`]}`)
	assert.Equal(t, "first.jar", selectedFilename(t, v))

	// A primary flag that isn't a boolean doesn't count
	v = versionFromJSON(t, `{"files":[`+fileJSON("first.jar", false)+`,{"filename":"odd.jar","primary":"yes"}]}`)
	assert.Equal(t, "first.jar", selectedFilename(t, v))

	assert.Nil(t, SelectFile(nil))
}

func TestBuildPackFile(t *testing.T) {
	v := versionFromJSON(t, `{"files":[{"filename":"sodium[1.21.1].jar",`+
		`"url":"https://cdn.modrinth.com/data/AANobbMI/versions/abc/sodium[1.21.1].jar","primary":true,"size":1048576,`+
		`"hashes":{"sha1":"`+testSha1+`","sha512":"`+testSha512+`","sha256":"ignored"}}]}`)

	file, err := BuildPackFile(testPin, v)
	require.NoError(t, err)
	assert.Equal(t, PackFile{
		Path:      "mods/sodium[1.21.1].jar",
		Hashes:    map[string]string{"sha1": testSha1, "sha512": testSha512},
		Env:       &PackFileEnv{Client: "required", Server: "unsupported"},
		Downloads: []string{"https://cdn.modrinth.com/data/AANobbMI/versions/abc/sodium%5B1.21.1%5D.jar"},
		FileSize:  1048576,
	}, file)
}

func TestBuildPackFileMissingData(t *testing.T) {
	cases := map[string]string{
		"no files":      `{"files":[]}`,
		"no filename":   `{"files":[{"url":"https://cdn.modrinth.com/a.jar","size":1,"hashes":{"sha1":"` + testSha1 + `"}}]}`,
		"nested path":   `{"files":[{"filename":"../a.jar","url":"https://cdn.modrinth.com/a.jar","size":1,"hashes":{"sha1":"` + testSha1 + `"}}]}`,
		"no url":        `{"files":[{"filename":"a.jar","size":1,"hashes":{"sha1":"` + testSha1 + `"}}]}`,
		"no size":       `{"files":[{"filename":"a.jar","url":"https://cdn.modrinth.com/a.jar","hashes":{"sha1":"` + testSha1 + `"}}]}`,
		"null size":     `{"files":[{"filename":"a.jar","url":"https://cdn.modrinth.com/a.jar","size":null,"hashes":{"sha1":"` + testSha1 + `"}}]}`,
		"string size":   `{"files":[{"filename":"a.jar","url":"https://cdn.modrinth.com/a.jar","primary":true,"size":"1024","hashes":{"sha1":"` + testSha1 + `"}}]}`,
		"float size":    `{"files":[{"filename":"a.jar","url":"https://cdn.modrinth.com/a.jar","size":10.5,"hashes":{"sha1":"` + testSha1 + `"}}]}`,
		"negative size": `{"files":[{"filename":"a.jar","url":"https://cdn.modrinth.com/a.jar","size":-1,"hashes":{"sha1":"` + testSha1 + `"}}]}`,
		"bad filename":  `{"files":[{"filename":12,"url":"https://cdn.modrinth.com/a.jar","size":1,"hashes":{"sha1":"` + testSha1 + `"}}]}`,
		"primary lacks": `{"files":[` + fileJSON("b.jar", false) + `,{"filename":"a.jar","primary":true,"size":1,"hashes":{"sha1":"` + testSha1 + `"}}]}`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := BuildPackFile(testPin, versionFromJSON(t, data))
			var fileErr *core.FileDataError
			require.ErrorAs(t, err, &fileErr)
			assert.Equal(t, "sodium", fileErr.ModID)
			assert.Equal(t, "mc1.21.1-0.6.0", fileErr.Version)
		})
	}

	_, err := BuildPackFile(testPin, nil)
	var fileErr *core.FileDataError
	assert.ErrorAs(t, err, &fileErr)
}

func TestBuildPackFileNoAllowedHash(t *testing.T) {
	v := versionFromJSON(t, `{"files":[{"filename":"a.jar","url":"https://cdn.modrinth.com/a.jar","size":1,`+
		`"hashes":{"sha256":"`+testSha512[:64]+`","murmur2":"12345"}}]}`)

	_, err := BuildPackFile(testPin, v)
	var hashErr *core.HashError
	require.ErrorAs(t, err, &hashErr)
	assert.Equal(t, "sodium", hashErr.ModID)
}

func TestBuildPackFileSizeFailureNamesSize(t *testing.T) {
	v := versionFromJSON(t, `{"files":[{"filename":"a.jar","url":"https://cdn.modrinth.com/a.jar","primary":true,`+
		`"size":"1024","hashes":{"sha1":"`+testSha1+`"}}]}`)

	_, err := BuildPackFile(testPin, v)
	var fileErr *core.FileDataError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, "file has no size", fileErr.Reason)
}

func TestBuildPackFileIgnoresUnselectedFiles(t *testing.T) {
	// Only the selected file's metadata has to be usable
	v := versionFromJSON(t, `{"files":[`+
		`{"filename":"sodium-sources.jar","primary":false,"size":"huge","hashes":{"sha1":12}},`+
		fileJSON("sodium.jar", true)+`]}`)

	file, err := BuildPackFile(testPin, v)
	require.NoError(t, err)
	assert.Equal(t, "mods/sodium.jar", file.Path)
	assert.Equal(t, int64(1024), file.FileSize)
}

func TestBuildPackFileLargeSize(t *testing.T) {
	v := versionFromJSON(t, `{"files":[{"filename":"big.jar","url":"https://cdn.modrinth.com/big.jar","primary":true,`+
		`"size":5368709120,"hashes":{"sha512":"`+testSha512+`"}}]}`)

	file, err := BuildPackFile(testPin, v)
	require.NoError(t, err)
	assert.Equal(t, int64(5368709120), file.FileSize)
}

func TestBuildPackFileDotsInFilename(t *testing.T) {
	file, err := BuildPackFile(testPin, versionFromJSON(t, `{"files":[`+fileJSON("sodium..fabric.jar", true)+`]}`))
	require.NoError(t, err)
	assert.Equal(t, "mods/sodium..fabric.jar", file.Path)

	for _, name := range []string{".", "..", "a/b.jar", `a\b.jar`} {
		_, err := BuildPackFile(testPin, versionFromJSON(t, `{"files":[`+fileJSON(name, true)+`]}`))
		var fileErr *core.FileDataError
		assert.ErrorAs(t, err, &fileErr, name)
	}
}
