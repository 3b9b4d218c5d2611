package modrinth

// Pack is the modrinth.index.json manifest of a .mrpack
type Pack struct {
	FormatVersion uint32            `json:"formatVersion"`
	Game          string            `json:"game"`
	VersionID     string            `json:"versionId"`
	Name          string            `json:"name"`
	Summary       string            `json:"summary,omitempty"`
	Files         []PackFile        `json:"files"`
	Dependencies  map[string]string `json:"dependencies"`
}

type PackFile struct {
	Path      string            `json:"path"`
	Hashes    map[string]string `json:"hashes"`
	Env       *PackFileEnv      `json:"env"`
	Downloads []string          `json:"downloads"`
	FileSize  int64             `json:"fileSize"`
}

// PackFileEnv is the side support of a file; values are "required", "optional" or "unsupported"
type PackFileEnv struct {
	Client string `json:"client"`
	Server string `json:"server"`
}

const (
	packFormatVersion = 1
	packGame          = "minecraft"
	// Every mod is placed in this folder of the instance
	packModsFolder = "mods"
	// packIndexFile is the name of the manifest inside a .mrpack
	packIndexFile = "modrinth.index.json"
)

// clientOnlyEnv is the env of every file in a client pack
func clientOnlyEnv() *PackFileEnv {
	return &PackFileEnv{Client: string(SideRequired), Server: string(SideUnsupported)}
}
