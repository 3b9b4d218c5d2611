package modrinth

import (
	"context"
	"fmt"
	"time"

	"github.com/packwiz/clientpack/cmdshared"
	"github.com/packwiz/clientpack/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// LoaderSource selects the loader version for a game version
type LoaderSource interface {
	Resolve(ctx context.Context, gameVersion string) core.LoaderSelection
}

type ExportOptions struct {
	Info     PackInfo
	OutDir   string
	Workers  int
	Registry Registry
	Loader   LoaderSource
	// Now is the clock used for the pack version ID; time.Now if nil
	Now        func() time.Time
	OnResolved func(pin core.Pin)
}

type ExportResult struct {
	Pack       Pack
	Loader     core.LoaderSelection
	Resolution Resolution
	Artifacts  Artifacts
}

// StatusLine summarises an export in a single line
func (r ExportResult) StatusLine(gameVersion string) string {
	return fmt.Sprintf("files=%d excluded=%d mc=%s %s=%s", len(r.Pack.Files), len(r.Resolution.Excluded),
		gameVersion, r.Loader.Loader.DependencyKey, r.Loader.Version)
}

// Export resolves a request and writes the client pack. On failure, no artifacts are written.
func Export(ctx context.Context, req core.ResolutionRequest, opts ExportOptions) (ExportResult, error) {
	logger := core.LoggerFromContext(ctx)
	if err := req.Validate(); err != nil {
		return ExportResult{}, err
	}
	if err := opts.Info.Validate(); err != nil {
		return ExportResult{}, err
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	loader := opts.Loader.Resolve(ctx, req.GameVersion)
	logger.Info("selected loader", "loader", loader.Loader.Name, "version", loader.Version, "tier", loader.Tier)

	res, err := ResolveMods(ctx, opts.Registry, req, ResolveOptions{
		Workers:    opts.Workers,
		OnResolved: opts.OnResolved,
	})
	if err != nil {
		return ExportResult{}, err
	}

	pack, err := BuildManifest(opts.Info, req.GameVersion, loader, res, now())
	if err != nil {
		return ExportResult{}, err
	}

	artifacts := ArtifactPaths(opts.OutDir, opts.Info.Slug, req.GameVersion)
	if err := WriteArtifacts(artifacts, pack, res.Excluded); err != nil {
		return ExportResult{}, err
	}
	logger.Debug("wrote artifacts", "index", artifacts.IndexPath, "archive", artifacts.ArchivePath, "report", artifacts.ReportPath)

	return ExportResult{Pack: pack, Loader: loader, Resolution: res, Artifacts: artifacts}, nil
}

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Resolve the pinned mods and export a client-only .mrpack",
	Long: `Resolve every pinned mod against Modrinth, leave out mods that are unsupported on the client, and write
a .mrpack, its modrinth.index.json and a report of the excluded mods`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		pins, err := cmdshared.LoadPins()
		if err != nil {
			cmdshared.ExitWithError(err)
		}
		applyExportOverrides(&pins)

		req, err := pins.Request()
		if err != nil {
			cmdshared.ExitWithError(err)
		}
		info := packInfoFromPins(pins)
		registry, err := newDefaultRegistry()
		if err != nil {
			cmdshared.ExitWithError(err)
		}

		fmt.Printf("Resolving %d pinned mods for Minecraft %s...\n", len(req.Pins), req.GameVersion)
		progress := cmdshared.NewProgress(ctx, "Resolving", len(req.Pins))
		result, err := Export(ctx, req, ExportOptions{
			Info:     info,
			OutDir:   viper.GetString("modrinth.export.output"),
			Workers:  viper.GetInt("modrinth.export.workers"),
			Registry: registry,
			Loader: core.LoaderResolver{
				Loader: core.ModLoaders[req.Loader],
				Client: core.NewHTTPClient(viper.GetDuration("timeout")),
			},
			OnResolved: func(core.Pin) { progress.Increment() },
		})
		progress.Finish(err != nil)
		if err != nil {
			cmdshared.ExitWithError(err)
		}

		for _, modID := range result.Resolution.Excluded {
			fmt.Printf("%s is not supported on the client, excluded\n", modID)
		}
		fmt.Println(result.Artifacts.ArchivePath)
		fmt.Println(result.Artifacts.IndexPath)
		fmt.Println(result.Artifacts.ReportPath)
		fmt.Println(result.StatusLine(req.GameVersion))
	},
}

func applyExportOverrides(pins *core.PinFile) {
	if v := viper.GetString("modrinth.export.mc-version"); v != "" {
		pins.GameVersion = v
	}
	if v := viper.GetString("modrinth.export.loader"); v != "" {
		pins.Loader = v
	}
	if v := viper.GetString("modrinth.export.slug"); v != "" {
		pins.Slug = v
	}
	if v := viper.GetString("modrinth.export.name"); v != "" {
		pins.Name = v
	}
	if v := viper.GetString("modrinth.export.summary"); v != "" {
		pins.Summary = v
	}
}

func packInfoFromPins(pins core.PinFile) PackInfo {
	info := PackInfo{Slug: pins.Slug, Name: pins.Name, Summary: pins.Summary}
	if info.Slug == "" {
		info.Slug = defaultSlug
	}
	if info.Name == "" {
		info.Name = cmdshared.TitleFromName(info.Slug)
	}
	if info.Summary == "" {
		info.Summary = DefaultSummary
	}
	return info
}

const defaultSlug = "client-pack"

func init() {
	modrinthCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("output", "o", ".", "The directory to write the pack files to")
	exportCmd.Flags().IntP("workers", "w", 4, "The number of mods to look up concurrently")
	exportCmd.Flags().String("mc-version", "", "Override the Minecraft version of the pin file")
	exportCmd.Flags().String("loader", "", "Override the mod loader of the pin file (fabric or quilt)")
	exportCmd.Flags().String("slug", "", "Override the pack slug used in the version ID and file names")
	exportCmd.Flags().String("name", "", "Override the pack name")
	exportCmd.Flags().String("summary", "", "Override the pack summary")
	cmdshared.BindFlags("modrinth.export.", exportCmd.Flags())
}
