package modrinth

import (
	"context"
	"fmt"
	"strings"

	"github.com/packwiz/clientpack/core"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// ResolvedMod is a pinned mod that is included in the client pack
type ResolvedMod struct {
	Pin  core.Pin
	File PackFile
}

// Resolution is the outcome of resolving every pin of a request. Included and Excluded are both sorted by mod ID,
// and together contain every pin exactly once.
type Resolution struct {
	Included []ResolvedMod
	Excluded []string
}

type ResolveOptions struct {
	// Workers is the number of pins resolved concurrently; values below 1 resolve one at a time
	Workers int
	// OnResolved is called (possibly concurrently) after each pin is resolved successfully
	OnResolved func(pin core.Pin)
}

// ResolveMods looks up every pin in the registry, leaving out mods that are unsupported on the client.
// The first failure aborts the whole resolution; no partial result is returned.
func ResolveMods(ctx context.Context, registry Registry, req core.ResolutionRequest, opts ResolveOptions) (Resolution, error) {
	type outcome struct {
		file     PackFile
		excluded bool
	}
	// Each goroutine writes only its own slot
	outcomes := make([]outcome, len(req.Pins))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))
	for i, pin := range req.Pins {
		i, pin := i, pin
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			file, included, err := resolveMod(gctx, registry, pin)
			if err != nil {
				return fmt.Errorf("%s: %w", pin, err)
			}
			outcomes[i] = outcome{file: file, excluded: !included}
			if opts.OnResolved != nil {
				opts.OnResolved(pin)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Resolution{}, err
	}

	res := Resolution{
		Included: make([]ResolvedMod, 0, len(req.Pins)),
		Excluded: make([]string, 0),
	}
	for i, o := range outcomes {
		if o.excluded {
			res.Excluded = append(res.Excluded, req.Pins[i].ModID)
		} else {
			res.Included = append(res.Included, ResolvedMod{Pin: req.Pins[i], File: o.file})
		}
	}
	slices.SortFunc(res.Included, func(a, b ResolvedMod) int {
		return strings.Compare(a.Pin.ModID, b.Pin.ModID)
	})
	slices.Sort(res.Excluded)
	return res, nil
}

func resolveMod(ctx context.Context, registry Registry, pin core.Pin) (PackFile, bool, error) {
	logger := core.LoggerFromContext(ctx)

	project, err := registry.GetProject(ctx, pin.ModID)
	if err != nil {
		return PackFile{}, false, err
	}
	if !IncludeOnClient(project) {
		logger.Debug("excluding server-only mod", "mod", pin.ModID)
		return PackFile{}, false, nil
	}

	version, err := registry.GetProjectVersion(ctx, pin.ModID, pin.Version)
	if err != nil {
		return PackFile{}, false, err
	}
	file, err := BuildPackFile(pin, version)
	if err != nil {
		return PackFile{}, false, err
	}
	logger.Debug("resolved mod", "mod", pin.ModID, "version", pin.Version, "path", file.Path)
	return file, true, nil
}
