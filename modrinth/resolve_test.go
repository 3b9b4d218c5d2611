package modrinth

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/packwiz/clientpack/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveModsExcludesUnsupported(t *testing.T) {
	reg := newFakeRegistry()
	reg.addMod(t, "alpha", "1.0.0", "required")
	reg.addMod(t, "beta", "2.0.0", "unsupported")

	res, err := ResolveMods(context.Background(), reg, pinsRequest(
		core.Pin{ModID: "alpha", Version: "1.0.0"},
		core.Pin{ModID: "beta", Version: "2.0.0"},
	), ResolveOptions{Workers: 2})
	require.NoError(t, err)

	require.Len(t, res.Included, 1)
	assert.Equal(t, "alpha", res.Included[0].Pin.ModID)
	assert.Equal(t, "mods/alpha-1.0.0.jar", res.Included[0].File.Path)
	assert.Equal(t, []string{"beta"}, res.Excluded)
	assert.False(t, reg.called("version beta:2.0.0"), "unsupported mods must not have their files looked up")
}

func TestResolveModsOrderAndConservation(t *testing.T) {
	reg := newFakeRegistry()
	ids := []string{"ae2", "appleskin", "betterf3", "cloth-config", "iris", "lithium", "modmenu", "sodium", "spark", "xaeros"}
	var pins []core.Pin
	for i, id := range ids {
		side := "optional"
		if i%3 == 0 {
			side = "unsupported"
		}
		reg.addMod(t, id, "v1", side)
		pins = append(pins, core.Pin{ModID: id, Version: "v1"})
	}

	var first Resolution
	for _, workers := range []int{1, 3, 16} {
		var resolved atomic.Int32
		res, err := ResolveMods(context.Background(), reg, pinsRequest(pins...), ResolveOptions{
			Workers:    workers,
			OnResolved: func(core.Pin) { resolved.Add(1) },
		})
		require.NoError(t, err)

		assert.Equal(t, len(pins), len(res.Included)+len(res.Excluded))
		assert.Equal(t, int32(len(pins)), resolved.Load())
		assert.IsIncreasing(t, res.Excluded)
		for i := 1; i < len(res.Included); i++ {
			assert.Less(t, res.Included[i-1].Pin.ModID, res.Included[i].Pin.ModID)
		}
		if workers == 1 {
			first = res
		} else {
			assert.Equal(t, first, res, "result must not depend on the number of workers")
		}
	}
	assert.Equal(t, []string{"ae2", "cloth-config", "modmenu", "xaeros"}, first.Excluded)
}

func TestResolveModsUnknownSideIncluded(t *testing.T) {
	reg := newFakeRegistry()
	reg.addMod(t, "mystery", "v1", "unknown")

	res, err := ResolveMods(context.Background(), reg, pinsRequest(core.Pin{ModID: "mystery", Version: "v1"}), ResolveOptions{})
	require.NoError(t, err)
	assert.Len(t, res.Included, 1)
	assert.NotNil(t, res.Excluded)
	assert.Empty(t, res.Excluded)
}

func TestResolveModsFailsFast(t *testing.T) {
	reg := newFakeRegistry()
	reg.addMod(t, "alpha", "1.0.0", "required")
	reg.addMod(t, "beta", "2.0.0", "required")
	reg.errs["project beta"] = &core.RequestError{URL: "/project/beta", Err: errors.New("connection reset")}

	res, err := ResolveMods(context.Background(), reg, pinsRequest(
		core.Pin{ModID: "alpha", Version: "1.0.0"},
		core.Pin{ModID: "beta", Version: "2.0.0"},
	), ResolveOptions{Workers: 1})

	var reqErr *core.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Contains(t, err.Error(), "beta:2.0.0")
	assert.Empty(t, res.Included)
	assert.Empty(t, res.Excluded)
}

func TestResolveModsMissingVersion(t *testing.T) {
	reg := newFakeRegistry()
	reg.addMod(t, "alpha", "1.0.0", "required")

	_, err := ResolveMods(context.Background(), reg, pinsRequest(core.Pin{ModID: "alpha", Version: "9.9.9"}), ResolveOptions{})

	var httpErr *core.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.StatusCode)
}

func TestResolveModsFileDataError(t *testing.T) {
	reg := newFakeRegistry()
	reg.addMod(t, "alpha", "1.0.0", "required")
	reg.versions["alpha:1.0.0"] = versionFromJSON(t, `{"files":[]}`)

	_, err := ResolveMods(context.Background(), reg, pinsRequest(core.Pin{ModID: "alpha", Version: "1.0.0"}), ResolveOptions{})

	var fileErr *core.FileDataError
	assert.ErrorAs(t, err, &fileErr)
}
