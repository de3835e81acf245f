package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/arborheat/pkg/morph"
	"github.com/matzehuels/arborheat/pkg/observability"
)

// Load reads one geometry file and reports detached parts as warnings.
func (r *Runner) Load(ctx context.Context, path string) (*morph.Geometry, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	geo, err := morph.ReadFile(path)
	if err != nil {
		hooks.OnLoadComplete(ctx, path, 0, time.Since(start), err)
		return nil, err
	}
	tips := len(geo.Tips())
	hooks.OnLoadComplete(ctx, path, tips, time.Since(start), nil)

	for _, d := range geo.Detached {
		r.Logger.Warn("Ignoring part not connected to the soma", "file", path, "part", d)
	}
	r.Logger.Debug("Loaded geometry", "file", path, "nodes", len(geo.Nodes), "tips", tips)
	return geo, nil
}

// LoadAll reads every path in order.
func (r *Runner) LoadAll(ctx context.Context, paths []string) ([]*morph.Geometry, error) {
	geos := make([]*morph.Geometry, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g, err := r.Load(ctx, p)
		if err != nil {
			return nil, err
		}
		geos = append(geos, g)
	}
	return geos, nil
}
