package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/arborheat/pkg/errors"
	"github.com/matzehuels/arborheat/pkg/morph"
	"github.com/matzehuels/arborheat/pkg/observability"
	"github.com/matzehuels/arborheat/pkg/ranking"
	"github.com/matzehuels/arborheat/pkg/scene"
)

// BuildScene turns loaded geometries into a scene of the requested kind.
func (r *Runner) BuildScene(ctx context.Context, geos []*morph.Geometry, opts Options) (*scene.Scene, error) {
	opts.SetDefaults()
	hooks := observability.Pipeline()
	hooks.OnSceneStart(ctx, opts.Kind, len(geos))
	start := time.Now()

	s, err := buildScene(geos, opts)
	hooks.OnSceneComplete(ctx, opts.Kind, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if opts.Invert {
		s.Invert()
	}
	return s, nil
}

func buildScene(geos []*morph.Geometry, opts Options) (*scene.Scene, error) {
	switch opts.Kind {
	case KindHeatmap:
		if len(geos) != 1 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "heatmap takes one geometry, got %d", len(geos))
		}
		p, _, err := scene.Heatmap(geos[0], opts.heatmapOptions())
		if err != nil {
			return nil, err
		}
		return scene.New("", opts.Width, opts.Height, p), nil

	case KindHighlight:
		if len(geos) != 1 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "highlight takes one geometry, got %d", len(geos))
		}
		p, _, err := scene.Highlight(geos[0], scene.HighlightOptions{
			Rank:      opts.Rank,
			LineWidth: opts.LineWidth,
			Labels:    opts.Labels,
		})
		if err != nil {
			return nil, err
		}
		return scene.New("", opts.Width, opts.Height, p), nil

	case KindCompare:
		panels, _, err := scene.Compare(geos, opts.heatmapOptions())
		if err != nil {
			return nil, err
		}
		title := ""
		if opts.Labels {
			title = scene.CompareTitle
		}
		return scene.New(title, opts.Width, opts.Height, panels...), nil

	default:
		return nil, ValidateKind(opts.Kind)
	}
}

// TipRanking returns the tips of geo with their path distances, longest first.
type TipRanking struct {
	Tips    []*morph.Segment
	Overlay *ranking.Overlay
}

// RankTips computes the ranking the heatmap colors and highlight ranks use.
func RankTips(geo *morph.Geometry) (*TipRanking, error) {
	tips, dists := morph.NewPathDistanceFinder(geo).TipDistances()
	ov, err := ranking.NewOverlay(dists)
	if err != nil {
		return nil, err
	}
	return &TipRanking{Tips: tips, Overlay: ov}, nil
}
