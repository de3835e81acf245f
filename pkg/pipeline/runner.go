package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arborheat/pkg/animate"
)

// Runner executes pipeline stages with shared logging and instrumentation.
//
// The Runner is stateless except for the encoder and logger; it doesn't
// store pipeline results. Sequential commands can reuse one Runner with
// different options.
type Runner struct {
	Encoder *animate.Encoder
	Logger  *log.Logger
}

// NewRunner creates a runner.
// If enc is nil, an encoder running the real external tools is used.
// If logger is nil, nothing is logged.
func NewRunner(enc *animate.Encoder, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if enc == nil {
		enc = animate.NewEncoder(animate.WithLogger(logger))
	}
	return &Runner{Encoder: enc, Logger: logger}
}

// Execute runs the complete load → scene → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	geos, err := r.LoadAll(ctx, opts.Inputs)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Geometries = geos
	result.Stats.LoadTime = time.Since(loadStart)
	for _, g := range geos {
		result.Stats.TipCount += len(g.Tips())
	}

	r.Logger.Info("loaded geometry",
		"files", len(geos),
		"tips", result.Stats.TipCount,
		"duration", result.Stats.LoadTime)

	// Stage 2: Scene
	sceneStart := time.Now()
	s, err := r.BuildScene(ctx, geos, opts)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	result.Scene = s
	result.Stats.SceneTime = time.Since(sceneStart)
	for _, p := range s.Panels {
		if p.Colorbar != nil && p.Colorbar.Max > result.Stats.MaxPath {
			result.Stats.MaxPath = p.Colorbar.Max
		}
	}

	r.Logger.Info("built scene",
		"kind", opts.Kind,
		"panels", len(s.Panels),
		"duration", result.Stats.SceneTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, s, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}
