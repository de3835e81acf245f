// Package pipeline provides the core visualization pipeline for arborheat.
//
// This package implements the complete load → scene → render pipeline used by
// every CLI command. By centralizing this logic, the heatmap, highlight and
// compare commands share option handling, logging and instrumentation.
//
// # Architecture
//
// The pipeline consists of three stages, plus an optional fourth:
//
//  1. Load: Read .hoc or .swc geometry files
//  2. Scene: Build a display list (heatmap, highlight or compare)
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//  4. Animate: Rotate the scene into a movie, GIF or image strip
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(nil, logger)
//	opts := pipeline.Options{
//	    Kind:    pipeline.KindHeatmap,
//	    Inputs:  []string{"cell.hoc"},
//	    ThreeD:  true,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	geo, err := runner.Load(ctx, "cell.swc")
//	s, err := runner.BuildScene(ctx, []*morph.Geometry{geo}, opts)
//	artifacts, err := runner.Render(ctx, s, opts)
//	err = runner.Animate(ctx, s, "cell.gif", opts)
package pipeline

import (
	"time"

	"github.com/matzehuels/arborheat/pkg/animate"
	"github.com/matzehuels/arborheat/pkg/errors"
	"github.com/matzehuels/arborheat/pkg/morph"
	"github.com/matzehuels/arborheat/pkg/scene"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default figure width in pixels.
	DefaultWidth = 800

	// DefaultHeight is the default figure height in pixels.
	DefaultHeight = 600

	// DefaultFrameSize is the edge length of square movie frames in pixels.
	DefaultFrameSize = 480
)

// Scene kinds.
const (
	KindHeatmap   = "heatmap"
	KindHighlight = "highlight"
	KindCompare   = "compare"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidKinds is the set of supported scene kinds.
var ValidKinds = map[string]bool{
	KindHeatmap:   true,
	KindHighlight: true,
	KindCompare:   true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
type Options struct {
	// Load options
	Kind   string   // heatmap (default), highlight or compare
	Inputs []string // geometry files; compare takes several

	// Scene options
	ThreeD    bool
	Invert    bool    // black background, white skeleton
	Colormap  string  // empty picks the per-view default
	Max       float64 // colorbar maximum, 0 for the longest path
	Elevation float64
	Azimuth   float64
	LineWidth float64
	Rank      int  // highlight: 0 is the longest path
	Labels    bool // axes, labels and title

	// Render options
	Width     int
	Height    int
	Formats   []string
	EmbedFont bool

	// Animate options
	FrameSize int
	Movie     animate.Options
}

// DefaultOptions returns options for a labeled 2D heatmap rendered as SVG.
func DefaultOptions() Options {
	return Options{
		Kind:      KindHeatmap,
		Elevation: scene.DefaultElevation,
		Azimuth:   scene.DefaultAzimuth,
		Labels:    true,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Formats:   []string{FormatSVG},
		FrameSize: DefaultFrameSize,
		Movie:     animate.DefaultOptions(),
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Geometries are the loaded inputs, in input order.
	Geometries []*morph.Geometry

	// Scene is the display list the artifacts were rendered from.
	Scene *scene.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TipCount   int
	MaxPath    float64
	LoadTime   time.Duration
	SceneTime  time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateKind checks that a scene kind is valid.
func ValidateKind(kind string) error {
	if !ValidKinds[kind] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid kind: %q (must be one of: heatmap, highlight, compare)", kind)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills zero values with their defaults.
func (o *Options) SetDefaults() {
	if o.Kind == "" {
		o.Kind = KindHeatmap
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.FrameSize == 0 {
		o.FrameSize = DefaultFrameSize
	}
	if o.Movie.Angles == 0 {
		o.Movie.Angles = animate.DefaultAngles
	}
}

// Validate sets defaults and checks the options for a full pipeline run.
func (o *Options) Validate() error {
	o.SetDefaults()
	if err := ValidateKind(o.Kind); err != nil {
		return err
	}
	if len(o.Inputs) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no geometry files given")
	}
	if o.Kind != KindCompare && len(o.Inputs) > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "%s takes one geometry file, got %d", o.Kind, len(o.Inputs))
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "figure size %dx%d must be positive", o.Width, o.Height)
	}
	if o.Rank < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "path rank must not be negative, got %d", o.Rank)
	}
	if o.Colormap != "" {
		if err := errors.ValidateColormapName(o.Colormap); err != nil {
			return err
		}
	}
	return ValidateFormats(o.Formats)
}

func (o Options) heatmapOptions() scene.HeatmapOptions {
	return scene.HeatmapOptions{
		Colormap:  o.Colormap,
		Max:       o.Max,
		ThreeD:    o.ThreeD,
		Elevation: o.Elevation,
		Azimuth:   o.Azimuth,
		LineWidth: o.LineWidth,
		Labels:    o.Labels,
	}
}
