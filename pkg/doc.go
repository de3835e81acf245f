// Package pkg provides the libraries behind the arborheat command.
//
// # Overview
//
// arborheat colors neuron reconstructions by path distance from the soma.
// The pkg directory is organized by stage:
//
//  1. [morph] - Geometry readers (.hoc, .swc) and path distances
//  2. [ranking] - Tip ordering and normalization for the overlay
//  3. [scene] - Display lists for heatmap, highlight and compare views
//  4. [render] - SVG, PNG and PDF output, movie frames, dendrograms
//  5. [animate] - Frame capture and the external encoders
//  6. [pipeline] - Orchestration (load → scene → render)
//
// # Architecture
//
//	.hoc / .swc file
//	         ↓
//	    [morph] package (Geometry + PathDistanceFinder)
//	         ↓
//	    [ranking] package (draw order + normalized values)
//	         ↓
//	    [scene] package (panels in world coordinates)
//	         ↓
//	    [render] / [io] / [animate]
//	         ↓
//	    SVG/PNG/PDF/JSON or mp4/ogv/gif/strip
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/arborheat/pkg/morph"
//	    "github.com/matzehuels/arborheat/pkg/render"
//	    "github.com/matzehuels/arborheat/pkg/scene"
//	)
//
//	geo, _ := morph.ReadFile("cell.hoc")
//	panel, _, _ := scene.Heatmap(geo, scene.HeatmapOptions{})
//	svg, _ := render.RenderSVG(scene.New("", 800, 600, panel))
//
// # Supporting Packages
//
// [colormap] - Named continuous colormaps blended with go-colorful.
//
// [fonts] - The embedded Go font for raster labels and SVG embedding.
//
// [config] - TOML settings file with defaults.
//
// [errors] - Error codes and typed errors shared by all packages.
//
// [observability] - Hooks around pipeline stages and encoding.
//
// [buildinfo] - Version information injected at build time.
//
// [morph]: https://pkg.go.dev/github.com/matzehuels/arborheat/pkg/morph
// [ranking]: https://pkg.go.dev/github.com/matzehuels/arborheat/pkg/ranking
// [scene]: https://pkg.go.dev/github.com/matzehuels/arborheat/pkg/scene
// [render]: https://pkg.go.dev/github.com/matzehuels/arborheat/pkg/render
// [animate]: https://pkg.go.dev/github.com/matzehuels/arborheat/pkg/animate
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/arborheat/pkg/pipeline
// [io]: https://pkg.go.dev/github.com/matzehuels/arborheat/pkg/io
// [colormap]: https://pkg.go.dev/github.com/matzehuels/arborheat/pkg/colormap
// [fonts]: https://pkg.go.dev/github.com/matzehuels/arborheat/pkg/fonts
// [config]: https://pkg.go.dev/github.com/matzehuels/arborheat/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/arborheat/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/arborheat/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/arborheat/pkg/buildinfo
package pkg
