// Package io provides JSON import and export for rendered scenes.
//
// # Overview
//
// A saved scene is the complete display list of a figure: every polyline and
// marker in world coordinates with its color, the camera of each panel, the
// colorbar and the labels. Saving it lets a figure be re-rendered later at a
// different size or format, rotated into a movie, or inverted, without
// re-reading the geometry.
//
// # JSON Format
//
//	{
//	  "version": 1,
//	  "title": "Heatmap of Neuron Colored by Path Length",
//	  "width": 1200,
//	  "height": 900,
//	  "background": "#ffffff",
//	  "foreground": "#000000",
//	  "columns": 1,
//	  "panels": [
//	    {
//	      "title": "cell",
//	      "show_axes": true,
//	      "view": {"three_d": true, "elevation": 30, "azimuth": -60},
//	      "polylines": [
//	        {"points": [{"x": 0, "y": 0, "z": 0}, {"x": 10, "y": 0, "z": 0}],
//	         "color": "#000000", "alpha": 0.5, "width": 2, "role": "skeleton"}
//	      ],
//	      "markers": [
//	        {"at": {"x": 0, "y": 0, "z": 0}, "color": "#000000", "alpha": 0.9, "radius": 5, "role": "soma"}
//	      ],
//	      "colorbar": {"colormap": "viridis", "min": 0, "max": 412.5, "label": "Path Length (um)"}
//	    }
//	  ]
//	}
//
// # Import
//
// Use [ImportJSON] to read a scene from a file path, or [ReadJSON] to read
// from any io.Reader. Both validate the decoded scene, so a scene that loads
// is a scene that renders.
//
// # Export
//
// Use [ExportJSON] to write a scene to a file, or [WriteJSON] to write to any
// io.Writer. Export also validates, so invalid scenes are never written.
package io
