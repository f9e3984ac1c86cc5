// Package render turns scatter placements into drawable scenes.
//
// # Overview
//
// The scatter package decides which grid cells, rotation and stack order each
// item gets. This package adds the pixel side:
//
//   - [Frame] describes the canvas (width, gaps, padding, cell height)
//   - [Geometry] maps grid spans to pixel rectangles
//   - [Scene] bundles placements, rectangles, labels and emphasis for sinks
//
// Output formats live in the [sink] subpackage (SVG, PNG, JSON and a
// terminal preview).
//
// # Flows
//
// Fixed flow reads spans as absolute grid lines. Each wrap through the span
// table is drawn one table height further down, so the 13th item of a 12
// slot collage sits where the first one did, one "page" lower.
//
// Dense flow reads spans as extents only and packs them first-fit into
// [scatter.Config.GridColumns] columns, the way CSS grid-auto-flow: dense
// does. Spans wider than the grid are clamped to the grid width.
//
//	placements, _ := scatter.ComputePlacements(items, cfg)
//	scene, err := render.NewScene(cfg, placements, render.WithLabels(labels))
//	svg := sink.RenderSVG(scene)
//
// [sink]: github.com/matzehuels/collage/pkg/render/sink
package render
