// Package sink writes a [render.Scene] in a concrete output format.
//
// # Overview
//
// Every sink draws items back to front in [render.Scene.PaintOrder], so a
// focused item is drawn last and ends up on top without its stored stack
// order ever changing. Rotations turn each box about its own center.
//
//   - [RenderSVG]: vector output with one rotated group per item
//   - [RenderPNG]: raster output drawn with gg
//   - [RenderJSON]: placements, pixel boxes and effective stack orders
//   - [RenderTerminal]: a colored character grid for previews
//
// Basic usage:
//
//	scene, _ := render.NewScene(cfg, placements, render.WithFocus(3))
//	svg := sink.RenderSVG(scene, sink.WithImageLinks())
//	png, err := sink.RenderPNG(scene, sink.WithScale(2))
//
// [RenderTerminal] ignores rotation; a character cell is too coarse to show
// a few degrees of tilt.
package sink
