// Package pkg provides the core libraries for collage gallery layouts.
//
// # Overview
//
// Collage assigns every item of a gallery a grid span, a rotation, a stack
// order and a size hint by cycling short pattern tables, then draws the
// result. The pkg directory is organized as:
//
//  1. [scatter] - Placement engine, emphasis and the built-in presets
//  2. [catalog] - Gallery images, categories and projects
//  3. [layoutfile] - User-defined pattern tables in TOML or YAML
//  4. [render] - Geometry and scenes; sinks draw SVG, PNG, JSON and terminal grids
//  5. [pipeline] - Orchestration (resolve → layout → render)
//  6. [server] - HTTP preview of layouts and renders
//
// # Data Flow
//
//	catalog + preset (or layout file)
//	         ↓
//	    [scatter] placements
//	         ↓
//	    [render] geometry + emphasis
//	         ↓
//	    SVG/PNG/JSON/terminal output
//
// Cross-cutting packages: [errors] for coded errors, [observability] for
// layout, render, catalog and server hooks, and [buildinfo] for version data.
package pkg
