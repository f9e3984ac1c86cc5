// Package scatter assigns positions, rotations and stacking to an ordered
// collection of items so that a renderer can draw an editorial, hand-arranged
// looking collage from a handful of programmatic rules.
//
// # Overview
//
// The engine is a pure function of three inputs: the item sequence, a set of
// pattern tables, and a layer configuration. For every item at position i it
// picks
//
//   - a grid span from SpanPatterns[i mod len(SpanPatterns)]
//   - a rotation from RotationPatterns[i mod len(RotationPatterns)]
//   - a size from the item itself, or SizeFallbackPatterns[i mod len] when the
//     item carries no hint
//   - a stack order of BaseLayer + i
//
// The modulo cycling produces a repeating but offset rhythm across large
// collections: visual variety does not need one table entry per item.
//
// # Items
//
// Items are opaque. [ComputePlacements] is generic over the item type and only
// ever looks at an item through the optional [SizeHinter] interface:
//
//	type photo struct{ size scatter.Size }
//
//	func (p photo) SizeHint() (scatter.Size, bool) { return p.size, p.size.Valid() }
//
// # Errors
//
// The only failure is a malformed [Config]: an empty span or rotation table,
// or an empty size fallback table when at least one item needs it. The error
// is reported before any placement is computed, carries the INVALID_CONFIG
// code from pkg/errors, and can be detected with [IsConfigError].
//
// # Emphasis
//
// Stored placements are never mutated. A focused (hovered, selected) item is
// lifted at read time with [EffectiveStackOrder] or an [Emphasis] value, and
// [PaintOrder] returns the back-to-front drawing order that results.
//
// # Concurrency
//
// Nothing in this package holds mutable state. All functions are safe for
// concurrent use; every call allocates its own result.
package scatter
