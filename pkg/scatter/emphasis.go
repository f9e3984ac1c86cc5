package scatter

import (
	"cmp"
	"slices"
)

// EffectiveStackOrder returns the stack order to paint p with. A focused item
// is raised to at least emphasisLayer; p itself is left untouched.
func EffectiveStackOrder(p Placement, focused bool, emphasisLayer int) int {
	if focused {
		return max(p.StackOrder, emphasisLayer)
	}
	return p.StackOrder
}

// MinEmphasisLayer returns the lowest emphasis layer that lifts a focused item
// above every default stack order of an n item layout built from cfg.
func MinEmphasisLayer(cfg Config, n int) int {
	return cfg.BaseLayer + n
}

// Emphasis is read-time focus state for one layout. The zero value has no
// focused item. Emphasis is a value type: Focus and Clear return updated
// copies.
type Emphasis struct {
	// Layer is the stack order a focused item is lifted to.
	Layer int

	// focus is the focused index plus one; zero means nothing is focused.
	focus int
}

// NewEmphasis returns an Emphasis with no focused item.
func NewEmphasis(layer int) Emphasis {
	return Emphasis{Layer: layer}
}

// Focus returns a copy of e with item i focused. Negative indices clear focus.
func (e Emphasis) Focus(i int) Emphasis {
	if i < 0 {
		e.focus = 0
		return e
	}
	e.focus = i + 1
	return e
}

// Clear returns a copy of e with no focused item.
func (e Emphasis) Clear() Emphasis {
	e.focus = 0
	return e
}

// Focused returns the focused index, if any.
func (e Emphasis) Focused() (int, bool) {
	if e.focus == 0 {
		return 0, false
	}
	return e.focus - 1, true
}

// IsFocused reports whether item i is focused.
func (e Emphasis) IsFocused(i int) bool {
	return e.focus != 0 && e.focus-1 == i
}

// StackOrder returns the effective stack order of p under e.
func (e Emphasis) StackOrder(p Placement) int {
	return EffectiveStackOrder(p, e.IsFocused(p.Index), e.Layer)
}

// PaintOrder returns placement positions sorted back to front by effective
// stack order. Ties keep input order.
func PaintOrder(placements []Placement, e Emphasis) []int {
	order := make([]int, len(placements))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(e.StackOrder(placements[a]), e.StackOrder(placements[b]))
	})
	return order
}
