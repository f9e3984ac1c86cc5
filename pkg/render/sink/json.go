package sink

import (
	"encoding/json"

	"github.com/matzehuels/collage/pkg/render"
	"github.com/matzehuels/collage/pkg/scatter"
)

type jsonOutput struct {
	Name       string       `json:"name,omitempty"`
	Flow       scatter.Flow `json:"flow"`
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	Columns    int          `json:"columns"`
	Rows       int          `json:"rows"`
	Focus      *int         `json:"focus,omitempty"`
	Layer      int          `json:"emphasis_layer"`
	Items      []jsonItem   `json:"items"`
	PaintOrder []int        `json:"paint_order"`
}

type jsonItem struct {
	scatter.Placement
	Label          string      `json:"label"`
	Color          string      `json:"color"`
	Image          string      `json:"image,omitempty"`
	EffectiveStack int         `json:"effective_stack_order"`
	Rect           render.Rect `json:"rect"`
}

// RenderJSON exports the scene: the stored placements, their pixel boxes and
// the effective stack order each item is painted with.
func RenderJSON(s *render.Scene) ([]byte, error) {
	out := jsonOutput{
		Name:       s.Config.Name,
		Flow:       s.Config.FlowOrDefault(),
		Width:      s.Layout.Width,
		Height:     s.Layout.Height,
		Columns:    s.Layout.Columns,
		Rows:       s.Layout.Rows,
		Layer:      s.Emphasis.Layer,
		Items:      make([]jsonItem, s.Len()),
		PaintOrder: s.PaintOrder(),
	}
	if i, ok := s.Emphasis.Focused(); ok {
		out.Focus = &i
	}

	for i, p := range s.Placements {
		out.Items[i] = jsonItem{
			Placement:      p,
			Label:          s.Label(i),
			Color:          s.Color(i),
			Image:          s.Image(i),
			EffectiveStack: s.StackOrder(i),
			Rect:           s.Rect(i),
		}
	}

	return json.MarshalIndent(out, "", "  ")
}
