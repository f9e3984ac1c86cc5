package scatter_test

import (
	"fmt"

	"github.com/matzehuels/collage/pkg/scatter"
)

func ExampleComputePlacements() {
	cfg := scatter.Config{
		SpanPatterns: []scatter.GridSpan{
			scatter.Span(1, 2, 1, 3), // tall
			scatter.Span(1, 2, 1, 2), // small
			scatter.Span(1, 3, 1, 2), // wide
		},
		RotationPatterns:     []float64{-5, 3},
		SizeFallbackPatterns: []scatter.Size{scatter.SizeMedium},
		BaseLayer:            10,
	}

	items := []string{"A", "B", "C", "D"}
	placements, err := scatter.ComputePlacements(items, cfg)
	if err != nil {
		panic(err)
	}

	for _, p := range placements {
		fmt.Printf("%s %s rot=%v z=%d cycle=%d\n", items[p.Index], p.Span, p.Rotation, p.StackOrder, p.Cycle)
	}
	// Output:
	// A col 1/2 row 1/3 rot=-5 z=10 cycle=0
	// B col 1/2 row 1/2 rot=3 z=11 cycle=0
	// C col 1/3 row 1/2 rot=-5 z=12 cycle=0
	// D col 1/2 row 1/3 rot=3 z=13 cycle=1
}

func ExampleEmphasis() {
	cfg := scatter.Config{
		SpanPatterns:         []scatter.GridSpan{scatter.Span(1, 2, 1, 2)},
		RotationPatterns:     []float64{0},
		SizeFallbackPatterns: []scatter.Size{scatter.SizeSmall},
	}
	placements, _ := scatter.ComputePlacements(make([]struct{}, 4), cfg)

	e := scatter.NewEmphasis(1000).Focus(1)
	fmt.Println("focused:", e.StackOrder(placements[1]))
	fmt.Println("paint order:", scatter.PaintOrder(placements, e))

	e = e.Clear()
	fmt.Println("cleared:", e.StackOrder(placements[1]))
	// Output:
	// focused: 1000
	// paint order: [0 2 3 1]
	// cleared: 1
}

func ExampleIsConfigError() {
	_, err := scatter.ComputePlacements([]string{"A"}, scatter.Config{})
	fmt.Println(scatter.IsConfigError(err))
	// Output:
	// true
}
