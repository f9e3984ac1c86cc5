package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/collage/pkg/catalog"
	"github.com/matzehuels/collage/pkg/pipeline"
	"github.com/matzehuels/collage/pkg/render"
	"github.com/matzehuels/collage/pkg/render/sink"
	"github.com/matzehuels/collage/pkg/scatter/presets"
)

var previewDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var all bool
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Browse a layout in the terminal and move the emphasis",
		Long: `Browse a layout in the terminal.

Arrow keys (or h/l) move the focus to the previous or next item, esc clears
it and q quits. With --all, tab switches between the built-in presets.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.resolveOptions(cmd, &opts)
			m, err := c.newPreviewModel(cmd.Context(), opts, all)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "load every built-in preset (tab switches)")
	addSourceFlags(cmd, &opts)

	return cmd
}

// newPreviewModel lays out one scene per preset to browse.
func (c *CLI) newPreviewModel(ctx context.Context, opts pipeline.Options, all bool) (PreviewModel, error) {
	variants := []pipeline.Options{opts}
	if all && opts.LayoutFile == "" {
		variants = variants[:0]
		for _, name := range presets.Names() {
			v := opts
			v.Preset = name
			variants = append(variants, v)
		}
	}

	runner := c.newRunner()
	scenes := make([]*render.Scene, 0, len(variants))
	for _, v := range variants {
		if err := v.ValidateForLayout(); err != nil {
			return PreviewModel{}, err
		}
		if err := v.ValidateForRender(); err != nil {
			return PreviewModel{}, err
		}
		l, err := runner.Layout(ctx, v)
		if err != nil {
			return PreviewModel{}, err
		}
		scene, err := pipeline.NewScene(l, v)
		if err != nil {
			return PreviewModel{}, err
		}
		scenes = append(scenes, scene)
	}
	return NewPreviewModel(scenes, opts.TermWidth), nil
}

// =============================================================================
// PreviewModel - Interactive layout browser
// =============================================================================

// PreviewModel is the bubbletea model for browsing layouts. Moving the focus
// only changes the emphasis; the geometry of every scene is fixed.
type PreviewModel struct {
	Scenes []*render.Scene
	Active int
	Focus  int
	Width  int
}

// NewPreviewModel creates a preview with nothing focused.
func NewPreviewModel(scenes []*render.Scene, width int) PreviewModel {
	if width <= 0 {
		width = pipeline.DefaultTermWidth
	}
	return PreviewModel{Scenes: scenes, Focus: -1, Width: width}
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		n := m.scene().Len()
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.Focus = -1
		case "right", "l", "down", "j":
			if n > 0 {
				if m.Focus < 0 {
					m.Focus = 0
				} else {
					_, m.Focus = catalog.Neighbors(m.Focus, n)
				}
			}
		case "left", "h", "up", "k":
			if n > 0 {
				if m.Focus < 0 {
					m.Focus = n - 1
				} else {
					m.Focus, _ = catalog.Neighbors(m.Focus, n)
				}
			}
		case "tab":
			if len(m.Scenes) > 1 {
				m.Active = (m.Active + 1) % len(m.Scenes)
				if m.Focus >= m.scene().Len() {
					m.Focus = -1
				}
			}
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.Width = msg.Width
		}
	}
	return m, nil
}

func (m PreviewModel) View() string {
	if len(m.Scenes) == 0 {
		return previewDimStyle.Render("nothing to preview") + "\n"
	}
	s := m.scene().Focus(m.Focus)

	var b strings.Builder
	b.WriteString(StyleTitle.Render(s.Config.Name))
	if len(m.Scenes) > 1 {
		b.WriteString(previewDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Active+1, len(m.Scenes))))
	}
	b.WriteString("\n\n")
	b.WriteString(sink.RenderTerminal(s, m.Width))
	b.WriteString("\n")
	b.WriteString(m.status(s))
	b.WriteString("\n")
	b.WriteString(previewDimStyle.Render("←/→: focus  esc: clear  tab: preset  q: quit"))
	b.WriteString("\n")
	return b.String()
}

// status describes the focused item, or the item count when none is.
func (m PreviewModel) status(s *render.Scene) string {
	if m.Focus < 0 || m.Focus >= s.Len() {
		return previewDimStyle.Render(fmt.Sprintf("%d items", s.Len()))
	}
	p := s.Placements[m.Focus]
	return styleFocus.Render(fmt.Sprintf("#%d %s", m.Focus+1, s.Label(m.Focus))) +
		previewDimStyle.Render(fmt.Sprintf("  stack %d → %d", p.StackOrder, s.StackOrder(m.Focus)))
}

func (m PreviewModel) scene() *render.Scene {
	if len(m.Scenes) == 0 {
		return &render.Scene{}
	}
	return m.Scenes[m.Active]
}
