package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/padring/pkg/floorplan"
	"github.com/matzehuels/padring/pkg/layoutio"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	tabActiveStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Underline(true)
)

// inspectCommand creates the inspect command, an interactive browser of the
// instances placed along each side of a layout.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [layout.json]",
		Short: "Browse the pad ring of a layout interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := layoutio.ImportJSON(args[0])
			if err != nil {
				return fmt.Errorf("load layout %s: %w", args[0], err)
			}
			_, err = tea.NewProgram(NewSideListModel(doc), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

// =============================================================================
// SideListModel - Per-side instance browser
// =============================================================================

// SideListModel is the bubbletea model for browsing ring instances side by
// side. Fillers are hidden until toggled with "f".
type SideListModel struct {
	Doc         *layoutio.Document
	Sides       []layoutio.Side
	Side        int
	Cursor      int
	Offset      int
	Height      int
	ShowFillers bool

	bySide map[string][]layoutio.Instance
}

// NewSideListModel creates a side browser for doc.
func NewSideListModel(doc *layoutio.Document) SideListModel {
	bySide := make(map[string][]layoutio.Instance)
	for _, inst := range doc.Instances {
		if inst.Side != "" {
			bySide[inst.Side] = append(bySide[inst.Side], inst)
		}
	}
	return SideListModel{
		Doc:    doc,
		Sides:  doc.Sides,
		Height: 15,
		bySide: bySide,
	}
}

// Rows returns the instances listed for the current side.
func (m SideListModel) Rows() []layoutio.Instance {
	if len(m.Sides) == 0 {
		return nil
	}
	all := m.bySide[m.Sides[m.Side].Side]
	if m.ShowFillers {
		return all
	}
	rows := make([]layoutio.Instance, 0, len(all))
	for _, inst := range all {
		if inst.Kind != string(floorplan.KindFiller) {
			rows = append(rows, inst)
		}
	}
	return rows
}

func (m SideListModel) Init() tea.Cmd {
	return nil
}

func (m SideListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h", "shift+tab":
			if len(m.Sides) > 0 {
				m.Side = (m.Side + len(m.Sides) - 1) % len(m.Sides)
				m.Cursor, m.Offset = 0, 0
			}
		case "right", "l", "tab":
			if len(m.Sides) > 0 {
				m.Side = (m.Side + 1) % len(m.Sides)
				m.Cursor, m.Offset = 0, 0
			}
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows())-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "f":
			m.ShowFillers = !m.ShowFillers
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m SideListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Layout %s", shortID(m.Doc.ID))))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("die %s x %s µm",
		microns(m.Doc.Die.Width, m.Doc.DBUnits), microns(m.Doc.Die.Height, m.Doc.DBUnits))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ side  ↑/↓ navigate  f fillers  q quit"))
	b.WriteString("\n\n")

	if len(m.Sides) == 0 {
		b.WriteString(listDimStyle.Render("no sides"))
		return b.String()
	}

	tabs := make([]string, len(m.Sides))
	for i, s := range m.Sides {
		if i == m.Side {
			tabs[i] = tabActiveStyle.Render(s.Side)
		} else {
			tabs[i] = listDimStyle.Render(s.Side)
		}
	}
	b.WriteString(strings.Join(tabs, "  "))
	b.WriteString("\n")

	side := m.Sides[m.Side]
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d pads · %d fillers · spacing %s µm · depth %s µm",
		side.Pads, side.Fillers, microns(side.Spacing, m.Doc.DBUnits), microns(side.Depth, m.Doc.DBUnits))))
	b.WriteString("\n\n")

	rows := m.Rows()
	end := min(m.Offset+m.Height, len(rows))
	for i := m.Offset; i < end; i++ {
		inst := rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-28s %-28s %10s %10s  %s", cursor, inst.Name, inst.Cell,
			microns(inst.X, m.Doc.DBUnits), microns(inst.Y, m.Doc.DBUnits), inst.Orient)
		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case inst.Kind == string(floorplan.KindFiller):
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(rows)), len(rows))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
