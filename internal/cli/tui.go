package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/arborheat/pkg/pipeline"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Tip Table
// =============================================================================

// tipRow is one line of the ranking, longest path first.
type tipRow struct {
	Rank     int // 1-based
	Tip      int // tip index in file order
	Node     int
	Section  string
	Distance float64
	Value    float64
}

// tipRows flattens a ranking into display rows, longest first.
func tipRows(r *pipeline.TipRanking) []tipRow {
	rows := make([]tipRow, len(r.Overlay.Order))
	for i, tip := range r.Overlay.Order {
		end := r.Tips[tip].End
		rows[i] = tipRow{
			Rank:     i + 1,
			Tip:      tip,
			Node:     end.ID,
			Section:  end.Section,
			Distance: r.Overlay.Distances[tip],
			Value:    r.Overlay.Values[tip],
		}
	}
	return rows
}

func (r tipRow) cells(cursor string) []string {
	section := r.Section
	if section == "" {
		section = "—"
	}
	return []string{
		cursor,
		strconv.Itoa(r.Rank),
		strconv.Itoa(r.Tip),
		strconv.Itoa(r.Node),
		section,
		formatLength(r.Distance),
		fmt.Sprintf("%.3f", r.Value),
	}
}

var tipHeaders = []string{"", "Rank", "Tip", "Node", "Section", "Path", "Value"}

// renderTipTable draws rows as a bordered table. cursor is the highlighted
// row index or -1.
func renderTipTable(rows []tipRow, cursor int) string {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		mark := "  "
		if i == cursor {
			mark = "▸ "
		}
		cells[i] = r.cells(mark)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(tipHeaders...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			base := lipgloss.NewStyle()
			if col == 5 {
				base = base.Align(lipgloss.Right)
			}
			if row == cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			if row == 0 {
				return base.Foreground(colorCyan)
			}
			return base.Foreground(colorGray)
		})
	return t.Render()
}

// =============================================================================
// TipListModel - Interactive tip selection
// =============================================================================

// TipListModel is the bubbletea model for picking the path to highlight.
type TipListModel struct {
	Rows     []tipRow
	Cursor   int
	Selected int // rank index of the chosen tip, -1 until enter
	Height   int
	Offset   int
	Title    string
}

// NewTipListModel creates a picker over the given ranking.
func NewTipListModel(title string, r *pipeline.TipRanking) TipListModel {
	return TipListModel{
		Rows:     tipRows(r),
		Selected: -1,
		Height:   15,
		Title:    title,
	}
}

func (m TipListModel) Init() tea.Cmd {
	return nil
}

func (m TipListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Rows) == 0 {
				return m, nil
			}
			m.Selected = m.Cursor
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m TipListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ highlight  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rows))
	b.WriteString(renderTipTable(m.Rows[m.Offset:end], m.Cursor-m.Offset))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}

// pickTip runs the picker and returns the chosen rank index.
func pickTip(title string, r *pipeline.TipRanking) (int, error) {
	if r.Overlay.Len() == 0 {
		return 0, fmt.Errorf("%s has no tips to pick from", title)
	}
	final, err := tea.NewProgram(NewTipListModel(title, r)).Run()
	if err != nil {
		return 0, fmt.Errorf("tip picker: %w", err)
	}
	m := final.(TipListModel)
	if m.Selected < 0 {
		return 0, errPickCancelled
	}
	return m.Selected, nil
}
