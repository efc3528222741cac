package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/astrolabe/pkg/canvas"
	"github.com/matzehuels/astrolabe/pkg/placement"
)

var (
	pickerHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	pickerDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// StrategyListModel - Interactive placement strategy selection
// =============================================================================

// strategyOption is one row of the picker: a strategy and where it would
// put the next prompt on the current canvas.
type strategyOption struct {
	Strategy placement.Strategy
	Preview  placement.Result
}

// StrategyListModel is the bubbletea model for picking a placement strategy.
type StrategyListModel struct {
	Options  []strategyOption
	Cursor   int
	Selected *placement.Strategy
}

// NewStrategyListModel previews every strategy against nodes. The cursor
// starts on initial when it is a known strategy.
func NewStrategyListModel(nodes []canvas.Node, initial placement.Strategy) StrategyListModel {
	m := StrategyListModel{Options: make([]strategyOption, len(placement.Strategies))}
	for i, s := range placement.Strategies {
		m.Options[i] = strategyOption{Strategy: s, Preview: placement.Resolve(nodes, s)}
		if s == initial {
			m.Cursor = i
		}
	}
	return m
}

func (m StrategyListModel) Init() tea.Cmd {
	return nil
}

func (m StrategyListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "enter":
		s := m.Options[m.Cursor].Strategy
		m.Selected = &s
		return m, tea.Quit
	}
	return m, nil
}

func (m StrategyListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Placement Strategy"))
	b.WriteString("\n")
	b.WriteString(pickerDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	rows := make([][]string, len(m.Options))
	for i, o := range m.Options {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		pos := fmt.Sprintf("%s, %s", formatCoord(o.Preview.Position.X), formatCoord(o.Preview.Position.Y))
		if o.Preview.Overlapping {
			pos += " !"
		}
		rows[i] = []string{cursor, string(o.Strategy), o.Strategy.Describe(), pos}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Strategy", "Places the prompt", "Position").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return pickerHeaderStyle
			}
			if row < 0 || row >= len(m.Options) {
				return lipgloss.NewStyle()
			}
			current := row == m.Cursor
			overlapping := m.Options[row].Preview.Overlapping

			switch {
			case current && col == 3 && overlapping:
				return lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
			case current:
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			case col == 2:
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}

// pickStrategy runs the picker and returns the chosen strategy, or false
// when the user quit without choosing.
func pickStrategy(nodes []canvas.Node, initial placement.Strategy) (placement.Strategy, bool, error) {
	final, err := tea.NewProgram(NewStrategyListModel(nodes, initial)).Run()
	if err != nil {
		return "", false, err
	}
	fm, ok := final.(StrategyListModel)
	if !ok || fm.Selected == nil {
		return "", false, nil
	}
	return *fm.Selected, true, nil
}
