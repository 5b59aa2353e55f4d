package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orbit/pkg/graph"
	"github.com/matzehuels/orbit/pkg/pipeline"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		plain bool
		lf    layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "inspect [layout.json|graph.json|graph.yaml]",
		Short: "Browse node positions and edge curves",
		Long: `Browse node positions and edge curves.

Layout files (*.layout.json) are shown as-is; graph files are laid out first
using the layout flags. Use tab to switch between nodes and edges, arrows or
j/k to move, q to quit. --plain prints both tables without the interactive
view.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := c.loadLayout(cmd.Context(), args[0], c.options(&lf, nil))
			if err != nil {
				return err
			}
			if plain {
				printLayoutSummary(l)
				fmt.Fprintln(stdout, newInspectModel(l).table(nodesTab, 0, len(l.Nodes)).Render())
				fmt.Fprintln(stdout, newInspectModel(l).table(edgesTab, 0, len(l.Edges)).Render())
				return nil
			}
			_, err = tea.NewProgram(newInspectModel(l), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print tables instead of the interactive view")
	lf.register(cmd)

	return cmd
}

// loadLayout reads a layout file, or lays out a graph file.
func (c *CLI) loadLayout(ctx context.Context, path string, opts pipeline.Options) (graph.Layout, error) {
	if strings.HasSuffix(path, layoutSuffix+".json") {
		return graph.ReadLayoutFile(path)
	}
	g, err := pipeline.ReadGraphFile(ctx, path)
	if err != nil {
		return graph.Layout{}, fmt.Errorf("load graph %s: %w", path, err)
	}
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return graph.Layout{}, err
	}
	defer runner.Close()
	return runner.Layout(ctx, &g, opts)
}

func printLayoutSummary(l graph.Layout) {
	printKeyValue("frame", fmt.Sprintf("%g × %g (margin %g)", l.Width, l.Height, l.Margin))
	printKeyValue("center", fmt.Sprintf("(%.2f, %.2f)", l.Center.CX, l.Center.CY))
	printKeyValue("radius", fmt.Sprintf("%.2f", l.Radius))
	printKeyValue("formula", l.CurveFormula)
	printKeyValue("nodes", fmt.Sprint(len(l.Nodes)))
	printKeyValue("edges", fmt.Sprintf("%d (%d curved)", len(l.Edges), curvedCount(l)))
}

// =============================================================================
// inspectModel - interactive layout browser
// =============================================================================

type inspectTab int

const (
	nodesTab inspectTab = iota
	edgesTab
)

var (
	tabActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Underline(true)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(colorDim)
	rowSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	headerStyle      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

type inspectModel struct {
	layout graph.Layout
	tab    inspectTab
	cursor [2]int
	offset [2]int
	height int
}

func newInspectModel(l graph.Layout) inspectModel {
	return inspectModel{layout: l, height: 15}
}

func (m inspectModel) rows() int {
	if m.tab == nodesTab {
		return len(m.layout.Nodes)
	}
	return len(m.layout.Edges)
}

func (m inspectModel) Init() tea.Cmd { return nil }

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		t := m.tab
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "left", "right", "h", "l":
			m.tab = 1 - m.tab
		case "up", "k":
			if m.cursor[t] > 0 {
				m.cursor[t]--
				if m.cursor[t] < m.offset[t] {
					m.offset[t] = m.cursor[t]
				}
			}
		case "down", "j":
			if m.cursor[t] < m.rows()-1 {
				m.cursor[t]++
				if m.cursor[t] >= m.offset[t]+m.height {
					m.offset[t] = m.cursor[t] - m.height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-10, 5)
	}
	return m, nil
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Layout %g × %g, r = %.2f", m.layout.Width, m.layout.Height, m.layout.Radius)))
	b.WriteString("\n")
	nodes, edges := tabInactiveStyle, tabInactiveStyle
	if m.tab == nodesTab {
		nodes = tabActiveStyle
	} else {
		edges = tabActiveStyle
	}
	b.WriteString(nodes.Render(fmt.Sprintf("Nodes (%d)", len(m.layout.Nodes))) + "  " +
		edges.Render(fmt.Sprintf("Edges (%d)", len(m.layout.Edges))))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("tab switch  ↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	t := m.tab
	end := min(m.offset[t]+m.height, m.rows())
	b.WriteString(m.table(t, m.offset[t], end).Render())
	b.WriteString("\n")
	if m.rows() > 0 {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.cursor[t]+1, m.rows())))
	}
	return b.String()
}

// table renders rows [start, end) of the given tab.
func (m inspectModel) table(tab inspectTab, start, end int) *table.Table {
	var headers []string
	var rows [][]string
	if tab == nodesTab {
		headers = []string{"#", "ID", "Label", "Value", "Angle°", "X", "Y"}
		for i := start; i < end; i++ {
			n := m.layout.Nodes[i]
			rows = append(rows, []string{
				fmt.Sprint(i), n.ID, n.DisplayLabel(), formatValue(n.Value),
				fmt.Sprintf("%.1f", n.Angle*180/math.Pi),
				fmt.Sprintf("%.2f", n.Layout[0]), fmt.Sprintf("%.2f", n.Layout[1]),
			})
		}
	} else {
		headers = []string{"#", "From", "To", "Curvature", "Control"}
		for i := start; i < end; i++ {
			e := m.layout.Edges[i]
			control := "—"
			if c := e.Layout.Control; c != nil {
				control = fmt.Sprintf("(%.2f, %.2f)", c[0], c[1])
			}
			rows = append(rows, []string{fmt.Sprint(i), e.From, e.To, fmt.Sprintf("%g", e.Curvature), control})
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 { // header
				return headerStyle
			}
			if start+row == m.cursor[tab] && tab == m.tab {
				return rowSelectedStyle
			}
			return lipgloss.NewStyle()
		})
}

func formatValue(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%g", *v)
}
