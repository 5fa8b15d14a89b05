package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/familytower/pkg/layout"
	"github.com/matzehuels/familytower/pkg/render"
)

// layoutCommand creates the layout command for printing member positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		reset     bool
		asJSON    bool
		highlight string
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the position of every member",
		Long: `Print the position of every member in the diagram.

Positions are remembered between runs: members keep their place when the
tree grows, and a new member is placed next to the relative it was added to.
Use --reset to forget the remembered positions and lay the tree out again
from scratch.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer r.Close()

			if reset {
				r.Reset(cmd.Context())
				printSuccess("Positions reset")
			}
			g, nodes := r.Diagram(cmd.Context(), highlight)
			if asJSON {
				data, err := render.JSON(render.NewDiagram(nodes, g.Edges, r.Tree.Engine().Options()))
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}
			if len(nodes) == 0 {
				printInfo("The tree is empty")
				return nil
			}
			printLayout(cmd.OutOrStdout(), nodes)
			lo, hi := r.Tree.Engine().Bounds(nodes)
			printDetail("Bounds: (%.0f, %.0f) to (%.0f, %.0f)", lo.X, lo.Y, hi.X, hi.Y)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "forget remembered positions first")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the positioned diagram as JSON")
	cmd.Flags().StringVar(&highlight, "highlight", "", "highlight the path from this member to the root")

	return cmd
}

func printLayout(w io.Writer, nodes []layout.Positioned) {
	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		name := n.Data.DisplayName()
		if n.Highlighted {
			name = StyleHighlight.Render(name)
		}
		rows = append(rows, []string{n.ID, name, fmt.Sprintf("%.0f", n.Position.X), fmt.Sprintf("%.0f", n.Position.Y)})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "X", "Y").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col >= 2 {
				return lipgloss.NewStyle().Foreground(colorCyan).Align(lipgloss.Right)
			}
			return lipgloss.NewStyle()
		})
	fmt.Fprintln(w, t.Render())
}
