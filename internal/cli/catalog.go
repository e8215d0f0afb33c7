package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/avatarkit/pkg/avatar"
)

var headerStyle = lipgloss.NewStyle().Foreground(colorLabel).Bold(true)

// catalogCommand prints every slot and its variants.
func (c *CLI) catalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List feature slots and their variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, catalogTable().Render())
			fmt.Fprintln(out, styleDim.Render("  "+humanize.Comma(int64(avatar.Combinations()))+" combinations"))
			return nil
		},
	}
}

// catalogTable lays the catalog out one slot per row.
func catalogTable() *table.Table {
	rows := make([][]string, 0, len(avatar.Slots()))
	for _, s := range avatar.Slots() {
		vs := avatar.Variants(s)
		rows = append(rows, []string{s.Key(), fmt.Sprint(len(vs)), variantList(s, vs)})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers("Slot", "#", "Variants").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return styleHighlight
			case col == 1:
				return styleValue
			}
			return lipgloss.NewStyle()
		})
}

// variantList joins variants, prefixing colors with a swatch.
func variantList(s avatar.Slot, vs []string) string {
	if !s.IsColor() {
		return strings.Join(vs, ", ")
	}
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = swatch(v) + " " + v
	}
	return strings.Join(parts, "  ")
}

func swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("██")
}
