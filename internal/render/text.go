package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TextTable renders rows for a terminal. Emphasized domains are bold.
func TextTable(rows []Row) string {
	bold := lipgloss.NewStyle().Bold(true)

	t := table.New().Border(lipgloss.NormalBorder()).StyleFunc(func(row, col int) lipgloss.Style {
		return lipgloss.NewStyle().PaddingRight(1).PaddingLeft(1)
	}).Headers("ID", "Domains", "Sites", "Thumbnail")

	for _, r := range rows {
		sites := make([]string, 0, len(r.Links))
		for _, l := range r.Links {
			if l.Emphasized {
				sites = append(sites, bold.Render(l.Domain))
			} else {
				sites = append(sites, l.Domain)
			}
		}
		t.Row(r.ID, strconv.Itoa(r.DomainCount), strings.Join(sites, " "), r.Thumbnail)
	}

	return t.Render()
}
