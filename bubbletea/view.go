package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/gallery"
)

// View renders the explorer.
func (m *Model) View() string {
	s := m.store.State()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Gallery"))
	b.WriteString("\n\n")

	b.WriteString(m.renderField(fieldKeyword, "Keyword", m.keyword.View()))
	b.WriteString(m.renderField(fieldCulture, "Culture", m.culture.View()))
	b.WriteString(m.renderField(fieldDates, "Dates", m.dates.View()))
	b.WriteString(m.renderField(fieldLocation, "Location", m.locationView()))
	b.WriteString("\n")
	b.WriteString(m.renderFilters(s))
	b.WriteString("\n\n")
	b.WriteString(m.renderResults(s))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(mutedStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.renderHelp())

	return appStyle.Render(b.String())
}

func (m *Model) renderField(f field, label, value string) string {
	style := labelStyle
	if m.focus == f {
		style = focusedLabelStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, style.Render(label), value) + "\n"
}

// locationView shows the live address bar unless the user is editing it.
func (m *Model) locationView() string {
	if m.focus == fieldLocation {
		return m.location.View()
	}
	address := m.address
	if address == "" {
		address = "(default)"
	}
	return locationStyle.Render("?" + address)
}

func (m *Model) renderFilters(s gallery.State) string {
	department := s.Criteria.Department
	if department == "" {
		department = "All departments"
	}
	highlight := "all works"
	if s.Criteria.HighlightOnly {
		highlight = "highlights only"
	}
	parts := []string{
		department,
		highlight,
		"layout: " + string(s.ViewType),
		"sort: " + string(s.SortField),
	}
	if s.Criteria.HasActiveFilters() {
		parts = append(parts, "filtered")
	}
	return mutedStyle.Render(strings.Join(parts, " · "))
}

func (m *Model) renderResults(s gallery.State) string {
	if m.err != nil {
		return errorStyle.Render("Search failed: " + gallery.ErrorMessage(m.err) + " Press any key to retry.")
	}
	if m.results == nil {
		return mutedStyle.Render("Loading...")
	}
	if len(m.results.Results) == 0 {
		return mutedStyle.Render("No objects match these filters.")
	}

	var b strings.Builder
	header := fmt.Sprintf("%d objects", m.results.Total)
	if m.inflight {
		header += " (updating)"
	}
	b.WriteString(mutedStyle.Render(header))
	b.WriteString("\n\n")

	results := sortResults(m.results.Results, s.SortField)
	switch s.ViewType {
	case gallery.ViewGrid:
		b.WriteString(m.renderGrid(results))
	case gallery.ViewCompact:
		for i, o := range results {
			b.WriteString(m.renderLine(i, title(o)))
		}
	default:
		for i, o := range results {
			b.WriteString(m.renderLine(i, describe(o)))
		}
	}

	m.pager.TotalPages = max(1, m.results.TotalPages)
	m.pager.Page = s.Page
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Page " + m.pager.View()))
	return b.String()
}

func (m *Model) renderGrid(results []*gallery.ArtObjectSummary) string {
	const columns = 3
	var rows []string
	for start := 0; start < len(results); start += columns {
		end := min(start+columns, len(results))
		cells := make([]string, 0, columns)
		for i := start; i < end; i++ {
			cell := title(results[i]) + "\n" + mutedStyle.Render(gallery.StringValue(results[i].Artist))
			style := cellStyle
			if i == m.cursor {
				style = style.Inherit(selectedStyle)
			}
			cells = append(cells, style.Render(cell))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}

func (m *Model) renderLine(i int, line string) string {
	if i == m.cursor {
		return selectedStyle.Render("> "+line) + "\n"
	}
	return "  " + line + "\n"
}

func (m *Model) renderHelp() string {
	bindings := m.keys.ShortHelp()
	parts := make([]string, 0, len(bindings))
	for _, k := range bindings {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return mutedStyle.Render(strings.Join(parts, " • "))
}

func title(o *gallery.ArtObjectSummary) string {
	t := gallery.StringValue(o.Title)
	if t == "" {
		t = fmt.Sprintf("Object %d", o.ID)
	}
	if o.IsHighlight {
		t = highlightStyle.Render("★ ") + t
	}
	return t
}

func describe(o *gallery.ArtObjectSummary) string {
	parts := []string{title(o)}
	if a := gallery.StringValue(o.Artist); a != "" {
		parts = append(parts, a)
	}
	if d := gallery.StringValue(o.Date); d != "" {
		parts = append(parts, d)
	}
	if d := gallery.StringValue(o.Department); d != "" {
		parts = append(parts, mutedStyle.Render(d))
	}
	return strings.Join(parts, " · ")
}
