package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"cinebot/internal/platform/store/migrate"
	usdomain "cinebot/internal/services/usage/domain"
	wldomain "cinebot/internal/services/watchlist/domain"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			PaddingRight(2)

	cellStyle = lipgloss.NewStyle().PaddingRight(2)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

// table is a header plus rows of already formatted cells
type table struct {
	head []string
	rows [][]string
	// empty is printed instead of the table when there are no rows
	empty string
}

func addFormatFlag(cmd *cobra.Command, dst *string) {
	cmd.Flags().StringVarP(dst, "format", "f", "table", "output format: table, yaml or json")
}

func render(w io.Writer, format string, v any, t table) error {
	switch strings.ToLower(format) {
	case "", "table":
		_, err := io.WriteString(w, t.String())
		return err
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown format %q (want table, yaml or json)", format)
	}
}

// String lays the table out in columns sized to the widest cell
func (t table) String() string {
	if len(t.rows) == 0 && t.empty != "" {
		return dimStyle.Render(t.empty) + "\n"
	}
	widths := make([]int, len(t.head))
	for i, h := range t.head {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range t.rows {
		for i, c := range r {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}

	var b strings.Builder
	cells := make([]string, len(t.head))
	for i, h := range t.head {
		cells[i] = headerStyle.Width(widths[i] + 2).Render(h)
	}
	b.WriteString(strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, cells...), " "))
	b.WriteString("\n")
	for _, r := range t.rows {
		for i, c := range r {
			cells[i] = cellStyle.Width(widths[i] + 2).Render(c)
		}
		b.WriteString(strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, cells...), " "))
		b.WriteString("\n")
	}
	return b.String()
}

func statsTable(s usdomain.Stats) table {
	n := func(v int64) string { return countStyle.Render(strconv.FormatInt(v, 10)) }
	return table{
		head: []string{"METRIC", "VALUE"},
		rows: [][]string{
			{"total requests", n(s.Total)},
			{"unique users", n(s.UniqueUsers)},
			{"requests in the last 24h", n(s.Last24h)},
		},
	}
}

func entriesTable(es []wldomain.Entry) table {
	t := table{head: []string{"#", "TYPE", "ID", "ADDED"}, empty: "watchlist is empty"}
	for i, e := range es {
		t.rows = append(t.rows, []string{
			strconv.Itoa(i + 1),
			e.Ref.Type.Label(),
			strconv.FormatInt(e.Ref.ID, 10),
			dimStyle.Render(e.AddedAt.UTC().Format(time.DateTime)),
		})
	}
	return t
}

func migrationsTable(ms []migrate.Migration) table {
	t := table{head: []string{"VERSION", "NAME", "STATE"}, empty: "no migrations"}
	for _, m := range ms {
		state := dimStyle.Render("pending")
		if m.Applied {
			state = countStyle.Render("applied " + m.AppliedAt.UTC().Format(time.DateTime))
		}
		t.rows = append(t.rows, []string{strconv.FormatInt(m.Version, 10), m.Name, state})
	}
	return t
}
