package main

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// setting is one effective configuration value, keyed "section.name".
type setting struct {
	key   string
	value string
}

// renderSettings draws settings as a two-column table with a separator
// between TOML sections. Values are right-aligned so numbers line up.
func renderSettings(settings []setting) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Key", "Value"})

	section := ""
	for i, s := range settings {
		current, _, _ := strings.Cut(s.key, ".")
		if i > 0 && current != section {
			tw.AppendSeparator()
		}
		section = current
		tw.AppendRow(table.Row{s.key, s.value})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
