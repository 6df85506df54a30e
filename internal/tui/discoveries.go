package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"
)

var discoveryColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "X", Width: 10},
	{Title: "Y", Width: 10},
	{Title: "Time", Width: 10},
}

// refreshDiscoveries rebuilds the table rows from the session log.
func (m *Model) refreshDiscoveries() {
	rows := make([]table.Row, 0, len(m.log.discoveries))
	for i, d := range m.log.discoveries {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%g", d.Point.X),
			fmt.Sprintf("%g", d.Point.Y),
			d.Time.Format("15:04:05"),
		})
	}
	m.tbl.SetRows(rows)
	if len(rows) > 0 {
		m.tbl.SetCursor(len(rows) - 1)
	}
}
