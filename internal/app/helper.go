// internal/app/helper.go
package app

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/table"

	"github.com/HaPhanBaoMinh/segbar/internal/bargraph"
	"github.com/HaPhanBaoMinh/segbar/internal/domain"
	"github.com/HaPhanBaoMinh/segbar/internal/mathx"
)

// paneLayout splits the terminal between the bar and the optional panes.
// chrome is the height taken by header and footer.
func (m *Model) paneLayout(chrome int) (cols, rows, logH int) {
	base := m.height - chrome - 1 - 2 // status line, bar box border
	if base < 4 {
		base = 4
	}

	if m.tableOpen {
		base -= m.tableView.Height() + 3
	}
	if m.logsOpen {
		logH = mathx.Clamp(base/3, 3, 12)
		base -= logH + 3
	}

	cols = m.width - 4 // box border + padding
	rows = base
	if m.widget.State().Orientation == domain.Vertical { // vertical bars stay narrow
		cols = mathx.Clamp(cols, 4, 16)
	}
	return mathx.Clamp(cols, 1, 400), mathx.Clamp(rows, 2, 200), logH
}

// defaultStep is 1% of the level range, or 10mV per cell.
func defaultStep(w bargraph.Widget) float64 {
	st := w.State()
	if _, ok := w.(*bargraph.Battery); ok {
		return 0.01 * float64(st.Cells)
	}
	if span := st.Range.Max - st.Range.Min; span > 0 {
		return span / 100
	}
	return 0.01
}

func newBreakpointTable(w bargraph.Widget) table.Model {
	t := table.New()
	t.SetColumns([]table.Column{
		{Title: "V/cell", Width: 8},
		{Title: "SoC %", Width: 8},
	})

	var rows []table.Row
	if b, ok := w.(*bargraph.Battery); ok {
		for _, bp := range b.Table() {
			rows = append(rows, table.Row{
				fmt.Sprintf("%.3f", bp.Voltage),
				fmt.Sprintf("%.0f", bp.Percent),
			})
		}
	} else {
		st := w.State()
		t.SetColumns([]table.Column{
			{Title: "Input", Width: 10},
			{Title: "Fill", Width: 8},
		})
		rows = append(rows,
			table.Row{fmt.Sprintf("%g", st.Range.Min), "0%"},
			table.Row{fmt.Sprintf("%g", st.Range.Max), "100%"},
		)
	}
	t.SetRows(rows)
	t.SetHeight(mathx.Clamp(len(rows)+1, 3, 16))
	t.SetWidth(24)
	return t
}

func (m Model) liveNames() []string {
	names := make([]string, 0, len(m.live))
	for n := range m.live {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
