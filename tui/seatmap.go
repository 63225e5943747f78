package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"cinema-booking-cli/model"
)

var (
	seatStyleAvailable = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	seatStyleBooked    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	seatStyleSelected  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
)

// renderSeatMap draws the hall with the screen on top, so the row nearest
// the screen comes first and row A last. Seats in highlight are drawn as
// this booking.
func renderSeatMap(h *model.Hall, highlight map[string]bool) string {
	if h == nil || h.Rows == 0 || h.SeatsPerRow == 0 {
		return "No seat map data."
	}

	cellWidth := max(2, len(strconv.Itoa(h.SeatsPerRow)))
	rowWidth := 1
	gridWidth := h.SeatsPerRow*(cellWidth+1) - 1
	indent := strings.Repeat(" ", rowWidth+1)

	screenStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("214"))
	screenBorderStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Background(lipgloss.Color("236"))
	screenBar := screenBarBlock(gridWidth, "SCREEN")

	var b strings.Builder
	b.WriteString(indent + screenBorderStyle.Render(screenBar.top) + "\n")
	b.WriteString(indent + screenStyle.Render(screenBar.mid) + "\n")
	b.WriteString(indent + screenBorderStyle.Render(screenBar.bot) + "\n")

	for r := 0; r < h.Rows; r++ {
		b.WriteString(string(model.RowLetter(r, h.Rows)))
		b.WriteString(" ")
		for c, seat := range h.Row(r) {
			token := seatToken(seat, highlight)
			rendered := padCell(token, cellWidth)
			switch token {
			case "O":
				rendered = seatStyleSelected.Render(rendered)
			case "#":
				rendered = seatStyleBooked.Render(rendered)
			default:
				rendered = seatStyleAvailable.Render(rendered)
			}
			b.WriteString(rendered)
			if c < h.SeatsPerRow-1 {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}

	numbers := make([]string, 0, h.SeatsPerRow)
	for c := 1; c <= h.SeatsPerRow; c++ {
		numbers = append(numbers, padCell(strconv.Itoa(c), cellWidth))
	}
	b.WriteString(indent + hint(strings.Join(numbers, " ")) + "\n")
	b.WriteString(hint("Legend: '.'=available, '#'=booked, 'O'=this booking"))
	return b.String()
}

func seatToken(seat *model.Seat, highlight map[string]bool) string {
	switch {
	case highlight[seat.Label()]:
		return "O"
	case !seat.Available():
		return "#"
	default:
		return "."
	}
}

func highlightSet(labels []string) map[string]bool {
	set := make(map[string]bool, len(labels))
	for _, label := range labels {
		set[label] = true
	}
	return set
}

func renderBookingsTable(orders []model.Order) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"ID", "Tickets", "Seats"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, WidthMax: 60},
	})
	for _, order := range orders {
		t.AppendRow(table.Row{order.ID, order.Tickets, strings.Join(order.SeatLabels, ", ")})
	}
	t.SetStyle(table.StyleRounded)
	return t.Render()
}

func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if text == "" {
		return strings.Repeat(" ", width)
	}
	if len(text) >= width {
		return text[:width]
	}
	padding := width - len(text)
	left := padding / 2
	right := padding - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}

type screenBlock struct {
	top string
	mid string
	bot string
}

func screenBarBlock(width int, label string) screenBlock {
	if width < len(label)+4 {
		width = len(label) + 4
	}
	if width < 10 {
		width = 10
	}

	border := "╭" + strings.Repeat("─", width-2) + "╮"
	bottom := "╰" + strings.Repeat("─", width-2) + "╯"

	labelText := " " + label + " "
	padding := width - len(labelText) - 2
	left := padding / 2
	right := padding - left
	mid := "│" + strings.Repeat(" ", left) + labelText + strings.Repeat(" ", right) + "│"
	return screenBlock{top: border, mid: mid, bot: bottom}
}
