package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cinema-booking-cli/model"
	"cinema-booking-cli/service"
	"cinema-booking-cli/store"
)

const exitMessage = "Thank you for using GIC Cinemas system. Bye!"

type appState int

const (
	stateConfigure appState = iota
	stateMenu
	stateTickets
	stateSelectSeats
	stateConfirming
	stateBookings
	stateBookingDetail
)

type appModel struct {
	box  *service.BoxOffice
	show string

	state appState

	width  int
	height int

	hall *model.Hall

	recent      []store.RecentShow
	recentIndex int

	input   textinput.Model
	menu    list.Model
	spinner spinner.Model

	notice      string
	noticeIsErr bool

	tickets int
	order   model.Order
	seats   []*model.Seat
	detail  model.Order

	quitting bool
}

type hallMsg struct {
	hall *model.Hall
	show store.RecentShow
	err  error
}

type confirmedMsg struct {
	order model.Order
}

type menuItem struct {
	key   string
	title string
	desc  string
}

func (i menuItem) Title() string       { return fmt.Sprintf("[%s] %s", i.key, i.title) }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// New builds the interactive box office. A non-empty show ("Title Rows
// SeatsPerRow") is configured on start.
func New(box *service.BoxOffice, show string) tea.Model {
	m := appModel{
		box:         box,
		show:        strings.TrimSpace(show),
		state:       stateConfigure,
		recentIndex: -1,
	}
	m.recent, _ = store.LoadRecentShows()

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 128
	m.input = ti
	m.resetInput("Inception 8 10")

	m.menu = newMenu()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	return m
}

func (m appModel) Init() tea.Cmd {
	if m.show != "" {
		return tea.Batch(m.configureCmd(m.show), textinput.Blink)
	}
	return textinput.Blink
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeMenu()
		return m, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		var handled bool
		m, cmd, handled = m.handleKey(msg)
		if handled {
			return m, cmd
		}
		// fallthrough to component update
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.state == stateConfirming {
			return m, cmd
		}
		return m, nil

	case hallMsg:
		if msg.err != nil {
			m.state = stateConfigure
			if service.IsConfiguration(msg.err) {
				m.setError("Error: " + msg.err.Error())
			} else {
				m.setError(msg.err.Error())
			}
			return m, nil
		}
		m.hall = msg.hall
		if err := store.RememberShow(msg.show); err != nil {
			m.box.Logger().WithField("title", msg.show.Title).WithError(err).Warn("Failed to remember show")
		}
		m.recent, _ = store.LoadRecentShows()
		m.recentIndex = -1
		m.toMenu("")
		return m, nil

	case confirmedMsg:
		m.seats = nil
		m.toMenu(fmt.Sprintf("Booking id: %s confirmed.", msg.order.ID))
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateConfigure, stateTickets, stateSelectSeats, stateBookings:
		m.input, cmd = m.input.Update(msg)
	case stateMenu:
		m.menu, cmd = m.menu.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	if m.quitting {
		return exitMessage + "\n"
	}
	header := m.headerView()
	body := ""
	switch m.state {
	case stateConfigure:
		body = m.configureView()
	case stateMenu:
		body = m.menu.View()
	case stateTickets:
		body = "Enter number of tickets to book, or enter blank to go back to main menu:\n" + m.input.View()
	case stateSelectSeats:
		body = m.selectionView()
	case stateConfirming:
		body = fmt.Sprintf("%s Confirming booking %s", m.spinner.View(), m.order.ID)
	case stateBookings:
		body = "Existing bookings:\n" + renderBookingsTable(m.box.Orders(m.hall)) +
			"\n\nEnter booking id, or enter blank to go back to main menu:\n" + m.input.View()
	case stateBookingDetail:
		body = bookingSummary(m.detail.ID, m.detail.SeatLabels) + "\n\n" +
			m.seatMap(m.detail.SeatLabels)
	}
	return header + "\n\n" + body + m.noticeView()
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("GIC Cinemas")
	meta := ""
	if m.hall != nil {
		available, capacity := m.box.Availability(m.hall)
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf(
			"Movie: %s • Hall: %s • %d/%d seats available",
			m.hall.MovieName, m.hall.Name, available, capacity,
		))
	}
	hints := "ctrl+c quit • esc back • enter submit"
	switch m.state {
	case stateConfigure:
		hints = "ctrl+c quit • enter configure • up/down recent shows"
		if m.hall != nil {
			hints += " • esc back to menu"
		}
	case stateMenu:
		hints = "ctrl+c/q quit • 1-3 or enter select • esc configure another show"
	case stateSelectSeats:
		hints = "ctrl+c quit • esc cancel • enter accept or re-seat"
	case stateBookingDetail:
		hints = "ctrl+c quit • esc/enter back to bookings"
	}
	return title + meta + "\n" + hint(hints)
}

func (m appModel) configureView() string {
	view := "Please define movie title and seating map in [Title] [Row] [SeatsPerRow] format:\n" + m.input.View()
	if len(m.recent) > 0 {
		labels := make([]string, 0, len(m.recent))
		for _, show := range m.recent {
			labels = append(labels, formatShow(show))
		}
		view += "\n\n" + hint("Recent: "+strings.Join(labels, " • "))
	}
	return view
}

func (m appModel) selectionView() string {
	labels := model.SeatLabels(m.seats)
	return bookingSummary(m.order.ID, labels) + "\n\n" +
		m.seatMap(labels) +
		"\n\nEnter blank to accept seat selection, or enter new seating position (B04)\n" +
		m.input.View()
}

// The hall may be written by a confirmation still running in its command
// goroutine, so every read of seat state goes through the box office lock.
func (m appModel) available() int {
	available, _ := m.box.Availability(m.hall)
	return available
}

func (m appModel) seatMap(labels []string) string {
	var chart string
	m.box.Inspect(m.hall, func(h *model.Hall) {
		chart = renderSeatMap(h, highlightSet(labels))
	})
	return chart
}

func (m appModel) noticeView() string {
	if m.notice == "" {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	if m.noticeIsErr {
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	}
	return "\n\n" + style.Render(m.notice)
}

func bookingSummary(id string, labels []string) string {
	return fmt.Sprintf("Booking id: %s\nSelected seats: %s", id, strings.Join(labels, ", "))
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true
	case "esc":
		return m.goBack(), nil, true
	}

	switch m.state {
	case stateConfirming:
		return m, nil, true
	case stateMenu:
		switch msg.String() {
		case "1", "2", "3":
			return m.selectMenu(msg.String())
		case "q":
			return m.selectMenu("3")
		case "enter":
			item, ok := m.menu.SelectedItem().(menuItem)
			if !ok {
				return m, nil, true
			}
			return m.selectMenu(item.key)
		}
	case stateConfigure:
		switch msg.String() {
		case "up":
			m.recallShow(1)
			return m, nil, true
		case "down":
			m.recallShow(-1)
			return m, nil, true
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			if line == "" {
				return m, nil, true
			}
			m.clearNotice()
			return m, m.configureCmd(line), true
		}
	case stateTickets:
		if msg.Type == tea.KeyEnter {
			return m.submitTickets()
		}
	case stateSelectSeats:
		if msg.Type == tea.KeyEnter {
			return m.submitPosition()
		}
	case stateBookings:
		if msg.Type == tea.KeyEnter {
			return m.lookupBooking()
		}
	case stateBookingDetail:
		if msg.Type == tea.KeyEnter {
			return m.goBack(), nil, true
		}
		return m, nil, true
	}
	return m, nil, false
}

func (m appModel) goBack() appModel {
	switch m.state {
	case stateConfigure:
		if m.hall != nil {
			m.toMenu("")
		}
	case stateMenu:
		m.state = stateConfigure
		m.clearNotice()
		m.resetInput("Inception 8 10")
	case stateTickets, stateBookings:
		m.toMenu("")
	case stateSelectSeats:
		m.seats = nil
		m.toMenu("Booking cancelled.")
	case stateBookingDetail:
		m.state = stateBookings
		m.clearNotice()
		m.resetInput("GIC1234abcd")
	}
	return m
}

func (m appModel) selectMenu(key string) (appModel, tea.Cmd, bool) {
	m.clearNotice()
	switch key {
	case "1":
		m.state = stateTickets
		m.resetInput("e.g. 4")
	case "2":
		if len(m.box.Orders(m.hall)) == 0 {
			m.setNotice("No bookings yet.")
			return m, nil, true
		}
		m.state = stateBookings
		m.resetInput("GIC1234abcd")
	case "3":
		m.quitting = true
		return m, tea.Quit, true
	}
	return m, nil, true
}

func (m appModel) submitTickets() (appModel, tea.Cmd, bool) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		m.toMenu("")
		return m, nil, true
	}
	tickets, err := strconv.Atoi(line)
	switch {
	case err != nil:
		m.setError("Please enter a valid integer.")
		return m, nil, true
	case tickets <= 0:
		m.setError("Tickets must be > 0.")
		return m, nil, true
	case tickets > m.available():
		m.setError("Not enough seats available. Try a smaller number.")
		return m, nil, true
	}

	order := m.box.NewOrder(m.hall)
	seats, err := m.box.Quote(m.hall, tickets, "")
	if err != nil {
		m.toMenuWithError(err)
		return m, nil, true
	}
	m.tickets = tickets
	m.order = order
	m.seats = seats
	m.state = stateSelectSeats
	m.clearNotice()
	m.resetInput("B04")
	return m, nil, true
}

func (m appModel) submitPosition() (appModel, tea.Cmd, bool) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		m.state = stateConfirming
		m.clearNotice()
		return m, tea.Batch(m.confirmCmd(), m.spinner.Tick), true
	}
	if _, _, err := service.ParsePosition(line); err != nil {
		m.setError(err.Error())
		m.input.SetValue("")
		return m, nil, true
	}
	seats, err := m.box.Quote(m.hall, m.tickets, line)
	if err != nil {
		m.seats = nil
		m.toMenuWithError(err)
		return m, nil, true
	}
	m.seats = seats
	m.clearNotice()
	m.input.SetValue("")
	return m, nil, true
}

func (m appModel) lookupBooking() (appModel, tea.Cmd, bool) {
	id := strings.TrimSpace(m.input.Value())
	if id == "" {
		m.toMenu("")
		return m, nil, true
	}
	order, ok := m.box.LookupOrder(m.hall, id)
	if !ok {
		m.setError("Invalid booking id.")
		m.input.SetValue("")
		return m, nil, true
	}
	m.detail = order
	m.state = stateBookingDetail
	m.clearNotice()
	return m, nil, true
}

func (m *appModel) recallShow(step int) {
	if len(m.recent) == 0 {
		return
	}
	m.recentIndex += step
	if m.recentIndex >= len(m.recent) {
		m.recentIndex = len(m.recent) - 1
	}
	if m.recentIndex < 0 {
		m.recentIndex = -1
		m.input.SetValue("")
		return
	}
	m.input.SetValue(formatShow(m.recent[m.recentIndex]))
	m.input.CursorEnd()
}

func (m *appModel) toMenu(notice string) {
	m.state = stateMenu
	m.refreshMenu()
	m.input.Blur()
	m.setNotice(notice)
}

func (m *appModel) toMenuWithError(err error) {
	m.toMenu("")
	m.setError("Error: " + err.Error())
}

func (m *appModel) refreshMenu() {
	if m.hall == nil {
		return
	}
	m.menu.SetItems(menuItems(m.hall, m.available()))
	m.menu.Select(0)
}

func (m *appModel) resetInput(placeholder string) {
	m.input.SetValue("")
	m.input.Placeholder = placeholder
	m.input.Focus()
}

func (m *appModel) setNotice(text string) {
	m.notice = text
	m.noticeIsErr = false
}

func (m *appModel) setError(text string) {
	m.notice = text
	m.noticeIsErr = true
}

func (m *appModel) clearNotice() {
	m.notice = ""
	m.noticeIsErr = false
}

func (m *appModel) resizeMenu() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 6
	if h < 10 {
		h = 10
	}
	m.menu.SetSize(m.width, h)
}

func (m appModel) configureCmd(line string) tea.Cmd {
	box := m.box
	return func() tea.Msg {
		show, err := parseShowInput(line)
		if err != nil {
			return hallMsg{err: err}
		}
		hall, err := box.ConfigureHall(show.Title, show.Rows, show.SeatsPerRow)
		return hallMsg{hall: hall, show: show, err: err}
	}
}

func (m appModel) confirmCmd() tea.Cmd {
	box, hall, order, seats := m.box, m.hall, m.order, m.seats
	return func() tea.Msg {
		return confirmedMsg{order: box.Confirm(context.Background(), hall, order, seats)}
	}
}

// parseShowInput reads "[Title] [Rows] [SeatsPerRow]". The title may contain
// spaces; the last two fields are the dimensions.
func parseShowInput(line string) (store.RecentShow, error) {
	tokens := strings.Fields(line)
	if len(tokens) < 3 {
		return store.RecentShow{}, errors.New("invalid format. example: Inception 8 10")
	}
	rows, errRows := strconv.Atoi(tokens[len(tokens)-2])
	seats, errSeats := strconv.Atoi(tokens[len(tokens)-1])
	if errRows != nil || errSeats != nil {
		return store.RecentShow{}, errors.New("last two values must be integers. example: Inception 8 10")
	}
	return store.RecentShow{
		Title:       strings.Join(tokens[:len(tokens)-2], " "),
		Rows:        rows,
		SeatsPerRow: seats,
	}, nil
}

func formatShow(show store.RecentShow) string {
	return fmt.Sprintf("%s %d %d", show.Title, show.Rows, show.SeatsPerRow)
}

func menuItems(h *model.Hall, available int) []list.Item {
	return []list.Item{
		menuItem{
			key:   "1",
			title: fmt.Sprintf("Book tickets for %s (%d seats available)", h.MovieName, available),
			desc:  "Allocate seats and confirm a booking",
		},
		menuItem{key: "2", title: "Check bookings", desc: "Look up a booking by id"},
		menuItem{key: "3", title: "Exit", desc: "Leave the box office"},
	}
}

func newMenu() list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 72, 14)
	l.Title = "Welcome to GIC Cinemas"
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	return l
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

// Farewell returns the goodbye line when the user left through the menu.
// The alt screen hides the final frame, so callers print it after Run.
func Farewell(final tea.Model) (string, bool) {
	m, ok := final.(appModel)
	if !ok || !m.quitting {
		return "", false
	}
	return exitMessage, true
}
