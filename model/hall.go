package model

import "sync"

const DefaultHallName = "Hall_1"

// Hall is the seat grid of one configured show plus its confirmed orders.
// The grid dimensions never change after NewHall.
type Hall struct {
	Name        string `json:"name"`
	MovieName   string `json:"movieName"`
	Rows        int    `json:"rows"`
	SeatsPerRow int    `json:"seatsPerRow"`

	seats    [][]*Seat
	orders   map[string]Order
	orderIDs []string

	mu sync.Mutex
}

// NewHall builds a hall with every seat available. Dimensions are taken as
// given; range checks belong to the caller.
func NewHall(name, movieName string, rows, seatsPerRow int) *Hall {
	if name == "" {
		name = DefaultHallName
	}
	seats := make([][]*Seat, rows)
	for r := range seats {
		seats[r] = make([]*Seat, seatsPerRow)
		for c := range seats[r] {
			seats[r][c] = NewSeat(r, c, rows)
		}
	}
	return &Hall{
		Name:        name,
		MovieName:   movieName,
		Rows:        rows,
		SeatsPerRow: seatsPerRow,
		seats:       seats,
		orders:      make(map[string]Order),
	}
}

// Seat returns the seat at the given array position, or nil when out of range.
func (h *Hall) Seat(row, col int) *Seat {
	if row < 0 || row >= h.Rows || col < 0 || col >= h.SeatsPerRow {
		return nil
	}
	return h.seats[row][col]
}

// Row returns the seats of one row ordered left to right.
func (h *Hall) Row(row int) []*Seat {
	if row < 0 || row >= h.Rows {
		return nil
	}
	return h.seats[row]
}

func (h *Hall) AvailableSeatCount() int {
	count := 0
	for _, row := range h.seats {
		for _, s := range row {
			if s.Available() {
				count++
			}
		}
	}
	return count
}

func (h *Hall) BookedSeatCount() int {
	return h.Rows*h.SeatsPerRow - h.AvailableSeatCount()
}

func (h *Hall) Capacity() int {
	return h.Rows * h.SeatsPerRow
}

// Orders returns confirmed orders in the order they were first recorded.
func (h *Hall) Orders() []Order {
	out := make([]Order, 0, len(h.orderIDs))
	for _, id := range h.orderIDs {
		out = append(out, h.orders[id])
	}
	return out
}

func (h *Hall) Order(id string) (Order, bool) {
	o, ok := h.orders[id]
	return o, ok
}

// RecordOrder stores order under its id. Recording an existing id replaces
// the stored order but keeps its original position.
func (h *Hall) RecordOrder(order Order) {
	if _, exists := h.orders[order.ID]; !exists {
		h.orderIDs = append(h.orderIDs, order.ID)
	}
	h.orders[order.ID] = order
}

// Lock serializes booking attempts against this hall.
func (h *Hall) Lock() { h.mu.Lock() }

func (h *Hall) Unlock() { h.mu.Unlock() }
