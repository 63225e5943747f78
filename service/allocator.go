package service

import (
	"unicode"

	"cinema-booking-cli/model"
)

// PickFromRow selects up to maxCount available seats from row, starting at the
// middle seat and widening one step at a time, left before right. For an
// even row the middle is the seat right of the midpoint. The row is not
// modified.
func PickFromRow(row []*model.Seat, maxCount int) []*model.Seat {
	n := len(row)
	if n == 0 || maxCount <= 0 {
		return nil
	}
	picked := make([]*model.Seat, 0, min(maxCount, n))
	center := n / 2
	for offset := 0; len(picked) < maxCount; offset++ {
		left, right := center-offset, center+offset
		if left < 0 && right >= n {
			break
		}
		if left >= 0 && row[left].Available() {
			picked = append(picked, row[left])
			if len(picked) == maxCount {
				break
			}
		}
		if right != left && right < n && row[right].Available() {
			picked = append(picked, row[right])
		}
	}
	return picked
}

// AllocateDefault picks seats for tickets without a preferred position:
// rows farthest from the screen first, middle-out within each row.
// Seat state is not changed.
func AllocateDefault(h *model.Hall, tickets int) ([]*model.Seat, error) {
	if err := checkTickets(h, tickets); err != nil {
		return nil, err
	}
	seats := fillRows(h, h.Rows-1, tickets, nil)
	if len(seats) != tickets {
		return nil, &InsufficientCapacityError{
			Requested: tickets,
			Available: h.AvailableSeatCount(),
			Reason:    "cannot allocate seats with default rule",
		}
	}
	return seats, nil
}

// AllocateFromPosition picks seats starting at the given seat and filling to
// the right. Anything left over spills into the rows closer to the screen
// using the default middle-out rule. Seat state is not changed.
func AllocateFromPosition(h *model.Hall, tickets int, rowLetter rune, seatNumber int) ([]*model.Seat, error) {
	if err := checkTickets(h, tickets); err != nil {
		return nil, err
	}
	row := model.RowIndex(unicode.ToUpper(rowLetter), h.Rows)
	col := seatNumber - 1
	if row < 0 || row >= h.Rows || col < 0 || col >= h.SeatsPerRow {
		return nil, invalidRequest("seat %c%02d is out of bounds", unicode.ToUpper(rowLetter), seatNumber)
	}

	seats := make([]*model.Seat, 0, tickets)
	for _, s := range h.Row(row)[col:] {
		if len(seats) == tickets {
			break
		}
		if s.Available() {
			seats = append(seats, s)
		}
	}
	seats = fillRows(h, row-1, tickets, seats)
	if len(seats) != tickets {
		return nil, &InsufficientCapacityError{
			Requested: tickets,
			Available: h.AvailableSeatCount(),
			Reason:    "cannot allocate seats from position",
		}
	}
	return seats, nil
}

// fillRows appends middle-out picks from row `from` down to row 0 until
// tickets seats are collected.
func fillRows(h *model.Hall, from, tickets int, seats []*model.Seat) []*model.Seat {
	for r := from; r >= 0 && len(seats) < tickets; r-- {
		seats = append(seats, PickFromRow(h.Row(r), tickets-len(seats))...)
	}
	return seats
}

func checkTickets(h *model.Hall, tickets int) error {
	if tickets <= 0 {
		return invalidRequest("tickets must be > 0")
	}
	if available := h.AvailableSeatCount(); tickets > available {
		return &InsufficientCapacityError{Requested: tickets, Available: available}
	}
	return nil
}
