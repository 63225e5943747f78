package service

import "cinema-booking-cli/model"

// Confirm commits seats to order and records the order on the hall. It is
// the only operation that changes seat state.
//
// Seats are not re-checked: they must come from an allocation made against
// the hall's current state. Confirming a stale allocation, or the same order
// id twice, silently re-books the seats and replaces the stored order.
func Confirm(h *model.Hall, order model.Order, seats []*model.Seat) model.Order {
	for _, s := range seats {
		s.Book(order.ID)
	}
	order.Tickets = len(seats)
	order.SeatLabels = model.SeatLabels(seats)
	order.MovieName = h.MovieName
	order.HallName = h.Name
	h.RecordOrder(order)
	return order
}
