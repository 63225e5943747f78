package model

import "sort"

type Order struct {
	ID         string   `json:"id"`
	MovieName  string   `json:"movieName"`
	Tickets    int      `json:"tickets"`
	SeatLabels []string `json:"seatLabels"`
	HallName   string   `json:"hallName"`
}

// SeatLabels returns the labels of seats sorted lexicographically.
func SeatLabels(seats []*Seat) []string {
	labels := make([]string, 0, len(seats))
	for _, s := range seats {
		labels = append(labels, s.Label())
	}
	sort.Strings(labels)
	return labels
}
