package model

import "fmt"

type SeatStatus int

const (
	SeatAvailable SeatStatus = iota
	SeatBooked
)

func (s SeatStatus) String() string {
	switch s {
	case SeatAvailable:
		return "AVAILABLE"
	case SeatBooked:
		return "BOOKED"
	default:
		return fmt.Sprintf("SeatStatus(%d)", int(s))
	}
}

func (s SeatStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Seat is one physical seat of a hall. Row 0 is the row nearest the screen.
type Seat struct {
	Row     int        `json:"row"`
	Col     int        `json:"col"`
	Status  SeatStatus `json:"status"`
	OrderID string     `json:"orderId,omitempty"`

	totalRows int
}

func NewSeat(row, col, totalRows int) *Seat {
	return &Seat{
		Row:       row,
		Col:       col,
		Status:    SeatAvailable,
		totalRows: totalRows,
	}
}

// Label returns the display label, e.g. "A01". The row farthest from the
// screen is "A", so the letter is derived from the hall's row count.
func (s *Seat) Label() string {
	return fmt.Sprintf("%c%02d", RowLetter(s.Row, s.totalRows), s.Col+1)
}

func (s *Seat) Available() bool {
	return s.Status == SeatAvailable
}

// Book marks the seat as taken by orderID.
func (s *Seat) Book(orderID string) {
	s.Status = SeatBooked
	s.OrderID = orderID
}

// RowLetter maps an array row index to its display letter.
func RowLetter(row, totalRows int) rune {
	return rune('A' + (totalRows - row - 1))
}

// RowIndex is the inverse of RowLetter. The result is not bounds checked.
func RowIndex(letter rune, totalRows int) int {
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	return totalRows - int(letter-'A') - 1
}
