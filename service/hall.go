package service

import (
	"strings"

	"cinema-booking-cli/model"
)

const (
	DefaultMaxRows        = 26
	DefaultMaxSeatsPerRow = 50

	// Row labels are single Latin letters.
	maxRowLetters = 26
)

// Limits bounds the dimensions of a hall.
type Limits struct {
	MaxRows        int
	MaxSeatsPerRow int
}

func DefaultLimits() Limits {
	return Limits{MaxRows: DefaultMaxRows, MaxSeatsPerRow: DefaultMaxSeatsPerRow}
}

func (l Limits) normalized() Limits {
	if l.MaxRows < 1 || l.MaxRows > maxRowLetters {
		l.MaxRows = DefaultMaxRows
	}
	if l.MaxSeatsPerRow < 1 {
		l.MaxSeatsPerRow = DefaultMaxSeatsPerRow
	}
	return l
}

// Validate checks a show configuration against the limits.
func (l Limits) Validate(title string, rows, seatsPerRow int) error {
	l = l.normalized()
	if strings.TrimSpace(title) == "" {
		return &ConfigurationError{Field: "title"}
	}
	if rows < 1 || rows > l.MaxRows {
		return &ConfigurationError{Field: "rows", Min: 1, Max: l.MaxRows}
	}
	if seatsPerRow < 1 || seatsPerRow > l.MaxSeatsPerRow {
		return &ConfigurationError{Field: "seats per row", Min: 1, Max: l.MaxSeatsPerRow}
	}
	return nil
}

// NewHall validates the configuration and builds an empty hall.
func NewHall(limits Limits, hallName, title string, rows, seatsPerRow int) (*model.Hall, error) {
	if err := limits.Validate(title, rows, seatsPerRow); err != nil {
		return nil, err
	}
	return model.NewHall(hallName, title, rows, seatsPerRow), nil
}
