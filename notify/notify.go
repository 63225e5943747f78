// Package notify publishes booking events to interested parties.
package notify

import (
	"context"

	"github.com/sirupsen/logrus"
)

// BookingConfirmedQueue is the queue that receives BookingConfirmed events.
const BookingConfirmedQueue = "booking.confirmed"

// BookingConfirmed is published after an order has been committed to a hall.
type BookingConfirmed struct {
	OrderID     string   `json:"order_id"`
	MovieName   string   `json:"movie_name"`
	HallName    string   `json:"hall_name"`
	Tickets     int      `json:"tickets"`
	SeatLabels  []string `json:"seats"`
	ConfirmedAt string   `json:"confirmed_at"`
}

type Publisher interface {
	PublishBookingConfirmed(ctx context.Context, event BookingConfirmed) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) PublishBookingConfirmed(context.Context, BookingConfirmed) error { return nil }

// LogPublisher writes events to a logger instead of a broker.
type LogPublisher struct {
	Logger *logrus.Logger
}

func NewLogPublisher(logger *logrus.Logger) *LogPublisher {
	return &LogPublisher{Logger: logger}
}

func (p *LogPublisher) PublishBookingConfirmed(_ context.Context, event BookingConfirmed) error {
	if p == nil || p.Logger == nil {
		return nil
	}
	p.Logger.WithFields(logrus.Fields{
		"order_id":     event.OrderID,
		"movie":        event.MovieName,
		"hall":         event.HallName,
		"tickets":      event.Tickets,
		"seats":        event.SeatLabels,
		"confirmed_at": event.ConfirmedAt,
	}).Info("Booking confirmed")
	return nil
}
