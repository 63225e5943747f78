package service

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"cinema-booking-cli/model"
	"cinema-booking-cli/notify"
)

const (
	DefaultOrderPrefix = "GIC"
	publishTimeout     = 5 * time.Second
)

// BoxOffice is the entry point used by the front ends. It serializes every
// allocation and confirmation of a hall behind the hall's lock and announces
// confirmed orders through a notify.Publisher.
type BoxOffice struct {
	catalog   *Catalog
	publisher notify.Publisher
	logger    *logrus.Logger
	prefix    string
	newID     func() string
	now       func() time.Time
}

type Option func(*BoxOffice)

func WithPublisher(p notify.Publisher) Option {
	return func(b *BoxOffice) {
		if p != nil {
			b.publisher = p
		}
	}
}

func WithLogger(l *logrus.Logger) Option {
	return func(b *BoxOffice) {
		if l != nil {
			b.logger = l
		}
	}
}

func WithOrderPrefix(prefix string) Option {
	return func(b *BoxOffice) {
		b.prefix = prefix
	}
}

func NewBoxOffice(catalog *Catalog, opts ...Option) *BoxOffice {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	b := &BoxOffice{
		catalog:   catalog,
		publisher: notify.Nop{},
		logger:    discard,
		prefix:    DefaultOrderPrefix,
		newID:     func() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:8] },
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *BoxOffice) Catalog() *Catalog {
	return b.catalog
}

func (b *BoxOffice) Logger() *logrus.Logger {
	return b.logger
}

// ConfigureHall is Catalog.ConfigureHall with logging.
func (b *BoxOffice) ConfigureHall(title string, rows, seatsPerRow int) (*model.Hall, error) {
	hall, _, err := b.Configure(title, rows, seatsPerRow)
	return hall, err
}

// Configure is ConfigureHall that also reports whether an existing hall was
// reused.
func (b *BoxOffice) Configure(title string, rows, seatsPerRow int) (*model.Hall, bool, error) {
	hall, reused, err := b.catalog.configure(title, rows, seatsPerRow)
	if err != nil {
		b.logger.WithFields(logrus.Fields{
			"title":         title,
			"rows":          rows,
			"seats_per_row": seatsPerRow,
		}).WithError(err).Debug("Hall configuration rejected")
		return nil, false, err
	}
	b.logger.WithFields(logrus.Fields{
		"movie":         hall.MovieName,
		"hall":          hall.Name,
		"rows":          hall.Rows,
		"seats_per_row": hall.SeatsPerRow,
		"reused":        reused,
	}).Info("Hall configured")
	return hall, reused, nil
}

// NewOrder drafts an order with an id not yet used in h.
func (b *BoxOffice) NewOrder(h *model.Hall) model.Order {
	h.Lock()
	defer h.Unlock()
	for {
		id := b.prefix + b.newID()
		if _, taken := h.Order(id); !taken {
			return model.Order{ID: id, MovieName: h.MovieName, HallName: h.Name}
		}
	}
}

// Quote allocates seats without booking them. An empty position selects the
// default placement; otherwise it is a seat such as "B04".
func (b *BoxOffice) Quote(h *model.Hall, tickets int, position string) ([]*model.Seat, error) {
	h.Lock()
	defer h.Unlock()
	return allocate(h, tickets, position)
}

// Confirm commits a quoted allocation. The caller must not have let another
// confirmation happen on h since the quote was taken.
func (b *BoxOffice) Confirm(ctx context.Context, h *model.Hall, order model.Order, seats []*model.Seat) model.Order {
	h.Lock()
	confirmed := Confirm(h, order, seats)
	h.Unlock()

	b.announce(ctx, confirmed)
	return confirmed
}

// Book allocates and confirms in one critical section, so concurrent callers
// can never be handed the same seats.
func (b *BoxOffice) Book(ctx context.Context, h *model.Hall, tickets int, position string) (model.Order, error) {
	order := b.NewOrder(h)

	h.Lock()
	seats, err := allocate(h, tickets, position)
	if err != nil {
		h.Unlock()
		return model.Order{}, err
	}
	confirmed := Confirm(h, order, seats)
	h.Unlock()

	b.announce(ctx, confirmed)
	return confirmed, nil
}

func (b *BoxOffice) announce(ctx context.Context, order model.Order) {
	fields := logrus.Fields{
		"order_id": order.ID,
		"movie":    order.MovieName,
		"hall":     order.HallName,
		"tickets":  order.Tickets,
		"seats":    strings.Join(order.SeatLabels, ","),
	}
	b.logger.WithFields(fields).Info("Order confirmed")

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	event := notify.BookingConfirmed{
		OrderID:     order.ID,
		MovieName:   order.MovieName,
		HallName:    order.HallName,
		Tickets:     order.Tickets,
		SeatLabels:  order.SeatLabels,
		ConfirmedAt: b.now().UTC().Format(time.RFC3339),
	}
	if err := b.publisher.PublishBookingConfirmed(ctx, event); err != nil {
		b.logger.WithFields(fields).WithError(err).Warn("Failed to publish booking confirmation")
	}
}

// Availability returns the free seats and capacity of h.
func (b *BoxOffice) Availability(h *model.Hall) (available, capacity int) {
	h.Lock()
	defer h.Unlock()
	return h.AvailableSeatCount(), h.Capacity()
}

// Orders returns the confirmed orders of h in booking order.
func (b *BoxOffice) Orders(h *model.Hall) []model.Order {
	h.Lock()
	defer h.Unlock()
	return h.Orders()
}

func (b *BoxOffice) LookupOrder(h *model.Hall, id string) (model.Order, bool) {
	h.Lock()
	defer h.Unlock()
	return h.Order(id)
}

// Inspect runs fn while holding the lock of h. fn must not call back into b
// for the same hall.
func (b *BoxOffice) Inspect(h *model.Hall, fn func(*model.Hall)) {
	h.Lock()
	defer h.Unlock()
	fn(h)
}

func allocate(h *model.Hall, tickets int, position string) ([]*model.Seat, error) {
	if strings.TrimSpace(position) == "" {
		return AllocateDefault(h, tickets)
	}
	row, number, err := ParsePosition(position)
	if err != nil {
		return nil, err
	}
	return AllocateFromPosition(h, tickets, row, number)
}
