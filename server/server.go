// Package server exposes the box office over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"cinema-booking-cli/model"
	"cinema-booking-cli/service"
)

type Server struct {
	echo   *echo.Echo
	box    *service.BoxOffice
	logger *logrus.Logger
}

func New(box *service.BoxOffice, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
			})
			if v.Error != nil {
				entry.WithError(v.Error).Warn("Request failed")
				return nil
			}
			entry.Info("Request")
			return nil
		},
	}))

	s := &Server{echo: e, box: box, logger: logger}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.GET("/healthz", health)

	g := s.echo.Group("/v1/halls")
	g.POST("", s.createHall)
	g.GET("", s.listHalls)
	g.GET("/:key", s.getHall)
	g.POST("/:key/quotes", s.quote)
	g.POST("/:key/bookings", s.book)
	g.GET("/:key/bookings", s.listBookings)
	g.GET("/:key/bookings/:id", s.getBooking)
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(addr string) error {
	s.logger.WithField("addr", addr).Info("HTTP server listening")
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

type hallRequest struct {
	Title       string `json:"title"`
	Rows        int    `json:"rows"`
	SeatsPerRow int    `json:"seats_per_row"`
}

type ticketsRequest struct {
	Tickets  int    `json:"tickets"`
	Position string `json:"position"`
}

type rowView struct {
	Row   string `json:"row"`
	Seats string `json:"seats"`
}

type hallView struct {
	Key         string    `json:"key"`
	MovieName   string    `json:"movie_name"`
	HallName    string    `json:"hall_name"`
	Rows        int       `json:"rows"`
	SeatsPerRow int       `json:"seats_per_row"`
	Available   int       `json:"available"`
	Booked      int       `json:"booked"`
	Layout      []rowView `json:"layout,omitempty"`
}

type quoteView struct {
	Tickets int      `json:"tickets"`
	Seats   []string `json:"seats"`
}

func (s *Server) createHall(c echo.Context) error {
	var body hallRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}
	hall, reused, err := s.box.Configure(body.Title, body.Rows, body.SeatsPerRow)
	if err != nil {
		return writeError(c, err)
	}
	status := http.StatusCreated
	if reused {
		status = http.StatusOK
	}
	hall.Lock()
	defer hall.Unlock()
	return c.JSON(status, describeHall(hall, true))
}

func (s *Server) listHalls(c echo.Context) error {
	catalog := s.box.Catalog()
	halls := make([]hallView, 0)
	for _, key := range catalog.Keys() {
		hall, ok := catalog.Lookup(key)
		if !ok {
			continue
		}
		hall.Lock()
		halls = append(halls, describeHall(hall, false))
		hall.Unlock()
	}
	return c.JSON(http.StatusOK, map[string]any{"halls": halls})
}

func (s *Server) getHall(c echo.Context) error {
	hall, err := s.lookup(c)
	if err != nil {
		return writeError(c, err)
	}
	hall.Lock()
	defer hall.Unlock()
	return c.JSON(http.StatusOK, describeHall(hall, true))
}

func (s *Server) quote(c echo.Context) error {
	hall, err := s.lookup(c)
	if err != nil {
		return writeError(c, err)
	}
	var body ticketsRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}
	seats, err := s.box.Quote(hall, body.Tickets, body.Position)
	if err != nil {
		return writeError(c, err)
	}
	labels := make([]string, 0, len(seats))
	for _, seat := range seats {
		labels = append(labels, seat.Label())
	}
	return c.JSON(http.StatusOK, quoteView{Tickets: len(seats), Seats: labels})
}

func (s *Server) book(c echo.Context) error {
	hall, err := s.lookup(c)
	if err != nil {
		return writeError(c, err)
	}
	var body ticketsRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}
	order, err := s.box.Book(c.Request().Context(), hall, body.Tickets, body.Position)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

func (s *Server) listBookings(c echo.Context) error {
	hall, err := s.lookup(c)
	if err != nil {
		return writeError(c, err)
	}
	hall.Lock()
	orders := hall.Orders()
	hall.Unlock()
	return c.JSON(http.StatusOK, map[string]any{"bookings": orders})
}

func (s *Server) getBooking(c echo.Context) error {
	hall, err := s.lookup(c)
	if err != nil {
		return writeError(c, err)
	}
	hall.Lock()
	order, ok := hall.Order(strings.TrimSpace(c.Param("id")))
	hall.Unlock()
	if !ok {
		return c.JSON(http.StatusNotFound, errorBody("booking not found"))
	}
	return c.JSON(http.StatusOK, order)
}

var errHallNotFound = errors.New("hall not found")

func (s *Server) lookup(c echo.Context) (*model.Hall, error) {
	key := c.Param("key")
	if unescaped, err := url.PathUnescape(key); err == nil {
		key = unescaped
	}
	hall, ok := s.box.Catalog().Lookup(key)
	if !ok {
		return nil, errHallNotFound
	}
	return hall, nil
}

// describeHall must be called with the hall locked.
func describeHall(h *model.Hall, withLayout bool) hallView {
	available := h.AvailableSeatCount()
	view := hallView{
		Key:         service.HallKey(h.MovieName, h.Name, h.Rows, h.SeatsPerRow),
		MovieName:   h.MovieName,
		HallName:    h.Name,
		Rows:        h.Rows,
		SeatsPerRow: h.SeatsPerRow,
		Available:   available,
		Booked:      h.Capacity() - available,
	}
	if !withLayout {
		return view
	}
	// Row A (farthest from the screen) first.
	for r := h.Rows - 1; r >= 0; r-- {
		var b strings.Builder
		for _, seat := range h.Row(r) {
			if seat.Available() {
				b.WriteByte('.')
			} else {
				b.WriteByte('#')
			}
		}
		view.Layout = append(view.Layout, rowView{
			Row:   string(model.RowLetter(r, h.Rows)),
			Seats: b.String(),
		})
	}
	return view
}

func writeError(c echo.Context, err error) error {
	switch {
	case service.IsConfiguration(err), service.IsInvalidRequest(err):
		return c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	case service.IsNotConfigured(err), errors.Is(err, errHallNotFound):
		return c.JSON(http.StatusNotFound, errorBody(err.Error()))
	case service.IsInsufficientCapacity(err):
		return c.JSON(http.StatusConflict, errorBody(err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, errorBody("internal error"))
	}
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}
