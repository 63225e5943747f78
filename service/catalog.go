package service

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/exp/maps"

	"cinema-booking-cli/model"
)

// Catalog keeps every hall configured in this session, keyed by title and
// dimensions, and tracks the current hall.
type Catalog struct {
	limits   Limits
	hallName string

	mu      sync.Mutex
	halls   map[string]*model.Hall
	current *model.Hall
}

func NewCatalog(limits Limits, hallName string) *Catalog {
	if hallName == "" {
		hallName = model.DefaultHallName
	}
	return &Catalog{
		limits:   limits.normalized(),
		hallName: hallName,
		halls:    make(map[string]*model.Hall),
	}
}

func (c *Catalog) Limits() Limits {
	return c.limits
}

func (c *Catalog) HallName() string {
	return c.hallName
}

// HallKey builds the catalog key of a show.
func HallKey(title, hallName string, rows, seatsPerRow int) string {
	return fmt.Sprintf("%s_%s_row_%d_col_%d", title, hallName, rows, seatsPerRow)
}

// ConfigureHall returns the hall for the given show, building it on first
// use. Surrounding spaces in the title are ignored. A show configured again
// gets the same hall with its bookings intact.
// Either way the hall becomes current.
func (c *Catalog) ConfigureHall(title string, rows, seatsPerRow int) (*model.Hall, error) {
	hall, _, err := c.configure(title, rows, seatsPerRow)
	return hall, err
}

func (c *Catalog) configure(title string, rows, seatsPerRow int) (*model.Hall, bool, error) {
	title = strings.TrimSpace(title)
	if err := c.limits.Validate(title, rows, seatsPerRow); err != nil {
		return nil, false, err
	}
	key := HallKey(title, c.hallName, rows, seatsPerRow)

	c.mu.Lock()
	defer c.mu.Unlock()
	hall, ok := c.halls[key]
	if !ok {
		hall = model.NewHall(c.hallName, title, rows, seatsPerRow)
		c.halls[key] = hall
	}
	c.current = hall
	return hall, ok, nil
}

// CurrentHall returns the most recently configured hall.
func (c *Catalog) CurrentHall() (*model.Hall, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil, &NotConfiguredError{}
	}
	return c.current, nil
}

func (c *Catalog) Lookup(key string) (*model.Hall, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	hall, ok := c.halls[key]
	return hall, ok
}

// Keys returns every hall key, sorted.
func (c *Catalog) Keys() []string {
	c.mu.Lock()
	keys := maps.Keys(c.halls)
	c.mu.Unlock()
	sort.Strings(keys)
	return keys
}
