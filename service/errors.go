package service

import (
	"errors"
	"fmt"
)

// ConfigurationError is returned when a hall cannot be built from the given
// title or dimensions.
type ConfigurationError struct {
	Field string
	Min   int
	Max   int
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return "invalid hall configuration"
	}
	if e.Field == "title" {
		return "movie title must not be empty"
	}
	return fmt.Sprintf("%s must be %d - %d", e.Field, e.Min, e.Max)
}

// NotConfiguredError is returned when no hall has been configured yet.
type NotConfiguredError struct{}

func (e *NotConfiguredError) Error() string {
	return "hall not configured"
}

// InvalidRequestError is returned for non-positive ticket counts and
// malformed or out of bounds seat positions. No state is changed.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	if e == nil || e.Reason == "" {
		return "invalid request"
	}
	return e.Reason
}

// InsufficientCapacityError is returned when the requested tickets cannot be
// placed. No state is changed.
type InsufficientCapacityError struct {
	Requested int
	Available int
	Reason    string
}

func (e *InsufficientCapacityError) Error() string {
	if e == nil {
		return "not enough seats"
	}
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("not enough seats: requested %d, available %d", e.Requested, e.Available)
}

// IsConfiguration reports whether err is a ConfigurationError.
func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsNotConfigured reports whether err is a NotConfiguredError.
func IsNotConfigured(err error) bool {
	var target *NotConfiguredError
	return errors.As(err, &target)
}

// IsInvalidRequest reports whether err is an InvalidRequestError.
func IsInvalidRequest(err error) bool {
	var target *InvalidRequestError
	return errors.As(err, &target)
}

// IsInsufficientCapacity reports whether err is an InsufficientCapacityError.
func IsInsufficientCapacity(err error) bool {
	var target *InsufficientCapacityError
	return errors.As(err, &target)
}

func invalidRequest(format string, args ...any) error {
	return &InvalidRequestError{Reason: fmt.Sprintf(format, args...)}
}
