package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	appDir         = "cinema-booking-cli"
	showsFile      = "shows.json"
	maxRecentShows = 8
)

// RecentShow is a show configuration entered in an earlier session. Only the
// inputs are kept; halls and bookings never leave the process.
type RecentShow struct {
	Title       string `json:"title"`
	Rows        int    `json:"rows"`
	SeatsPerRow int    `json:"seats_per_row"`
}

type showHistory struct {
	Shows []RecentShow `json:"shows"`
}

// LoadRecentShows returns remembered shows, most recent first.
func LoadRecentShows() ([]RecentShow, error) {
	path, err := configPath(showsFile)
	if err != nil {
		return nil, err
	}
	history, found, err := loadJSON[showHistory](path)
	if err != nil {
		return nil, errors.New("invalid show history format")
	}
	if !found {
		return nil, nil
	}
	return history.Shows, nil
}

// RememberShow moves show to the front of the history, dropping an earlier
// entry with the same title (case-insensitive) and dimensions.
func RememberShow(show RecentShow) error {
	show.Title = strings.TrimSpace(show.Title)
	if show.Title == "" {
		return errors.New("show title is required")
	}

	history, _ := LoadRecentShows()
	next := []RecentShow{show}
	for _, existing := range history {
		if sameShow(existing, show) {
			continue
		}
		next = append(next, existing)
		if len(next) >= maxRecentShows {
			break
		}
	}

	path, err := configPath(showsFile)
	if err != nil {
		return err
	}
	return saveJSON(path, showHistory{Shows: next})
}

func sameShow(a, b RecentShow) bool {
	return stringsEqualFold(a.Title, b.Title) && a.Rows == b.Rows && a.SeatsPerRow == b.SeatsPerRow
}

func loadJSON[T any](path string) (T, bool, error) {
	var value T
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return value, false, nil
		}
		return value, false, err
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, false, err
	}
	return value, true, nil
}

func saveJSON[T any](path string, value T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, name), nil
}

func stringsEqualFold(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}
