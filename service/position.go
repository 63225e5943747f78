package service

import (
	"strconv"
	"strings"
	"unicode"
)

// ParsePosition reads a seat position such as "B04" into its row letter and
// seat number. Bounds are checked by the allocator, not here.
func ParsePosition(input string) (rune, int, error) {
	value := strings.ToUpper(strings.TrimSpace(input))
	runes := []rune(value)
	if len(runes) < 2 {
		return 0, 0, invalidRequest("invalid seat format %q", input)
	}
	if !unicode.IsLetter(runes[0]) {
		return 0, 0, invalidRequest("invalid seat row %q", string(runes[0]))
	}
	number, err := strconv.Atoi(string(runes[1:]))
	if err != nil {
		return 0, 0, invalidRequest("invalid seat number %q", string(runes[1:]))
	}
	return runes[0], number, nil
}
