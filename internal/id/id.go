package id

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// New returns a fresh task identifier in the same form taskwarrior uses.
func New() string {
	return uuid.NewString()
}

// IsUUID reports whether ref is a full uuid rather than a short id.
func IsUUID(ref string) bool {
	_, err := uuid.Parse(ref)
	return err == nil
}

// ParseShort parses a working-set alias. Aliases start at 1.
func ParseShort(ref string) (int, error) {
	n, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("invalid short id %q: not a number", ref)
	}
	if n < 1 {
		return 0, fmt.Errorf("invalid short id %q: must be positive", ref)
	}
	return n, nil
}

// Abbrev shortens a uuid to its first block for display.
func Abbrev(full string) string {
	if len(full) > 8 && IsUUID(full) {
		return full[:8]
	}
	return full
}
