package buttons

import (
	"fmt"
	"strings"
)

// ButtonId identifies a key of the resistive button pad
type ButtonId uint8

const (
	Left ButtonId = iota
	Up
	Down
	Right
	Commit
	// None means the pad is at rest
	None
	// Unknown is used when a sample matches no configured range
	Unknown
)

var names = map[ButtonId]string{
	Left:    "left",
	Up:      "up",
	Down:    "down",
	Right:   "right",
	Commit:  "commit",
	None:    "none",
	Unknown: "unknown",
}

func (b ButtonId) String() string {
	if name, ok := names[b]; ok {
		return name
	}
	return fmt.Sprintf("ButtonId(%d)", uint8(b))
}

// Glyph returns the character used to show this button on a display
func (b ButtonId) Glyph() rune {
	switch b {
	case Left:
		return '◄'
	case Up:
		return '▲'
	case Down:
		return '▼'
	case Right:
		return '►'
	case Commit:
		return '‼'
	case Unknown:
		return '?'
	case None:
		return ' '
	default:
		return '¿'
	}
}

// IsMovement reports whether b moves the display cursor
func (b ButtonId) IsMovement() bool {
	return b == Left || b == Up || b == Down || b == Right
}

func (b ButtonId) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *ButtonId) UnmarshalText(text []byte) error {
	parsed, err := ParseButtonId(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseButtonId parses the (case-insensitive) name of a button.
// "exec" is accepted as an alias for "commit".
func ParseButtonId(name string) (ButtonId, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "exec" {
		return Commit, nil
	}
	for id, n := range names {
		if n == normalized {
			return id, nil
		}
	}
	return Unknown, fmt.Errorf("unknown button name '%s', use one of: %s", name, strings.Join(Names(), " | "))
}

// Names returns all button names in declaration order
func Names() []string {
	result := make([]string, 0, len(names))
	for id := Left; id <= Unknown; id++ {
		result = append(result, names[id])
	}
	return result
}
