package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidColour is returned by ParseColour for text that is not #RRGGBB.
var ErrInvalidColour = errors.New("invalid colour format")

// Colour is an opaque RGB track colour.
type Colour struct {
	R uint8
	G uint8
	B uint8
}

// DefaultColour is what malformed colour text decodes to.
var DefaultColour = Colour{}

// hexColorRegex validates hex color format.
var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// legacyColourRegex matches the eight digit AARRGGBB form older logs carry.
var legacyColourRegex = regexp.MustCompile(`^#?[0-9A-Fa-f]{8}$`)

// RGB builds a colour from its components.
func RGB(r, g, b uint8) Colour {
	return Colour{R: r, G: g, B: b}
}

// String returns the canonical #RRGGBB form.
func (c Colour) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseColour parses #RRGGBB (the leading # is optional).
func ParseColour(s string) (Colour, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if !hexColorRegex.MatchString(s) {
		return DefaultColour, fmt.Errorf("%w: %q", ErrInvalidColour, s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return DefaultColour, fmt.Errorf("%w: %q", ErrInvalidColour, s)
	}
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// ColourFromString is the lenient decoder used when replaying stored
// history. It accepts everything ParseColour does plus AARRGGBB, and
// returns DefaultColour with ok == false for anything else.
func ColourFromString(s string) (c Colour, ok bool) {
	if c, err := ParseColour(s); err == nil {
		return c, true
	}
	s = strings.TrimSpace(s)
	if !legacyColourRegex.MatchString(s) {
		return DefaultColour, false
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 16, 32)
	if err != nil {
		return DefaultColour, false
	}
	// alpha is dropped
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), true
}

// MarshalText implements encoding.TextMarshaler.
func (c Colour) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Colour) UnmarshalText(text []byte) error {
	parsed, err := ParseColour(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ValidateColor checks if a color string is a valid hex color.
func ValidateColor(color string) bool {
	if color == "" {
		return true
	}
	return hexColorRegex.MatchString(color)
}
