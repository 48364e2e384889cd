package model

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Colour is an 8-bit RGB triple.
type Colour struct {
	R, G, B uint8
}

// White is the colour new parts start with.
func White() Colour {
	return Colour{R: 255, G: 255, B: 255}
}

// String formats the colour as "R,G,B", the display column format.
func (c Colour) String() string {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

// NRGBA converts to an opaque image colour.
func (c Colour) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// ParseColour reads "R,G,B" with each channel in 0..255. Spaces around the
// channels are allowed.
func ParseColour(s string) (Colour, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return Colour{}, fmt.Errorf("colour %q: expected R,G,B", s)
	}
	var ch [3]uint8
	for i, f := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 8)
		if err != nil {
			return Colour{}, fmt.Errorf("colour %q: channel %d: %w", s, i, err)
		}
		ch[i] = uint8(v)
	}
	return Colour{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// MarshalText keeps the "R,G,B" shape in JSON documents.
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
