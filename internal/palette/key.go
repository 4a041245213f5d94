package palette

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidColorFormat is returned when a colour string is not six hex
// digits with an optional leading '#'.
var ErrInvalidColorFormat = errors.New("invalid color format")

// Key is a 24-bit RGB colour packed as 0xRRGGBB.
//
// Key is used both as the frequency-table key and as the public colour
// value; String renders it as "#rrggbb".
type Key uint32

// DefaultFallback is the colour returned when no sample survives filtering.
const DefaultFallback Key = 0xFF6EB4

// RGBKey packs three 8-bit channels into a Key.
func RGBKey(r, g, b uint8) Key {
	return Key(r)<<16 | Key(g)<<8 | Key(b)
}

// RGB unpacks the red, green and blue channels.
func (k Key) RGB() (r, g, b uint8) {
	return uint8(k >> 16), uint8(k >> 8), uint8(k)
}

// String returns the lowercase, zero-padded "#rrggbb" form.
func (k Key) String() string {
	return fmt.Sprintf("#%06x", uint32(k)&0xFFFFFF)
}

// MarshalText implements encoding.TextMarshaler so Keys encode as hex in JSON.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKey parses "#rrggbb" or "rrggbb" (either case) into a Key.
//
// Anything else, including shorthand "#rgb" and alpha forms, fails with an
// error wrapping ErrInvalidColorFormat.
func ParseKey(s string) (Key, error) {
	hex := s
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return 0, fmt.Errorf("%w: %q must have 6 hex digits", ErrInvalidColorFormat, s)
	}
	// ParseUint alone would accept a leading sign or underscores.
	for i := 0; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return 0, fmt.Errorf("%w: %q contains non-hex character %q", ErrInvalidColorFormat, s, hex[i])
		}
	}
	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidColorFormat, s, err)
	}
	return Key(val), nil
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
