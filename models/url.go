// Package models declares the typed shapes the decoding strategies
// produce. Nested records are plain composed structs.
package models

import (
	"fmt"
	"net/url"
)

// URL is a parsed URL that decodes from a JSON string through
// encoding.TextUnmarshaler.
type URL struct {
	url.URL
}

// ParseURL parses raw into a URL.
func ParseURL(raw string) (URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return URL{}, fmt.Errorf("parse url %q: %w", raw, err)
	}

	return URL{URL: *u}, nil
}

// MustParseURL is like ParseURL but panics on error.
func MustParseURL(raw string) URL {
	u, err := ParseURL(raw)
	if err != nil {
		panic(err)
	}

	return u
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *URL) UnmarshalText(text []byte) error {
	parsed, err := ParseURL(string(text))
	if err != nil {
		return err
	}

	*u = parsed

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (u URL) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}
