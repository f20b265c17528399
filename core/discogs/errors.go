package discogs

import "fmt"

// Kind classifies a catalog failure so the presentation boundary can tell
// "no credential" apart from "transport failure" before downgrading either
// to an empty result set.
type Kind int

const (
	// KindAuth means the token is missing or was rejected. When the token
	// is missing locally, no network call was made at all.
	KindAuth Kind = iota
	// KindTransport covers network errors, non-2xx responses and bodies
	// that fail to decode.
	KindTransport
)

// Error is the typed failure returned by the catalog client. Catalog errors
// are advisory: callers render a diagnostic and fall back to empty results,
// they never abort the session.
type Error struct {
	Kind Kind
	Op   string // "search" or "release"
	Err  error
	Msg  string
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("discogs %s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("discogs %s: %s", e.Op, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsAuth reports whether err is a catalog auth failure.
func IsAuth(err error) bool {
	ce, ok := err.(*Error)
	return ok && ce.Kind == KindAuth
}

// IsTransport reports whether err is a catalog transport failure.
func IsTransport(err error) bool {
	ce, ok := err.(*Error)
	return ok && ce.Kind == KindTransport
}
