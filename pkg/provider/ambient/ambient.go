// Package ambient supplies opaque environmental context for journal
// notes: a weather description and a location name. Values are plain
// strings; callers tolerate absence and render a placeholder.
package ambient

import "context"

// Conditions is one snapshot of ambient context. Empty fields mean the
// provider had nothing to report.
type Conditions struct {
	Weather  string
	Location string
}

// Provider fetches ambient conditions at note-creation time.
type Provider interface {
	Conditions(ctx context.Context) (Conditions, error)
}

// Static is a Provider returning fixed configured strings. It backs the
// `ambient` config section; real lookups can replace it without
// touching callers.
type Static struct {
	weather  string
	location string
}

// Compile-time assertion that Static satisfies Provider.
var _ Provider = (*Static)(nil)

// NewStatic returns a Static provider with the given values.
func NewStatic(weather, location string) *Static {
	return &Static{weather: weather, location: location}
}

// Conditions implements Provider.
func (s *Static) Conditions(_ context.Context) (Conditions, error) {
	return Conditions{Weather: s.weather, Location: s.location}, nil
}
