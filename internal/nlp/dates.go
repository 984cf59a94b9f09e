package nlp

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Compile-time assertion that WhenResolver satisfies DateResolver.
var _ DateResolver = (*WhenResolver)(nil)

// WhenResolver resolves fuzzy natural-language date mentions. Relative and
// colloquial forms ("yesterday", "next friday at noon") go through the
// rule-based parser; formatted dates ("2024-03-05", "March 5, 2024") fall
// back to a layout-guessing parser. Best effort only; callers must treat
// a failed resolution as normal.
type WhenResolver struct {
	parser *when.Parser
}

// NewDateResolver builds a resolver with the English and common rule sets.
func NewDateResolver() *WhenResolver {
	p := when.New(nil)
	p.Add(en.All...)
	p.Add(common.All...)
	return &WhenResolver{parser: p}
}

// Resolve implements DateResolver.
func (r *WhenResolver) Resolve(mention string, ref time.Time) (time.Time, bool) {
	mention = strings.TrimSpace(mention)
	if mention == "" {
		return time.Time{}, false
	}

	if res, err := r.parser.Parse(mention, ref); err == nil && res != nil {
		return res.Time, true
	}

	if t, err := dateparse.ParseIn(mention, ref.Location()); err == nil {
		return t, true
	}

	return time.Time{}, false
}
