package domain

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MatchKind records which branch of the resolver produced a location.
type MatchKind string

const (
	MatchDistrict MatchKind = "district"
	MatchLandmark MatchKind = "landmark"
	MatchFallback MatchKind = "fallback"
)

// FallbackLocation is the Paris city center, used when nothing else matches.
var FallbackLocation = GazetteerEntry{DisplayName: "Paris", Latitude: 48.8566, Longitude: 2.3522}

var (
	// frenchOrdinalRe matches "1er", "2e", "18ème", "10eme arrondissement".
	frenchOrdinalRe = regexp.MustCompile(`(?i)\b(\d{1,2})(er|e|ème|eme)\s*(?:arrondissement)?\b`)

	// englishOrdinalRe matches "1st", "2nd", "3rd", "18th arrondissement".
	englishOrdinalRe = regexp.MustCompile(`(?i)\b(\d{1,2})(st|nd|rd|th)\s*(?:arrondissement)?\b`)
)

// Location is the single geographic anchor assigned to a text.
type Location struct {
	Name  string
	Lat   float64
	Lng   float64
	Match MatchKind
}

// Resolver maps free text to a Location using the gazetteer.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	gazetteer    *Gazetteer
	patterns     []*regexp.Regexp
	wordBoundary bool
	logger       *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLandmarkWordBoundaries requires landmark keys to start and end at a
// word boundary, so "opéra" no longer matches inside "coopération".
func WithLandmarkWordBoundaries(enabled bool) ResolverOption {
	return func(r *Resolver) { r.wordBoundary = enabled }
}

// WithResolverLogger sets the logger used for match tracing at debug level.
func WithResolverLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = logger }
}

// NewResolver creates a Resolver over g. A nil gazetteer resolves every text
// to the fallback.
func NewResolver(g *Gazetteer, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		gazetteer: g,
		patterns:  []*regexp.Regexp{frenchOrdinalRe, englishOrdinalRe},
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns exactly one location for text: district, landmark, or fallback.
func (r *Resolver) Resolve(text string) Location {
	if strings.TrimSpace(text) == "" {
		return fallback()
	}
	text = normalizeText(text)

	if e, ok := r.matchDistrict(text); ok {
		r.logger.Debug("district match", "location", e.DisplayName)
		return locationFrom(e, MatchDistrict)
	}
	if e, ok := r.matchLandmark(text); ok {
		r.logger.Debug("landmark match", "location", e.DisplayName)
		return locationFrom(e, MatchLandmark)
	}
	r.logger.Debug("no location match, using city center")
	return fallback()
}

// matchDistrict tries each ordinal pattern in order. Only the first regex match
// of each pattern is looked up; an unknown code does not retry other positions.
func (r *Resolver) matchDistrict(text string) (GazetteerEntry, bool) {
	for _, re := range r.patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if e, ok := r.gazetteer.District(m[1]); ok {
			return e, true
		}
	}
	return GazetteerEntry{}, false
}

func (r *Resolver) matchLandmark(text string) (GazetteerEntry, bool) {
	if r.gazetteer == nil {
		return GazetteerEntry{}, false
	}
	lower := strings.ToLower(text)
	for _, key := range r.gazetteer.landmarkOrder {
		if r.contains(lower, key) {
			return r.gazetteer.landmarks[key], true
		}
	}
	return GazetteerEntry{}, false
}

func (r *Resolver) contains(text, key string) bool {
	if !r.wordBoundary {
		return strings.Contains(text, key)
	}
	for offset := 0; offset <= len(text); {
		i := strings.Index(text[offset:], key)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(key)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return false
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func locationFrom(e GazetteerEntry, match MatchKind) Location {
	return Location{Name: e.DisplayName, Lat: e.Latitude, Lng: e.Longitude, Match: match}
}

func fallback() Location {
	return locationFrom(FallbackLocation, MatchFallback)
}
