package domain

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// GazetteerEntry is a named point. It is never modified after loading.
type GazetteerEntry struct {
	DisplayName string  `json:"name" yaml:"name"`
	Latitude    float64 `json:"lat" yaml:"lat"`
	Longitude   float64 `json:"lng" yaml:"lng"`
}

// Gazetteer is the read-only pair of district and landmark indices.
// A nil *Gazetteer behaves like an empty one.
type Gazetteer struct {
	districts map[string]GazetteerEntry
	landmarks map[string]GazetteerEntry
	// landmarkOrder lists landmark keys longest first, ties in lexical order.
	landmarkOrder []string
}

// NewGazetteer copies the given indices. Landmark keys are trimmed, lower-cased
// and NFC-normalized; empty keys are dropped. When two keys normalize to the
// same string the lexically smaller original wins.
func NewGazetteer(districts, landmarks map[string]GazetteerEntry) *Gazetteer {
	g := &Gazetteer{
		districts: make(map[string]GazetteerEntry, len(districts)),
		landmarks: make(map[string]GazetteerEntry, len(landmarks)),
	}
	for code, e := range districts {
		g.districts[code] = e
	}

	originals := make([]string, 0, len(landmarks))
	for k := range landmarks {
		originals = append(originals, k)
	}
	sort.Strings(originals)
	for _, k := range originals {
		key := normalizeKey(k)
		if key == "" {
			continue
		}
		if _, dup := g.landmarks[key]; dup {
			continue
		}
		g.landmarks[key] = landmarks[k]
		g.landmarkOrder = append(g.landmarkOrder, key)
	}
	sort.Slice(g.landmarkOrder, func(i, j int) bool {
		a, b := g.landmarkOrder[i], g.landmarkOrder[j]
		la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
		if la != lb {
			return la > lb
		}
		return a < b
	})
	return g
}

// EmptyGazetteer returns a gazetteer with no entries.
func EmptyGazetteer() *Gazetteer {
	return NewGazetteer(nil, nil)
}

// District looks up a district by its exact code.
func (g *Gazetteer) District(code string) (GazetteerEntry, bool) {
	if g == nil {
		return GazetteerEntry{}, false
	}
	e, ok := g.districts[code]
	return e, ok
}

// Landmark looks up a landmark by key, normalized the same way as at load.
func (g *Gazetteer) Landmark(key string) (GazetteerEntry, bool) {
	if g == nil {
		return GazetteerEntry{}, false
	}
	e, ok := g.landmarks[normalizeKey(key)]
	return e, ok
}

// LandmarkKeys returns landmark keys in match order.
func (g *Gazetteer) LandmarkKeys() []string {
	if g == nil {
		return nil
	}
	return append([]string(nil), g.landmarkOrder...)
}

// DistrictCount returns the number of district entries.
func (g *Gazetteer) DistrictCount() int {
	if g == nil {
		return 0
	}
	return len(g.districts)
}

// LandmarkCount returns the number of landmark entries.
func (g *Gazetteer) LandmarkCount() int {
	if g == nil {
		return 0
	}
	return len(g.landmarks)
}

func normalizeKey(k string) string {
	return strings.ToLower(normalizeText(strings.TrimSpace(k)))
}
