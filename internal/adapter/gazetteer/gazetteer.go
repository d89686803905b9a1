// Package gazetteer loads the curated district and landmark dataset used by
// the location resolver.
package gazetteer

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/couchcryptid/city-news-etl/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed data/paris.json
var defaultDataset []byte

// Format selects the decoder for a dataset.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Index names used in Problem reports and metrics labels.
const (
	IndexDistricts = "districts"
	IndexLandmarks = "landmarks"
)

// Problem describes one skipped entry.
type Problem struct {
	Index  string
	Key    string
	Reason string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s[%q]: %s", p.Index, p.Key, p.Reason)
}

// document mirrors the file layout. "arrondissements" is an alias of "districts".
type document struct {
	Districts       map[string]any `json:"districts" yaml:"districts"`
	Arrondissements map[string]any `json:"arrondissements" yaml:"arrondissements"`
	Landmarks       map[string]any `json:"landmarks" yaml:"landmarks"`
}

// FormatFromPath picks YAML for .yaml/.yml files and JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ReadFile reads and parses the dataset at path. An empty path reads the
// dataset embedded in the binary.
func ReadFile(path string) (*domain.Gazetteer, []Problem, error) {
	if path == "" {
		return Parse(defaultDataset, FormatJSON)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read gazetteer: %w", err)
	}
	return Parse(data, FormatFromPath(path))
}

// Parse decodes a dataset. The error is non-nil only when the document as a
// whole cannot be decoded; malformed entries are skipped and reported.
func Parse(data []byte, format Format) (*domain.Gazetteer, []Problem, error) {
	var doc document
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	default:
		return nil, nil, fmt.Errorf("parse gazetteer: unsupported format %q", format)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("parse gazetteer: %w", err)
	}

	var problems []Problem
	districts, p := decodeIndex(IndexDistricts, doc.Districts)
	problems = append(problems, p...)
	legacy, p := decodeIndex(IndexDistricts, doc.Arrondissements)
	problems = append(problems, p...)
	for code, e := range legacy {
		if _, ok := districts[code]; !ok {
			districts[code] = e
		}
	}
	landmarks, p := decodeIndex(IndexLandmarks, doc.Landmarks)
	problems = append(problems, p...)

	return domain.NewGazetteer(districts, landmarks), problems, nil
}

func decodeIndex(index string, raw map[string]any) (map[string]domain.GazetteerEntry, []Problem) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make(map[string]domain.GazetteerEntry, len(raw))
	var problems []Problem
	for _, k := range keys {
		if strings.TrimSpace(k) == "" {
			problems = append(problems, Problem{Index: index, Key: k, Reason: "empty key"})
			continue
		}
		e, err := decodeEntry(raw[k])
		if err != nil {
			problems = append(problems, Problem{Index: index, Key: k, Reason: err.Error()})
			continue
		}
		entries[k] = e
	}
	return entries, problems
}

func decodeEntry(v any) (domain.GazetteerEntry, error) {
	fields, ok := v.(map[string]any)
	if !ok {
		return domain.GazetteerEntry{}, errors.New("entry is not a mapping")
	}
	name, _ := fields["name"].(string)
	if strings.TrimSpace(name) == "" {
		return domain.GazetteerEntry{}, errors.New("missing name")
	}
	lat, err := coordinate(fields, "lat", 90)
	if err != nil {
		return domain.GazetteerEntry{}, err
	}
	lng, err := coordinate(fields, "lng", 180)
	if err != nil {
		return domain.GazetteerEntry{}, err
	}
	return domain.GazetteerEntry{DisplayName: name, Latitude: lat, Longitude: lng}, nil
}

func coordinate(fields map[string]any, key string, limit float64) (float64, error) {
	var f float64
	switch n := fields[key].(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	case nil:
		return 0, fmt.Errorf("missing %s", key)
	default:
		return 0, fmt.Errorf("%s is not a number", key)
	}
	if math.IsNaN(f) || math.Abs(f) > limit {
		return 0, fmt.Errorf("%s out of range: %g", key, f)
	}
	return f, nil
}
