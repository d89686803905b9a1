package gazetteer

import (
	"log/slog"
	"sync"

	"github.com/couchcryptid/city-news-etl/internal/domain"
)

// Store loads the gazetteer once and hands out the same value afterwards.
type Store struct {
	path   string
	logger *slog.Logger

	once      sync.Once
	gazetteer *domain.Gazetteer
}

// NewStore creates a Store for the dataset at path (empty for the embedded one).
// Nothing is read until the first Load.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Load returns the cached gazetteer, reading it on first use. A missing or
// unparsable dataset yields an empty gazetteer; Load never fails.
func (s *Store) Load() *domain.Gazetteer {
	s.once.Do(func() {
		g, problems, err := ReadFile(s.path)
		if err != nil {
			s.logger.Error("gazetteer unavailable, locations will fall back to city center",
				"path", s.path,
				"error", err,
			)
			s.gazetteer = domain.EmptyGazetteer()
			return
		}
		for _, p := range problems {
			s.logger.Warn("skipping malformed gazetteer entry",
				"index", p.Index,
				"key", p.Key,
				"reason", p.Reason,
			)
		}
		s.logger.Debug("gazetteer loaded",
			"path", s.path,
			"districts", g.DistrictCount(),
			"landmarks", g.LandmarkCount(),
		)
		s.gazetteer = g
	})
	return s.gazetteer
}
