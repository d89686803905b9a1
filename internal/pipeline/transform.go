package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/city-news-etl/internal/domain"
	"github.com/couchcryptid/city-news-etl/internal/observability"
)

// ArticleTransformer implements Transformer by parsing the raw message and
// running it through the domain enricher.
type ArticleTransformer struct {
	enricher *domain.Enricher
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewTransformer creates an ArticleTransformer. metrics may be nil.
func NewTransformer(enricher *domain.Enricher, logger *slog.Logger, metrics *observability.Metrics) *ArticleTransformer {
	return &ArticleTransformer{
		enricher: enricher,
		logger:   logger,
		metrics:  metrics,
	}
}

func (t *ArticleTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.EnrichedArticle, error) {
	article, err := domain.ParseRawArticle(raw)
	if err != nil {
		return domain.EnrichedArticle{}, err
	}

	enriched := t.enricher.EnrichArticle(article)
	if enriched.LocationMatch == domain.MatchFallback {
		t.logger.Debug("no location found, using city center", "article_id", enriched.ID)
	}

	if t.metrics != nil {
		t.metrics.LocationMatches.WithLabelValues(string(enriched.LocationMatch)).Inc()
		t.metrics.Categories.WithLabelValues(enriched.Category).Inc()
	}
	return enriched, nil
}
