package domain

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Enricher applies the resolver and classifier to articles.
type Enricher struct {
	resolver   *Resolver
	classifier *Classifier
}

// NewEnricher creates an Enricher from a resolver and a classifier.
func NewEnricher(resolver *Resolver, classifier *Classifier) *Enricher {
	return &Enricher{resolver: resolver, classifier: classifier}
}

// EnrichArticle returns a copy of a with every enrichment field populated.
func (e *Enricher) EnrichArticle(a Article) EnrichedArticle {
	text := CombinedText(a)
	loc := e.resolver.Resolve(text)
	return EnrichedArticle{
		Article: a,
		Enrichment: Enrichment{
			LocationName:  loc.Name,
			Lat:           loc.Lat,
			Lng:           loc.Lng,
			LocationMatch: loc.Match,
			Category:      e.classifier.Classify(text),
			ProcessedAt:   processingClock.Now().UTC(),
		},
	}
}

// Enrich enriches every article, preserving order. Inputs are not modified.
func (e *Enricher) Enrich(articles []Article) []EnrichedArticle {
	out := make([]EnrichedArticle, len(articles))
	for i := range articles {
		out[i] = e.EnrichArticle(articles[i])
	}
	return out
}

// EnrichConcurrent is Enrich spread over at most workers goroutines. Output
// order matches input order. The only error is ctx cancellation.
func (e *Enricher) EnrichConcurrent(ctx context.Context, articles []Article, workers int) ([]EnrichedArticle, error) {
	if workers <= 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return e.Enrich(articles), nil
	}
	out := make([]EnrichedArticle, len(articles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range articles {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = e.EnrichArticle(articles[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
