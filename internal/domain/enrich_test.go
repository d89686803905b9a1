package domain

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newTestEnricher() *Enricher {
	return NewEnricher(NewResolver(testGazetteer()), NewClassifier(DefaultTaxonomy))
}

func freezeClock(t *testing.T) time.Time {
	t.Helper()
	now := time.Date(2026, 3, 14, 8, 30, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(now))
	t.Cleanup(func() { SetClock(nil) })
	return now
}

func TestEnrichArticle_Scenarios(t *testing.T) {
	now := freezeClock(t)
	e := newTestEnricher()

	tests := []struct {
		name     string
		article  Article
		location GazetteerEntry
		match    MatchKind
		category string
	}{
		{
			name:     "district theft",
			article:  Article{Title: "Vol dans le 18e arrondissement"},
			location: district18,
			match:    MatchDistrict,
			category: CategoryCrime,
		},
		{
			name:     "strike before transport",
			article:  Article{Title: "Grève RATP perturbe le trafic à Paris"},
			location: FallbackLocation,
			match:    MatchFallback,
			category: CategoryStrike,
		},
		{
			name:     "nothing recognised",
			article:  Article{Title: "Quelque chose s'est passé en France"},
			location: FallbackLocation,
			match:    MatchFallback,
			category: CategoryOther,
		},
		{
			name:     "longer landmark",
			article:  Article{Title: "Foule à la Tour Eiffel", Summary: "L'Eiffel illuminé"},
			location: tourEiffel,
			match:    MatchLandmark,
			category: CategoryOther,
		},
		{
			name:     "empty article",
			article:  Article{},
			location: FallbackLocation,
			match:    MatchFallback,
			category: CategoryOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.EnrichArticle(tt.article)

			assert.Equal(t, tt.location.DisplayName, got.LocationName)
			assert.Equal(t, tt.location.Latitude, got.Lat)
			assert.Equal(t, tt.location.Longitude, got.Lng)
			assert.Equal(t, tt.match, got.LocationMatch)
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, now, got.ProcessedAt)
			assert.Equal(t, tt.article, got.Article)
		})
	}
}

func TestEnrichArticle_UsesTranslatedAndOriginalFields(t *testing.T) {
	freezeClock(t)
	e := newTestEnricher()

	translated := e.EnrichArticle(Article{
		Title:           "埃菲尔铁塔附近发生事件",
		TranslatedTitle: strPtr("Robbery near the Tour Eiffel"),
	})
	assert.Equal(t, tourEiffel.DisplayName, translated.LocationName)
	assert.Equal(t, CategoryCrime, translated.Category)

	// The ordinal only survives in the original-language title.
	original := e.EnrichArticle(Article{
		Title:           "Incendie dans le 5e arrondissement",
		TranslatedTitle: strPtr("第五区发生火灾"),
	})
	assert.Equal(t, district5.DisplayName, original.LocationName)
	assert.Equal(t, MatchDistrict, original.LocationMatch)
}

func TestEnrich_PreservesOrderAndInputs(t *testing.T) {
	freezeClock(t)
	e := newTestEnricher()
	published := time.Date(2026, 3, 13, 22, 0, 0, 0, time.UTC)

	in := []Article{
		{ID: "a", Title: "Vol dans le 18e arrondissement", PublishedAt: &published},
		{ID: "b", Title: "Grève RATP", TranslatedTitle: strPtr("RATP strike")},
		{ID: "c", Title: "Rien"},
	}
	snapshot := append([]Article(nil), in...)

	out := e.Enrich(in)

	require.Len(t, out, len(in))
	for i := range in {
		assert.Equal(t, in[i].ID, out[i].ID)
	}
	if diff := cmp.Diff(snapshot, in); diff != "" {
		t.Fatalf("input mutated (-want +got):\n%s", diff)
	}
	assert.Equal(t, "RATP strike", *in[1].TranslatedTitle)
	assert.Empty(t, e.Enrich(nil))
}

func TestEnrichConcurrent_MatchesSequential(t *testing.T) {
	freezeClock(t)
	e := newTestEnricher()

	titles := []string{
		"Vol dans le 18e arrondissement",
		"Grève à la Tour Eiffel",
		"Accident de tram",
		"Rien à signaler",
		"Protest in the 1st arrondissement",
	}
	in := make([]Article, 0, 100)
	for i := range 100 {
		in = append(in, Article{ID: fmt.Sprintf("art-%03d", i), Title: titles[i%len(titles)]})
	}

	want := e.Enrich(in)
	for _, workers := range []int{0, 1, 8} {
		got, err := e.EnrichConcurrent(context.Background(), in, workers)
		require.NoError(t, err)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("workers=%d mismatch (-want +got):\n%s", workers, diff)
		}
	}
}

func TestEnrichConcurrent_CancelledContext(t *testing.T) {
	e := newTestEnricher()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		out, err := e.EnrichConcurrent(ctx, []Article{{Title: "x"}}, workers)
		require.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, out)
	}
}
