package domain

import (
	"context"
	"time"
)

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Article is a news item as produced by the fetcher and, optionally, the
// translator. Translated fields and PublishedAt are nil when absent.
type Article struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Summary           string     `json:"summary"`
	TranslatedTitle   *string    `json:"title_translated,omitempty"`
	TranslatedSummary *string    `json:"summary_translated,omitempty"`
	URL               string     `json:"url"`
	PublishedAt       *time.Time `json:"published_at,omitempty"`
	SourceName        string     `json:"source_name"`
	SourceLanguage    string     `json:"source_language"`
}

// Enrichment holds the fields added by this service. Every field is always set.
type Enrichment struct {
	LocationName  string    `json:"location_name"`
	Lat           float64   `json:"lat"`
	Lng           float64   `json:"lng"`
	LocationMatch MatchKind `json:"location_match"`
	Category      string    `json:"category"`
	ProcessedAt   time.Time `json:"processed_at"`
}

// EnrichedArticle is the record handed to the renderer. Article and
// Enrichment fields are flattened into one JSON object.
type EnrichedArticle struct {
	Article
	Enrichment
}
