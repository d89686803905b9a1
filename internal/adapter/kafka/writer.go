package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/city-news-etl/internal/config"
	"github.com/couchcryptid/city-news-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces enriched articles to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
// Articles are keyed by ID so every version of one article lands on the
// same partition.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes enriched articles to the sink topic
// in a single WriteMessages call.
func (w *Writer) LoadBatch(ctx context.Context, articles []domain.EnrichedArticle) error {
	if len(articles) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(articles))
	for i := range articles {
		msg, err := serializeToMessage(articles[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write enriched articles: %w", err)
	}
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an EnrichedArticle into a Kafka message.
// Category and match kind travel as headers so consumers can route
// without decoding the value.
func serializeToMessage(article domain.EnrichedArticle) (kafkago.Message, error) {
	data, err := json.Marshal(article)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize enriched article: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(article.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "category", Value: []byte(article.Category)},
			{Key: "location_match", Value: []byte(article.LocationMatch)},
			{Key: "processed_at", Value: []byte(article.ProcessedAt.Format(time.RFC3339))},
		},
	}, nil
}
