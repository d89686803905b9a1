package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/city-news-etl/internal/adapter/gazetteer"
	"github.com/couchcryptid/city-news-etl/internal/domain"
	"github.com/couchcryptid/city-news-etl/internal/observability"
	"github.com/spf13/cobra"
)

type enrichOptions struct {
	in           string
	out          string
	gazetteer    string
	wordBoundary bool
	workers      int
}

func newEnrichCmd() *cobra.Command {
	opts := &enrichOptions{}
	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Add location and category to a JSON array of articles",
		Long: `Reads a JSON array of articles, resolves a Paris location and a category
for each one, and writes the enriched array. A summary table goes to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEnrich(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.in, "in", "-", "input file, - for stdin")
	cmd.Flags().StringVar(&opts.out, "out", "-", "output file, - for stdout")
	cmd.Flags().StringVar(&opts.gazetteer, "gazetteer", "", "gazetteer file (.json or .yaml), empty for the built-in Paris dataset")
	cmd.Flags().BoolVar(&opts.wordBoundary, "word-boundary", false, "only match landmarks on word boundaries")
	cmd.Flags().IntVar(&opts.workers, "workers", 4, "concurrent enrichment workers")
	return cmd
}

func runEnrich(cmd *cobra.Command, opts *enrichOptions) error {
	if opts.workers < 1 {
		return fmt.Errorf("--workers must be at least 1, got %d", opts.workers)
	}
	logger := commandLogger(cmd)

	data, err := readInput(cmd.InOrStdin(), opts.in)
	if err != nil {
		return err
	}
	articles, err := parseArticles(data)
	if err != nil {
		return err
	}

	g := gazetteer.NewStore(opts.gazetteer, logger).Load()
	resolver := domain.NewResolver(g,
		domain.WithLandmarkWordBoundaries(opts.wordBoundary),
		domain.WithResolverLogger(logger),
	)
	enricher := domain.NewEnricher(resolver, domain.NewClassifier(domain.DefaultTaxonomy))

	enriched, err := enricher.EnrichConcurrent(cmd.Context(), articles, opts.workers)
	if err != nil {
		return fmt.Errorf("enrich articles: %w", err)
	}

	out, err := json.MarshalIndent(enriched, "", "  ")
	if err != nil {
		return fmt.Errorf("encode enriched articles: %w", err)
	}
	out = append(out, '\n')
	if err := writeOutput(cmd.OutOrStdout(), opts.out, out); err != nil {
		return err
	}

	printSummary(cmd.ErrOrStderr(), enriched)
	return nil
}

// parseArticles decodes a JSON array and gives every article without an ID
// the same deterministic ID the Kafka service would assign.
func parseArticles(data []byte) ([]domain.Article, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode articles: %w", err)
	}
	articles := make([]domain.Article, len(items))
	for i, item := range items {
		a, err := domain.ParseRawArticle(domain.RawEvent{Value: item})
		if err != nil {
			return nil, fmt.Errorf("article %d: %w", i, err)
		}
		articles[i] = a
	}
	return articles, nil
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func commandLogger(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return observability.NewWriterLogger(cmd.ErrOrStderr(), level, "text")
}
