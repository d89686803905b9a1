package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	errNotObject = errors.New("not an object")
	errNoContent = errors.New("no url, title or summary")
)

// ParseRawArticle deserializes a RawEvent's value into an Article and assigns
// a deterministic ID when the fetcher did not supply one. The value must be a
// JSON object carrying at least one of url, title or summary.
func ParseRawArticle(raw RawEvent) (Article, error) {
	value := bytes.TrimSpace(raw.Value)
	if len(value) == 0 || value[0] != '{' {
		return Article{}, fmt.Errorf("parse raw article: %w", errNotObject)
	}
	var a Article
	if err := json.Unmarshal(value, &a); err != nil {
		return Article{}, fmt.Errorf("parse raw article: %w", err)
	}
	if strings.TrimSpace(a.ID) == "" {
		if blank(a.URL) && blank(a.Title) && blank(a.Summary) {
			return Article{}, fmt.Errorf("parse raw article: %w", errNoContent)
		}
		a.ID = generateID(a)
	}
	return a, nil
}

// generateID derives a UUIDv5 from the article URL, or from source, title
// and summary when the URL is missing.
func generateID(a Article) string {
	if u := strings.TrimSpace(a.URL); u != "" {
		return uuid.NewSHA1(uuid.NameSpaceURL, []byte(u)).String()
	}
	name := strings.Join([]string{a.SourceName, a.Title, a.Summary}, "|")
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
