package domain

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// CombinedText builds the matching input for an article: translated title,
// translated summary, title, summary. Blank fields are skipped, markup is
// removed and whitespace collapsed.
func CombinedText(a Article) string {
	fields := []string{
		deref(a.TranslatedTitle),
		deref(a.TranslatedSummary),
		a.Title,
		a.Summary,
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = plainText(f); f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}

// tagRe matches one complete markup tag. A "<" without a closing ">" is text.
var tagRe = regexp.MustCompile(`<[^>]+>`)

// plainText replaces complete tags with spaces, decodes entities and
// collapses whitespace.
func plainText(s string) string {
	if strings.Contains(s, "<") {
		s = tagRe.ReplaceAllString(s, " ")
	}
	if strings.Contains(s, "&") {
		s = html.UnescapeString(s)
	}
	return strings.Join(strings.Fields(normalizeText(s)), " ")
}

// normalizeText composes decomposed accents so "e"+U+0300 matches "è".
func normalizeText(s string) string {
	return norm.NFC.String(s)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
