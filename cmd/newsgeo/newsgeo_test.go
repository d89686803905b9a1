package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/couchcryptid/city-news-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleArticles = `[
  {"id":"a1","title":"Vol à la tire dans le 18e","summary":"","url":"https://example.org/a1","source_name":"s","source_language":"fr"},
  {"id":"a2","title":"Protest near Bastille","summary":"","url":"https://example.org/a2","source_name":"s","source_language":"en"},
  {"title":"Météo du jour","summary":"Soleil.","url":"https://example.org/a3","source_name":"s","source_language":"fr"}
]`

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestEnrich_StdinToStdout(t *testing.T) {
	stdout, stderr, err := execute(t, sampleArticles, "enrich", "--workers", "2")
	require.NoError(t, err)

	var out []domain.EnrichedArticle
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out, 3)

	assert.Equal(t, "a1", out[0].ID)
	assert.Equal(t, domain.MatchDistrict, out[0].LocationMatch)
	assert.Equal(t, "Paris 18e (Butte-Montmartre)", out[0].LocationName)
	assert.Equal(t, domain.CategoryCrime, out[0].Category)

	assert.Equal(t, "Bastille", out[1].LocationName)
	assert.Equal(t, domain.CategoryStrike, out[1].Category)

	assert.Len(t, out[2].ID, 36)
	assert.Equal(t, domain.MatchFallback, out[2].LocationMatch)

	assert.Contains(t, stderr, "CATEGORY")
	assert.Contains(t, stderr, "fallback: 1/3 (33.3%)")
}

func TestEnrich_FileToFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	out := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(in, []byte(sampleArticles), 0o600))

	stdout, _, err := execute(t, "", "enrich", "--in", in, "--out", out)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var enriched []domain.EnrichedArticle
	require.NoError(t, json.Unmarshal(data, &enriched))
	assert.Len(t, enriched, 3)
}

func TestEnrich_CustomGazetteer(t *testing.T) {
	yamlPath := filepath.Join("..", "..", "internal", "adapter", "gazetteer", "testdata", "paris.yaml")
	stdout, _, err := execute(t, `[{"id":"x","title":"Sous la Tour Eiffel","summary":""}]`,
		"enrich", "--gazetteer", yamlPath)
	require.NoError(t, err)

	var out []domain.EnrichedArticle
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out, 1)
	assert.Equal(t, domain.MatchLandmark, out[0].LocationMatch)
}

func TestEnrich_RejectsBadInput(t *testing.T) {
	_, _, err := execute(t, `{"not":"an array"}`, "enrich")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode articles")
}

func TestEnrich_RejectsZeroWorkers(t *testing.T) {
	_, _, err := execute(t, `[]`, "enrich", "--workers", "0")
	require.Error(t, err)
}

func TestGazetteerCheck_BuiltIn(t *testing.T) {
	stdout, _, err := execute(t, "", "gazetteer", "check")
	require.NoError(t, err)
	assert.Contains(t, stdout, "districts: 20")
	assert.Contains(t, stdout, "ok")
}

func TestGazetteerCheck_ReportsMalformedEntries(t *testing.T) {
	path := filepath.Join("..", "..", "internal", "adapter", "gazetteer", "testdata", "partial.json")
	stdout, _, err := execute(t, "", "gazetteer", "check", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "5 malformed entries")
	assert.Contains(t, stdout, "districts: 1")
	assert.Contains(t, stdout, "landmarks: 1")
	assert.Contains(t, stdout, `missing name`)
}

func TestGazetteerCheck_MissingFile(t *testing.T) {
	_, _, err := execute(t, "", "gazetteer", "check", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read gazetteer")
}

func TestTruncateTitle(t *testing.T) {
	short := "Grève à la Gare du Nord"
	assert.Equal(t, short, truncateTitle(short))

	long := strings.Repeat("é", 80)
	got := truncateTitle(long)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, 60, len([]rune(got)))

	assert.Equal(t, "a b", truncateTitle("  a\n\tb "))
}
