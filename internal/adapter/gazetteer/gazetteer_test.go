package gazetteer

import (
	"path/filepath"
	"testing"

	"github.com/couchcryptid/city-news-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile_EmbeddedDataset(t *testing.T) {
	g, problems, err := ReadFile("")

	require.NoError(t, err)
	assert.Empty(t, problems)
	assert.Equal(t, 20, g.DistrictCount())
	assert.Greater(t, g.LandmarkCount(), 40)

	for _, code := range []string{"1", "10", "18", "20"} {
		_, ok := g.District(code)
		assert.True(t, ok, "district %s", code)
	}
	_, ok := g.District("21")
	assert.False(t, ok)

	e, ok := g.District("18")
	require.True(t, ok)
	assert.Equal(t, "Paris 18e (Butte-Montmartre)", e.DisplayName)
}

func TestReadFile_EmbeddedDatasetResolvesScenarios(t *testing.T) {
	g, _, err := ReadFile("")
	require.NoError(t, err)
	r := domain.NewResolver(g)

	district := r.Resolve("Vol dans le 18e arrondissement")
	assert.Equal(t, "Paris 18e (Butte-Montmartre)", district.Name)
	assert.Equal(t, domain.MatchDistrict, district.Match)

	assert.Equal(t, "Tour Eiffel", r.Resolve("Alerte à la tour Eiffel").Name)
	assert.Equal(t, "Place de la République", r.Resolve("Rassemblement place de la République").Name)
	assert.Equal(t, domain.MatchFallback, r.Resolve("Quelque chose s'est passé en France").Match)
	assert.Equal(t, domain.MatchFallback, r.Resolve("Grève RATP perturbe le trafic à Paris").Match)
}

func TestReadFile_SkipsMalformedEntries(t *testing.T) {
	g, problems, err := ReadFile(filepath.Join("testdata", "partial.json"))

	require.NoError(t, err)
	assert.Equal(t, 1, g.DistrictCount())
	assert.Equal(t, 1, g.LandmarkCount())
	assert.Equal(t, []Problem{
		{Index: IndexDistricts, Key: "2", Reason: "missing name"},
		{Index: IndexDistricts, Key: "3", Reason: "lat is not a number"},
		{Index: IndexDistricts, Key: "4", Reason: "missing lat"},
		{Index: IndexDistricts, Key: "5", Reason: "entry is not a mapping"},
		{Index: IndexLandmarks, Key: "nowhere", Reason: "lat out of range: 148"},
	}, problems)
}

func TestReadFile_YAMLWithLegacyKeys(t *testing.T) {
	g, problems, err := ReadFile(filepath.Join("testdata", "paris.yaml"))

	require.NoError(t, err)
	assert.Empty(t, problems)

	e, ok := g.District("18")
	require.True(t, ok)
	assert.Equal(t, domain.GazetteerEntry{DisplayName: "Paris 18e", Latitude: 48.8925, Longitude: 2.3444}, e)

	e, ok = g.District("7")
	require.True(t, ok)
	assert.Equal(t, 49.0, e.Latitude)
	assert.Equal(t, 2.0, e.Longitude)

	assert.Equal(t, []string{"tour eiffel", "eiffel"}, g.LandmarkKeys())
}

func TestReadFile_Errors(t *testing.T) {
	_, _, err := ReadFile(filepath.Join("testdata", "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read gazetteer")

	_, _, err = ReadFile(filepath.Join("testdata", "truncated.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse gazetteer")
}

func TestParse_DistrictsWinOverAlias(t *testing.T) {
	data := []byte(`{
		"districts": {"1": {"name": "new", "lat": 1, "lng": 1}},
		"arrondissements": {"1": {"name": "old", "lat": 2, "lng": 2}, "2": {"name": "two", "lat": 3, "lng": 3}}
	}`)

	g, problems, err := Parse(data, FormatJSON)

	require.NoError(t, err)
	assert.Empty(t, problems)
	e, _ := g.District("1")
	assert.Equal(t, "new", e.DisplayName)
	e, _ = g.District("2")
	assert.Equal(t, "two", e.DisplayName)
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, _, err := Parse([]byte(`{}`), Format("toml"))
	require.Error(t, err)
}

func TestParse_EmptyDocument(t *testing.T) {
	g, problems, err := Parse([]byte(`{}`), FormatJSON)

	require.NoError(t, err)
	assert.Empty(t, problems)
	assert.Zero(t, g.DistrictCount())
	assert.Zero(t, g.LandmarkCount())
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("data/paris.YAML"))
	assert.Equal(t, FormatYAML, FormatFromPath("paris.yml"))
	assert.Equal(t, FormatJSON, FormatFromPath("paris.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("paris"))
}

func TestProblemString(t *testing.T) {
	p := Problem{Index: IndexLandmarks, Key: "louvre", Reason: "missing name"}
	assert.Equal(t, `landmarks["louvre"]: missing name`, p.String())
}
