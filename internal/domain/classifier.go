package domain

import "strings"

// Category labels. CategoryOther is returned when no rule matches.
const (
	CategoryCrime     = "crime"
	CategoryStrike    = "strike"
	CategoryTransport = "transport"
	CategoryOther     = "other"
)

// CategoryRule pairs a label with the keywords that select it.
type CategoryRule struct {
	Label    string
	Keywords []string
}

// Taxonomy is an ordered rule list. Earlier rules take priority.
type Taxonomy []CategoryRule

// DefaultTaxonomy is the Paris public-safety taxonomy, highest priority first.
var DefaultTaxonomy = Taxonomy{
	{
		Label: CategoryCrime,
		Keywords: []string{
			"vol", "agression", "meurtre", "crime", "cambriolage",
			"theft", "robbery", "murder", "attack", "stabbing",
			"shooting", "assault", "burglary", "pickpocket", "scam",
			"fraud", "violence", "drug", "drugs", "prostitution",
		},
	},
	{
		Label: CategoryStrike,
		Keywords: []string{
			"grève", "greve", "manifestation", "strike", "protest",
			"demonstration", "mouvement social", "blocage",
		},
	},
	{
		Label: CategoryTransport,
		Keywords: []string{
			"ratp", "sncf", "métro", "metro", "rer", "tram", "bus",
			"traffic", "accident", "collision", "perturbation",
			"disruption", "transport",
		},
	},
}

// Labels returns every label the taxonomy can produce, in priority order,
// followed by CategoryOther.
func (t Taxonomy) Labels() []string {
	labels := make([]string, 0, len(t)+1)
	for _, rule := range t {
		labels = append(labels, rule.Label)
	}
	return append(labels, CategoryOther)
}

// Classifier assigns one category per text. Safe for concurrent use.
type Classifier struct {
	rules Taxonomy
}

// NewClassifier creates a Classifier over a copy of the taxonomy with
// keywords lower-cased and NFC-normalized.
func NewClassifier(t Taxonomy) *Classifier {
	rules := make(Taxonomy, 0, len(t))
	for _, rule := range t {
		kws := make([]string, 0, len(rule.Keywords))
		for _, kw := range rule.Keywords {
			if kw = normalizeKey(kw); kw != "" {
				kws = append(kws, kw)
			}
		}
		rules = append(rules, CategoryRule{Label: rule.Label, Keywords: kws})
	}
	return &Classifier{rules: rules}
}

// Classify returns the label of the first rule with a keyword contained in
// the lower-cased text, or CategoryOther.
func (c *Classifier) Classify(text string) string {
	lower := strings.ToLower(normalizeText(text))
	if strings.TrimSpace(lower) == "" {
		return CategoryOther
	}
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Label
			}
		}
	}
	return CategoryOther
}

var categoryColors = map[string]string{
	CategoryCrime:     "#e74c3c",
	CategoryStrike:    "#e67e22",
	CategoryTransport: "#3498db",
	CategoryOther:     "#95a5a6",
}

var categoryLabels = map[string]string{
	CategoryCrime:     "Crime",
	CategoryStrike:    "Strikes & protests",
	CategoryTransport: "Transport",
	CategoryOther:     "Other news",
}

// CategoryColor returns the marker color for a category. Unknown labels get
// the "other" color.
func CategoryColor(label string) string {
	if c, ok := categoryColors[label]; ok {
		return c
	}
	return categoryColors[CategoryOther]
}

// CategoryLabel returns the legend label for a category.
func CategoryLabel(label string) string {
	if l, ok := categoryLabels[label]; ok {
		return l
	}
	return categoryLabels[CategoryOther]
}
