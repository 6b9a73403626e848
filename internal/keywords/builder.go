// Package keywords builds and caches the sitewide keyword frequency map that
// per-product SEO composition scores against.
package keywords

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"seopilot/internal/config"
	"seopilot/internal/logger"
	"seopilot/internal/models"
	"seopilot/internal/textutil"
)

// CatalogLister is the full-sweep view of the catalog the builder scans.
type CatalogLister interface {
	ListAll(ctx context.Context, maxItems int) ([]models.Product, error)
}

// Entry is one ranked keyword with its sitewide count and intent tag.
type Entry struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
	Intent  Intent `json:"intent"`
}

// BuildParams are the knobs a build was made with; a cached map is only
// reused for an identical set.
type BuildParams struct {
	Limit          int
	MinLen         int
	IncludeBigrams bool
	Scope          string
}

// Map is the result of one full catalog scan.
type Map struct {
	Unigrams []Entry `json:"unigrams"`
	Bigrams  []Entry `json:"bigrams"`
	Scanned  int     `json:"scanned"`
	Cached   bool    `json:"cached"`
}

// BoostSet returns the top-n keywords (bigrams first) as a lookup set for
// scoring multipliers.
func (m *Map) BoostSet(n int) map[string]struct{} {
	set := make(map[string]struct{}, n)
	for _, e := range m.Bigrams {
		if len(set) >= n {
			return set
		}
		set[e.Keyword] = struct{}{}
	}
	for _, e := range m.Unigrams {
		if len(set) >= n {
			break
		}
		set[e.Keyword] = struct{}{}
	}
	return set
}

// Builder scans the catalog and aggregates token frequencies.
type Builder struct {
	catalog CatalogLister
	lexicon *config.Lexicon
	logger  *logger.Logger
}

func NewBuilder(catalog CatalogLister, lex *config.Lexicon, log *logger.Logger) *Builder {
	return &Builder{catalog: catalog, lexicon: lex, logger: log}
}

// Build scans up to scanLimit products in one full sweep and returns the top
// params.Limit unigrams and bigrams by descending sitewide count.
func (b *Builder) Build(ctx context.Context, scanLimit int, params BuildParams) (*Map, error) {
	products, err := b.catalog.ListAll(ctx, scanLimit)
	if err != nil {
		return nil, fmt.Errorf("keyword scan failed: %w", err)
	}

	norm := textutil.NewNormalizer(params.MinLen, b.lexicon.Stopwords)
	uniCounts := map[string]int{}
	biCounts := map[string]int{}

	for i := range products {
		raw := norm.RawTokens(scopeText(&products[i], params.Scope))
		for _, t := range norm.Filter(raw) {
			uniCounts[t]++
		}
		if params.IncludeBigrams {
			for _, bg := range norm.Bigrams(raw) {
				biCounts[bg]++
			}
		}
	}

	m := &Map{
		Unigrams: b.rank(uniCounts, params.Limit),
		Scanned:  len(products),
	}
	if params.IncludeBigrams {
		m.Bigrams = b.rank(biCounts, params.Limit)
	}
	b.logger.Debug("keyword map built: %d products, %d unigrams, %d bigrams",
		m.Scanned, len(m.Unigrams), len(m.Bigrams))
	return m, nil
}

// rank orders by count desc, keyword asc for determinism, truncated to limit.
func (b *Builder) rank(counts map[string]int, limit int) []Entry {
	entries := make([]Entry, 0, len(counts))
	for kw, c := range counts {
		entries = append(entries, Entry{Keyword: kw, Count: c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Keyword < entries[j].Keyword
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Intent = ClassifyIntent(entries[i].Keyword, b.lexicon)
	}
	return entries
}

// scopeText concatenates the product fields contributing to the histogram.
func scopeText(p *models.Product, scope string) string {
	switch scope {
	case "title":
		return p.Title
	case "body":
		return textutil.StripMarkup(p.BodyHTML)
	case "tags":
		return p.Tags
	default: // "all"
		var sb strings.Builder
		sb.WriteString(p.Title)
		for _, v := range p.Variants {
			sb.WriteByte(' ')
			sb.WriteString(v.Title)
			sb.WriteByte(' ')
			sb.WriteString(v.SKU)
		}
		for _, o := range p.Options {
			sb.WriteByte(' ')
			sb.WriteString(o.Name)
			sb.WriteByte(' ')
			sb.WriteString(strings.Join(o.Values, " "))
		}
		sb.WriteByte(' ')
		sb.WriteString(textutil.StripMarkup(p.BodyHTML))
		sb.WriteByte(' ')
		sb.WriteString(p.Tags)
		for _, img := range p.Images {
			if img.Alt != "" {
				sb.WriteByte(' ')
				sb.WriteString(img.Alt)
			}
		}
		return sb.String()
	}
}
