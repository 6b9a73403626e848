// Package textutil provides the text normalization used by keyword
// extraction: markup stripping, tokenization with a domain stopword list,
// and adjacent-pair bigram generation.
package textutil

import (
	"regexp"
	"strings"
)

var (
	tagRe       = regexp.MustCompile(`<[^>]*>`)
	entityRe    = regexp.MustCompile(`&[a-zA-Z#0-9]+;`)
	tokenRe     = regexp.MustCompile(`[a-z0-9+-]+`)
	numericRe   = regexp.MustCompile(`^[0-9]+(-[0-9]+)*$`)
	slugDropRe  = regexp.MustCompile(`[^a-z0-9\- ]`)
	slugSpaceRe = regexp.MustCompile(`\s+`)
	slugDashRe  = regexp.MustCompile(`-{2,}`)
)

// StripMarkup removes HTML tags and entities, returning plain text with
// collapsed whitespace. Empty input yields an empty string.
func StripMarkup(html string) string {
	if html == "" {
		return ""
	}
	text := tagRe.ReplaceAllString(html, " ")
	text = entityRe.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(text), " ")
}

// Normalizer tokenizes product text into keyword candidates.
type Normalizer struct {
	minLen    int
	stopwords map[string]struct{}
}

func NewNormalizer(minLen int, stopwords []string) *Normalizer {
	if minLen <= 0 {
		minLen = 3
	}
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &Normalizer{minLen: minLen, stopwords: stops}
}

// RawTokens strips markup, lower-cases, splits separators and returns the
// ordered token stream before any filtering. Adjacency in the source text is
// preserved, which is what bigram pairing needs.
func (n *Normalizer) RawTokens(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ToLower(StripMarkup(text))
	text = strings.NewReplacer("_", " ", "/", " ", "|", " ").Replace(text)

	var tokens []string
	for _, tok := range tokenRe.FindAllString(text, -1) {
		tok = strings.Trim(tok, "-+")
		if tok == "" {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Filter drops stopwords, short tokens and purely numeric runs, keeping the
// survivors in order.
func (n *Normalizer) Filter(raw []string) []string {
	var tokens []string
	for _, tok := range raw {
		if n.drop(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Normalize returns the surviving unigram tokens of text in order. It never
// fails: bad input produces an empty slice.
func (n *Normalizer) Normalize(text string) []string {
	return n.Filter(n.RawTokens(text))
}

// Bigrams pairs adjacent tokens of the raw stream into two-word phrases.
// Pairs touching a stopword, a short token or a numeric run are dropped, so
// "wallet for men" contributes no bigram rather than a fabricated
// "wallet men".
func (n *Normalizer) Bigrams(raw []string) []string {
	if len(raw) < 2 {
		return nil
	}
	bigrams := make([]string, 0, len(raw)-1)
	for i := 0; i+1 < len(raw); i++ {
		a, b := raw[i], raw[i+1]
		if n.drop(a) || n.drop(b) {
			continue
		}
		bigrams = append(bigrams, a+" "+b)
	}
	return bigrams
}

func (n *Normalizer) drop(tok string) bool {
	if len(tok) < n.minLen {
		return true
	}
	if numericRe.MatchString(tok) {
		return true
	}
	_, stop := n.stopwords[tok]
	return stop
}

// IsStopword reports whether the given lower-case token is filtered.
func (n *Normalizer) IsStopword(tok string) bool {
	_, ok := n.stopwords[tok]
	return ok
}

// Slugify converts a title to a URL-safe handle, shared by product
// registration and the optional handle-rewrite path.
func Slugify(title string) string {
	slug := strings.TrimSpace(slugDropRe.ReplaceAllString(strings.ToLower(title), ""))
	slug = slugSpaceRe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slugDashRe.ReplaceAllString(slug, "-"), "-")
	return slug
}

// ContainsWord reports whether needle occurs in haystack on word boundaries,
// so "buy" does not match inside "buyer". Both arguments are expected to be
// lower-case; needle may be a multi-word phrase.
func ContainsWord(haystack, needle string) bool {
	if needle == "" || haystack == "" {
		return false
	}
	idx := 0
	for {
		i := strings.Index(haystack[idx:], needle)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(needle)
		beforeOK := start == 0 || !isWordChar(haystack[start-1])
		afterOK := end == len(haystack) || !isWordChar(haystack[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
		if idx >= len(haystack) {
			return false
		}
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c >= 'A' && c <= 'Z'
}
