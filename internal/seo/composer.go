// Package seo turns one product plus the sitewide keyword map into bounded
// meta copy, decides whether the store actually needs the write, and applies
// accepted changes.
package seo

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"seopilot/internal/config"
	"seopilot/internal/keywords"
	"seopilot/internal/models"
	"seopilot/internal/textutil"
)

// ComposeOptions carries the tunables for meta composition.
type ComposeOptions struct {
	TitleMaxLen     int
	DescMaxLen      int
	CTAPhrase       string
	SeasonalPhrases []string
	Lexicon         *config.Lexicon
	Normalizer      *textutil.Normalizer
}

// AltSuggestion proposes ALT text for one image that currently has none.
type AltSuggestion struct {
	ImageID int64  `json:"image_id"`
	Index   int    `json:"index"` // 1-based position
	Alt     string `json:"alt"`
}

// Composed is the pure output of composition; nothing here has touched the
// network yet.
type Composed struct {
	MetaTitle      string          `json:"meta_title"`
	MetaDesc       string          `json:"meta_desc"`
	Handle         string          `json:"handle,omitempty"`
	AltSuggestions []AltSuggestion `json:"alt_suggestions,omitempty"`
	ChosenKeywords []string        `json:"chosen_keywords"`
	Intent         keywords.Intent `json:"intent"`
}

type scoredKeyword struct {
	keyword string
	score   float64
	bigram  bool
}

// Compose scores candidate keywords against the product, selects a primary
// keyword plus supporting set, and builds the bounded title and description.
// trendTop holds the few externally-trending queries guaranteed a slot.
func Compose(p *models.Product, kwMap *keywords.Map, boost map[string]struct{}, trendTop []string, opts ComposeOptions) Composed {
	title := strings.ToLower(p.Title)
	body := strings.ToLower(textutil.StripMarkup(p.BodyHTML))
	tags := make([]string, 0)
	for _, t := range p.TagList() {
		tags = append(tags, strings.ToLower(t))
	}

	intent := keywords.ClassifyIntent(title+" "+body+" "+strings.Join(tags, " "), opts.Lexicon)

	score := func(kw string, bigram bool) float64 {
		s := 0.0
		if textutil.ContainsWord(title, kw) {
			s += 2.0
		}
		if textutil.ContainsWord(body, kw) {
			s += 1.0
		}
		for _, tag := range tags {
			if strings.Contains(tag, kw) {
				s += 1.5
				break
			}
		}
		if s <= 0 {
			return 0
		}
		if _, boosted := boost[kw]; boosted {
			s *= 1.5
		}
		if bigram {
			s *= 1.25
		}
		if len(kw) >= 14 {
			s *= 1.1
		}
		return s
	}

	var bigrams, unigrams []scoredKeyword
	seen := map[string]struct{}{}
	addCandidate := func(kw string, bigram bool) {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			return
		}
		if _, dup := seen[kw]; dup {
			return
		}
		seen[kw] = struct{}{}
		if s := score(kw, bigram); s > 0 {
			if bigram {
				bigrams = append(bigrams, scoredKeyword{kw, s, true})
			} else {
				unigrams = append(unigrams, scoredKeyword{kw, s, false})
			}
		}
	}
	if kwMap != nil {
		for _, e := range kwMap.Bigrams {
			addCandidate(e.Keyword, true)
		}
		for _, e := range kwMap.Unigrams {
			addCandidate(e.Keyword, false)
		}
	}
	for _, q := range trendTop {
		addCandidate(q, strings.Contains(q, " "))
	}

	byScore := func(s []scoredKeyword) {
		sort.SliceStable(s, func(i, j int) bool { return s[i].score > s[j].score })
	}
	byScore(bigrams)
	byScore(unigrams)

	chosen := make([]string, 0, 5)
	for _, sk := range bigrams {
		if len(chosen) >= 3 {
			break
		}
		chosen = append(chosen, sk.keyword)
	}
	for _, sk := range unigrams {
		if len(chosen) >= 5 {
			break
		}
		chosen = append(chosen, sk.keyword)
	}

	// Top trending queries influence copy even when they score low locally.
	chosen = prependTrends(chosen, trendTop, 2)

	if len(chosen) == 0 {
		if first := firstWord(title); first != "" {
			chosen = []string{first}
		} else {
			chosen = []string{opts.Lexicon.GenericKeyword}
		}
	}

	composed := Composed{
		MetaTitle:      composeTitle(chosen[0], intent, opts),
		MetaDesc:       composeDesc(chosen, body, opts),
		ChosenKeywords: chosen,
		Intent:         intent,
	}
	for i, img := range p.Images {
		if strings.TrimSpace(img.Alt) != "" {
			continue
		}
		composed.AltSuggestions = append(composed.AltSuggestions, AltSuggestion{
			ImageID: img.ID,
			Index:   i + 1,
			Alt:     AltText(p.Title, i+1),
		})
	}
	return composed
}

// AltText is the canonical ALT proposal for the image at 1-based index.
func AltText(title string, index int) string {
	if title == "" {
		title = "Product"
	}
	return title + " — image " + strconv.Itoa(index)
}

func prependTrends(chosen, trendTop []string, max int) []string {
	if len(trendTop) == 0 {
		return chosen
	}
	if max > len(trendTop) {
		max = len(trendTop)
	}
	out := make([]string, 0, len(chosen)+max)
	for _, q := range trendTop[:max] {
		q = strings.ToLower(strings.TrimSpace(q))
		if q != "" && !contains(out, q) {
			out = append(out, q)
		}
	}
	for _, kw := range chosen {
		if len(out) >= 5 {
			break
		}
		if !contains(out, kw) {
			out = append(out, kw)
		}
	}
	return out
}

func composeTitle(primary string, intent keywords.Intent, opts ComposeOptions) string {
	benefit := benefitPhrase(intent)
	title := titleCase(primary) + " | " + benefit

	for _, seasonal := range opts.SeasonalPhrases {
		candidate := title + " · " + seasonal
		if len(candidate) <= opts.TitleMaxLen {
			title = candidate
			break
		}
	}
	if opts.CTAPhrase != "" {
		candidate := title + " – " + opts.CTAPhrase
		if len(candidate) <= opts.TitleMaxLen {
			title = candidate
		}
	}
	title = truncate(title, opts.TitleMaxLen)
	return strings.TrimRight(title, "-|·,;:– —")
}

func composeDesc(chosen []string, body string, opts ComposeOptions) string {
	segments := make([]string, 0, 2)

	top := chosen
	if len(top) > 3 {
		top = top[:3]
	}
	if len(top) > 0 {
		segments = append(segments, strings.Join(top, ", "))
	}

	snippet := strings.TrimSpace(truncate(body, 120))
	if snippet != "" {
		segments = append(segments, snippet)
	}

	var desc string
	switch len(segments) {
	case 0:
		desc = "Quality picks with fast shipping and easy returns."
	case 1:
		desc = segments[0] + "."
	default:
		desc = segments[0] + " — " + segments[1] + "."
	}
	if opts.CTAPhrase != "" {
		candidate := desc + " " + opts.CTAPhrase + "."
		if len(candidate) <= opts.DescMaxLen {
			desc = candidate
		}
	}
	desc = truncate(desc, opts.DescMaxLen)
	return strings.TrimRight(desc, "-|·,;:– —")
}

func benefitPhrase(intent keywords.Intent) string {
	switch intent {
	case keywords.IntentInformational:
		return "Tips, Picks & Buying Guide"
	case keywords.IntentCommercial:
		return "Compare Top Rated Picks"
	default:
		return "Premium Quality, Fast Shipping"
	}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func firstWord(title string) string {
	fields := strings.Fields(title)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// truncate hard-caps s at max bytes without splitting a multi-byte rune.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
