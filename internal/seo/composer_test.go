package seo

import (
	"strings"
	"testing"

	"seopilot/internal/config"
	"seopilot/internal/keywords"
	"seopilot/internal/models"
)

func testOptions() ComposeOptions {
	return ComposeOptions{
		TitleMaxLen: 60,
		DescMaxLen:  160,
		CTAPhrase:   "Shop Now",
		Lexicon:     config.DefaultLexicon(),
	}
}

func walletProduct() *models.Product {
	return &models.Product{
		ID:       1,
		Title:    "Leather Wallet",
		Handle:   "leather-wallet",
		BodyHTML: "<p>Handmade leather wallet with card slots</p>",
		Tags:     "leather, gift",
		Status:   "active",
	}
}

func walletKeywordMap() *keywords.Map {
	return &keywords.Map{
		Bigrams: []keywords.Entry{
			{Keyword: "leather wallet", Count: 12},
			{Keyword: "canvas tote", Count: 8},
		},
		Unigrams: []keywords.Entry{
			{Keyword: "leather", Count: 20},
			{Keyword: "wallet", Count: 15},
			{Keyword: "handmade", Count: 5},
			{Keyword: "canvas", Count: 4},
		},
	}
}

func TestComposePicksMatchingBigramFirst(t *testing.T) {
	got := Compose(walletProduct(), walletKeywordMap(), nil, nil, testOptions())

	if len(got.ChosenKeywords) == 0 {
		t.Fatal("no keywords chosen")
	}
	if got.ChosenKeywords[0] != "leather wallet" {
		t.Errorf("primary keyword = %q, want %q", got.ChosenKeywords[0], "leather wallet")
	}
	for _, kw := range got.ChosenKeywords {
		if kw == "canvas" || kw == "canvas tote" {
			t.Errorf("non-matching keyword %q selected", kw)
		}
	}
	if !strings.HasPrefix(got.MetaTitle, "Leather Wallet | ") {
		t.Errorf("MetaTitle = %q, want primary keyword leading", got.MetaTitle)
	}
}

func TestComposeTitleBounds(t *testing.T) {
	products := []*models.Product{
		walletProduct(),
		{ID: 2, Title: "Extraordinarily Long Product Name That Goes On And On Forever And Ever", Status: "active"},
		{ID: 3, Title: "X", Status: "active"},
	}

	for _, p := range products {
		got := Compose(p, walletKeywordMap(), nil, nil, testOptions())
		if len(got.MetaTitle) > 60 {
			t.Errorf("product %d: MetaTitle %d bytes: %q", p.ID, len(got.MetaTitle), got.MetaTitle)
		}
		if got.MetaTitle != strings.TrimRight(got.MetaTitle, "-|·,;:– —") {
			t.Errorf("product %d: MetaTitle has trailing separator: %q", p.ID, got.MetaTitle)
		}
		if len(got.MetaDesc) > 160 {
			t.Errorf("product %d: MetaDesc %d bytes: %q", p.ID, len(got.MetaDesc), got.MetaDesc)
		}
	}
}

func TestComposeFallbackToTitleWord(t *testing.T) {
	p := &models.Product{ID: 4, Title: "Gadget Pro", Status: "active"}

	got := Compose(p, &keywords.Map{}, nil, nil, testOptions())
	if len(got.ChosenKeywords) != 1 || got.ChosenKeywords[0] != "gadget" {
		t.Errorf("ChosenKeywords = %v, want [gadget]", got.ChosenKeywords)
	}
	if !strings.HasPrefix(got.MetaTitle, "Gadget | ") {
		t.Errorf("MetaTitle = %q", got.MetaTitle)
	}
}

func TestComposeFallbackToGenericKeyword(t *testing.T) {
	p := &models.Product{ID: 5, Status: "active"}

	got := Compose(p, &keywords.Map{}, nil, nil, testOptions())
	if len(got.ChosenKeywords) != 1 || got.ChosenKeywords[0] != "best value picks" {
		t.Errorf("ChosenKeywords = %v, want the generic fallback", got.ChosenKeywords)
	}
	if got.MetaDesc == "" {
		t.Error("MetaDesc empty")
	}
}

func TestComposeTrendQueriesGetSlots(t *testing.T) {
	trends := []string{"Vegan Leather Wallet", "mens wallet", "third query"}

	got := Compose(walletProduct(), walletKeywordMap(), nil, trends, testOptions())
	if len(got.ChosenKeywords) < 2 {
		t.Fatalf("ChosenKeywords = %v", got.ChosenKeywords)
	}
	if got.ChosenKeywords[0] != "vegan leather wallet" || got.ChosenKeywords[1] != "mens wallet" {
		t.Errorf("trend queries not prepended: %v", got.ChosenKeywords)
	}
	for _, kw := range got.ChosenKeywords {
		if kw == "third query" {
			t.Error("more than two trend queries injected")
		}
	}
	if len(got.ChosenKeywords) > 5 {
		t.Errorf("chose %d keywords, want at most 5", len(got.ChosenKeywords))
	}
}

func TestComposeBoostChangesRanking(t *testing.T) {
	p := &models.Product{
		ID:       6,
		Title:    "Leather Wallet and Belt",
		BodyHTML: "leather wallet leather belt",
		Status:   "active",
	}
	kwMap := &keywords.Map{Unigrams: []keywords.Entry{
		{Keyword: "wallet", Count: 10},
		{Keyword: "belt", Count: 10},
	}}

	// Both score identically; boosting one must promote it.
	boost := map[string]struct{}{"belt": {}}
	got := Compose(p, kwMap, boost, nil, testOptions())
	if got.ChosenKeywords[0] != "belt" {
		t.Errorf("boosted keyword not primary: %v", got.ChosenKeywords)
	}
}

func TestComposeAltSuggestionsOnlyForMissingAlt(t *testing.T) {
	p := walletProduct()
	p.Images = []models.Image{
		{ID: 11, Alt: "already described"},
		{ID: 12, Alt: ""},
		{ID: 13, Alt: "   "},
	}

	got := Compose(p, walletKeywordMap(), nil, nil, testOptions())
	if len(got.AltSuggestions) != 2 {
		t.Fatalf("AltSuggestions = %v, want 2", got.AltSuggestions)
	}
	if got.AltSuggestions[0].ImageID != 12 || got.AltSuggestions[0].Index != 2 {
		t.Errorf("first suggestion = %+v", got.AltSuggestions[0])
	}
	if got.AltSuggestions[0].Alt != AltText("Leather Wallet", 2) {
		t.Errorf("Alt = %q", got.AltSuggestions[0].Alt)
	}
}

func TestComposeSeasonalPhraseWhenItFits(t *testing.T) {
	opts := testOptions()
	opts.CTAPhrase = ""
	opts.SeasonalPhrases = []string{"An Impossibly Long Seasonal Phrase That Never Fits Any Title", "Gift Ready"}

	p := &models.Product{ID: 7, Title: "Wallet", BodyHTML: "wallet", Status: "active"}
	kwMap := &keywords.Map{Unigrams: []keywords.Entry{{Keyword: "wallet", Count: 5}}}
	got := Compose(p, kwMap, nil, nil, opts)
	if !strings.Contains(got.MetaTitle, "Gift Ready") {
		t.Errorf("first fitting seasonal phrase skipped: %q", got.MetaTitle)
	}
	if strings.Contains(got.MetaTitle, "Impossibly") {
		t.Errorf("oversized seasonal phrase used: %q", got.MetaTitle)
	}
}

func TestAltText(t *testing.T) {
	if got := AltText("Leather Wallet", 3); got != "Leather Wallet — image 3" {
		t.Errorf("AltText = %q", got)
	}
	if got := AltText("", 1); got != "Product — image 1" {
		t.Errorf("AltText for empty title = %q", got)
	}
}
