package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Lexicon holds the word lists driving tokenization, intent classification
// and title composition. The defaults are empirical product choices, so they
// can be replaced wholesale from a YAML file.
type Lexicon struct {
	Stopwords       []string `yaml:"stopwords"`
	Informational   []string `yaml:"informational"`
	Commercial      []string `yaml:"commercial"`
	Transactional   []string `yaml:"transactional"`
	SeasonalPhrases []string `yaml:"seasonal_phrases"`
	GenericKeyword  string   `yaml:"generic_keyword"`
}

var defaultStopwords = []string{
	// generic English function words
	"the", "and", "for", "with", "from", "this", "that", "are", "was",
	"were", "will", "can", "has", "have", "had", "not", "but", "all",
	"any", "our", "your", "you", "its", "per", "via", "more", "most",
	"out", "off", "one", "two", "set", "use", "get",
	// commerce / product noise
	"new", "free", "best", "top", "hot", "sale", "item", "items",
	"product", "products", "quality", "premium", "pack", "piece", "pcs",
	"size", "color", "colour", "style", "type", "brand",
	"case", "cases", "charger", "chargers", "wireless", "usb", "cable",
	"shipping", "gift", "accessories",
}

var defaultInformational = []string{
	"how", "what", "why", "guide", "tips", "ideas", "tutorial", "diy",
	"best way", "review", "reviews", "compare", "difference",
}

var defaultCommercial = []string{
	"best", "top", "cheap", "affordable", "deal", "deals", "vs",
	"alternative", "comparison", "rated",
}

var defaultTransactional = []string{
	"buy", "shop", "order", "price", "discount", "coupon", "sale",
	"free shipping", "near me", "for sale",
}

var defaultSeasonal = []string{
	"Holiday Picks", "Summer Essentials", "Back to School", "Gift Ready",
}

// DefaultLexicon returns the compiled-in word lists.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		Stopwords:       defaultStopwords,
		Informational:   defaultInformational,
		Commercial:      defaultCommercial,
		Transactional:   defaultTransactional,
		SeasonalPhrases: defaultSeasonal,
		GenericKeyword:  "best value picks",
	}
}

// LoadLexicon reads lists from a YAML file, falling back to the defaults for
// any list the file leaves empty. An empty path returns the defaults.
func LoadLexicon(path string) (*Lexicon, error) {
	lex := DefaultLexicon()
	if path == "" {
		return lex, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon file: %w", err)
	}
	var override Lexicon
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon file: %w", err)
	}
	if len(override.Stopwords) > 0 {
		lex.Stopwords = override.Stopwords
	}
	if len(override.Informational) > 0 {
		lex.Informational = override.Informational
	}
	if len(override.Commercial) > 0 {
		lex.Commercial = override.Commercial
	}
	if len(override.Transactional) > 0 {
		lex.Transactional = override.Transactional
	}
	if len(override.SeasonalPhrases) > 0 {
		lex.SeasonalPhrases = override.SeasonalPhrases
	}
	if override.GenericKeyword != "" {
		lex.GenericKeyword = override.GenericKeyword
	}
	return lex, nil
}
