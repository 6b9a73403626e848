package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SHOPIFY_STORE", "test-store")
	t.Setenv("SHOPIFY_ADMIN_TOKEN", "token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.BatchSize != 10 {
		t.Errorf("BatchSize = %d, want 10", cfg.BatchSize)
	}
	if cfg.TitleMaxLen != 60 || cfg.DescMaxLen != 160 {
		t.Errorf("length caps = %d/%d, want 60/160", cfg.TitleMaxLen, cfg.DescMaxLen)
	}
	if cfg.CTAPhrase != "Shop Now" {
		t.Errorf("CTAPhrase = %q", cfg.CTAPhrase)
	}
	if !cfg.UseGraphQL {
		t.Error("UseGraphQL should default on")
	}
	if cfg.DryRun || cfg.ForceOverwrite {
		t.Error("destructive toggles should default off")
	}
	if cfg.CacheTTLMinutes != 60 {
		t.Errorf("CacheTTLMinutes = %d, want 60", cfg.CacheTTLMinutes)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SHOPIFY_STORE", "test-store")
	t.Setenv("SHOPIFY_ADMIN_TOKEN", "token")
	t.Setenv("SEO_BATCH_SIZE", "25")
	t.Setenv("DRY_RUN", "true")
	t.Setenv("SEO_SEASONAL_PHRASES", "Holiday Picks, Summer Essentials")
	t.Setenv("TREND_BLACKLIST", "brandname,returns")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BatchSize != 25 {
		t.Errorf("BatchSize = %d, want 25", cfg.BatchSize)
	}
	if !cfg.DryRun {
		t.Error("DRY_RUN not applied")
	}
	if len(cfg.SeasonalPhrases) != 2 || cfg.SeasonalPhrases[1] != "Summer Essentials" {
		t.Errorf("SeasonalPhrases = %v", cfg.SeasonalPhrases)
	}
	if len(cfg.TrendBlacklist) != 2 {
		t.Errorf("TrendBlacklist = %v", cfg.TrendBlacklist)
	}
}

func TestValidateMissingCredentials(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadLexiconDefaults(t *testing.T) {
	lex, err := LoadLexicon("")
	if err != nil {
		t.Fatalf("LoadLexicon failed: %v", err)
	}
	if len(lex.Stopwords) == 0 || len(lex.Transactional) == 0 {
		t.Error("default lists empty")
	}
	if lex.GenericKeyword == "" {
		t.Error("generic keyword empty")
	}
}

func TestLoadLexiconOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	data := []byte("stopwords:\n  - foo\n  - bar\ngeneric_keyword: top sellers\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	lex, err := LoadLexicon(path)
	if err != nil {
		t.Fatalf("LoadLexicon failed: %v", err)
	}
	if len(lex.Stopwords) != 2 || lex.Stopwords[0] != "foo" {
		t.Errorf("Stopwords = %v", lex.Stopwords)
	}
	if lex.GenericKeyword != "top sellers" {
		t.Errorf("GenericKeyword = %q", lex.GenericKeyword)
	}
	// Lists the file does not set keep their defaults.
	if len(lex.Transactional) == 0 {
		t.Error("Transactional defaults lost")
	}
}

func TestLoadLexiconBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	if err := os.WriteFile(path, []byte("stopwords: {not a list"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadLexicon(path); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := LoadLexicon(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected read error")
	}
}
