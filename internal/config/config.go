package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Shopify Admin API
	ShopifyStore      string
	ShopifyAPIVersion string
	ShopifyAdminToken string
	UseGraphQL        bool

	// SEO run tuning
	BatchSize       int
	DryRun          bool
	ForceOverwrite  bool
	AltScopeAll     bool
	RewriteHandles  bool
	TitleMaxLen     int
	DescMaxLen      int
	CTAPhrase       string
	SeasonalPhrases []string
	WriteDelayMs    int

	// Keyword map
	KeywordScanLimit int
	KeywordTopLimit  int
	KeywordMinLen    int
	IncludeBigrams   bool
	CacheTTLMinutes  int
	BoostSetSize     int
	LexiconPath      string

	// Trends (Search Console, optional)
	EnableTrends        bool
	GSCSiteURL          string
	GSCAccessToken      string
	TrendLookbackDays   int
	TrendDelayDays      int
	TrendMinImpressions int
	TrendTopN           int
	TrendBlacklist      []string

	// Sitemap / pings
	PrimarySitemap   string
	PublicBase       string
	CanonicalDomain  string
	EnableBingPing   bool
	EnableGooglePing bool
	IndexNowKey      string
	IndexNowKeyURL   string

	// Email report
	EnableEmail    bool
	SendGridAPIKey string
	EmailTo        []string
	EmailFrom      string

	// Local state
	StateDir     string
	LockPath     string
	SnapshotPath string

	// Infrastructure
	DatabaseURL  string
	RedisURL     string
	KafkaBrokers string

	// API
	APIPort   string
	APIHost   string
	AuthToken string

	// Environment
	Env      string
	LogLevel string
}

func Load() (*Config, error) {
	// Load .env file
	godotenv.Load()

	return &Config{
		ShopifyStore:      getEnv("SHOPIFY_STORE", ""),
		ShopifyAPIVersion: getEnv("SHOPIFY_API_VERSION", "2025-07"),
		ShopifyAdminToken: getEnv("SHOPIFY_ADMIN_TOKEN", ""),
		UseGraphQL:        getEnvAsBool("USE_GRAPHQL", true),

		BatchSize:       getEnvAsInt("SEO_BATCH_SIZE", 10),
		DryRun:          getEnvAsBool("DRY_RUN", false),
		ForceOverwrite:  getEnvAsBool("FORCE_OVERWRITE", false),
		AltScopeAll:     getEnvAsBool("ALT_UPDATE_ALL_IMAGES", false),
		RewriteHandles:  getEnvAsBool("REWRITE_HANDLES", false),
		TitleMaxLen:     getEnvAsInt("SEO_TITLE_MAX_LEN", 60),
		DescMaxLen:      getEnvAsInt("SEO_DESC_MAX_LEN", 160),
		CTAPhrase:       getEnv("SEO_CTA_PHRASE", "Shop Now"),
		SeasonalPhrases: getEnvAsList("SEO_SEASONAL_PHRASES", ""),
		WriteDelayMs:    getEnvAsInt("SEO_WRITE_DELAY_MS", 600),

		KeywordScanLimit: getEnvAsInt("KEYWORD_SCAN_LIMIT", 500),
		KeywordTopLimit:  getEnvAsInt("KEYWORD_TOP_LIMIT", 40),
		KeywordMinLen:    getEnvAsInt("KEYWORD_MIN_LEN", 3),
		IncludeBigrams:   getEnvAsBool("KEYWORD_BIGRAMS", true),
		CacheTTLMinutes:  getEnvAsInt("KEYWORD_CACHE_TTL_MIN", 60),
		BoostSetSize:     getEnvAsInt("KEYWORD_BOOST_SIZE", 10),
		LexiconPath:      getEnv("SEO_LEXICON_PATH", ""),

		EnableTrends:        getEnvAsBool("ENABLE_TRENDS", false),
		GSCSiteURL:          getEnv("GSC_SITE_URL", ""),
		GSCAccessToken:      getEnv("GSC_ACCESS_TOKEN", ""),
		TrendLookbackDays:   getEnvAsInt("TREND_LOOKBACK_DAYS", 28),
		TrendDelayDays:      getEnvAsInt("TREND_DELAY_DAYS", 3),
		TrendMinImpressions: getEnvAsInt("TREND_MIN_IMPRESSIONS", 20),
		TrendTopN:           getEnvAsInt("TREND_TOP_N", 15),
		TrendBlacklist:      getEnvAsList("TREND_BLACKLIST", ""),

		PrimarySitemap:   getEnv("PRIMARY_SITEMAP", ""),
		PublicBase:       strings.TrimRight(getEnv("PUBLIC_BASE", ""), "/"),
		CanonicalDomain:  getEnv("CANONICAL_DOMAIN", ""),
		EnableBingPing:   getEnvAsBool("ENABLE_BING_PING", true),
		EnableGooglePing: getEnvAsBool("ENABLE_GOOGLE_PING", false),
		IndexNowKey:      getEnv("INDEXNOW_KEY", ""),
		IndexNowKeyURL:   getEnv("INDEXNOW_KEY_URL", ""),

		EnableEmail:    getEnvAsBool("ENABLE_EMAIL", false),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailTo:        getEnvAsList("EMAIL_TO", ""),
		EmailFrom:      getEnv("EMAIL_FROM", "reports@localhost"),

		StateDir:     getEnv("SEO_STATE_DIR", "data"),
		LockPath:     getEnv("SEO_LOCK_PATH", "data/seo_run.lock"),
		SnapshotPath: getEnv("SEO_SNAPSHOT_PATH", "data/last_updated.json"),

		DatabaseURL:  getEnv("DATABASE_URL", "sqlite://data/seopilot.db"),
		RedisURL:     getEnv("REDIS_URL", ""),
		KafkaBrokers: getEnv("KAFKA_BROKERS", ""),

		APIPort:   getEnv("API_PORT", "8080"),
		APIHost:   getEnv("API_HOST", "0.0.0.0"),
		AuthToken: getEnv("AUTH_TOKEN", ""),

		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, nil
}

// Validate checks the credentials required before any catalog call is made.
func (c *Config) Validate() error {
	var missing []string
	if c.ShopifyStore == "" {
		missing = append(missing, "SHOPIFY_STORE")
	}
	if c.ShopifyAdminToken == "" {
		missing = append(missing, "SHOPIFY_ADMIN_TOKEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultValue
}

func getEnvAsList(key, defaultValue string) []string {
	value := getEnv(key, defaultValue)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
