// Package runner orchestrates one SEO pass: lock, keyword map, trend boost,
// batch selection, per-product compose/gate/apply, and the run summary.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"seopilot/internal/catalog"
	"seopilot/internal/config"
	"seopilot/internal/database"
	"seopilot/internal/keywords"
	"seopilot/internal/logger"
	"seopilot/internal/metrics"
	"seopilot/internal/models"
	"seopilot/internal/seo"
	"seopilot/internal/textutil"
	"seopilot/internal/trends"
)

// TrendSource is the optional external query-performance feed.
type TrendSource interface {
	Fetch(ctx context.Context) []trends.Row
}

// Options override per-run what the config defaults to.
type Options struct {
	BatchSize       int
	DryRun          bool
	ForceOverwrite  bool
	RebuildKeywords bool
	// Rotate selects round-robin batching; false sweeps the whole catalog.
	Rotate bool
}

// Runner wires the SEO pipeline together for one invocation at a time.
type Runner struct {
	cfg       *config.Config
	lexicon   *config.Lexicon
	logger    *logger.Logger
	paginator *catalog.Paginator
	cache     *keywords.Cache
	trendsSrc TrendSource
	writer    seo.Writer
	db        *database.Database
	lock      *RunLock
	sleep     func(time.Duration)
	now       func() time.Time
}

func New(cfg *config.Config, lex *config.Lexicon, log *logger.Logger, paginator *catalog.Paginator,
	cache *keywords.Cache, trendsSrc TrendSource, writer seo.Writer, db *database.Database) *Runner {
	return &Runner{
		cfg:       cfg,
		lexicon:   lex,
		logger:    log,
		paginator: paginator,
		cache:     cache,
		trendsSrc: trendsSrc,
		writer:    writer,
		db:        db,
		lock:      NewRunLock(cfg.LockPath, 20*time.Minute, nil),
		sleep:     time.Sleep,
		now:       time.Now,
	}
}

// DefaultOptions derives run options from the loaded config.
func (r *Runner) DefaultOptions() Options {
	return Options{
		BatchSize:      r.cfg.BatchSize,
		DryRun:         r.cfg.DryRun,
		ForceOverwrite: r.cfg.ForceOverwrite,
		Rotate:         true,
	}
}

// Run executes one SEO pass. Configuration errors and lock contention abort
// before any catalog mutation; per-product failures are counted and skipped.
func (r *Runner) Run(ctx context.Context, opts Options) (*models.RunSummary, error) {
	if err := r.cfg.Validate(); err != nil {
		metrics.RunsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}
	if err := r.lock.Acquire(); err != nil {
		if err == ErrLocked {
			metrics.RunsTotal.WithLabelValues("locked").Inc()
			r.logger.Info("run skipped: %v", err)
		}
		return nil, err
	}
	defer r.lock.Release()

	started := r.now()
	summary := &models.RunSummary{
		RunID:     uuid.New().String(),
		StartedAt: started,
		BatchSize: opts.BatchSize,
		DryRun:    opts.DryRun,
	}

	kwMap, err := r.cache.GetOrBuild(ctx, r.cfg.KeywordScanLimit, keywords.BuildParams{
		Limit:          r.cfg.KeywordTopLimit,
		MinLen:         r.cfg.KeywordMinLen,
		IncludeBigrams: r.cfg.IncludeBigrams,
		Scope:          "all",
	}, time.Duration(r.cfg.CacheTTLMinutes)*time.Minute, opts.RebuildKeywords)
	if err != nil {
		metrics.RunsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("keyword map build failed: %w", err)
	}
	if kwMap.Cached {
		metrics.KeywordCacheHits.WithLabelValues("hit").Inc()
	} else {
		metrics.KeywordCacheHits.WithLabelValues("rebuild").Inc()
	}

	boost := kwMap.BoostSet(r.cfg.BoostSetSize)
	var trendTop []string
	if r.trendsSrc != nil {
		rows := r.trendsSrc.Fetch(ctx)
		for _, q := range trends.Queries(rows) {
			boost[q] = struct{}{}
		}
		trendTop = trends.Queries(rows)
		if len(trendTop) > 2 {
			trendTop = trendTop[:2]
		}
	}

	var batch []models.Product
	if opts.Rotate {
		batch, err = r.paginator.ListBatchRoundRobin(ctx, opts.BatchSize)
	} else {
		batch, err = r.paginator.ListAll(ctx, opts.BatchSize)
	}
	if err != nil && len(batch) == 0 {
		metrics.RunsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("batch selection failed: %w", err)
	}

	composeOpts := seo.ComposeOptions{
		TitleMaxLen:     r.cfg.TitleMaxLen,
		DescMaxLen:      r.cfg.DescMaxLen,
		CTAPhrase:       r.cfg.CTAPhrase,
		SeasonalPhrases: r.seasonalPhrases(),
		Lexicon:         r.lexicon,
	}
	applier := seo.NewApplier(r.writer, r.logger, seo.ApplyOptions{
		Gate: seo.GateOptions{
			ForceOverwrite: opts.ForceOverwrite,
			RewriteHandles: r.cfg.RewriteHandles,
			AltScopeAll:    r.cfg.AltScopeAll,
		},
		UseGraphQL: r.cfg.UseGraphQL,
		DryRun:     opts.DryRun,
	})

	for i := range batch {
		p := &batch[i]
		decision := r.processProduct(ctx, p, kwMap, boost, trendTop, composeOpts, applier)
		summary.Decisions = append(summary.Decisions, decision)
		switch decision.Action {
		case models.ActionUpdated:
			summary.Updated++
		case models.ActionSkippedNoChange:
			summary.NoChange++
		case models.ActionSkippedIneligible:
			summary.Ineligible++
		default:
			summary.Errors++
		}
		metrics.ProductsProcessed.WithLabelValues(decision.Action).Inc()

		// Stay under the external API's rate limit between writes.
		if decision.Action == models.ActionUpdated && !opts.DryRun && r.cfg.WriteDelayMs > 0 {
			r.sleep(time.Duration(r.cfg.WriteDelayMs) * time.Millisecond)
		}
	}

	summary.FinishedAt = r.now()
	metrics.RunsTotal.WithLabelValues("completed").Inc()
	metrics.RunDuration.Observe(summary.FinishedAt.Sub(started).Seconds())

	r.persistSummary(summary)
	r.logger.Info("run %s: %d updated, %d unchanged, %d ineligible, %d errors",
		summary.RunID, summary.Updated, summary.NoChange, summary.Ineligible, summary.Errors)
	return summary, nil
}

func (r *Runner) processProduct(ctx context.Context, p *models.Product, kwMap *keywords.Map,
	boost map[string]struct{}, trendTop []string, composeOpts seo.ComposeOptions, applier *seo.Applier) models.Decision {

	decision := models.Decision{
		ProductID: p.ID,
		Handle:    p.Handle,
		Title:     p.Title,
	}
	if !p.Eligible() {
		decision.Action = models.ActionSkippedIneligible
		decision.Reason = "inactive_or_untitled"
		return decision
	}

	composed := seo.Compose(p, kwMap, boost, trendTop, composeOpts)
	if r.cfg.RewriteHandles {
		composed.Handle = textutil.Slugify(composed.ChosenKeywords[0] + " " + p.Title)
	}
	decision.MetaTitle = composed.MetaTitle
	decision.MetaDesc = composed.MetaDesc
	decision.ChosenKeywords = composed.ChosenKeywords
	decision.Intent = string(composed.Intent)
	for _, s := range composed.AltSuggestions {
		decision.AltSuggestions = append(decision.AltSuggestions, s.Alt)
	}

	result := applier.Apply(ctx, p, &composed)
	decision.Reason = result.Reason
	switch {
	case result.Err != nil:
		decision.Action = models.ActionError
		r.logger.Error("product %d update failed: %v", p.ID, result.Err)
	case result.Updated:
		decision.Action = models.ActionUpdated
	default:
		decision.Action = models.ActionSkippedNoChange
	}
	return decision
}

func (r *Runner) seasonalPhrases() []string {
	if len(r.cfg.SeasonalPhrases) > 0 {
		return r.cfg.SeasonalPhrases
	}
	return r.lexicon.SeasonalPhrases
}

// snapshot is the "last updated products" file written after each run.
type snapshot struct {
	Timestamp time.Time         `json:"timestamp"`
	BatchSize int               `json:"batch_size"`
	DryRun    bool              `json:"dry_run"`
	Products  []snapshotProduct `json:"products"`
}

type snapshotProduct struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
	Reason string `json:"reason"`
}

func (r *Runner) persistSummary(summary *models.RunSummary) {
	if r.db != nil {
		if err := r.db.SaveRun(summary); err != nil {
			r.logger.Error("failed to persist run history: %v", err)
		}
	}
	if r.cfg.SnapshotPath == "" {
		return
	}
	snap := snapshot{
		Timestamp: summary.FinishedAt,
		BatchSize: summary.BatchSize,
		DryRun:    summary.DryRun,
	}
	for _, d := range summary.Decisions {
		if d.Action != models.ActionUpdated {
			continue
		}
		snap.Products = append(snap.Products, snapshotProduct{
			ID: d.ProductID, Title: d.Title, Handle: d.Handle, Reason: d.Reason,
		})
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(r.cfg.SnapshotPath), 0o755); err != nil {
		r.logger.Error("failed to create snapshot dir: %v", err)
		return
	}
	if err := os.WriteFile(r.cfg.SnapshotPath, data, 0o644); err != nil {
		r.logger.Error("failed to write snapshot: %v", err)
	}
}
