package sitemap

import (
	"context"
	"encoding/json"
	"net/url"

	"golang.org/x/sync/errgroup"

	"seopilot/internal/httpclient"
	"seopilot/internal/logger"
)

// PingOptions select which notification sinks are active.
type PingOptions struct {
	SitemapURL string
	Bing       bool
	// Google's sitemap ping endpoint is deprecated; kept behind a flag for
	// stores that still want the request sent.
	Google         bool
	IndexNowKey    string
	IndexNowKeyURL string
	Host           string
	URLs           []string
}

// PingResult reports the per-sink outcome.
type PingResult struct {
	Sink   string `json:"sink"`
	OK     bool   `json:"ok"`
	Status int    `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Pinger sends fire-and-forget notifications. Failures are logged, never
// escalated.
type Pinger struct {
	httpClient *httpclient.Client
	logger     *logger.Logger
}

func NewPinger(hc *httpclient.Client, log *logger.Logger) *Pinger {
	return &Pinger{httpClient: hc, logger: log}
}

// Ping fans out to the enabled sinks concurrently and collects their
// outcomes. It always returns a result per attempted sink and never an error.
func (p *Pinger) Ping(ctx context.Context, opts PingOptions) []PingResult {
	type job struct {
		sink string
		run  func(context.Context) PingResult
	}
	var jobs []job
	if opts.Bing && opts.SitemapURL != "" {
		jobs = append(jobs, job{"bing", func(ctx context.Context) PingResult {
			return p.getPing(ctx, "bing", "https://www.bing.com/ping?siteMap="+url.QueryEscape(opts.SitemapURL))
		}})
	}
	if opts.Google && opts.SitemapURL != "" {
		jobs = append(jobs, job{"google", func(ctx context.Context) PingResult {
			return p.getPing(ctx, "google", "https://www.google.com/ping?sitemap="+url.QueryEscape(opts.SitemapURL))
		}})
	}
	if opts.IndexNowKey != "" && len(opts.URLs) > 0 {
		jobs = append(jobs, job{"indexnow", func(ctx context.Context) PingResult {
			return p.indexNow(ctx, opts)
		}})
	}

	results := make([]PingResult, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			results[i] = j.run(gctx)
			return nil
		})
	}
	g.Wait()

	for _, res := range results {
		if !res.OK {
			p.logger.Warn("sitemap ping %s failed: status=%d %s", res.Sink, res.Status, res.Error)
		}
	}
	return results
}

func (p *Pinger) getPing(ctx context.Context, sink, endpoint string) PingResult {
	status, _, err := p.httpClient.Do(ctx, "GET", endpoint, nil, nil)
	res := PingResult{Sink: sink, Status: status, OK: err == nil && status < 400}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}

// indexNow submits the URL list in one bulk POST.
func (p *Pinger) indexNow(ctx context.Context, opts PingOptions) PingResult {
	payload, err := json.Marshal(map[string]interface{}{
		"host":        opts.Host,
		"key":         opts.IndexNowKey,
		"keyLocation": opts.IndexNowKeyURL,
		"urlList":     opts.URLs,
	})
	if err != nil {
		return PingResult{Sink: "indexnow", Error: err.Error()}
	}
	status, _, err := p.httpClient.Do(ctx, "POST", "https://api.indexnow.org/indexnow",
		map[string]string{"Content-Type": "application/json; charset=utf-8"}, payload)
	res := PingResult{Sink: "indexnow", Status: status, OK: err == nil && status < 400}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}
