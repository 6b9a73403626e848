// Package trends folds external query-performance data into the keyword
// boost set. It is strictly best-effort: every failure degrades to an empty
// result so the SEO run never blocks on it.
package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"seopilot/internal/httpclient"
	"seopilot/internal/logger"
)

// Row is one aggregated query-performance record.
type Row struct {
	Query       string  `json:"query"`
	Clicks      float64 `json:"clicks"`
	Impressions float64 `json:"impressions"`
	CTR         float64 `json:"ctr"`
	Position    float64 `json:"position"`
}

// Options tune the fetch window and filtering.
type Options struct {
	SiteURL        string
	AccessToken    string
	LookbackDays   int
	DelayDays      int // recent days are often incomplete
	MinImpressions int
	TopN           int
	Blacklist      []string
}

type Fetcher struct {
	httpClient *httpclient.Client
	logger     *logger.Logger
	opts       Options
	now        func() time.Time
	baseURL    string
}

func NewFetcher(hc *httpclient.Client, log *logger.Logger, opts Options, now func() time.Time) *Fetcher {
	if now == nil {
		now = time.Now
	}
	if opts.LookbackDays <= 0 {
		opts.LookbackDays = 28
	}
	if opts.DelayDays < 0 {
		opts.DelayDays = 0
	}
	if opts.TopN <= 0 {
		opts.TopN = 15
	}
	return &Fetcher{
		httpClient: hc,
		logger:     log,
		opts:       opts,
		now:        now,
		baseURL:    "https://www.googleapis.com/webmasters/v3",
	}
}

type queryRequest struct {
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
	Dimensions []string `json:"dimensions"`
	RowLimit   int      `json:"rowLimit"`
}

type queryResponse struct {
	Rows []struct {
		Keys        []string `json:"keys"`
		Clicks      float64  `json:"clicks"`
		Impressions float64  `json:"impressions"`
		CTR         float64  `json:"ctr"`
		Position    float64  `json:"position"`
	} `json:"rows"`
}

// Fetch returns the top trending queries over the lookback window, filtered
// and sorted. Any failure is logged and yields an empty slice.
func (f *Fetcher) Fetch(ctx context.Context) []Row {
	if f.opts.SiteURL == "" || f.opts.AccessToken == "" {
		return nil
	}

	end := f.now().AddDate(0, 0, -f.opts.DelayDays)
	start := end.AddDate(0, 0, -f.opts.LookbackDays)
	payload, err := json.Marshal(queryRequest{
		StartDate:  start.Format("2006-01-02"),
		EndDate:    end.Format("2006-01-02"),
		Dimensions: []string{"query"},
		RowLimit:   250,
	})
	if err != nil {
		return nil
	}

	endpoint := fmt.Sprintf("%s/sites/%s/searchAnalytics/query",
		f.baseURL, url.PathEscape(f.opts.SiteURL))
	headers := map[string]string{
		"Authorization": "Bearer " + f.opts.AccessToken,
		"Content-Type":  "application/json",
	}
	_, body, err := f.httpClient.Do(ctx, "POST", endpoint, headers, payload)
	if err != nil {
		f.logger.Warn("trend fetch failed, continuing without boost: %v", err)
		return nil
	}

	var resp queryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		f.logger.Warn("trend response malformed, continuing without boost: %v", err)
		return nil
	}

	rows := make([]Row, 0, len(resp.Rows))
	for _, r := range resp.Rows {
		if len(r.Keys) == 0 {
			continue
		}
		query := strings.ToLower(strings.TrimSpace(r.Keys[0]))
		if query == "" || r.Impressions < float64(f.opts.MinImpressions) {
			continue
		}
		if f.blacklisted(query) {
			continue
		}
		rows = append(rows, Row{
			Query:       query,
			Clicks:      r.Clicks,
			Impressions: r.Impressions,
			CTR:         r.CTR,
			Position:    r.Position,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Impressions != rows[j].Impressions {
			return rows[i].Impressions > rows[j].Impressions
		}
		return rows[i].Clicks > rows[j].Clicks
	})
	if len(rows) > f.opts.TopN {
		rows = rows[:f.opts.TopN]
	}
	return rows
}

func (f *Fetcher) blacklisted(query string) bool {
	for _, b := range f.opts.Blacklist {
		if b != "" && strings.Contains(query, strings.ToLower(b)) {
			return true
		}
	}
	return false
}

// Queries extracts just the query strings from rows.
func Queries(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Query)
	}
	return out
}
