// Package report sends the daily SEO summary email through SendGrid.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"seopilot/internal/httpclient"
	"seopilot/internal/logger"
	"seopilot/internal/models"
)

const sendGridURL = "https://api.sendgrid.com/v3/mail/send"

type Mailer struct {
	httpClient *httpclient.Client
	logger     *logger.Logger
	apiKey     string
	from       string
	to         []string
	enabled    bool
}

func NewMailer(hc *httpclient.Client, log *logger.Logger, apiKey, from string, to []string, enabled bool) *Mailer {
	return &Mailer{
		httpClient: hc,
		logger:     log,
		apiKey:     apiKey,
		from:       from,
		to:         to,
		enabled:    enabled,
	}
}

// SendDailyReport emails the latest run summaries. Disabled or misconfigured
// mailers skip quietly; this sink never fails a run.
func (m *Mailer) SendDailyReport(ctx context.Context, storeName string, runs []models.SeoRun) error {
	if !m.enabled {
		m.logger.Info("email disabled; daily report skipped")
		return nil
	}
	if m.apiKey == "" || len(m.to) == 0 {
		m.logger.Warn("missing SendGrid key or recipients; daily report skipped")
		return nil
	}

	subject := fmt.Sprintf("[Daily SEO Report] %s — %s", storeName, time.Now().Format("2006-01-02"))
	return m.send(ctx, subject, buildHTML(storeName, runs))
}

func (m *Mailer) send(ctx context.Context, subject, html string) error {
	tos := make([]map[string]string, 0, len(m.to))
	for _, addr := range m.to {
		tos = append(tos, map[string]string{"email": addr})
	}
	payload, err := json.Marshal(map[string]interface{}{
		"personalizations": []map[string]interface{}{{"to": tos}},
		"from":             map[string]string{"email": m.from, "name": "SEO Automation"},
		"subject":          subject,
		"content": []map[string]string{
			{"type": "text/html", "value": html},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal mail: %w", err)
	}

	headers := map[string]string{
		"Authorization": "Bearer " + m.apiKey,
		"Content-Type":  "application/json",
	}
	status, _, err := m.httpClient.Do(ctx, "POST", sendGridURL, headers, payload)
	if err != nil {
		return fmt.Errorf("mail send failed: %w", err)
	}
	m.logger.Info("daily report sent (%d)", status)
	return nil
}

func buildHTML(storeName string, runs []models.SeoRun) string {
	var sb strings.Builder
	sb.WriteString("<div style='font-family:system-ui,Segoe UI,Arial,sans-serif'>")
	sb.WriteString("<h3>Daily SEO Report — " + storeName + "</h3>")
	if len(runs) == 0 {
		sb.WriteString("<p>No runs recorded yet.</p>")
	} else {
		sb.WriteString("<table border='1' cellpadding='4' cellspacing='0'>")
		sb.WriteString("<tr><th>Started</th><th>Batch</th><th>Updated</th><th>No change</th><th>Ineligible</th><th>Errors</th><th>Dry run</th></tr>")
		for _, r := range runs {
			sb.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%t</td></tr>",
				r.StartedAt.Format("2006-01-02 15:04"), r.BatchSize, r.Updated, r.NoChange, r.Ineligible, r.Errors, r.DryRun))
		}
		sb.WriteString("</table>")
	}
	sb.WriteString("<p>Keep the cron trigger on /api/v1/seo/run and verify the sitemap in Search Console.</p>")
	sb.WriteString("</div>")
	return sb.String()
}
