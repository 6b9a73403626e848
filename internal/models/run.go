package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Decision action values.
const (
	ActionUpdated           = "updated"
	ActionSkippedNoChange   = "skipped_nochange"
	ActionSkippedIneligible = "skipped_ineligible"
	ActionError             = "error"
)

// Decision is the per-product outcome of one run: the composed output plus
// what was done with it.
type Decision struct {
	ProductID      int64    `json:"product_id"`
	Handle         string   `json:"handle"`
	Title          string   `json:"title"`
	MetaTitle      string   `json:"meta_title"`
	MetaDesc       string   `json:"meta_desc"`
	AltSuggestions []string `json:"alt_suggestions,omitempty"`
	ChosenKeywords []string `json:"chosen_keywords,omitempty"`
	Intent         string   `json:"intent,omitempty"`
	Action         string   `json:"action"`
	Reason         string   `json:"reason"`
}

// RunSummary aggregates one orchestrated run.
type RunSummary struct {
	RunID      string     `json:"run_id"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt time.Time  `json:"finished_at"`
	BatchSize  int        `json:"batch_size"`
	DryRun     bool       `json:"dry_run"`
	Updated    int        `json:"updated"`
	NoChange   int        `json:"skipped_nochange"`
	Ineligible int        `json:"skipped_ineligible"`
	Errors     int        `json:"errors"`
	Decisions  []Decision `json:"decisions,omitempty"`
}

// SeoRun is the persisted history row for a run (count-level metrics only).
type SeoRun struct {
	ID         string    `json:"id" gorm:"type:uuid;primary_key"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	BatchSize  int       `json:"batch_size"`
	DryRun     bool      `json:"dry_run"`
	Updated    int       `json:"updated"`
	NoChange   int       `json:"skipped_nochange"`
	Ineligible int       `json:"skipped_ineligible"`
	Errors     int       `json:"errors"`
	CreatedAt  time.Time `json:"created_at"`
}

func (r *SeoRun) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// SeoDecision is the persisted per-product row attached to a run.
type SeoDecision struct {
	ID        string    `json:"id" gorm:"type:uuid;primary_key"`
	RunID     string    `json:"run_id" gorm:"index"`
	ProductID int64     `json:"product_id"`
	Handle    string    `json:"handle"`
	Action    string    `json:"action"`
	Reason    string    `json:"reason"`
	MetaTitle string    `json:"meta_title"`
	CreatedAt time.Time `json:"created_at"`
}

func (d *SeoDecision) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}
