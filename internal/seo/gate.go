package seo

import (
	"strings"

	"seopilot/internal/models"
)

// GateOptions control which fields the idempotence gate compares.
type GateOptions struct {
	// ForceOverwrite bypasses every comparison: all eligible products are
	// treated as needing an update.
	ForceOverwrite bool
	// RewriteHandles also compares the stored handle to the proposed one.
	RewriteHandles bool
	// AltScopeAll compares the ALT text of every image instead of just the
	// first one.
	AltScopeAll bool
}

// Gate reasons.
const (
	ReasonForce        = "force"
	ReasonNoChange     = "nochange"
	ReasonTitleDiff    = "title_diff"
	ReasonDescDiff     = "desc_diff"
	ReasonHandleDiff   = "handle_diff"
	ReasonAltDiffFirst = "alt_diff_first"
	ReasonAltDiffAll   = "alt_diff_all"
)

// NeedsUpdate compares the composed output against the product's currently
// stored values and reports whether a write is warranted, with the first
// difference found as the reason. Title is checked before description, then
// handle, then ALT text.
func NeedsUpdate(p *models.Product, composed *Composed, opts GateOptions) (bool, string) {
	if opts.ForceOverwrite {
		return true, ReasonForce
	}
	if strings.TrimSpace(composed.MetaTitle) != strings.TrimSpace(p.MetaTitle) {
		return true, ReasonTitleDiff
	}
	if strings.TrimSpace(composed.MetaDesc) != strings.TrimSpace(p.MetaDescription) {
		return true, ReasonDescDiff
	}
	if opts.RewriteHandles && composed.Handle != "" && composed.Handle != p.Handle {
		return true, ReasonHandleDiff
	}
	if diff, reason := altDiff(p, composed, opts.AltScopeAll); diff {
		return true, reason
	}
	return false, ReasonNoChange
}

// altDiff reports whether any in-scope image would receive different ALT
// text. Products without images vacuously match.
func altDiff(p *models.Product, composed *Composed, all bool) (bool, string) {
	if len(p.Images) == 0 {
		return false, ""
	}
	proposed := make(map[int64]string, len(composed.AltSuggestions))
	for _, s := range composed.AltSuggestions {
		proposed[s.ImageID] = s.Alt
	}
	scope := p.Images[:1]
	reason := ReasonAltDiffFirst
	if all {
		scope = p.Images
		reason = ReasonAltDiffAll
	}
	for _, img := range scope {
		alt, ok := proposed[img.ID]
		if !ok {
			continue // image already has ALT text, nothing proposed
		}
		if strings.TrimSpace(img.Alt) != strings.TrimSpace(alt) {
			return true, reason
		}
	}
	return false, ""
}
