package seo

import (
	"testing"

	"seopilot/internal/models"
)

func syncedProduct() (*models.Product, *Composed) {
	p := &models.Product{
		ID:              1,
		Title:           "Leather Wallet",
		Handle:          "leather-wallet",
		MetaTitle:       "Leather Wallet | Premium Quality, Fast Shipping",
		MetaDescription: "leather wallet, leather — handmade. Shop Now.",
		Status:          "active",
		Images: []models.Image{
			{ID: 11, Alt: "Leather Wallet — image 1"},
		},
	}
	c := &Composed{
		MetaTitle: p.MetaTitle,
		MetaDesc:  p.MetaDescription,
		Handle:    p.Handle,
	}
	return p, c
}

func TestNeedsUpdate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(p *models.Product, c *Composed)
		opts       GateOptions
		wantNeeded bool
		wantReason string
	}{
		{
			name:       "identical is nochange",
			mutate:     func(p *models.Product, c *Composed) {},
			wantNeeded: false,
			wantReason: ReasonNoChange,
		},
		{
			name:       "force bypasses comparison",
			mutate:     func(p *models.Product, c *Composed) {},
			opts:       GateOptions{ForceOverwrite: true},
			wantNeeded: true,
			wantReason: ReasonForce,
		},
		{
			name: "title difference",
			mutate: func(p *models.Product, c *Composed) {
				c.MetaTitle = "Something Else"
			},
			wantNeeded: true,
			wantReason: ReasonTitleDiff,
		},
		{
			name: "title whitespace is not a difference",
			mutate: func(p *models.Product, c *Composed) {
				c.MetaTitle = "  " + p.MetaTitle + " "
			},
			wantNeeded: false,
			wantReason: ReasonNoChange,
		},
		{
			name: "description difference",
			mutate: func(p *models.Product, c *Composed) {
				c.MetaDesc = "fresh copy"
			},
			wantNeeded: true,
			wantReason: ReasonDescDiff,
		},
		{
			name: "handle difference only checked when enabled",
			mutate: func(p *models.Product, c *Composed) {
				c.Handle = "new-handle"
			},
			wantNeeded: false,
			wantReason: ReasonNoChange,
		},
		{
			name: "handle difference with rewrite enabled",
			mutate: func(p *models.Product, c *Composed) {
				c.Handle = "new-handle"
			},
			opts:       GateOptions{RewriteHandles: true},
			wantNeeded: true,
			wantReason: ReasonHandleDiff,
		},
		{
			name: "first image alt difference",
			mutate: func(p *models.Product, c *Composed) {
				p.Images[0].Alt = ""
				c.AltSuggestions = []AltSuggestion{{ImageID: 11, Index: 1, Alt: "Leather Wallet — image 1"}}
			},
			wantNeeded: true,
			wantReason: ReasonAltDiffFirst,
		},
		{
			name: "later image ignored in first-image scope",
			mutate: func(p *models.Product, c *Composed) {
				p.Images = append(p.Images, models.Image{ID: 12})
				c.AltSuggestions = []AltSuggestion{{ImageID: 12, Index: 2, Alt: "Leather Wallet — image 2"}}
			},
			wantNeeded: false,
			wantReason: ReasonNoChange,
		},
		{
			name: "later image checked in all-images scope",
			mutate: func(p *models.Product, c *Composed) {
				p.Images = append(p.Images, models.Image{ID: 12})
				c.AltSuggestions = []AltSuggestion{{ImageID: 12, Index: 2, Alt: "Leather Wallet — image 2"}}
			},
			opts:       GateOptions{AltScopeAll: true},
			wantNeeded: true,
			wantReason: ReasonAltDiffAll,
		},
		{
			name: "no images is vacuously in sync",
			mutate: func(p *models.Product, c *Composed) {
				p.Images = nil
			},
			wantNeeded: false,
			wantReason: ReasonNoChange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, c := syncedProduct()
			tt.mutate(p, c)
			needed, reason := NeedsUpdate(p, c, tt.opts)
			if needed != tt.wantNeeded || reason != tt.wantReason {
				t.Errorf("NeedsUpdate = (%t, %q), want (%t, %q)", needed, reason, tt.wantNeeded, tt.wantReason)
			}
		})
	}
}

func TestComposeThenGateIsIdempotent(t *testing.T) {
	p := walletProduct()
	kwMap := walletKeywordMap()
	opts := testOptions()

	first := Compose(p, kwMap, nil, nil, opts)
	p.MetaTitle = first.MetaTitle
	p.MetaDescription = first.MetaDesc

	second := Compose(p, kwMap, nil, nil, opts)
	needed, reason := NeedsUpdate(p, &second, GateOptions{})
	if needed {
		t.Errorf("second pass wants a write (%s): %q vs %q", reason, second.MetaTitle, p.MetaTitle)
	}
}
