package shopify

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestTransformProduct(t *testing.T) {
	now := time.Now()
	sp := &Product{
		ID:          42,
		Title:       "Leather Wallet",
		Handle:      "leather-wallet",
		BodyHTML:    "<p>Handmade</p>",
		Status:      "active",
		Tags:        "leather, gift",
		UpdatedAt:   now,
		PublishedAt: &now,
		Metafields: []Metafield{
			{Namespace: "global", Key: "title_tag", Value: "Stored Title"},
			{Namespace: "global", Key: "description_tag", Value: "Stored description"},
			{Namespace: "custom", Key: "title_tag", Value: "ignored"},
		},
		Images: []Image{
			{ID: 1, Src: "https://cdn.example.com/a.jpg", Alt: strPtr("described")},
			{ID: 2, Src: "https://cdn.example.com/b.jpg", Alt: nil},
		},
		Variants: []Variant{{ID: 7, Title: "Default", Sku: "LW-1", Price: "29.00"}},
		Options:  []Option{{Name: "Color", Values: []string{"Brown", "Black"}}},
	}

	p := TransformProduct(sp)

	if p.ID != 42 || p.Title != "Leather Wallet" || p.Status != "active" {
		t.Errorf("basic fields lost: %+v", p)
	}
	if p.MetaTitle != "Stored Title" || p.MetaDescription != "Stored description" {
		t.Errorf("global metafields not extracted: %q / %q", p.MetaTitle, p.MetaDescription)
	}
	if len(p.Images) != 2 || p.Images[0].Alt != "described" || p.Images[1].Alt != "" {
		t.Errorf("images = %+v", p.Images)
	}
	if len(p.Variants) != 1 || p.Variants[0].SKU != "LW-1" {
		t.Errorf("variants = %+v", p.Variants)
	}
	if len(p.Options) != 1 || len(p.Options[0].Values) != 2 {
		t.Errorf("options = %+v", p.Options)
	}
	if p.PublishedAt == nil {
		t.Error("PublishedAt dropped")
	}
}

func TestTransformProductWithoutMetafields(t *testing.T) {
	p := TransformProduct(&Product{ID: 1, Title: "Bare"})
	if p.MetaTitle != "" || p.MetaDescription != "" {
		t.Errorf("meta fields should be empty: %+v", p)
	}
	if len(p.Images) != 0 {
		t.Errorf("images = %+v", p.Images)
	}
}
