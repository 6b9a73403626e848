package models

import (
	"strings"
	"time"
)

// Product is the canonical catalog entry this service reads every cycle and
// whose meta title/description and image ALT text it writes back.
type Product struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Handle          string     `json:"handle"`
	BodyHTML        string     `json:"body_html"`
	Vendor          string     `json:"vendor"`
	ProductType     string     `json:"product_type"`
	Status          string     `json:"status"`
	Tags            string     `json:"tags"`
	MetaTitle       string     `json:"meta_title"`
	MetaDescription string     `json:"meta_description"`
	Images          []Image    `json:"images"`
	Options         []Option   `json:"options"`
	Variants        []Variant  `json:"variants"`
	UpdatedAt       time.Time  `json:"updated_at"`
	PublishedAt     *time.Time `json:"published_at"`
}

type Image struct {
	ID  int64  `json:"id"`
	Src string `json:"src"`
	Alt string `json:"alt"`
}

type Option struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type Variant struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	SKU   string `json:"sku"`
	Price string `json:"price"`
}

// TagList splits the comma-separated tag string into trimmed tags.
func (p *Product) TagList() []string {
	if p.Tags == "" {
		return nil
	}
	parts := strings.Split(p.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, t := range parts {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Eligible reports whether the product should receive SEO updates at all.
// Draft and unpublished products are skipped.
func (p *Product) Eligible() bool {
	if p.Title == "" {
		return false
	}
	if p.Status != "" && p.Status != "active" {
		return false
	}
	return true
}
