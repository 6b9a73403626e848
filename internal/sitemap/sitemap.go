// Package sitemap renders the product sitemap and notifies search engines
// about it.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"seopilot/internal/models"
)

// Builder renders the product-only sitemap with canonical URLs.
type Builder struct {
	shopDomain      string
	canonicalDomain string
}

func NewBuilder(shopDomain, canonicalDomain string) *Builder {
	return &Builder{shopDomain: shopDomain, canonicalDomain: canonicalDomain}
}

type urlSet struct {
	XMLName  xml.Name   `xml:"urlset"`
	Xmlns    string     `xml:"xmlns,attr"`
	XmlnsImg string     `xml:"xmlns:image,attr"`
	URLs     []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc     string      `xml:"loc"`
	Lastmod string      `xml:"lastmod"`
	Image   *imageEntry `xml:"image:image,omitempty"`
}

type imageEntry struct {
	Loc string `xml:"image:loc"`
}

// ProductURL returns the canonical storefront URL for a handle.
func (b *Builder) ProductURL(handle string) string {
	if b.canonicalDomain != "" {
		return fmt.Sprintf("https://%s/products/%s", b.canonicalDomain, handle)
	}
	return fmt.Sprintf("https://%s.myshopify.com/products/%s", b.shopDomain, handle)
}

// Render produces the sitemap XML for active, published products.
func (b *Builder) Render(products []models.Product) ([]byte, error) {
	set := urlSet{
		Xmlns:    "http://www.sitemaps.org/schemas/sitemap/0.9",
		XmlnsImg: "http://www.google.com/schemas/sitemap-image/1.1",
	}
	for i := range products {
		p := &products[i]
		if p.Status != "active" || p.PublishedAt == nil {
			continue
		}
		entry := urlEntry{
			Loc:     b.ProductURL(p.Handle),
			Lastmod: lastmod(p.UpdatedAt),
		}
		if len(p.Images) > 0 && p.Images[0].Src != "" {
			entry.Image = &imageEntry{Loc: p.Images[0].Src}
		}
		set.URLs = append(set.URLs, entry)
	}
	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render sitemap: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

// RobotsTxt renders robots.txt with the configured Sitemap lines.
func RobotsTxt(primarySitemap, publicBase string) string {
	lines := []string{"User-agent: *", "Allow: /"}
	if primarySitemap != "" {
		lines = append(lines, "Sitemap: "+primarySitemap)
	}
	if publicBase != "" {
		lines = append(lines, "Sitemap: "+publicBase+"/sitemap-products.xml")
	} else {
		lines = append(lines, "Sitemap: /sitemap-products.xml")
	}
	return strings.Join(lines, "\n") + "\n"
}

func lastmod(t time.Time) string {
	if t.IsZero() {
		t = time.Now().UTC()
	}
	return t.UTC().Format(time.RFC3339)
}
