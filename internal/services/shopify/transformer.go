package shopify

import (
	"context"

	"seopilot/internal/models"
)

// TransformProduct converts a Shopify product to the canonical format the
// SEO engine works on.
func TransformProduct(sp *Product) models.Product {
	p := models.Product{
		ID:          sp.ID,
		Title:       sp.Title,
		Handle:      sp.Handle,
		BodyHTML:    sp.BodyHTML,
		Vendor:      sp.Vendor,
		ProductType: sp.ProductType,
		Status:      sp.Status,
		Tags:        sp.Tags,
		UpdatedAt:   sp.UpdatedAt,
		PublishedAt: sp.PublishedAt,
	}

	for _, mf := range sp.Metafields {
		if mf.Namespace != "global" {
			continue
		}
		switch mf.Key {
		case "title_tag":
			p.MetaTitle = mf.Value
		case "description_tag":
			p.MetaDescription = mf.Value
		}
	}

	p.Images = make([]models.Image, 0, len(sp.Images))
	for _, img := range sp.Images {
		alt := ""
		if img.Alt != nil {
			alt = *img.Alt
		}
		p.Images = append(p.Images, models.Image{ID: img.ID, Src: img.Src, Alt: alt})
	}

	for _, opt := range sp.Options {
		p.Options = append(p.Options, models.Option{Name: opt.Name, Values: opt.Values})
	}
	for _, v := range sp.Variants {
		p.Variants = append(p.Variants, models.Variant{ID: v.ID, Title: v.Title, SKU: v.Sku, Price: v.Price})
	}
	return p
}

// CatalogSource adapts the client to the paginator's page-fetch contract.
type CatalogSource struct {
	client *Client
}

func NewCatalogSource(client *Client) *CatalogSource {
	return &CatalogSource{client: client}
}

func (s *CatalogSource) FetchSince(ctx context.Context, sinceID int64, limit int) ([]models.Product, error) {
	wire, err := s.client.GetProductsSince(ctx, sinceID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]models.Product, 0, len(wire))
	for i := range wire {
		out = append(out, TransformProduct(&wire[i]))
	}
	return out, nil
}
