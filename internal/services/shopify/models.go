package shopify

import (
	"time"
)

// Product represents a Shopify product as returned by the Admin API.
type Product struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	BodyHTML    string      `json:"body_html"`
	Vendor      string      `json:"vendor"`
	ProductType string      `json:"product_type"`
	Handle      string      `json:"handle"`
	Status      string      `json:"status"`
	Tags        string      `json:"tags"`
	Variants    []Variant   `json:"variants"`
	Images      []Image     `json:"images"`
	Options     []Option    `json:"options"`
	Metafields  []Metafield `json:"metafields,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	PublishedAt *time.Time  `json:"published_at"`

	// Write-only SEO fields accepted by the product update endpoint.
	GlobalTitleTag       *string `json:"metafields_global_title_tag,omitempty"`
	GlobalDescriptionTag *string `json:"metafields_global_description_tag,omitempty"`
}

// Variant represents a product variant.
type Variant struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Price    string  `json:"price"`
	Sku      string  `json:"sku"`
	Position int     `json:"position"`
	Option1  *string `json:"option1"`
	Option2  *string `json:"option2"`
	Option3  *string `json:"option3"`
}

// Image represents a product image.
type Image struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Position  int     `json:"position"`
	Alt       *string `json:"alt"`
	Src       string  `json:"src"`
}

// Option represents a product option.
type Option struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Metafield carries the search-engine title/description attached to a
// product (namespace "global", keys "title_tag" / "description_tag").
type Metafield struct {
	ID        int64  `json:"id"`
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
}

// ProductsResponse represents the response from the products listing API.
type ProductsResponse struct {
	Products []Product `json:"products"`
}

// graphQLResponse wraps the productUpdate mutation result.
type graphQLResponse struct {
	Data struct {
		ProductUpdate struct {
			Product *struct {
				ID string `json:"id"`
			} `json:"product"`
			UserErrors []struct {
				Field   []string `json:"field"`
				Message string   `json:"message"`
			} `json:"userErrors"`
		} `json:"productUpdate"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}
