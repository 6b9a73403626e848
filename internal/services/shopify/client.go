package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"seopilot/internal/httpclient"
	"seopilot/internal/logger"
	"seopilot/internal/metrics"
)

type Client struct {
	shopDomain  string
	apiVersion  string
	accessToken string
	httpClient  *httpclient.Client
	logger      *logger.Logger
}

func NewClient(shopDomain, apiVersion, accessToken string, hc *httpclient.Client, logger *logger.Logger) *Client {
	return &Client{
		shopDomain:  shopDomain,
		apiVersion:  apiVersion,
		accessToken: accessToken,
		httpClient:  hc,
		logger:      logger,
	}
}

func (c *Client) restURL(path string) string {
	return fmt.Sprintf("https://%s.myshopify.com/admin/api/%s/%s", c.shopDomain, c.apiVersion, path)
}

func (c *Client) headers() map[string]string {
	return map[string]string{
		"X-Shopify-Access-Token": c.accessToken,
		"Content-Type":           "application/json",
	}
}

func track(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.ShopifyCalls.WithLabelValues(operation, result).Inc()
}

// GetProductsSince fetches up to limit products with IDs after sinceID, in
// ascending ID order.
func (c *Client) GetProductsSince(ctx context.Context, sinceID int64, limit int) ([]Product, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if sinceID > 0 {
		q.Set("since_id", strconv.FormatInt(sinceID, 10))
	}
	u := c.restURL("products.json") + "?" + q.Encode()

	_, body, err := c.httpClient.Do(ctx, "GET", u, c.headers(), nil)
	track("products_list", err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	var resp ProductsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode products response: %w", err)
	}
	return resp.Products, nil
}

// UpdateProductSEO sets the search-engine title/description (and optionally
// the handle) through the REST product update endpoint.
func (c *Client) UpdateProductSEO(ctx context.Context, productID int64, metaTitle, metaDesc, handle string) error {
	product := map[string]interface{}{
		"id":                                productID,
		"metafields_global_title_tag":       metaTitle,
		"metafields_global_description_tag": metaDesc,
	}
	if handle != "" {
		product["handle"] = handle
	}
	payload, err := json.Marshal(map[string]interface{}{"product": product})
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	u := c.restURL(fmt.Sprintf("products/%d.json", productID))
	_, _, err = c.httpClient.Do(ctx, "PUT", u, c.headers(), payload)
	track("seo_update_rest", err)
	if err != nil {
		return fmt.Errorf("REST SEO update failed: %w", err)
	}
	return nil
}

// UpdateProductSEOGraphQL runs the productUpdate mutation against the seo
// field. userErrors are returned as an error so the caller can fall back to
// the REST path.
func (c *Client) UpdateProductSEOGraphQL(ctx context.Context, productID int64, metaTitle, metaDesc, handle string) error {
	input := map[string]interface{}{
		"id": fmt.Sprintf("gid://shopify/Product/%d", productID),
		"seo": map[string]string{
			"title":       metaTitle,
			"description": metaDesc,
		},
	}
	if handle != "" {
		input["handle"] = handle
	}
	payload, err := json.Marshal(map[string]interface{}{
		"query": `mutation productUpdate($input: ProductInput!) {
  productUpdate(input: $input) {
    product { id }
    userErrors { field message }
  }
}`,
		"variables": map[string]interface{}{"input": input},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal mutation: %w", err)
	}

	u := c.restURL("graphql.json")
	_, body, err := c.httpClient.Do(ctx, "POST", u, c.headers(), payload)
	track("seo_update_graphql", err)
	if err != nil {
		return fmt.Errorf("GraphQL SEO update failed: %w", err)
	}

	var resp graphQLResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("failed to decode GraphQL response: %w", err)
	}
	if len(resp.Errors) > 0 {
		return fmt.Errorf("GraphQL error: %s", resp.Errors[0].Message)
	}
	if errs := resp.Data.ProductUpdate.UserErrors; len(errs) > 0 {
		return fmt.Errorf("productUpdate userErrors: %s", errs[0].Message)
	}
	if resp.Data.ProductUpdate.Product == nil {
		return fmt.Errorf("productUpdate returned no product")
	}
	return nil
}

// UpdateImageAlt sets the ALT text of one product image.
func (c *Client) UpdateImageAlt(ctx context.Context, productID, imageID int64, alt string) error {
	payload, err := json.Marshal(map[string]interface{}{
		"image": map[string]interface{}{
			"id":  imageID,
			"alt": alt,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal image: %w", err)
	}

	u := c.restURL(fmt.Sprintf("products/%d/images/%d.json", productID, imageID))
	_, _, err = c.httpClient.Do(ctx, "PUT", u, c.headers(), payload)
	track("image_alt_update", err)
	if err != nil {
		return fmt.Errorf("image ALT update failed: %w", err)
	}
	return nil
}

// CreateProduct registers a new product and returns the created record.
func (c *Client) CreateProduct(ctx context.Context, product map[string]interface{}) (*Product, error) {
	payload, err := json.Marshal(map[string]interface{}{"product": product})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal product: %w", err)
	}

	_, body, err := c.httpClient.Do(ctx, "POST", c.restURL("products.json"), c.headers(), payload)
	track("product_create", err)
	if err != nil {
		return nil, fmt.Errorf("product create failed: %w", err)
	}
	var resp struct {
		Product Product `json:"product"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode create response: %w", err)
	}
	return &resp.Product, nil
}
