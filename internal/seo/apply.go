package seo

import (
	"context"
	"fmt"

	"seopilot/internal/logger"
	"seopilot/internal/models"
)

// Writer is the mutation surface of the external store.
type Writer interface {
	UpdateProductSEO(ctx context.Context, productID int64, metaTitle, metaDesc, handle string) error
	UpdateProductSEOGraphQL(ctx context.Context, productID int64, metaTitle, metaDesc, handle string) error
	UpdateImageAlt(ctx context.Context, productID, imageID int64, alt string) error
}

// ApplyOptions control the write path.
type ApplyOptions struct {
	Gate       GateOptions
	UseGraphQL bool
	DryRun     bool
}

// ApplyResult reports what Apply did for one product.
type ApplyResult struct {
	Updated bool
	Reason  string
	Err     error
}

// Applier pushes accepted changes to the external store.
type Applier struct {
	writer Writer
	logger *logger.Logger
	opts   ApplyOptions
}

func NewApplier(writer Writer, log *logger.Logger, opts ApplyOptions) *Applier {
	return &Applier{writer: writer, logger: log, opts: opts}
}

// Apply runs the idempotence gate and, when it passes, writes the metadata
// update (GraphQL first, REST on its failure) followed by the in-scope ALT
// updates. When the gate reports no change, no network call is made at all.
func (a *Applier) Apply(ctx context.Context, p *models.Product, composed *Composed) ApplyResult {
	needed, reason := NeedsUpdate(p, composed, a.opts.Gate)
	if !needed {
		return ApplyResult{Updated: false, Reason: reason}
	}

	if a.opts.DryRun {
		// The would-be update counts toward the summary like a real one.
		a.logger.Info("[dry run] product %d would update (%s): title=%q", p.ID, reason, composed.MetaTitle)
		return ApplyResult{Updated: true, Reason: reason}
	}

	handle := ""
	if a.opts.Gate.RewriteHandles {
		handle = composed.Handle
	}

	if err := a.writeMeta(ctx, p.ID, composed, handle); err != nil {
		return ApplyResult{Reason: "api_fail", Err: err}
	}
	if err := a.writeAlt(ctx, p, composed); err != nil {
		return ApplyResult{Reason: "api_fail", Err: err}
	}
	return ApplyResult{Updated: true, Reason: reason}
}

func (a *Applier) writeMeta(ctx context.Context, productID int64, composed *Composed, handle string) error {
	if a.opts.UseGraphQL {
		err := a.writer.UpdateProductSEOGraphQL(ctx, productID, composed.MetaTitle, composed.MetaDesc, handle)
		if err == nil {
			return nil
		}
		a.logger.Warn("GraphQL update failed for product %d, falling back to REST: %v", productID, err)
	}
	if err := a.writer.UpdateProductSEO(ctx, productID, composed.MetaTitle, composed.MetaDesc, handle); err != nil {
		return fmt.Errorf("metadata update failed: %w", err)
	}
	return nil
}

func (a *Applier) writeAlt(ctx context.Context, p *models.Product, composed *Composed) error {
	if len(p.Images) == 0 || len(composed.AltSuggestions) == 0 {
		return nil
	}
	firstID := p.Images[0].ID
	for _, s := range composed.AltSuggestions {
		if !a.opts.Gate.AltScopeAll && s.ImageID != firstID {
			continue
		}
		if err := a.writer.UpdateImageAlt(ctx, p.ID, s.ImageID, s.Alt); err != nil {
			return fmt.Errorf("ALT update failed for image %d: %w", s.ImageID, err)
		}
	}
	return nil
}
