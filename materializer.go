package pbexport

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Materializer guarantees every asset slated for export carries real
// generated content before conversion begins.
type Materializer struct {
	gen Generator
}

// NewMaterializer creates a Materializer backed by gen.
func NewMaterializer(gen Generator) *Materializer {
	return &Materializer{gen: gen}
}

// EnsureAssetContent returns an item whose asset carries adequate
// content. Items without an asset pass through untouched; content at or
// above MinAssetContentLen is never regenerated. The input is never
// mutated: a generated result comes back on a fresh copy.
func (m *Materializer) EnsureAssetContent(ctx context.Context, item OfferStackItem, biz BusinessContext) (OfferStackItem, error) {
	if item.Asset == nil || item.Asset.Materialized() {
		return item, nil
	}
	if biz.IsZero() {
		return item, ErrMissingContext
	}
	content, err := m.gen.GenerateAssetContent(ctx, item, biz)
	if err != nil {
		return item, &AssetGenerationError{AssetName: item.Asset.Name, Err: err}
	}
	out := item.Clone()
	out.Asset.Content = content
	return out, nil
}

// MaterializeOffer fans out across the offer's asset-bearing items and
// waits for all of them (all-or-error). onItem, if non-nil, fires once
// per asset-bearing item as it completes; it may be called from
// multiple goroutines.
func (m *Materializer) MaterializeOffer(ctx context.Context, offer Offer, biz BusinessContext, onItem func()) (Offer, error) {
	out := offer.Clone()
	g, ctx := errgroup.WithContext(ctx)
	for i := range out.Stack {
		if out.Stack[i].Asset == nil {
			continue
		}
		g.Go(func() error {
			item, err := m.EnsureAssetContent(ctx, out.Stack[i], biz)
			if err != nil {
				return err
			}
			out.Stack[i] = item
			if onItem != nil {
				onItem()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return offer, err
	}
	return out, nil
}

// MaterializeAll materializes the three offers concurrently and returns
// a fully materialized clone of the playbook. The source playbook is
// never touched, so a failed batch can be retried from the original and
// a successful one leaves the source ready for re-export.
func (m *Materializer) MaterializeAll(ctx context.Context, p *Playbook, biz BusinessContext, onItem func()) (*Playbook, error) {
	out := p.Clone()
	g, ctx := errgroup.WithContext(ctx)
	for _, offer := range out.Offers() {
		g.Go(func() error {
			mat, err := m.MaterializeOffer(ctx, *offer, biz, onItem)
			if err != nil {
				return err
			}
			*offer = mat
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// assetItemCount counts the offer's asset-bearing items.
func assetItemCount(o Offer) int {
	n := 0
	for _, item := range o.Stack {
		if item.Asset != nil {
			n++
		}
	}
	return n
}

// AssetItemCount counts asset-bearing items across the playbook's three
// offers: the denominator for batch materialization progress.
func AssetItemCount(p *Playbook) int {
	n := 0
	for _, offer := range p.Offers() {
		n += assetItemCount(*offer)
	}
	return n
}

// needsMaterialization reports whether any asset still lacks adequate
// content.
func needsMaterialization(p *Playbook) bool {
	for _, offer := range p.Offers() {
		for _, item := range offer.Stack {
			if item.Asset != nil && !item.Asset.Materialized() {
				return true
			}
		}
	}
	return false
}
