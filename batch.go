package pbexport

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// ExportPackage produces the complete playbook package: every manifest
// document rendered to PDF plus a navigation index, archived into one
// ZIP and handed to the saver as a single blob. The export is
// all-or-nothing; a failure anywhere leaves nothing saved.
//
// Phase A (progress 0-50) materializes every inadequate asset across
// the three offers concurrently. Phase B (50-99) renders each manifest
// unit sequentially into the archive, then generates the navigation
// document from the same manifest so its links match the archived
// paths byte for byte.
func (e *Exporter) ExportPackage(ctx context.Context, p *Playbook, biz BusinessContext) error {
	if err := p.Complete(); err != nil {
		return err
	}
	if needsMaterialization(p) && biz.IsZero() {
		return ErrMissingContext
	}

	if err := e.begin(); err != nil {
		return err
	}
	start := time.Now()

	// Phase A: fan out asset generation across all offers.
	mat := p
	if total := AssetItemCount(p); total > 0 {
		var done atomic.Int32
		var err error
		mat, err = NewMaterializer(e.gen).MaterializeAll(ctx, p, biz, func() {
			n := int(done.Add(1))
			e.setProgress(n * batchMaterializeShare / total)
		})
		if err != nil {
			return e.fail(err)
		}
	}
	e.setProgress(batchMaterializeShare)

	// Phase B: render every document in manifest order into the archive.
	e.setStatus(StatusRendering)
	archive := e.newArchive()
	units := ManifestUnits(mat)
	for i, unit := range units {
		pdf, err := e.conv.ToPDF(ctx, unit)
		if err != nil {
			return e.fail(err)
		}
		if err := archive.Put(unit.Path, pdf); err != nil {
			return e.fail(err)
		}
		span := batchRenderCeiling - batchMaterializeShare
		e.setProgress(batchMaterializeShare + (i+1)*span/len(units))
	}

	nav, err := NavigationHTML(mat, biz)
	if err != nil {
		return e.fail(err)
	}
	if err := archive.Put(NavigationFilename, []byte(nav)); err != nil {
		return e.fail(err)
	}
	e.setProgress(batchNavigationAt)

	blob, err := archive.Seal()
	if err != nil {
		return e.fail(err)
	}

	e.setStatus(StatusSaving)
	e.setProgress(progressDone)
	if err := e.saver.Save(PackageFilename, blob); err != nil {
		return e.fail(err)
	}
	e.log.Info("package exported",
		zap.String("file", PackageFilename),
		zap.Int("documents", len(units)),
		zap.Duration("elapsed", time.Since(start)))
	e.done()
	return nil
}
