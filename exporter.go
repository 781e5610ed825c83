package pbexport

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// ExportStatus is the coarse phase of one export.
type ExportStatus int

// Export lifecycle: Idle → Preparing → Rendering → Saving → Idle, or
// any stage → Failed.
const (
	StatusIdle ExportStatus = iota
	StatusPreparing
	StatusRendering
	StatusSaving
	StatusFailed
)

// String returns the lowercase status name.
func (s ExportStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPreparing:
		return "preparing"
	case StatusRendering:
		return "rendering"
	case StatusSaving:
		return "saving"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ExportState is a snapshot of one export's observable progress.
type ExportState struct {
	Status   ExportStatus
	Progress int // 0-100, non-decreasing within one export
	Err      error
}

// Progress milestones. The splits are UX tuning, not contracts: the
// only invariants are monotonicity and reaching 100 right before the
// save is triggered.
const (
	progressAssetRequested = 25
	progressAssetReady     = 75
	progressPrepared       = 90
	progressRendered       = 99
	progressDone           = 100

	batchMaterializeShare = 50 // Phase A ends here
	batchRenderCeiling    = 98 // Phase B units fill 50..98
	batchNavigationAt     = 99 // navigation generated, archive sealed
)

// Exporter drives single-document and full-package exports. One
// Exporter owns one conversion staging area, so at most one export runs
// at a time: a second request is rejected with ErrExportBusy and has no
// effect on the export already in flight. There is no queueing and no
// mid-flight cancellation beyond context propagation.
type Exporter struct {
	gen   Generator
	conv  DocumentConverter
	saver Saver

	newArchive func() Archive
	onProgress func(ExportState)
	log        *zap.Logger

	mu    sync.Mutex
	busy  bool
	state ExportState

	// notifyMu orders progress callbacks: materialization updates arrive
	// from concurrent goroutines, and observers must never see progress
	// move backwards.
	notifyMu sync.Mutex
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithLogger attaches a structured logger. The default is a no-op.
func WithLogger(log *zap.Logger) ExporterOption {
	return func(e *Exporter) { e.log = log }
}

// WithProgressFunc registers a callback invoked on every state change.
// The callback must be fast; it runs on the exporting goroutine or, during
// asset materialization, on one of its workers. Invocations are serialized.
func WithProgressFunc(fn func(ExportState)) ExporterOption {
	return func(e *Exporter) { e.onProgress = fn }
}

// WithArchiveFactory overrides how batch exports build their archive.
func WithArchiveFactory(fn func() Archive) ExporterOption {
	return func(e *Exporter) { e.newArchive = fn }
}

// NewExporter creates an Exporter over the three collaborators.
func NewExporter(gen Generator, conv DocumentConverter, saver Saver, opts ...ExporterOption) *Exporter {
	e := &Exporter{
		gen:        gen,
		conv:       conv,
		saver:      saver,
		newArchive: NewZipArchive,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns a snapshot of the current export state.
func (e *Exporter) State() ExportState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Reset unconditionally clears all export state. It is the recovery
// path for a failed export (dismissing the error) and for a full
// application reset.
func (e *Exporter) Reset() {
	e.mu.Lock()
	e.busy = false
	e.state = ExportState{}
	e.mu.Unlock()
}

// Close releases the converter's browser resources.
func (e *Exporter) Close() error {
	return e.conv.Close()
}

// begin claims the exporter for one export. The claim is the sole
// mutual-exclusion mechanism guarding the shared staging area.
func (e *Exporter) begin() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.busy {
		return ErrExportBusy
	}
	e.busy = true
	e.state = ExportState{Status: StatusPreparing}
	return nil
}

// setStatus advances the status and notifies observers.
func (e *Exporter) setStatus(s ExportStatus) {
	e.notifyMu.Lock()
	defer e.notifyMu.Unlock()
	e.mu.Lock()
	e.state.Status = s
	st := e.state
	e.mu.Unlock()
	e.notify(st)
}

// setProgress raises the progress value. Lower values are ignored so
// reported progress is always non-decreasing within one export.
func (e *Exporter) setProgress(p int) {
	e.notifyMu.Lock()
	defer e.notifyMu.Unlock()
	e.mu.Lock()
	if p <= e.state.Progress {
		e.mu.Unlock()
		return
	}
	e.state.Progress = p
	st := e.state
	e.mu.Unlock()
	e.notify(st)
}

// notify is called with notifyMu held and e.mu released, so callbacks
// may safely call State.
func (e *Exporter) notify(st ExportState) {
	if e.onProgress != nil {
		e.onProgress(st)
	}
}

// fail records the single user-visible error, frees the exporter, and
// returns the error. Transient per-export progress is cleared so the
// caller can never observe a stuck in-progress state.
func (e *Exporter) fail(err error) error {
	e.notifyMu.Lock()
	defer e.notifyMu.Unlock()
	e.mu.Lock()
	e.state = ExportState{Status: StatusFailed, Err: err}
	e.busy = false
	st := e.state
	e.mu.Unlock()
	e.notify(st)
	e.log.Warn("export failed", zap.Error(err))
	return err
}

// done resets to idle after a successful save.
func (e *Exporter) done() {
	e.mu.Lock()
	e.state = ExportState{}
	e.busy = false
	e.mu.Unlock()
}

/// finishUnit renders, saves, and resets: the common tail of every
// single-document export. Progress reaches 100 immediately before the
// save is triggered.
func (e *Exporter) finishUnit(ctx context.Context, unit ExportUnit) error {
	e.setStatus(StatusRendering)
	e.setProgress(progressPrepared)

	pdf, err := e.conv.ToPDF(ctx, unit)
	if err != nil {
		return e.fail(err)
	}
	e.setProgress(progressRendered)

	e.setStatus(StatusSaving)
	e.setProgress(progressDone)
	filename := docFilename(unit.Title)
	if err := e.saver.Save(filename, pdf); err != nil {
		return e.fail(err)
	}
	e.log.Info("document exported", zap.String("file", filename))
	e.done()
	return nil
}

// ExportSection produces one PDF for a named playbook section.
func (e *Exporter) ExportSection(ctx context.Context, p *Playbook, id SectionID) error {
	unit, err := SectionUnit(p, id)
	if err != nil {
		return err
	}
	if err := e.begin(); err != nil {
		return err
	}
	return e.finishUnit(ctx, unit)
}

// ExportOffer produces one PDF for an offer document.
func (e *Exporter) ExportOffer(ctx context.Context, p *Playbook, ref OfferRef) error {
	unit, err := OfferUnit(p, ref)
	if err != nil {
		return err
	}
	if err := e.begin(); err != nil {
		return err
	}
	return e.finishUnit(ctx, unit)
}

// ExportPlaybook produces the whole playbook as one PDF.
func (e *Exporter) ExportPlaybook(ctx context.Context, p *Playbook) error {
	unit := PlaybookUnit(p)
	if err := e.begin(); err != nil {
		return err
	}
	return e.finishUnit(ctx, unit)
}

// ExportAsset materializes (if needed) and exports a single offer
// asset. The missing-context check happens before any collaborator
// call: a request without upstream data does no partial work.
func (e *Exporter) ExportAsset(ctx context.Context, p *Playbook, ref OfferRef, item int, biz BusinessContext) error {
	offer, err := p.Offer(ref)
	if err != nil {
		return err
	}
	if _, err := AssetUnit(*offer, item); err != nil {
		return err
	}
	it := offer.Stack[item]
	if !it.Asset.Materialized() && biz.IsZero() {
		return ErrMissingContext
	}

	if err := e.begin(); err != nil {
		return err
	}

	e.setProgress(progressAssetRequested)
	mat, err := NewMaterializer(e.gen).EnsureAssetContent(ctx, it, biz)
	if err != nil {
		return e.fail(err)
	}
	e.setProgress(progressAssetReady)

	return e.finishUnit(ctx, assetUnit(offer.Name, mat))
}

// ExportAssetBundle materializes an offer's items and exports its full
// asset pack as one PDF. Item materialization progress scales into the
// preparing range.
func (e *Exporter) ExportAssetBundle(ctx context.Context, p *Playbook, ref OfferRef, biz BusinessContext) error {
	offer, err := p.Offer(ref)
	if err != nil {
		return err
	}
	if offerNeedsMaterialization(*offer) && biz.IsZero() {
		return ErrMissingContext
	}

	if err := e.begin(); err != nil {
		return err
	}

	eligible := assetItemCount(*offer)
	var done atomic.Int32
	mat, err := NewMaterializer(e.gen).MaterializeOffer(ctx, *offer, biz, func() {
		n := int(done.Add(1))
		e.setProgress(n * progressPrepared / eligible)
	})
	if err != nil {
		return e.fail(err)
	}

	return e.finishUnit(ctx, BundleUnit(mat))
}

// offerNeedsMaterialization reports whether any of the offer's assets
// still lacks adequate content.
func offerNeedsMaterialization(o Offer) bool {
	for _, item := range o.Stack {
		if item.Asset != nil && !item.Asset.Materialized() {
			return true
		}
	}
	return false
}
