package pbexport

import (
	"errors"
	"fmt"
)

// Sentinel errors for export operations.
var (
	ErrGeneration         = errors.New("content generation failed")
	ErrMissingContext     = errors.New("business context required")
	ErrConversion         = errors.New("document conversion failed")
	ErrArchive            = errors.New("archive assembly failed")
	ErrArchiveSealed      = errors.New("archive already sealed")
	ErrExportBusy         = errors.New("another export is in progress")
	ErrIncompletePlaybook = errors.New("playbook is missing sections")
	ErrUnknownSection     = errors.New("unknown section")
	ErrUnknownOffer       = errors.New("unknown offer")
	ErrUnknownItem        = errors.New("offer item index out of range")
	ErrNoAsset            = errors.New("offer item has no asset")
	ErrNavigationRender   = errors.New("navigation document rendering failed")

	// Browser errors surfaced by the PDF converter.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
)

// AssetGenerationError reports which asset could not be materialized.
// Callers decide whether it aborts a whole batch or only one download.
type AssetGenerationError struct {
	AssetName string
	Err       error
}

func (e *AssetGenerationError) Error() string {
	return fmt.Sprintf("generating asset %q: %v", e.AssetName, e.Err)
}

func (e *AssetGenerationError) Unwrap() error { return e.Err }
