package main

import (
	"errors"
	"os"

	pbexport "github.com/alnah/go-playbook-export"
	"github.com/alnah/go-playbook-export/internal/config"
)

// Exit codes for the playbook-export CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful export
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, pbexport.ErrBrowserConnect) ||
		errors.Is(err, pbexport.ErrPageCreate) ||
		errors.Is(err, pbexport.ErrPageLoad) ||
		errors.Is(err, pbexport.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidWorkers) ||
		errors.Is(err, config.ErrInvalidTimeout) ||
		errors.Is(err, pbexport.ErrUnknownSection) ||
		errors.Is(err, pbexport.ErrUnknownOffer) ||
		errors.Is(err, pbexport.ErrUnknownItem) ||
		errors.Is(err, pbexport.ErrNoAsset) ||
		errors.Is(err, pbexport.ErrIncompletePlaybook) ||
		errors.Is(err, pbexport.ErrMissingContext) ||
		errors.Is(err, ErrMissingOffer) ||
		errors.Is(err, ErrConflictingOps) ||
		errors.Is(err, ErrMissingAPIKey) {
		return ExitUsage
	}

	return ExitGeneral
}
