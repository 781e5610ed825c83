package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	pbexport "github.com/alnah/go-playbook-export"
	"github.com/alnah/go-playbook-export/internal/config"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"browser connect", pbexport.ErrBrowserConnect, ExitBrowser},
		{"pdf generation", fmt.Errorf("converting: %w", pbexport.ErrPDFGeneration), ExitBrowser},
		{"file missing", os.ErrNotExist, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", fmt.Errorf("loading config: %w", config.ErrConfigParse), ExitUsage},
		{"unknown section", pbexport.ErrUnknownSection, ExitUsage},
		{"unknown offer", pbexport.ErrUnknownOffer, ExitUsage},
		{"incomplete playbook", pbexport.ErrIncompletePlaybook, ExitUsage},
		{"missing context", pbexport.ErrMissingContext, ExitUsage},
		{"missing offer flag", ErrMissingOffer, ExitUsage},
		{"conflicting ops", ErrConflictingOps, ExitUsage},
		{"missing api key", ErrMissingAPIKey, ExitUsage},
		{"generation failure", pbexport.ErrGeneration, ExitGeneral},
		{"busy", pbexport.ErrExportBusy, ExitGeneral},
		{"unexpected", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
