package pbexport

import (
	"fmt"
	"os"

	"github.com/alnah/go-playbook-export/internal/yamlutil"
)

// LoadPlaybook reads a playbook from a YAML file.
func LoadPlaybook(path string) (*Playbook, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- input path is user-provided
	if err != nil {
		return nil, fmt.Errorf("reading playbook: %w", err)
	}
	var p Playbook
	if err := yamlutil.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing playbook %s: %w", path, err)
	}
	return &p, nil
}

// LoadBusinessContext reads a business context from a YAML file.
func LoadBusinessContext(path string) (BusinessContext, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- input path is user-provided
	if err != nil {
		return BusinessContext{}, fmt.Errorf("reading business context: %w", err)
	}
	var biz BusinessContext
	if err := yamlutil.Unmarshal(data, &biz); err != nil {
		return BusinessContext{}, fmt.Errorf("parsing business context %s: %w", path, err)
	}
	return biz, nil
}
