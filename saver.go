package pbexport

import (
	"fmt"
	"os"
	"path/filepath"
)

// Saver presents a finished document to the user. The CLI saves into a
// directory; a web frontend would trigger a browser download instead.
type Saver interface {
	Save(filename string, data []byte) error
}

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// DirSaver writes exported files into a directory, creating it on
// demand.
type DirSaver struct {
	Dir string
}

// Save writes data under the saver's directory.
func (s DirSaver) Save(filename string, data []byte) error {
	if err := os.MkdirAll(s.Dir, dirPermissions); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(s.Dir, filename)
	// #nosec G306 -- exported documents are meant to be readable
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Compile-time interface check.
var _ Saver = DirSaver{}
