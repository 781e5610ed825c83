package pbexport

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// Archive collects named byte blobs into a single downloadable blob.
// Put after Seal fails with ErrArchiveSealed.
type Archive interface {
	Put(path string, data []byte) error
	Seal() ([]byte, error)
}

// zipArchive implements Archive on archive/zip over an in-memory buffer.
type zipArchive struct {
	buf    bytes.Buffer
	zw     *zip.Writer
	sealed bool
}

// NewZipArchive creates an empty in-memory ZIP archive.
func NewZipArchive() Archive {
	a := &zipArchive{}
	a.zw = zip.NewWriter(&a.buf)
	return a
}

// Put stores data at the given relative path inside the archive.
func (a *zipArchive) Put(path string, data []byte) error {
	if a.sealed {
		return ErrArchiveSealed
	}
	w, err := a.zw.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrArchive, path, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrArchive, path, err)
	}
	return nil
}

// Seal finishes the archive and returns the complete blob.
func (a *zipArchive) Seal() ([]byte, error) {
	if a.sealed {
		return nil, ErrArchiveSealed
	}
	a.sealed = true
	if err := a.zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchive, err)
	}
	return a.buf.Bytes(), nil
}
