package pbexport

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDirSaver(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports", "nested")
	s := DirSaver{Dir: dir}

	if err := s.Save("Start_Here_Guide.pdf", []byte("pdf bytes")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "Start_Here_Guide.pdf"))
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if string(got) != "pdf bytes" {
		t.Errorf("saved content = %q", got)
	}
}

func TestDirSaverOverwrites(t *testing.T) {
	s := DirSaver{Dir: t.TempDir()}

	if err := s.Save("doc.pdf", []byte("first")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save("doc.pdf", []byte("second")); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(s.Dir, "doc.pdf"))
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("saved content = %q, want overwrite", got)
	}
}
