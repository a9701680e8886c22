package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Ahmed2003-Rav/Egypt-Map/data"
)

func TestConvertBuiltInDataset(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "cairo.gob")

	ds, err := convert("", out)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	defer f.Close()
	back, err := data.Decode(f, data.FormatGob)
	if err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if len(back.Locations()) != len(ds.Locations()) || len(back.ExistingRoads) != len(ds.ExistingRoads) {
		t.Errorf("snapshot lost data: %d/%d locations", len(back.Locations()), len(ds.Locations()))
	}
}

func TestConvertMissingInput(t *testing.T) {
	if _, err := convert(filepath.Join(t.TempDir(), "missing.json"), filepath.Join(t.TempDir(), "x.gob")); err == nil {
		t.Error("expected error for missing input")
	}
}

func TestDefaultOutput(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		in   string
		want string
	}{
		{"", "cairo.gob"},
		{filepath.Join("datasets", "giza.json"), filepath.Join("datasets", "giza.gob")},
		{dir, filepath.Join(dir, "dataset.gob")},
	}
	for _, tt := range tests {
		if got := defaultOutput(tt.in); got != tt.want {
			t.Errorf("defaultOutput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

type failingCloser struct {
	bytes.Buffer
	err error
}

func (f *failingCloser) Close() error { return f.err }

func TestWriteSnapshotReportsCloseError(t *testing.T) {
	ds, err := data.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	diskFull := errors.New("no space left on device")

	w := &failingCloser{err: diskFull}
	if err := writeSnapshot(w, ds); !errors.Is(err, diskFull) {
		t.Errorf("writeSnapshot error = %v, want %v", err, diskFull)
	}
	if w.Len() == 0 {
		t.Error("snapshot should be encoded before close")
	}

	if err := writeSnapshot(&failingCloser{}, ds); err != nil {
		t.Errorf("writeSnapshot: %v", err)
	}
}
