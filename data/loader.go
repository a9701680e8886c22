package data

import (
	"bytes"
	_ "embed"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed cairo.json
var cairoJSON []byte

type Format string

const (
	FormatJSON Format = "json"
	FormatGob  Format = "gob"
)

// FormatFor picks the codec from a file or object name.
func FormatFor(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON, nil
	case ".gob":
		return FormatGob, nil
	default:
		return "", fmt.Errorf("unsupported dataset extension %q", filepath.Ext(name))
	}
}

// Default returns the built-in Cairo dataset.
func Default() (*Dataset, error) {
	return Decode(bytes.NewReader(cairoJSON), FormatJSON)
}

func Decode(r io.Reader, format Format) (*Dataset, error) {
	var ds Dataset
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&ds); err != nil {
			return nil, fmt.Errorf("failed to parse dataset JSON: %w", err)
		}
	case FormatGob:
		if err := gob.NewDecoder(r).Decode(&ds); err != nil {
			return nil, fmt.Errorf("failed to decode dataset snapshot: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", format)
	}
	return Prepare(&ds)
}

// EncodeGob writes a snapshot that Decode(r, FormatGob) reads back.
func EncodeGob(w io.Writer, ds *Dataset) error {
	return gob.NewEncoder(w).Encode(ds)
}

func LoadFile(path string) (*Dataset, error) {
	log.Printf("Loading dataset from: %s", path)

	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open dataset file: %w", err)
	}
	defer file.Close()

	ds, err := Decode(file, format)
	if err != nil {
		return nil, fmt.Errorf("error loading dataset from %s: %w", path, err)
	}
	log.Printf("Loaded dataset %q: %d locations, %d roads, %d planned roads",
		ds.City, len(ds.order), len(ds.ExistingRoads), len(ds.PotentialRoads))
	return ds, nil
}

// LoadDirectory loads the first dataset file (by name) found under folder.
func LoadDirectory(folder string) (*Dataset, error) {
	var candidates []string
	err := filepath.Walk(folder, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if _, err := FormatFor(info.Name()); err == nil {
			candidates = append(candidates, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no dataset files in %s", folder)
	}
	sort.Strings(candidates)
	return LoadFile(candidates[0])
}

// LoadPath accepts either a file or a directory.
func LoadPath(path string) (*Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("could not stat dataset path: %w", err)
	}
	if info.IsDir() {
		return LoadDirectory(path)
	}
	return LoadFile(path)
}
