// Command snapshot converts a dataset to a gob snapshot and can upload it to
// the S3 bucket the API server loads from.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Ahmed2003-Rav/Egypt-Map/config"
	"github.com/Ahmed2003-Rav/Egypt-Map/data"
	"github.com/Ahmed2003-Rav/Egypt-Map/storage"
)

func main() {
	in := flag.String("in", "", "dataset file or directory (default: built-in Cairo dataset)")
	out := flag.String("out", "", "output .gob file (default: next to the input, or cairo.gob)")
	upload := flag.Bool("upload", false, "upload the snapshot to S3")
	key := flag.String("key", "", "S3 object key (default: S3_OBJECT)")
	flag.Parse()

	config.LoadEnv()
	cfg := config.Load()

	outputPath := *out
	if outputPath == "" {
		outputPath = defaultOutput(*in)
	}

	ds, err := convert(*in, outputPath)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	fmt.Printf("Successfully wrote %s\n", outputPath)
	fmt.Printf("Locations: %d, Roads: %d, Planned roads: %d\n", len(ds.Locations()), len(ds.ExistingRoads), len(ds.PotentialRoads))

	if !*upload {
		return
	}
	if !cfg.S3Enabled() {
		log.Fatal("S3_ENDPOINT, S3_ACCESS_KEY and S3_SECRET_KEY are required for -upload")
	}
	src, err := storage.NewS3Source(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3UseSSL, cfg.S3Bucket, cfg.S3Object)
	if err != nil {
		log.Fatalf("Failed to initialise S3: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := uploadFile(ctx, src, outputPath, *key); err != nil {
		log.Fatalf("Upload failed: %v", err)
	}
}

// convert loads the input (built-in dataset when empty) and writes it as gob.
func convert(inputPath, outputPath string) (*data.Dataset, error) {
	var ds *data.Dataset
	var err error
	if inputPath == "" {
		ds, err = data.Default()
	} else {
		ds, err = data.LoadPath(inputPath)
	}
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory for %s: %w", outputPath, err)
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create GOB file %s: %w", outputPath, err)
	}
	if err := writeSnapshot(f, ds); err != nil {
		return nil, fmt.Errorf("failed to write GOB to %s: %w", outputPath, err)
	}
	return ds, nil
}

// writeSnapshot encodes ds and closes w. A failed close is reported.
func writeSnapshot(w io.WriteCloser, ds *data.Dataset) error {
	if err := data.EncodeGob(w, ds); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func defaultOutput(inputPath string) string {
	if inputPath == "" {
		return "cairo.gob"
	}
	info, err := os.Stat(inputPath)
	if err == nil && info.IsDir() {
		return filepath.Join(inputPath, "dataset.gob")
	}
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)
	return filepath.Join(filepath.Dir(inputPath), base+".gob")
}

func uploadFile(ctx context.Context, src *storage.S3Source, path, key string) error {
	if err := src.EnsureBucket(ctx); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	return src.PutSnapshot(ctx, key, f, info.Size())
}
