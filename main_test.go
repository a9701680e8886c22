package main

import (
	"context"
	"testing"

	"github.com/Ahmed2003-Rav/Egypt-Map/config"
)

func TestDatasetSourceDefaults(t *testing.T) {
	src, err := datasetSource(&config.Config{})
	if err != nil {
		t.Fatalf("datasetSource: %v", err)
	}
	ds, err := src(context.Background())
	if err != nil {
		t.Fatalf("built-in source: %v", err)
	}
	if ds.City != "Cairo" {
		t.Errorf("city = %q", ds.City)
	}
}

func TestDatasetSourceMissingPath(t *testing.T) {
	src, err := datasetSource(&config.Config{DatasetPath: "/nonexistent/city.json"})
	if err != nil {
		t.Fatalf("datasetSource: %v", err)
	}
	if _, err := src(context.Background()); err == nil {
		t.Error("expected error for missing dataset file")
	}
}
