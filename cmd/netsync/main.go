// Command netsync mirrors the road network into Neo4j.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/Ahmed2003-Rav/Egypt-Map/config"
	"github.com/Ahmed2003-Rav/Egypt-Map/data"
	"github.com/Ahmed2003-Rav/Egypt-Map/graphdb"
)

func main() {
	datasetPath := flag.String("dataset", "", "dataset file or directory (default: DATASET_PATH or the built-in dataset)")
	database := flag.String("database", "neo4j", "Neo4j database name")
	flag.Parse()

	config.LoadEnv()
	cfg := config.Load()
	if cfg.Neo4jURI == "" || cfg.Neo4jPassword == "" {
		log.Fatal("NEO4J_URI and NEO4J_PASSWORD must be set")
	}

	path := *datasetPath
	if path == "" {
		path = cfg.DatasetPath
	}
	var ds *data.Dataset
	var err error
	if path == "" {
		ds, err = data.Default()
	} else {
		ds, err = data.LoadPath(path)
	}
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	exporter, err := graphdb.NewExporter(cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, *database)
	if err != nil {
		log.Fatalf("Failed to create Neo4j driver: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	defer exporter.Close(ctx)

	if err := exporter.Verify(ctx); err != nil {
		log.Fatalf("Neo4j unreachable at %s: %v", cfg.Neo4jURI, err)
	}
	summary, err := exporter.Export(ctx, ds)
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}
	log.Printf("Neo4j sync complete: %+v", summary)
}
