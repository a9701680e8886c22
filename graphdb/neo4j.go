// Package graphdb mirrors the city network into Neo4j so planners can query
// it with Cypher.
package graphdb

import (
	"context"
	"fmt"
	"log"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/Ahmed2003-Rav/Egypt-Map/data"
)

const (
	mergeLocations = `
UNWIND $rows AS row
MERGE (l:Location {id: row.id})
SET l.name = row.name, l.kind = row.kind, l.type = row.type,
    l.population = row.population, l.x = row.x, l.y = row.y`

	mergeRoads = `
UNWIND $rows AS row
MATCH (a:Location {id: row.from}), (b:Location {id: row.to})
MERGE (a)-[r:ROAD]->(b)
SET r.distance = row.distance, r.capacity = row.capacity, r.condition = row.condition`

	mergePlannedRoads = `
UNWIND $rows AS row
MATCH (a:Location {id: row.from}), (b:Location {id: row.to})
MERGE (a)-[r:PLANNED_ROAD]->(b)
SET r.distance = row.distance, r.capacity = row.capacity, r.cost = row.cost`
)

type Exporter struct {
	driver   neo4j.DriverWithContext
	database string
}

type Summary struct {
	Locations    int
	Roads        int
	PlannedRoads int
}

func NewExporter(uri, username, password, database string) (*Exporter, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	if database == "" {
		database = "neo4j"
	}
	return &Exporter{driver: driver, database: database}, nil
}

func (e *Exporter) Close(ctx context.Context) {
	if e.driver != nil {
		e.driver.Close(ctx)
	}
}

func (e *Exporter) Verify(ctx context.Context) error {
	return e.driver.VerifyConnectivity(ctx)
}

// Export writes the whole dataset in one transaction. Re-running it updates
// properties in place.
func (e *Exporter) Export(ctx context.Context, ds *data.Dataset) (Summary, error) {
	session := e.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: e.database})
	defer session.Close(ctx)

	locations := LocationRows(ds)
	roads := RoadRows(ds)
	planned := PlannedRoadRows(ds)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, step := range []struct {
			query string
			rows  []map[string]any
		}{
			{mergeLocations, locations},
			{mergeRoads, roads},
			{mergePlannedRoads, planned},
		} {
			if _, err := tx.Run(ctx, step.query, map[string]any{"rows": step.rows}); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return Summary{}, fmt.Errorf("export to neo4j: %w", err)
	}

	s := Summary{Locations: len(locations), Roads: len(roads), PlannedRoads: len(planned)}
	log.Printf("Exported %d locations, %d roads, %d planned roads", s.Locations, s.Roads, s.PlannedRoads)
	return s, nil
}

func LocationRows(ds *data.Dataset) []map[string]any {
	var rows []map[string]any
	for _, n := range ds.Neighborhoods {
		rows = append(rows, map[string]any{
			"id": string(n.ID), "name": n.Name, "kind": "neighborhood", "type": n.Type,
			"population": int64(n.Population), "x": n.X, "y": n.Y,
		})
	}
	for _, f := range ds.Facilities {
		rows = append(rows, map[string]any{
			"id": string(f.ID), "name": f.Name, "kind": "facility", "type": f.Type,
			"population": int64(0), "x": f.X, "y": f.Y,
		})
	}
	return rows
}

func RoadRows(ds *data.Dataset) []map[string]any {
	rows := make([]map[string]any, 0, len(ds.ExistingRoads))
	for _, r := range ds.ExistingRoads {
		rows = append(rows, map[string]any{
			"from": string(r.From), "to": string(r.To),
			"distance": r.Distance, "capacity": r.Capacity, "condition": r.Condition,
		})
	}
	return rows
}

func PlannedRoadRows(ds *data.Dataset) []map[string]any {
	rows := make([]map[string]any, 0, len(ds.PotentialRoads))
	for _, r := range ds.PotentialRoads {
		rows = append(rows, map[string]any{
			"from": string(r.From), "to": string(r.To),
			"distance": r.Distance, "capacity": r.Capacity, "cost": r.Cost,
		})
	}
	return rows
}
