package data

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/Ahmed2003-Rav/Egypt-Map/models"
	"github.com/Ahmed2003-Rav/Egypt-Map/utils"
)

// Source produces a fresh dataset, e.g. from disk or object storage.
type Source func(ctx context.Context) (*Dataset, error)

// Store publishes the current dataset to concurrent readers. Readers call
// Current once per request and work on that snapshot; writers are serialized
// and swap in a new snapshot.
type Store struct {
	current atomic.Pointer[Dataset]
	version atomic.Int64
	writeMu sync.Mutex
	source  Source
}

func NewStore(initial *Dataset, source Source) *Store {
	s := &Store{source: source}
	s.current.Store(initial)
	s.version.Store(1)
	return s
}

func (s *Store) Current() *Dataset { return s.current.Load() }

func (s *Store) Version() int64 { return s.version.Load() }

func (s *Store) swap(ds *Dataset) {
	s.current.Store(ds)
	s.version.Add(1)
}

// Reload replaces the dataset with a fresh copy from the source. Live traffic
// updates applied since the last load are discarded.
func (s *Store) Reload(ctx context.Context) error {
	if s.source == nil {
		return fmt.Errorf("dataset source not configured")
	}
	ds, err := s.source(ctx)
	if err != nil {
		return fmt.Errorf("reload dataset: %w", err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.swap(ds)
	log.Printf("Dataset reloaded, version %d", s.Version())
	return nil
}

func (s *Store) ApplyTraffic(update models.TrafficUpdate) error {
	from, to, ok := models.SplitRoadKey(update.Road)
	if !ok {
		return fmt.Errorf("%w: malformed road key %q", ErrUnknownRoad, update.Road)
	}
	tod, err := utils.ParseTimeOfDay(update.TimeOfDay)
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	next, err := s.Current().WithTraffic(from, to, tod, update.Vehicles)
	if err != nil {
		return err
	}
	s.swap(next)
	return nil
}
