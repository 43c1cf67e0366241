// Package sync holds the plant record synchronizer: the client-side layer
// that reconciles the local collection with the plant-data service, serves
// cached reads inside a fixed freshness window, and mirrors every successful
// mutation to local storage for instant startup and offline fallback.
package sync

import (
	"context"
	stdsync "sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/sireesha-siri/geotag-plants/internal/client/api"
	"github.com/sireesha-siri/geotag-plants/internal/client/mirror"
	"github.com/sireesha-siri/geotag-plants/internal/client/models"
	"github.com/sireesha-siri/geotag-plants/internal/client/syncerr"
	"github.com/sireesha-siri/geotag-plants/internal/common"
	"github.com/sireesha-siri/geotag-plants/internal/logging"
)

// DefaultFreshnessWindow is how long a fetched collection is served from
// cache. The window is a strict upper bound: data exactly this old is stale.
const DefaultFreshnessWindow = common.PlantCollectionCacheTTLSeconds * time.Second

// Synchronizer owns the in-memory collection, the cache timestamp, and the
// persisted mirror. Creates require remote confirmation before appearing
// locally; deletes apply locally first and treat the remote call as best
// effort.
//
// Concurrent Refresh calls coalesce: callers that arrive while a fetch is in
// flight share its result instead of issuing a second network call.
type Synchronizer struct {
	client api.Client
	store  mirror.Store
	log    logging.Logger

	window time.Duration
	now    func() time.Time

	group singleflight.Group

	mu        stdsync.Mutex
	records   []models.PlantRecord
	fetchedAt time.Time
}

// Option tweaks a Synchronizer; used by tests to inject a clock.
type Option func(*Synchronizer)

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Synchronizer) { s.now = now }
}

// WithFreshnessWindow overrides the cache TTL.
func WithFreshnessWindow(d time.Duration) Option {
	return func(s *Synchronizer) { s.window = d }
}

func New(client api.Client, store mirror.Store, log logging.Logger, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		client: client,
		store:  store,
		log:    log.With("module", "sync"),
		window: DefaultFreshnessWindow,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadInitial reads the persisted mirror synchronously and adopts it as the
// in-memory collection. It never fails: corrupt or unreadable data degrades
// to an empty collection with a logged diagnostic.
func (s *Synchronizer) LoadInitial() []models.PlantRecord {
	records, err := s.store.Load()
	if err != nil {
		s.log.Warn(context.Background(), "discarding malformed local mirror",
			"error", syncerr.New(syncerr.KindMalformedLocal, "load initial", err))
		records = []models.PlantRecord{}
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	return cloneRecords(records)
}

// Records returns a copy of the current in-memory collection. It never
// blocks on an in-flight refresh.
func (s *Synchronizer) Records() []models.PlantRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRecords(s.records)
}

// Refresh returns the cached collection when it is younger than the
// freshness window and force is false; otherwise it contacts the service.
//
// On success the in-memory collection and the mirror are replaced with the
// remote result. On failure the previously held collection is returned
// unchanged next to the error, so a network outage never blanks a view that
// has local data; use syncerr.IsUnreachable on the error to tell outage
// from rejection.
func (s *Synchronizer) Refresh(ctx context.Context, force bool) ([]models.PlantRecord, error) {
	s.mu.Lock()
	if !force && s.freshLocked() {
		defer s.mu.Unlock()
		return cloneRecords(s.records), nil
	}
	s.mu.Unlock()

	result, err, _ := s.group.Do("refresh", func() (any, error) {
		fetched, err := s.client.FetchPlants(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.records = fetched
		s.fetchedAt = s.now()
		snapshot := cloneRecords(s.records)
		s.mu.Unlock()

		s.saveMirror(ctx, snapshot, "refresh")
		return snapshot, nil
	})
	if err != nil {
		return s.Records(), err
	}
	return cloneRecords(result.([]models.PlantRecord)), nil
}

// CreateRecord sends the draft to the service for an authoritative id and
// upload time, then inserts the confirmed record at the front of the
// collection (most-recent-first) and invalidates the cache. On remote
// failure nothing changes locally; retrying is the caller's decision.
func (s *Synchronizer) CreateRecord(ctx context.Context, draft models.PlantDraft) (*models.PlantRecord, error) {
	if err := draft.Validate(); err != nil {
		return nil, syncerr.Rejected("create record", err)
	}

	record, err := s.client.SavePlant(ctx, draft)
	if err != nil {
		return nil, err
	}
	if record.ID == "" {
		// Fallback when the service confirms the save but omits an id.
		record.ID = uuid.NewString()
	}
	if record.UploadedAt.IsZero() {
		record.UploadedAt = s.now().UTC()
	}

	s.mu.Lock()
	s.records = append([]models.PlantRecord{*record}, s.records...)
	s.fetchedAt = time.Time{}
	snapshot := cloneRecords(s.records)
	s.mu.Unlock()

	s.saveMirror(ctx, snapshot, "create record")

	out := *record
	return &out, nil
}

// DeleteRecord removes the record locally, rewrites the mirror, and
// invalidates the cache before attempting the remote delete. The remote
// call is best effort: once the user confirmed the deletion, local state is
// the source of truth, and a remote failure is only logged.
func (s *Synchronizer) DeleteRecord(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := -1
	for i, r := range s.records {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return common.ErrNotFound
	}
	s.records = append(s.records[:idx], s.records[idx+1:]...)
	s.fetchedAt = time.Time{}
	snapshot := cloneRecords(s.records)
	s.mu.Unlock()

	s.saveMirror(ctx, snapshot, "delete record")

	if err := s.client.DeletePlant(ctx, id); err != nil {
		s.log.Warn(ctx, "remote delete failed, keeping local removal", "id", id, "error", err)
	}
	return nil
}

// InvalidateCache clears the cache timestamp unconditionally; the next
// Refresh bypasses the cache.
func (s *Synchronizer) InvalidateCache() {
	s.mu.Lock()
	s.fetchedAt = time.Time{}
	s.mu.Unlock()
}

// freshLocked reports cache validity. Equality with the window counts as
// stale. Callers hold s.mu.
func (s *Synchronizer) freshLocked() bool {
	if s.fetchedAt.IsZero() {
		return false
	}
	return s.now().Sub(s.fetchedAt) < s.window
}

// saveMirror persists the snapshot. A failed write is an accepted
// degradation: in-memory state stays authoritative for the session.
func (s *Synchronizer) saveMirror(ctx context.Context, records []models.PlantRecord, op string) {
	if err := s.store.Save(records); err != nil {
		s.log.Error(ctx, "mirror write failed",
			"error", syncerr.New(syncerr.KindPersistence, op, err))
	}
}

func cloneRecords(in []models.PlantRecord) []models.PlantRecord {
	out := make([]models.PlantRecord, len(in))
	copy(out, in)
	return out
}
