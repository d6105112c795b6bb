package store

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"roipulse/internal/models"
)

// RecordStore is the typed surface over the roi_data collection. Storage
// failures are logged and degrade to empty results; callers never see an
// error from it.
type RecordStore struct {
	kv  KV
	log *slog.Logger
}

func NewRecordStore(kv KV, log *slog.Logger) *RecordStore {
	return &RecordStore{kv: kv, log: log}
}

// Available reports whether a backing store is wired at all.
func (s *RecordStore) Available() bool {
	return s != nil && s.kv != nil
}

// Save overwrites the whole roi_data collection.
func (s *RecordStore) Save(records []models.ROIRecord) {
	if !s.Available() {
		return
	}
	payload, err := json.Marshal(records)
	if err != nil {
		s.log.Error("marshal records", slog.String("err", err.Error()))
		return
	}
	if err := s.kv.Set(CollectionROI, payload); err != nil {
		s.log.Error("save records", slog.String("err", err.Error()))
	}
}

// Load returns every stored record, or an empty slice when the collection is
// absent, unavailable, or malformed.
func (s *RecordStore) Load() []models.ROIRecord {
	if !s.Available() {
		return []models.ROIRecord{}
	}
	payload, err := s.kv.Get(CollectionROI)
	if err != nil {
		s.log.Error("load records", slog.String("err", err.Error()))
		return []models.ROIRecord{}
	}
	if payload == nil {
		return []models.ROIRecord{}
	}
	var records []models.ROIRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		s.log.Error("decode records", slog.String("err", err.Error()))
		return []models.ROIRecord{}
	}
	return records
}

// Add assigns an id and creation timestamp, appends the entry, and persists
// the updated collection. The stored record is returned.
func (s *RecordStore) Add(entry models.ROIRecord) models.ROIRecord {
	entry.ID = "roi_" + uuid.NewString()
	entry.CreatedAt = time.Now().UTC()
	records := append(s.Load(), entry)
	s.Save(records)
	return entry
}

// Clear removes every known collection.
func (s *RecordStore) Clear() {
	if !s.Available() {
		return
	}
	for _, name := range Collections {
		if err := s.kv.Delete(name); err != nil {
			s.log.Error("clear collection", slog.String("name", name), slog.String("err", err.Error()))
		}
	}
}
