package main

import (
	"encoding/json"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	historyKey           = "exam_history"
	historyLimit         = 50
	historySchemaVersion = 1
)

// historyDocument is the single persisted unit: the whole capped result list
// plus a schema version for future migration.
type historyDocument struct {
	Version int      `json:"version"`
	Results []Result `json:"results"`
}

// HistoryStore keeps past results as one JSON document under a fixed key,
// newest first, capped at historyLimit. Reads and writes are always
// whole-document; there are no partial updates.
type HistoryStore struct {
	db *gorm.DB
}

func NewHistoryStore(db *gorm.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// Load returns past results, newest first. Missing, unreadable or
// unrecognized stored data degrades to an empty list.
func (h *HistoryStore) Load() []Result {
	var entry KVEntry
	if err := h.db.First(&entry, "key = ?", historyKey).Error; err != nil {
		return []Result{}
	}
	var doc historyDocument
	if err := json.Unmarshal([]byte(entry.Value), &doc); err != nil {
		log.Printf("history load: unreadable document, starting empty: %v", err)
		return []Result{}
	}
	if doc.Version != historySchemaVersion {
		log.Printf("history load: unknown schema version %d, starting empty", doc.Version)
		return []Result{}
	}
	if doc.Results == nil {
		return []Result{}
	}
	return doc.Results
}

// Save prepends r, truncates to the cap and persists the whole document. A
// write failure is a warning only; the in-memory result stays valid for the
// caller.
func (h *HistoryStore) Save(r Result) {
	results := append([]Result{r}, h.Load()...)
	if len(results) > historyLimit {
		results = results[:historyLimit]
	}
	raw, err := json.Marshal(historyDocument{Version: historySchemaVersion, Results: results})
	if err != nil {
		log.Printf("history save: marshal: %v", err)
		return
	}
	entry := KVEntry{Key: historyKey, Value: string(raw)}
	if err := h.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&entry).Error; err != nil {
		log.Printf("history save failed, result not persisted: %v", err)
	}
}

// Clear removes all persisted history unconditionally.
func (h *HistoryStore) Clear() {
	if err := h.db.Delete(&KVEntry{}, "key = ?", historyKey).Error; err != nil {
		log.Printf("history clear: %v", err)
	}
}
