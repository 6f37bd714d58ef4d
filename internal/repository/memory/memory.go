// Package memory implements the record store on in-process maps. It backs
// tests and the demo store mode with the exact contract of the Firestore
// backend: tenant scoping, ANDed equality filters, partial-merge updates,
// idempotent deletes and an atomic mark-all-read.
package memory

import (
	"encoding/json"
	"fmt"
	"sync"

	"smarttax-backend/internal/domain"
	"smarttax-backend/internal/repository"
)

// DB holds every tenant's documents as JSON-shaped maps, mirroring the
// untyped payloads a document store hands back.
type DB struct {
	mu sync.RWMutex
	// tenant -> collection -> id -> document
	data map[string]map[string]map[string]map[string]any
}

func NewDB() *DB {
	return &DB{data: make(map[string]map[string]map[string]map[string]any)}
}

// NewStore builds the full repository bundle on one shared database.
func NewStore() *repository.Store {
	db := NewDB()
	return NewStoreOn(db)
}

// NewStoreOn builds the repository bundle on an existing database, letting
// tests share a DB across independently-constructed stores.
func NewStoreOn(db *DB) *repository.Store {
	return &repository.Store{
		Incomes:       newRecords[domain.Income](db, repository.CollectionIncome),
		Deductions:    newRecords[domain.Deduction](db, repository.CollectionDeductions),
		GSTReturns:    newRecords[domain.GSTReturn](db, repository.CollectionGST),
		TaxReturns:    newRecords[domain.TaxReturn](db, repository.CollectionTaxReturns),
		Notifications: newNotificationRepository(db),
		Dashboards:    newDashboardRepository(db),
	}
}

// collection returns the live document map; callers must hold db.mu.
func (db *DB) collection(tenantID, name string) map[string]map[string]any {
	tenant, ok := db.data[tenantID]
	if !ok {
		tenant = make(map[string]map[string]map[string]any)
		db.data[tenantID] = tenant
	}
	col, ok := tenant[name]
	if !ok {
		col = make(map[string]map[string]any)
		tenant[name] = col
	}
	return col
}

// encodeDoc flattens an entity into the untyped document shape the store
// keeps, dropping the id (the id is the document key, not a field).
func encodeDoc(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	delete(doc, "id")
	return doc, nil
}

func decodeDoc(doc map[string]any, out any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// normalize renders a value in canonical JSON so equality filters compare
// the way the document store would (int64 62 matches float64 62).
func normalize(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(raw)
}

func matches(doc map[string]any, filter repository.Filter) bool {
	for field, want := range filter {
		got, ok := doc[field]
		if !ok || normalize(got) != normalize(want) {
			return false
		}
	}
	return true
}
