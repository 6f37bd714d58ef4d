package memory

import (
	"context"

	"github.com/google/uuid"

	"smarttax-backend/internal/domain"
	"smarttax-backend/internal/repository"
)

type record[T any] interface {
	*T
	SetID(string)
	Validate() error
}

type records[T any, P record[T]] struct {
	db   *DB
	name string
}

func newRecords[T any, P record[T]](db *DB, name string) *records[T, P] {
	return &records[T, P]{db: db, name: name}
}

func (r *records[T, P]) decode(id string, doc map[string]any) (*T, error) {
	var rec T
	if err := decodeDoc(doc, &rec); err != nil {
		return nil, &domain.DecodeError{Collection: r.name, DocID: id, Err: err}
	}
	p := P(&rec)
	p.SetID(id)
	if err := p.Validate(); err != nil {
		return nil, &domain.DecodeError{Collection: r.name, DocID: id, Err: err}
	}
	return &rec, nil
}

func (r *records[T, P]) Create(ctx context.Context, tenantID string, rec *T) (*T, error) {
	doc, err := encodeDoc(rec)
	if err != nil {
		return nil, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	id := uuid.NewString()
	r.db.collection(tenantID, r.name)[id] = doc
	P(rec).SetID(id)
	return rec, nil
}

func (r *records[T, P]) List(ctx context.Context, tenantID string, filter repository.Filter) ([]T, error) {
	if err := repository.ValidateFilter(r.name, filter); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var out []T
	for id, doc := range r.db.collection(tenantID, r.name) {
		if !matches(doc, filter) {
			continue
		}
		rec, err := r.decode(id, doc)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (r *records[T, P]) GetByID(ctx context.Context, tenantID, id string) (*T, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	doc, ok := r.db.collection(tenantID, r.name)[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.decode(id, doc)
}

func (r *records[T, P]) Update(ctx context.Context, tenantID, id string, fields repository.Filter) error {
	if len(fields) == 0 {
		return nil
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	doc, ok := r.db.collection(tenantID, r.name)[id]
	if !ok {
		return domain.ErrNotFound
	}
	// Partial merge: values pass through JSON so the stored shape stays
	// identical to a document written whole.
	patch, err := encodeDoc(fields)
	if err != nil {
		return err
	}
	for field := range fields {
		doc[field] = patch[field]
	}
	return nil
}

func (r *records[T, P]) Delete(ctx context.Context, tenantID, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	delete(r.db.collection(tenantID, r.name), id)
	return nil
}
