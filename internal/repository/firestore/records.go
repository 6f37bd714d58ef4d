package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"smarttax-backend/internal/domain"
	"smarttax-backend/internal/logger"
	"smarttax-backend/internal/repository"
)

// record constrains the entity pointer type so one generic repository can
// stamp ids and run decode validation for every record kind.
type record[T any] interface {
	*T
	SetID(string)
	Validate() error
}

// records implements repository.Records[T] for one collection.
type records[T any, P record[T]] struct {
	client *firestore.Client
	name   string
}

func newRecords[T any, P record[T]](client *firestore.Client, name string) *records[T, P] {
	return &records[T, P]{client: client, name: name}
}

func (r *records[T, P]) col(tenantID string) *firestore.CollectionRef {
	return tenantCollection(r.client, tenantID, r.name)
}

// decode is the trust boundary: raw store payloads become typed entities
// here or not at all.
func (r *records[T, P]) decode(snap *firestore.DocumentSnapshot) (*T, error) {
	var rec T
	if err := snap.DataTo(&rec); err != nil {
		return nil, &domain.DecodeError{Collection: r.name, DocID: snap.Ref.ID, Err: err}
	}
	p := P(&rec)
	p.SetID(snap.Ref.ID)
	if err := p.Validate(); err != nil {
		return nil, &domain.DecodeError{Collection: r.name, DocID: snap.Ref.ID, Err: err}
	}
	return &rec, nil
}

func (r *records[T, P]) Create(ctx context.Context, tenantID string, rec *T) (*T, error) {
	logger.StoreCall("CREATE", r.name, "tenant", tenantID)
	ref, _, err := r.col(tenantID).Add(ctx, rec)
	logger.StoreResult("CREATE", r.name, err)
	if err != nil {
		return nil, mapErr(err)
	}
	P(rec).SetID(ref.ID)
	return rec, nil
}

func (r *records[T, P]) List(ctx context.Context, tenantID string, filter repository.Filter) ([]T, error) {
	if err := repository.ValidateFilter(r.name, filter); err != nil {
		return nil, err
	}

	q := r.col(tenantID).Query
	for field, value := range filter {
		q = q.Where(field, "==", value)
	}

	logger.StoreCall("QUERY", r.name, "tenant", tenantID, "filters", len(filter))
	it := q.Documents(ctx)
	defer it.Stop()

	var out []T
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.StoreResult("QUERY", r.name, err)
			return nil, mapErr(err)
		}
		rec, err := r.decode(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (r *records[T, P]) GetByID(ctx context.Context, tenantID, id string) (*T, error) {
	logger.StoreCall("GET", r.name, "tenant", tenantID, "id", id)
	snap, err := r.col(tenantID).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapErr(err)
	}
	return r.decode(snap)
}

func (r *records[T, P]) Update(ctx context.Context, tenantID, id string, fields repository.Filter) error {
	if len(fields) == 0 {
		return nil
	}
	updates := make([]firestore.Update, 0, len(fields))
	for field, value := range fields {
		updates = append(updates, firestore.Update{Path: field, Value: value})
	}

	logger.StoreCall("UPDATE", r.name, "tenant", tenantID, "id", id)
	_, err := r.col(tenantID).Doc(id).Update(ctx, updates)
	logger.StoreResult("UPDATE", r.name, err)
	return mapErr(err)
}

func (r *records[T, P]) Delete(ctx context.Context, tenantID, id string) error {
	// Firestore deletes succeed whether or not the document exists, which
	// is exactly the idempotency the contract asks for.
	logger.StoreCall("DELETE", r.name, "tenant", tenantID, "id", id)
	_, err := r.col(tenantID).Doc(id).Delete(ctx)
	logger.StoreResult("DELETE", r.name, err)
	return mapErr(err)
}
