package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"smarttax-backend/internal/domain"
	"smarttax-backend/internal/repository"
)

type notificationRepository struct {
	db *DB
}

func newNotificationRepository(db *DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, tenantID string, n *domain.Notification) (*domain.Notification, error) {
	doc, err := encodeDoc(n)
	if err != nil {
		return nil, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	id := uuid.NewString()
	r.db.collection(tenantID, repository.CollectionNotifications)[id] = doc
	n.SetID(id)
	return n, nil
}

func (r *notificationRepository) List(ctx context.Context, tenantID string, filter repository.Filter) ([]domain.Notification, error) {
	if err := repository.ValidateFilter(repository.CollectionNotifications, filter); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var out []domain.Notification
	for id, doc := range r.db.collection(tenantID, repository.CollectionNotifications) {
		if !matches(doc, filter) {
			continue
		}
		var n domain.Notification
		if err := decodeDoc(doc, &n); err != nil {
			return nil, &domain.DecodeError{Collection: repository.CollectionNotifications, DocID: id, Err: err}
		}
		n.SetID(id)
		out = append(out, n)
	}

	// Newest first, as the mailbox contract requires.
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, tenantID, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	doc, ok := r.db.collection(tenantID, repository.CollectionNotifications)[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc["isRead"] = true
	return nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, tenantID string) error {
	// A single critical section gives the same all-or-nothing view a
	// store-side batch write would.
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, doc := range r.db.collection(tenantID, repository.CollectionNotifications) {
		doc["isRead"] = true
	}
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, tenantID, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	delete(r.db.collection(tenantID, repository.CollectionNotifications), id)
	return nil
}
