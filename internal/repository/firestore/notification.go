package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"smarttax-backend/internal/domain"
	"smarttax-backend/internal/logger"
	"smarttax-backend/internal/repository"
)

type notificationRepository struct {
	client *firestore.Client
}

func newNotificationRepository(client *firestore.Client) repository.NotificationRepository {
	return &notificationRepository{client: client}
}

func (r *notificationRepository) col(tenantID string) *firestore.CollectionRef {
	return tenantCollection(r.client, tenantID, repository.CollectionNotifications)
}

func (r *notificationRepository) Create(ctx context.Context, tenantID string, n *domain.Notification) (*domain.Notification, error) {
	logger.StoreCall("CREATE", repository.CollectionNotifications, "tenant", tenantID, "title", n.Title)
	ref, _, err := r.col(tenantID).Add(ctx, n)
	logger.StoreResult("CREATE", repository.CollectionNotifications, err)
	if err != nil {
		return nil, mapErr(err)
	}
	n.SetID(ref.ID)
	return n, nil
}

func (r *notificationRepository) List(ctx context.Context, tenantID string, filter repository.Filter) ([]domain.Notification, error) {
	if err := repository.ValidateFilter(repository.CollectionNotifications, filter); err != nil {
		return nil, err
	}

	// Mailbox order is part of the contract: newest first.
	q := r.col(tenantID).OrderBy("createdAt", firestore.Desc)
	for field, value := range filter {
		q = q.Where(field, "==", value)
	}

	it := q.Documents(ctx)
	defer it.Stop()

	var out []domain.Notification
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapErr(err)
		}
		var n domain.Notification
		if err := snap.DataTo(&n); err != nil {
			return nil, &domain.DecodeError{Collection: repository.CollectionNotifications, DocID: snap.Ref.ID, Err: err}
		}
		n.SetID(snap.Ref.ID)
		out = append(out, n)
	}
	return out, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, tenantID, id string) error {
	logger.StoreCall("UPDATE", repository.CollectionNotifications, "tenant", tenantID, "id", id)
	_, err := r.col(tenantID).Doc(id).Update(ctx, []firestore.Update{
		{Path: "isRead", Value: true},
	})
	logger.StoreResult("UPDATE", repository.CollectionNotifications, err)
	return mapErr(err)
}

// MarkAllAsRead runs inside a transaction so the flip is all-or-nothing:
// notifications created concurrently may or may not be included, but none
// is left half-updated.
func (r *notificationRepository) MarkAllAsRead(ctx context.Context, tenantID string) error {
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		q := r.col(tenantID).Where("isRead", "==", false)
		it := tx.Documents(q)
		defer it.Stop()

		var refs []*firestore.DocumentRef
		for {
			snap, err := it.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return err
			}
			refs = append(refs, snap.Ref)
		}

		for _, ref := range refs {
			if err := tx.Update(ref, []firestore.Update{{Path: "isRead", Value: true}}); err != nil {
				return err
			}
		}
		return nil
	})
	logger.StoreResult("TXN", repository.CollectionNotifications, err, "tenant", tenantID)
	return mapErr(err)
}

func (r *notificationRepository) Delete(ctx context.Context, tenantID, id string) error {
	logger.StoreCall("DELETE", repository.CollectionNotifications, "tenant", tenantID, "id", id)
	_, err := r.col(tenantID).Doc(id).Delete(ctx)
	logger.StoreResult("DELETE", repository.CollectionNotifications, err)
	return mapErr(err)
}
