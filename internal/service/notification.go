package service

import (
	"context"
	"time"

	"smarttax-backend/internal/domain"
	"smarttax-backend/internal/repository"
	"smarttax-backend/internal/session"
)

type NotifyInput struct {
	Title   string
	Message string
	Type    domain.NotificationType
	Link    string
}

type NotificationFilter struct {
	IsRead *bool
	Type   domain.NotificationType
}

func (f NotificationFilter) toFilter() repository.Filter {
	filter := repository.Filter{}
	if f.IsRead != nil {
		filter["isRead"] = *f.IsRead
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	return filter
}

type notificationService struct {
	notifications repository.NotificationRepository
}

func NewNotificationService(store *repository.Store) NotificationService {
	return &notificationService{notifications: store.Notifications}
}

func (s *notificationService) Notify(ctx context.Context, who *session.Identity, input NotifyInput) (*domain.Notification, error) {
	uid, err := authorize(who)
	if err != nil {
		return nil, err
	}

	note := &domain.Notification{
		Title:     input.Title,
		Message:   input.Message,
		Type:      input.Type,
		Link:      input.Link,
		CreatedAt: time.Now().UTC(),
	}
	if err := note.Validate(); err != nil {
		return nil, err
	}
	return s.notifications.Create(ctx, uid, note)
}

func (s *notificationService) List(ctx context.Context, who *session.Identity, filter NotificationFilter) ([]domain.Notification, error) {
	uid, err := authorize(who)
	if err != nil {
		return nil, err
	}
	return s.notifications.List(ctx, uid, filter.toFilter())
}

func (s *notificationService) MarkAsRead(ctx context.Context, who *session.Identity, id string) error {
	uid, err := authorize(who)
	if err != nil {
		return err
	}
	return s.notifications.MarkAsRead(ctx, uid, id)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, who *session.Identity) error {
	uid, err := authorize(who)
	if err != nil {
		return err
	}
	return s.notifications.MarkAllAsRead(ctx, uid)
}

func (s *notificationService) Delete(ctx context.Context, who *session.Identity, id string) error {
	uid, err := authorize(who)
	if err != nil {
		return err
	}
	return s.notifications.Delete(ctx, uid, id)
}
