package domain

import (
	"fmt"
	"time"
)

type NotificationType string

const (
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeWarning NotificationType = "warning"
	NotificationTypeSuccess NotificationType = "success"
	NotificationTypeError   NotificationType = "error"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTypeInfo, NotificationTypeWarning, NotificationTypeSuccess, NotificationTypeError:
		return true
	}
	return false
}

type Notification struct {
	ID        string           `firestore:"-" json:"id"`
	Title     string           `firestore:"title" json:"title"`
	Message   string           `firestore:"message" json:"message"`
	Type      NotificationType `firestore:"type" json:"type"`
	IsRead    bool             `firestore:"isRead" json:"isRead"`
	Link      string           `firestore:"link,omitempty" json:"link,omitempty"`
	CreatedAt time.Time        `firestore:"createdAt" json:"createdAt"`
}

func (n *Notification) SetID(id string) { n.ID = id }

func (n *Notification) Validate() error {
	if n.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if !n.Type.Valid() {
		return fmt.Errorf("%w: unknown notification type %q", ErrInvalidInput, n.Type)
	}
	return nil
}
