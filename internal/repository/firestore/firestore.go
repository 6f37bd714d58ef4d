// Package firestore implements the record store against Cloud Firestore.
// Every record lives in a per-tenant subcollection under users/{uid}, so a
// lookup can never cross tenants: a foreign id simply resolves to a missing
// document.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"smarttax-backend/internal/domain"
	"smarttax-backend/internal/repository"
)

const usersCollection = "users"

// NewClient opens a Firestore client from an initialized Firebase app.
func NewClient(ctx context.Context, app *firebase.App) (*firestore.Client, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open firestore client: %w", err)
	}
	return client, nil
}

// NewStore builds one repository per collection on a shared client.
func NewStore(client *firestore.Client) *repository.Store {
	return &repository.Store{
		Incomes:       newRecords[domain.Income](client, repository.CollectionIncome),
		Deductions:    newRecords[domain.Deduction](client, repository.CollectionDeductions),
		GSTReturns:    newRecords[domain.GSTReturn](client, repository.CollectionGST),
		TaxReturns:    newRecords[domain.TaxReturn](client, repository.CollectionTaxReturns),
		Notifications: newNotificationRepository(client),
		Dashboards:    newDashboardRepository(client),
	}
}

func tenantCollection(client *firestore.Client, tenantID, name string) *firestore.CollectionRef {
	return client.Collection(usersCollection).Doc(tenantID).Collection(name)
}

// mapErr folds Firestore failures into the service error taxonomy. NotFound
// keeps its identity; everything else is opaque store unavailability.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}
