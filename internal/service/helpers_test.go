package service

import (
	"context"

	"smarttax-backend/internal/domain"
	"smarttax-backend/internal/repository"
	"smarttax-backend/internal/repository/memory"
	"smarttax-backend/internal/session"
)

var testUser = &session.Identity{
	UID:         "uid-1",
	Email:       "k@example.com",
	DisplayName: "Karishma",
}

func newTestStore() *repository.Store {
	return memory.NewStore()
}

// fakeEmail records sent confirmations and reminders.
type fakeEmail struct {
	confirmations []string // financial years
	failNext      bool
}

func (f *fakeEmail) SendSubmissionConfirmation(ctx context.Context, toEmail, toName string, tr *domain.TaxReturn) error {
	if f.failNext {
		f.failNext = false
		return context.DeadlineExceeded
	}
	f.confirmations = append(f.confirmations, tr.FinancialYear)
	return nil
}

func (f *fakeEmail) SendFilingReminder(ctx context.Context, toEmail, toName string, deadline domain.FilingDeadline) error {
	return nil
}
