package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/yourname/daybook/internal"
	"github.com/yourname/daybook/internal/storage"
)

var validate = validator.New()

type JournalEntryRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Text string `json:"text" validate:"required"`
	Tag  string `json:"tag,omitempty" validate:"omitempty,max=64"`
}

func ValidateJournalEntryRequest(body *JournalEntryRequest) error {
	return validate.Struct(body)
}

func CreateJournalEntry(ctx context.Context, journalRepo storage.JournalRepository, user *internal.User, body *JournalEntryRequest) (*internal.JournalEntry, error) {
	entry := &internal.JournalEntry{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Date:      body.Date,
		Text:      body.Text,
		Tag:       body.Tag,
		CreatedAt: time.Now(),
	}
	if err := journalRepo.SaveEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func UpdateJournalEntry(ctx context.Context, journalRepo storage.JournalRepository, user *internal.User, id string, body *JournalEntryRequest) (*internal.JournalEntry, error) {
	entry, err := journalRepo.GetEntry(ctx, user.ID, id)
	if err != nil {
		return nil, err
	}
	entry.Date = body.Date
	entry.Text = body.Text
	entry.Tag = body.Tag
	if err := journalRepo.UpdateEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
