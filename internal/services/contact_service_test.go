package services_test

import (
	"errors"
	"testing"

	"github.com/aurelhaus/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []services.ContactMessage
	err  error
}

func (f *fakeSender) SendContactMessage(msg services.ContactMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func TestContactSubmit(t *testing.T) {
	sender := &fakeSender{}
	svc := services.NewContactService(sender)

	require.NoError(t, svc.Submit("Ada", "a@b.co", "Hello there"))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Ada", sender.sent[0].Name)
	assert.Equal(t, "a@b.co", sender.sent[0].Email)
	assert.Equal(t, "Hello there", sender.sent[0].Body)
}

func TestContactSubmitValidation(t *testing.T) {
	sender := &fakeSender{}
	svc := services.NewContactService(sender)

	assert.ErrorIs(t, svc.Submit("", "a@b.co", "Hello"), services.ErrNameRequired)
	assert.ErrorIs(t, svc.Submit("Ada", "a@b.co", ""), services.ErrMessageRequired)
	assert.ErrorIs(t, svc.Submit("Ada", "not-an-email", "Hello"), services.ErrInvalidEmail)
	assert.Empty(t, sender.sent)
}

func TestContactSubmitDeliveryFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp: connection refused")}
	svc := services.NewContactService(sender)

	err := svc.Submit("Ada", "a@b.co", "Hello")
	assert.ErrorIs(t, err, services.ErrDeliveryFailed)
}
