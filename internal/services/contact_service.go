package services

import (
	"errors"
	"fmt"

	"github.com/aurelhaus/backend/pkg/validation"
)

var (
	ErrNameRequired    = errors.New("name is required")
	ErrMessageRequired = errors.New("message is required")
	ErrInvalidEmail    = errors.New("that is not a valid email address")
	ErrDeliveryFailed  = errors.New("message could not be delivered")
)

// ContactMessage is one contact form submission.
type ContactMessage struct {
	Name  string
	Email string
	Body  string
}

// MessageSender delivers a contact message to the site owner.
type MessageSender interface {
	SendContactMessage(msg ContactMessage) error
}

// ContactService validates contact submissions and forwards them to the
// configured delivery collaborator.
type ContactService struct {
	sender MessageSender
}

func NewContactService(sender MessageSender) *ContactService {
	return &ContactService{sender: sender}
}

// Submit validates a submission and delivers it. Delivery failures are
// reported, never swallowed.
func (s *ContactService) Submit(name, email, body string) error {
	name = validation.SanitizeString(name)
	email = validation.SanitizeString(email)
	body = validation.SanitizeString(body)

	if name == "" {
		return ErrNameRequired
	}
	if body == "" {
		return ErrMessageRequired
	}
	if !validation.ValidateContactEmail(email) {
		return ErrInvalidEmail
	}

	if err := s.sender.SendContactMessage(ContactMessage{Name: name, Email: email, Body: body}); err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	return nil
}
