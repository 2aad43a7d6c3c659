//revive:disable-next-line:var-naming // legacy package name used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

// ContactRequestStatus tracks review of a request to treat a contact as personal.
type ContactRequestStatus string

const (
	ContactRequestPending  ContactRequestStatus = "pending"
	ContactRequestApproved ContactRequestStatus = "approved"
	ContactRequestRejected ContactRequestStatus = "rejected"
)

// Valid reports whether the status is supported.
func (s ContactRequestStatus) Valid() bool {
	switch s {
	case ContactRequestPending, ContactRequestApproved, ContactRequestRejected:
		return true
	default:
		return false
	}
}

// ParseContactRequestStatus case-folds value and reports whether it is a supported status.
func ParseContactRequestStatus(value string) (ContactRequestStatus, bool) {
	s := ContactRequestStatus(strings.ToLower(strings.TrimSpace(value)))
	if s.Valid() {
		return s, true
	}
	return "", false
}

// ContactRequest asks a reviewer to exclude a contact from the employee's work list.
type ContactRequest struct {
	ID               string               `json:"id"`
	RequestedContact string               `json:"requestedContact"`
	RequestedBy      string               `json:"requestedBy"`
	Reason           string               `json:"reason"`
	Status           ContactRequestStatus `json:"status"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
}

// CreateContactRequest is the submission payload.
type CreateContactRequest struct {
	RequestedContact string `json:"requestedContact"`
	RequestedBy      string `json:"requestedBy"`
	Reason           string `json:"reason"`
}

// Validate requires every field.
func (r *CreateContactRequest) Validate() error {
	r.RequestedContact = strings.TrimSpace(r.RequestedContact)
	r.RequestedBy = strings.TrimSpace(r.RequestedBy)
	r.Reason = strings.TrimSpace(r.Reason)
	if r.RequestedContact == "" || r.RequestedBy == "" || r.Reason == "" {
		return errors.New("requestedContact, requestedBy and reason are required")
	}
	return nil
}

// UpdateContactRequestStatus is the review payload.
type UpdateContactRequestStatus struct {
	RequestID string `json:"requestId"`
	Status    string `json:"status"`
}

// Validate checks both fields and returns the parsed status.
func (r *UpdateContactRequestStatus) Validate() (ContactRequestStatus, error) {
	r.RequestID = strings.TrimSpace(r.RequestID)
	if r.RequestID == "" || strings.TrimSpace(r.Status) == "" {
		return "", errors.New("requestId and status are required")
	}
	s, ok := ParseContactRequestStatus(r.Status)
	if !ok {
		return "", errors.New("invalid status value")
	}
	return s, nil
}
