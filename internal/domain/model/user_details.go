//revive:disable-next-line:var-naming // legacy package name used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

// UserDetails is the latest device report from one app user.
type UserDetails struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Department *string   `json:"department,omitempty"`
	PhoneModel *string   `json:"phoneModel,omitempty"`
	OSLevel    *string   `json:"osLevel,omitempty"`
	AppVersion *string   `json:"appVersion,omitempty"`
	LastSeen   time.Time `json:"lastSeen"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// SyncUserDetailsRequest upserts a device report keyed on the normalized Email.
type SyncUserDetailsRequest struct {
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	Department *string    `json:"department,omitempty"`
	PhoneModel *string    `json:"phoneModel,omitempty"`
	OSLevel    *string    `json:"osLevel,omitempty"`
	AppVersion *string    `json:"appVersion,omitempty"`
	LastSeen   *time.Time `json:"lastSeen,omitempty"`
}

var (
	ErrUserDetailsUsernameRequired = errors.New("username is required")
	ErrUserDetailsEmailRequired    = errors.New("email is required")
)

// Validate requires a username and an email, normalizing both in place.
func (r *SyncUserDetailsRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" {
		return ErrUserDetailsUsernameRequired
	}
	r.Email = NormalizeEmail(r.Email)
	if r.Email == "" {
		return ErrUserDetailsEmailRequired
	}
	return nil
}
