//revive:disable-next-line:var-naming // legacy package name used across the project
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxCallLogTextLen = 500
	maxCallNotesLen   = 4000

	// DefaultCallLogListLimit is the page size when the caller sends no limit.
	DefaultCallLogListLimit = 500
	// MaxCallLogListLimit is the upper bound accepted from callers.
	MaxCallLogListLimit = 5000

	// CallLogDateLayout is the accepted format of the date filter.
	CallLogDateLayout = "2006-01-02"
)

// CallType classifies a phone call as reported by the handset.
type CallType string

const (
	CallTypeIncoming CallType = "incoming"
	CallTypeOutgoing CallType = "outgoing"
	CallTypeMissed   CallType = "missed"
	CallTypeRejected CallType = "rejected"
)

// Valid reports whether the call type is supported.
func (c CallType) Valid() bool {
	switch c {
	case CallTypeIncoming, CallTypeOutgoing, CallTypeMissed, CallTypeRejected:
		return true
	default:
		return false
	}
}

// ParseCallType case-folds value and reports whether it names a supported call type.
func ParseCallType(value string) (CallType, bool) {
	ct := CallType(strings.ToLower(strings.TrimSpace(value)))
	if ct.Valid() {
		return ct, true
	}
	return "", false
}

// CallLog is one call uploaded by the mobile app.
type CallLog struct {
	ID               string    `json:"id"`
	CallerName       string    `json:"callerName"`
	FamilyHead       string    `json:"familyHead"`
	RshipManagerName string    `json:"rshipManagerName"`
	Type             CallType  `json:"type"`
	Timestamp        time.Time `json:"timestamp"`
	DurationSeconds  int       `json:"duration"`
	Notes            string    `json:"notes"`
	SimSlot          *string   `json:"simslot"`
	IsWork           bool      `json:"isWork"`
	UploadedBy       string    `json:"uploadedBy"`
	UploadedAt       time.Time `json:"uploadedAt"`
}

// CreateCallLogRequest is the upload payload. Timestamp is epoch milliseconds.
type CreateCallLogRequest struct {
	CallerName       string  `json:"callerName"`
	FamilyHead       string  `json:"familyHead,omitempty"`
	RshipManagerName string  `json:"rshipManagerName,omitempty"`
	Type             string  `json:"type"`
	Timestamp        int64   `json:"timestamp"`
	Duration         int     `json:"duration"`
	Notes            string  `json:"notes,omitempty"`
	SimSlot          *string `json:"simSlot,omitempty"`
	IsWork           *bool   `json:"isWork,omitempty"`

	// UploadedBy is taken from the verified session, never from the body.
	UploadedBy string `json:"-"`
}

// Validate checks required fields and normalizes defaults in place.
func (r *CreateCallLogRequest) Validate() error {
	r.CallerName = strings.TrimSpace(r.CallerName)
	if r.CallerName == "" {
		return errors.New("callerName is required")
	}
	if utf8.RuneCountInString(r.CallerName) > maxCallLogTextLen {
		return fmt.Errorf("callerName cannot exceed %d characters", maxCallLogTextLen)
	}
	ct, ok := ParseCallType(r.Type)
	if !ok {
		if strings.TrimSpace(r.Type) == "" {
			return errors.New("type is required")
		}
		return errors.New("type must be one of incoming, outgoing, missed, rejected")
	}
	r.Type = string(ct)
	if r.Timestamp <= 0 {
		return errors.New("timestamp is required")
	}
	if r.Duration < 0 {
		return errors.New("duration must be >= 0")
	}
	if utf8.RuneCountInString(r.Notes) > maxCallNotesLen {
		return fmt.Errorf("notes cannot exceed %d characters", maxCallNotesLen)
	}
	if strings.TrimSpace(r.UploadedBy) == "" {
		return errors.New("uploadedBy is required")
	}

	r.FamilyHead = defaultString(r.FamilyHead, "Unknown")
	r.RshipManagerName = defaultString(r.RshipManagerName, NotAvailable)
	return nil
}

// CallTime converts the epoch-millisecond timestamp to UTC.
func (r *CreateCallLogRequest) CallTime() time.Time {
	return time.UnixMilli(r.Timestamp).UTC()
}

// Work reports the isWork flag, defaulting to true.
func (r *CreateCallLogRequest) Work() bool {
	if r.IsWork == nil {
		return true
	}
	return *r.IsWork
}

// CallLogListOptions filters call log listings.
// RshipManagerName and UploadedBy are case-insensitive substring matches.
// Date selects one UTC calendar day of call timestamps.
type CallLogListOptions struct {
	RshipManagerName *string
	UploadedBy       *string
	Date             *time.Time
	Limit            int
	Offset           int
}

// PageSize is Limit defaulted and clamped to MaxCallLogListLimit.
func (o CallLogListOptions) PageSize() int {
	if o.Limit <= 0 {
		return DefaultCallLogListLimit
	}
	return min(o.Limit, MaxCallLogListLimit)
}

// CallLogListResult is one page of call logs and the number of rows matching the filters.
type CallLogListResult struct {
	Logs  []*CallLog
	Total int
}

// ParseCallLogDate parses a YYYY-MM-DD filter value into the start of that UTC day.
func ParseCallLogDate(value string) (time.Time, error) {
	day, err := time.ParseInLocation(CallLogDateLayout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, errors.New("invalid date format, use YYYY-MM-DD")
	}
	return day, nil
}

// DayBounds returns the half-open [start, end) range covering t's UTC day.
func DayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.UTC().Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

func defaultString(v, def string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}
