package data

import (
	"time"
)

// TimeProvider stamps created_at, updated_at and last_seen values written by the repositories.
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider reads the wall clock in UTC.
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

// FixedTimeProvider always returns the same instant. Repository tests use it to pin timestamps.
type FixedTimeProvider struct {
	at time.Time
}

func NewFixedTimeProvider(t time.Time) *FixedTimeProvider {
	return &FixedTimeProvider{at: t.UTC()}
}

func (f *FixedTimeProvider) Now() time.Time {
	return f.at
}

func timeProviderOrReal(tp TimeProvider) TimeProvider {
	if tp == nil {
		return RealTimeProvider{}
	}
	return tp
}
