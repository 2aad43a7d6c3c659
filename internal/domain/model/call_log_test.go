package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCallLogRequest_Validate(t *testing.T) {
	valid := func() CreateCallLogRequest {
		return CreateCallLogRequest{
			CallerName: " Asha ",
			Type:       "Incoming",
			Timestamp:  1717000000000,
			Duration:   42,
			UploadedBy: "Ravi",
		}
	}

	t.Run("normalizes defaults", func(t *testing.T) {
		r := valid()
		require.NoError(t, r.Validate())
		assert.Equal(t, "Asha", r.CallerName)
		assert.Equal(t, string(CallTypeIncoming), r.Type)
		assert.Equal(t, NotAvailable, r.RshipManagerName)
		assert.Equal(t, "Unknown", r.FamilyHead)
		assert.True(t, r.Work())
		assert.Equal(t, time.UnixMilli(1717000000000).UTC(), r.CallTime())
	})

	cases := map[string]func(*CreateCallLogRequest){
		"missing caller":   func(r *CreateCallLogRequest) { r.CallerName = "  " },
		"missing type":     func(r *CreateCallLogRequest) { r.Type = "" },
		"unknown type":     func(r *CreateCallLogRequest) { r.Type = "voicemail" },
		"missing time":     func(r *CreateCallLogRequest) { r.Timestamp = 0 },
		"negative length":  func(r *CreateCallLogRequest) { r.Duration = -1 },
		"missing uploader": func(r *CreateCallLogRequest) { r.UploadedBy = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := valid()
			mutate(&r)
			assert.Error(t, r.Validate())
		})
	}

	t.Run("explicit isWork false", func(t *testing.T) {
		r := valid()
		f := false
		r.IsWork = &f
		require.NoError(t, r.Validate())
		assert.False(t, r.Work())
	})
}

func TestParseCallLogDate(t *testing.T) {
	day, err := ParseCallLogDate("2024-05-30")
	require.NoError(t, err)
	start, end := DayBounds(day)
	assert.Equal(t, time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), end)

	_, err = ParseCallLogDate("30/05/2024")
	assert.Error(t, err)
}

func TestUpdateContactRequestStatus_Validate(t *testing.T) {
	r := UpdateContactRequestStatus{RequestID: "abc", Status: "APPROVED"}
	s, err := r.Validate()
	require.NoError(t, err)
	assert.Equal(t, ContactRequestApproved, s)

	r = UpdateContactRequestStatus{RequestID: "abc", Status: "maybe"}
	_, err = r.Validate()
	assert.EqualError(t, err, "invalid status value")

	r = UpdateContactRequestStatus{Status: "pending"}
	_, err = r.Validate()
	assert.Error(t, err)
}

func TestCreateContactRequest_Validate(t *testing.T) {
	r := CreateContactRequest{RequestedContact: "Mom", RequestedBy: "Ravi", Reason: "family"}
	assert.NoError(t, r.Validate())

	r.Reason = " "
	assert.Error(t, r.Validate())
}

func TestSyncUserDetailsRequest_Validate(t *testing.T) {
	r := SyncUserDetailsRequest{Username: "  ", Email: "ravi@x.com"}
	assert.ErrorIs(t, r.Validate(), ErrUserDetailsUsernameRequired)

	r.Username = " ravi "
	r.Email = "\t"
	assert.ErrorIs(t, r.Validate(), ErrUserDetailsEmailRequired)

	r.Email = " Ravi@X.com\n"
	require.NoError(t, r.Validate())
	assert.Equal(t, "ravi", r.Username)
	assert.Equal(t, "ravi@x.com", r.Email)
}

func TestCallLogListOptions_PageSize(t *testing.T) {
	assert.Equal(t, DefaultCallLogListLimit, CallLogListOptions{}.PageSize())
	assert.Equal(t, DefaultCallLogListLimit, CallLogListOptions{Limit: -1}.PageSize())
	assert.Equal(t, 25, CallLogListOptions{Limit: 25}.PageSize())
	assert.Equal(t, MaxCallLogListLimit, CallLogListOptions{Limit: MaxCallLogListLimit + 1}.PageSize())
}
