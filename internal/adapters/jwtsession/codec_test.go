package jwtsession

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/milestone2github/callyn-backend/internal/domain/auth"
	"github.com/milestone2github/callyn-backend/internal/domain/model"
)

var testSecret = []byte("test-secret-value-0123456789")

func identity() model.EnrichedIdentity {
	return model.EnrichedIdentity{
		Employee:       model.Employee{ID: "E1", Name: "Asha", Email: "asha@x.com"},
		DepartmentName: "Sales",
		DeviceSerial:   "SN123",
	}
}

func newCodec(t *testing.T, now func() time.Time) *Codec {
	t.Helper()
	c, err := New(Options{Secret: testSecret, Issuer: "callyn-test", TTL: time.Hour, Now: now})
	require.NoError(t, err)
	return c
}

func TestNew_RequiresSecret(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)

	c, err := New(Options{Secret: testSecret})
	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, c.TTL())
	assert.Equal(t, DefaultIssuer, c.issuer)
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := newCodec(t, func() time.Time { return now })

	sess, token, err := c.Issue(identity())
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "E1", sess.SubjectID)
	assert.Equal(t, now.Add(time.Hour), sess.ExpiresAt)

	got, err := c.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "E1", got.SubjectID)
	assert.Equal(t, "asha@x.com", got.Email)
	assert.Equal(t, "Asha", got.Name)
	assert.True(t, got.ExpiresAt.Equal(sess.ExpiresAt))
	assert.True(t, got.IssuedAt.Equal(now))
}

func TestIssue_UniqueTokenID(t *testing.T) {
	now := time.Now()
	c := newCodec(t, func() time.Time { return now })

	_, a, err := c.Issue(identity())
	require.NoError(t, err)
	_, b, err := c.Issue(identity())
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerify_Expired(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := now
	c := newCodec(t, func() time.Time { return clock })

	_, token, err := c.Issue(identity())
	require.NoError(t, err)

	clock = now.Add(time.Hour + time.Second)
	sess, err := c.Verify(token)
	require.ErrorIs(t, err, domainauth.ErrInvalidCredential)
	assert.Equal(t, domainauth.Session{}, sess)
}

func TestVerify_Rejects(t *testing.T) {
	now := time.Now()
	c := newCodec(t, func() time.Time { return now })
	_, good, err := c.Issue(identity())
	require.NoError(t, err)

	other, err := New(Options{Secret: []byte("another-secret"), Issuer: "callyn-test", Now: c.now})
	require.NoError(t, err)
	_, foreign, err := other.Issue(identity())
	require.NoError(t, err)

	wrongIssuer, err := New(Options{Secret: testSecret, Issuer: "someone-else", Now: c.now})
	require.NoError(t, err)
	_, otherIss, err := wrongIssuer.Issue(identity())
	require.NoError(t, err)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		EmployeeID:       "E1",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "callyn-test", IssuedAt: jwt.NewNumericDate(now)},
	})
	noExpToken, err := noExp.SignedString(testSecret)
	require.NoError(t, err)

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		EmployeeID: "E1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "callyn-test",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})
	hs512Token, err := hs512.SignedString(testSecret)
	require.NoError(t, err)

	parts := strings.Split(good, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	tests := map[string]string{
		"empty":          "",
		"garbage":        "not-a-jwt",
		"wrong secret":   foreign,
		"wrong issuer":   otherIss,
		"missing expiry": noExpToken,
		"wrong alg":      hs512Token,
		"tampered":       tampered,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := c.Verify(token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainauth.ErrInvalidCredential))
		})
	}
}
