// Package jwtsession signs and verifies the HS256 session credentials handed to the mobile app.
package jwtsession

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainauth "github.com/milestone2github/callyn-backend/internal/domain/auth"
	"github.com/milestone2github/callyn-backend/internal/domain/model"
	"github.com/milestone2github/callyn-backend/internal/ports"
)

const (
	// DefaultIssuer is used when no issuer is configured.
	DefaultIssuer = "callyn-backend"
	// DefaultTTL matches the mobile app's expected 180 day session.
	DefaultTTL = 180 * 24 * time.Hour
)

var (
	_ ports.SessionIssuer   = (*Codec)(nil)
	_ ports.SessionVerifier = (*Codec)(nil)
)

// Claims is the session credential payload. id, email and name are read by the app.
type Claims struct {
	EmployeeID string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	jwt.RegisteredClaims
}

// Options configures a Codec.
type Options struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	Now    func() time.Time
}

// Codec issues and verifies session credentials with a shared secret.
type Codec struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// New validates opts and builds a Codec.
func New(opts Options) (*Codec, error) {
	if len(opts.Secret) == 0 {
		return nil, errors.New("session secret is required")
	}
	issuer := strings.TrimSpace(opts.Issuer)
	if issuer == "" {
		issuer = DefaultIssuer
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Codec{
		secret: opts.Secret,
		issuer: issuer,
		ttl:    ttl,
		now:    now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
			jwt.WithTimeFunc(now),
		),
	}, nil
}

// TTL returns the configured session lifetime.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue signs a credential for the identity. Signing failures come back as *domainauth.SigningError.
func (c *Codec) Issue(identity model.EnrichedIdentity) (domainauth.Session, string, error) {
	emp := identity.Employee
	now := c.now().UTC().Truncate(time.Second)
	sess := domainauth.Session{
		SubjectID: emp.ID,
		Email:     emp.Email,
		Name:      emp.Name,
		IssuedAt:  now,
		ExpiresAt: now.Add(c.ttl),
	}

	claims := Claims{
		EmployeeID: sess.SubjectID,
		Email:      sess.Email,
		Name:       sess.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   sess.SubjectID,
			IssuedAt:  jwt.NewNumericDate(sess.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return domainauth.Session{}, "", &domainauth.SigningError{Err: err}
	}
	return sess, signed, nil
}

// Verify checks signature, algorithm, issuer and expiry.
func (c *Codec) Verify(token string) (domainauth.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domainauth.Session{}, domainauth.ErrInvalidCredential
	}

	var claims Claims
	parsed, err := c.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domainauth.Session{}, fmt.Errorf("%w: %w", domainauth.ErrInvalidCredential, errOrInvalid(err))
	}

	sess := domainauth.Session{
		SubjectID: claims.EmployeeID,
		Email:     claims.Email,
		Name:      claims.Name,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if sess.SubjectID == "" {
		sess.SubjectID = claims.Subject
	}
	if claims.IssuedAt != nil {
		sess.IssuedAt = claims.IssuedAt.Time
	}
	return sess, nil
}

func errOrInvalid(err error) error {
	if err != nil {
		return err
	}
	return jwt.ErrTokenUnverifiable
}
