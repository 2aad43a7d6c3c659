package auth

// Package auth contains simple hand-written test doubles for the login ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"net/url"
	"sync"

	domainauth "github.com/milestone2github/callyn-backend/internal/domain/auth"
	"github.com/milestone2github/callyn-backend/internal/domain/model"
	"github.com/milestone2github/callyn-backend/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.DirectoryClient   = (*StubDirectoryClient)(nil)
	_ ports.EmployeeDirectory = (*StaticEmployeeDirectory)(nil)
)

// StubDirectoryClient simulates the external OAuth directory and counts exchanges.
type StubDirectoryClient struct {
	// AuthURL is the base of URLs returned by AuthCodeURL.
	AuthURL string
	// Email is asserted by Exchange when ExchangeFunc is nil.
	Email string
	// Err, when set, is returned by Exchange wrapped as an ExchangeError.
	Err          error
	ExchangeFunc func(ctx context.Context, code string) (domainauth.ExternalIdentity, error)

	mu        sync.Mutex
	exchanges int
	codes     []string
}

// NewStubDirectoryClient returns a client asserting email for every code.
func NewStubDirectoryClient(email string) *StubDirectoryClient {
	return &StubDirectoryClient{AuthURL: "https://directory.test/oauth/v2/auth", Email: email}
}

func (s *StubDirectoryClient) AuthCodeURL(state string) string {
	base := s.AuthURL
	if base == "" {
		base = "https://directory.test/oauth/v2/auth"
	}
	return base + "?" + url.Values{"state": {state}}.Encode()
}

func (s *StubDirectoryClient) Exchange(ctx context.Context, code string) (domainauth.ExternalIdentity, error) {
	s.mu.Lock()
	s.exchanges++
	s.codes = append(s.codes, code)
	s.mu.Unlock()

	if s.ExchangeFunc != nil {
		return s.ExchangeFunc(ctx, code)
	}
	if s.Err != nil {
		return domainauth.ExternalIdentity{}, domainauth.NewExchangeError("token", s.Err)
	}
	return domainauth.ExternalIdentity{Email: s.Email}, nil
}

// Exchanges returns how many times Exchange was called.
func (s *StubDirectoryClient) Exchanges() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exchanges
}

// Codes returns the codes passed to Exchange in call order.
func (s *StubDirectoryClient) Codes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.codes...)
}

// ErrDirectoryUnavailable is a canned lookup failure.
var ErrDirectoryUnavailable = errors.New("employee directory unavailable")

// StaticEmployeeDirectory is an in-memory registry keyed by normalized email.
// It never adds employees on lookup.
type StaticEmployeeDirectory struct {
	Err error

	mu        sync.Mutex
	employees map[string]model.Employee
	lookups   []string
}

// NewStaticEmployeeDirectory indexes employees by model.NormalizeEmail.
func NewStaticEmployeeDirectory(employees ...model.Employee) *StaticEmployeeDirectory {
	d := &StaticEmployeeDirectory{employees: make(map[string]model.Employee, len(employees))}
	for _, e := range employees {
		key := model.NormalizeEmail(e.Email)
		if _, exists := d.employees[key]; !exists {
			d.employees[key] = e
		}
	}
	return d
}

func (d *StaticEmployeeDirectory) FindByEmail(_ context.Context, email string) (*model.Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lookups = append(d.lookups, email)
	if d.Err != nil {
		return nil, d.Err
	}
	emp, ok := d.employees[model.NormalizeEmail(email)]
	if !ok {
		return nil, nil
	}
	return &emp, nil
}

// Lookups returns the emails passed to FindByEmail in call order.
func (d *StaticEmployeeDirectory) Lookups() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.lookups...)
}

// Len returns the number of employees in the registry.
func (d *StaticEmployeeDirectory) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.employees)
}
