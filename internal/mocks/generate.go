// Package mocks provides gomock implementations of the callyn-backend ports.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	repo := mocks.NewMockCallLogRepository(ctrl)
//	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(callLog, nil)
package mocks

// Login pipeline ports: DirectoryClient, EmployeeDirectory, SessionIssuer, SessionVerifier.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=auth_ports_mock.go github.com/milestone2github/callyn-backend/internal/ports DirectoryClient,EmployeeDirectory,SessionIssuer,SessionVerifier

// Record stores used by the app-facing endpoints and retention.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=repositories_mock.go github.com/milestone2github/callyn-backend/internal/ports CallLogRepository,CallLogPurger,ContactRequestRepository,VersionRepository,UserDetailsRepository

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=rate_limiter_mock.go github.com/milestone2github/callyn-backend/internal/ports RateLimiter
