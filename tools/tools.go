//go:build tools

// Package tools documents development tool dependencies.
// These tools are run through `go run` or installed with `go install` and are not
// tracked in go.mod.
package tools

// Development tools:
//
// mockgen - regenerates internal/mocks from the ports interfaces
//   Run: go generate ./internal/mocks
//   Version: go.uber.org/mock/mockgen@v0.6.0
//
// Air - live reload for the gateway during local development
//   Install: go install github.com/air-verse/air@v1.63.0
//   Docs: https://github.com/air-verse/air
