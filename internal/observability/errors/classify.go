// Package errors derives low-cardinality labels from errors for logs and metrics.
package errors

import (
	"context"
	goerrors "errors"
	"net"
	"reflect"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/oauth2"
)

// Classify returns a normalized label for err.
// Timeouts, OAuth token endpoint errors and Postgres errors get stable names;
// anything else is named after its innermost concrete type.
func Classify(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case goerrors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case goerrors.Is(err, context.Canceled):
		return "canceled"
	}

	var retrieveErr *oauth2.RetrieveError
	if goerrors.As(err, &retrieveErr) {
		if code := strings.TrimSpace(retrieveErr.ErrorCode); code != "" {
			return "oauth_" + snake(code)
		}
		return "oauth_token_endpoint"
	}

	var pgErr *pgconn.PgError
	if goerrors.As(err, &pgErr) {
		return "postgres_" + strings.ToLower(pgErr.Code)
	}

	var netErr net.Error
	if goerrors.As(err, &netErr) && netErr.Timeout() {
		return "network_timeout"
	}

	return typeName(innermost(err))
}

func innermost(err error) error {
	for {
		unwrapped := goerrors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}

func typeName(err error) string {
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}
	name := snake(t.String())
	if name == "" {
		return "unknown"
	}
	return name
}

func snake(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("*", "", ".", "_", "-", "_", " ", "_").Replace(s)
}
