package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milestone2github/callyn-backend/internal/domain/model"
)

func TestPrintUsageListsCommandsSorted(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printUsage(&buf))

	out := buf.String()
	assert.Contains(t, out, "Usage: callyn-admin")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("latest-version")), bytes.Index(buf.Bytes(), []byte("purge-call-logs")))
}

func TestPrintIdentity(t *testing.T) {
	id := model.EnrichedIdentity{
		Employee:       model.Employee{ID: "emp-1", Name: "Esha Kapoor", Email: "e@x.com"},
		DepartmentName: "Sales",
		DeviceSerial:   model.NotAvailable,
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printIdentity(&buf, id, false))
		assert.Contains(t, buf.String(), "Department:")
		assert.Contains(t, buf.String(), "Sales")
		assert.Contains(t, buf.String(), "N/A")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printIdentity(&buf, id, true))
		var decoded model.EnrichedIdentity
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "emp-1", decoded.Employee.ID)
	})
}

func TestParsePurgeFlags(t *testing.T) {
	defaults := purgeOptions{MaxAge: 90 * 24 * time.Hour, BatchSize: 500}

	_, err := parsePurgeFlags(nil, defaults)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	opts, err := parsePurgeFlags([]string{"--yes", "--max-age", "720h"}, defaults)
	require.NoError(t, err)
	assert.Equal(t, 720*time.Hour, opts.MaxAge)
	assert.Equal(t, 500, opts.BatchSize)

	_, err = parsePurgeFlags([]string{"--yes", "--batch-size", "0"}, defaults)
	require.Error(t, err)
}

func TestParseLookupFlags(t *testing.T) {
	_, err := parseLookupFlags(nil)
	require.Error(t, err)

	opts, err := parseLookupFlags([]string{"--email", " E@X.com ", "--json"})
	require.NoError(t, err)
	assert.Equal(t, "E@X.com", opts.Email)
	assert.True(t, opts.JSON)
}
