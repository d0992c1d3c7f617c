// Package testutil provides shared mock implementations of domain interfaces
// for use in tests across the codebase. This follows the Go convention of a
// shared test utility package (like net/http/httptest).
package testutil

import (
	"context"

	"github.com/apache/arrow-go/v18/arrow"

	"spectrum-sync/internal/domain"
)

// === Warehouse Connection Mock ===

// MockConnection implements domain.Connection for testing.
type MockConnection struct {
	QueryFn func(ctx context.Context, query string) ([][]string, error)
	ExecFn  func(ctx context.Context, stmt string) error
	Queries []string // collected queries for assertions
	Execs   []string // collected statements for assertions
}

// Query implements the interface method for testing.
func (m *MockConnection) Query(ctx context.Context, query string) ([][]string, error) {
	m.Queries = append(m.Queries, query)
	if m.QueryFn != nil {
		return m.QueryFn(ctx, query)
	}
	panic("unexpected call to MockConnection.Query")
}

// Exec implements the interface method for testing.
func (m *MockConnection) Exec(ctx context.Context, stmt string) error {
	m.Execs = append(m.Execs, stmt)
	if m.ExecFn != nil {
		return m.ExecFn(ctx, stmt)
	}
	return nil
}

var _ domain.Connection = (*MockConnection)(nil)

// === Schema Resolver Mock ===

// MockSchemaResolver implements domain.SchemaResolver for testing.
type MockSchemaResolver struct {
	FromDatasetFn  func(rec arrow.Record) (string, error)
	FromRegistryFn func(ctx context.Context, stream string) (string, error)
	DatasetCalls   int      // number of FromDataset calls
	RegistryCalls  []string // streams passed to FromRegistry
}

// FromDataset implements the interface method for testing.
func (m *MockSchemaResolver) FromDataset(rec arrow.Record) (string, error) {
	m.DatasetCalls++
	if m.FromDatasetFn != nil {
		return m.FromDatasetFn(rec)
	}
	panic("unexpected call to MockSchemaResolver.FromDataset")
}

// FromRegistry implements the interface method for testing.
func (m *MockSchemaResolver) FromRegistry(ctx context.Context, stream string) (string, error) {
	m.RegistryCalls = append(m.RegistryCalls, stream)
	if m.FromRegistryFn != nil {
		return m.FromRegistryFn(ctx, stream)
	}
	panic("unexpected call to MockSchemaResolver.FromRegistry")
}

var _ domain.SchemaResolver = (*MockSchemaResolver)(nil)

// === Dataset Writer Mock ===

// MockDatasetWriter implements domain.DatasetWriter for testing.
type MockDatasetWriter struct {
	WriteFn   func(ctx context.Context, rec arrow.Record, location string) error
	Locations []string // collected upload locations for assertions
}

// Write implements the interface method for testing.
func (m *MockDatasetWriter) Write(ctx context.Context, rec arrow.Record, location string) error {
	m.Locations = append(m.Locations, location)
	if m.WriteFn != nil {
		return m.WriteFn(ctx, rec, location)
	}
	return nil
}

var _ domain.DatasetWriter = (*MockDatasetWriter)(nil)
