package domain

import (
	"context"

	"github.com/apache/arrow-go/v18/arrow"
)

// Connection executes catalog queries and DDL against the warehouse.
// Implemented by warehouse.DB.
type Connection interface {
	// Query runs a catalog query and returns all result rows with every
	// column rendered as a string.
	Query(ctx context.Context, query string) ([][]string, error)
	// Exec applies a DDL statement. Driver errors are returned unchanged.
	Exec(ctx context.Context, stmt string) error
}

// SchemaResolver produces column definition fragments for external tables.
// Implemented by schema.Resolver.
type SchemaResolver interface {
	// FromDataset derives columns from an in-memory record's Arrow schema.
	FromDataset(rec arrow.Record) (string, error)
	// FromRegistry resolves columns for a stream from the schema registry.
	FromRegistry(ctx context.Context, stream string) (string, error)
}

// DatasetWriter persists a dataset to object storage.
// Implemented by storage.S3Writer.
type DatasetWriter interface {
	// Write encodes and uploads the record to an s3:// location.
	Write(ctx context.Context, rec arrow.Record, location string) error
}
