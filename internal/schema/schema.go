// Package schema derives warehouse column definitions from Arrow schemas,
// with a registry fallback for streams synced without data in hand.
package schema

import (
	"context"
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"

	"spectrum-sync/internal/domain"
)

// Lookup resolves registered column fragments by stream name.
// Implemented by registry.Registry.
type Lookup interface {
	Columns(stream string) (string, error)
}

// Resolver implements domain.SchemaResolver: dataset-backed resolution via
// Arrow schema mapping, registry lookup otherwise.
type Resolver struct {
	registry Lookup
}

// NewResolver creates a Resolver. The registry may be nil when only
// dataset-backed resolution is needed.
func NewResolver(registry Lookup) *Resolver {
	return &Resolver{registry: registry}
}

// FromDataset maps the record's Arrow schema to a column definition fragment.
func (r *Resolver) FromDataset(rec arrow.Record) (string, error) {
	return ColumnsFromSchema(rec.Schema())
}

// FromRegistry resolves columns for a stream from the schema registry.
func (r *Resolver) FromRegistry(_ context.Context, stream string) (string, error) {
	if r.registry == nil {
		return "", domain.ErrNotFound("no schema registry configured")
	}
	return r.registry.Columns(stream)
}

var _ domain.SchemaResolver = (*Resolver)(nil)

// ColumnsFromSchema renders an Arrow schema as a column definition fragment,
// one "name TYPE" per line, comma separated. Column names are lower-cased to
// match the catalog's case folding of external table columns.
func ColumnsFromSchema(sc *arrow.Schema) (string, error) {
	if sc == nil || len(sc.Fields()) == 0 {
		return "", domain.ErrValidation("dataset has no columns")
	}

	fields := sc.Fields()
	defs := make([]string, len(fields))
	for i, f := range fields {
		typ, err := columnType(f)
		if err != nil {
			return "", err
		}
		defs[i] = fmt.Sprintf("%s %s", strings.ToLower(f.Name), typ)
	}
	return strings.Join(defs, ",\n"), nil
}

// columnType maps an Arrow field type to the warehouse column type. Types
// without a mapping are an error rather than a silent VARCHAR fallback.
func columnType(f arrow.Field) (string, error) {
	switch t := f.Type.(type) {
	case *arrow.BooleanType:
		return "BOOLEAN", nil
	case *arrow.Int8Type, *arrow.Int16Type, *arrow.Uint8Type:
		return "SMALLINT", nil
	case *arrow.Int32Type, *arrow.Uint16Type:
		return "INTEGER", nil
	case *arrow.Int64Type, *arrow.Uint32Type, *arrow.Uint64Type:
		return "BIGINT", nil
	case *arrow.Float32Type:
		return "REAL", nil
	case *arrow.Float64Type:
		return "DOUBLE PRECISION", nil
	case *arrow.StringType, *arrow.LargeStringType:
		return "VARCHAR(65535)", nil
	case *arrow.Date32Type, *arrow.Date64Type:
		return "DATE", nil
	case *arrow.TimestampType:
		return "TIMESTAMP", nil
	case *arrow.Decimal128Type:
		return fmt.Sprintf("DECIMAL(%d,%d)", t.Precision, t.Scale), nil
	default:
		return "", fmt.Errorf("unsupported Arrow type for column %q: %s", f.Name, f.Type)
	}
}
