package schema

import (
	"context"
	"errors"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spectrum-sync/internal/domain"
)

func TestColumnsFromSchema(t *testing.T) {
	tests := []struct {
		name    string
		fields  []arrow.Field
		want    string
		wantErr string
	}{
		{
			name: "mixed_types",
			fields: []arrow.Field{
				{Name: "event_id", Type: arrow.PrimitiveTypes.Int64},
				{Name: "clicks", Type: arrow.PrimitiveTypes.Int32},
				{Name: "score", Type: arrow.PrimitiveTypes.Float64},
				{Name: "name", Type: arrow.BinaryTypes.String},
				{Name: "active", Type: arrow.FixedWidthTypes.Boolean},
				{Name: "day", Type: arrow.FixedWidthTypes.Date32},
			},
			want: "event_id BIGINT,\nclicks INTEGER,\nscore DOUBLE PRECISION,\nname VARCHAR(65535),\nactive BOOLEAN,\nday DATE",
		},
		{
			name: "names_lower_cased",
			fields: []arrow.Field{
				{Name: "EventID", Type: arrow.PrimitiveTypes.Int64},
			},
			want: "eventid BIGINT",
		},
		{
			name: "timestamp",
			fields: []arrow.Field{
				{Name: "received_at", Type: arrow.FixedWidthTypes.Timestamp_us},
			},
			want: "received_at TIMESTAMP",
		},
		{
			name: "decimal_keeps_precision_and_scale",
			fields: []arrow.Field{
				{Name: "amount", Type: &arrow.Decimal128Type{Precision: 18, Scale: 4}},
			},
			want: "amount DECIMAL(18,4)",
		},
		{
			name: "unmapped_type",
			fields: []arrow.Field{
				{Name: "tags", Type: arrow.ListOf(arrow.BinaryTypes.String)},
			},
			wantErr: `unsupported Arrow type for column "tags"`,
		},
		{
			name:    "no_columns",
			fields:  nil,
			wantErr: "dataset has no columns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ColumnsFromSchema(arrow.NewSchema(tt.fields, nil))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolverFromDataset(t *testing.T) {
	sc := arrow.NewSchema([]arrow.Field{
		{Name: "event_id", Type: arrow.PrimitiveTypes.Int64},
	}, nil)
	b := array.NewRecordBuilder(memory.NewGoAllocator(), sc)
	defer b.Release()
	b.Field(0).(*array.Int64Builder).Append(42)
	rec := b.NewRecord()
	defer rec.Release()

	got, err := NewResolver(nil).FromDataset(rec)
	require.NoError(t, err)
	assert.Equal(t, "event_id BIGINT", got)
}

func TestResolverFromRegistry(t *testing.T) {
	t.Run("delegates_to_registry", func(t *testing.T) {
		r := NewResolver(stubLookup{columns: "a INT"})
		got, err := r.FromRegistry(context.Background(), "events")
		require.NoError(t, err)
		assert.Equal(t, "a INT", got)
	})

	t.Run("nil_registry", func(t *testing.T) {
		_, err := NewResolver(nil).FromRegistry(context.Background(), "events")
		require.Error(t, err)
		var nfe *domain.NotFoundError
		assert.True(t, errors.As(err, &nfe))
	})
}

type stubLookup struct {
	columns string
	err     error
}

func (s stubLookup) Columns(string) (string, error) { return s.columns, s.err }
