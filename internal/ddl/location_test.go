package ddl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTableLocation(t *testing.T) {
	tests := []struct {
		name   string
		bucket string
		stream string
		format string
		want   string
	}{
		{
			name:   "basic",
			bucket: "data-lake",
			stream: "events",
			format: "parquet",
			want:   "s3://data-lake/events/ext=parquet/",
		},
		{
			name:   "lower_cased",
			bucket: "Data-Lake",
			stream: "Events",
			format: "PARQUET",
			want:   "s3://data-lake/events/ext=parquet/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TableLocation(tt.bucket, tt.stream, tt.format)
			assert.Equal(t, tt.want, got)
			assert.True(t, got[len(got)-1] == '/', "table locations are slash-terminated")
		})
	}
}

func TestPartitionLocation(t *testing.T) {
	tests := []struct {
		name   string
		column string
		value  string
		want   string
	}{
		{
			name:   "date_partition",
			column: "dt",
			value:  "2024-01-15",
			want:   "s3://data-lake/events/ext=parquet/dt=2024-01-15/",
		},
		{
			name:   "value_lower_cased",
			column: "region",
			value:  "EU-West",
			want:   "s3://data-lake/events/ext=parquet/region=eu-west/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PartitionLocation("data-lake", "events", "parquet", tt.column, tt.value)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDataFileLocation(t *testing.T) {
	base := PartitionLocation("data-lake", "events", "parquet", "dt", "2024-01-15")
	assert.Equal(t,
		"s3://data-lake/events/ext=parquet/dt=2024-01-15/events.snappy",
		DataFileLocation(base, "events"),
	)

	// Unpartitioned streams write directly under the table location.
	assert.Equal(t,
		"s3://data-lake/events/ext=parquet/events.snappy",
		DataFileLocation(TableLocation("data-lake", "events", "parquet"), "events"),
	)
}

func TestTimestampedDataFileLocation(t *testing.T) {
	ts := time.Date(2024, 1, 15, 6, 30, 45, 0, time.UTC)
	base := TableLocation("data-lake", "events", "parquet")
	assert.Equal(t,
		"s3://data-lake/events/ext=parquet/events_20240115_063045.snappy",
		TimestampedDataFileLocation(base, "events", ts),
	)
}
