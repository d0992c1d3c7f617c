package domain

import (
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
)

// Default partition settings for daily-partitioned streams.
const (
	DefaultPartitionColumn = "dt"
	DefaultPartitionType   = "date"
)

// TableIdentity locates an external table in the warehouse catalog.
//
// Table is the logical name the warehouse knows; the physical external table
// carries a _<format> suffix. Stream is the S3 prefix the data files live
// under and defaults to Table when empty.
type TableIdentity struct {
	Schema string
	Table  string
	Stream string
}

// PartitionSpec describes the single partition column of an external table
// and the value to register on the next sync.
//
// The zero value disables partitioning. When Enabled, empty Column, Type, and
// Value fields fall back to "dt", "date", and the current date.
type PartitionSpec struct {
	Enabled bool
	Column  string
	Type    string
	Value   string
}

// DefaultPartitionSpec returns the daily date partition used by most streams.
func DefaultPartitionSpec() PartitionSpec {
	return PartitionSpec{Enabled: true, Column: DefaultPartitionColumn, Type: DefaultPartitionType}
}

// SyncRequest holds the parameters for one external table synchronization.
type SyncRequest struct {
	Identity    TableIdentity
	Bucket      string
	Format      string // file format id, defaults to FormatParquet
	Partition   PartitionSpec
	SchemaAlias string // extra schema to expose the table under via a view; empty disables

	// Dataset optionally supplies an in-memory record whose Arrow schema
	// takes precedence over the registry when it has rows.
	Dataset arrow.Record

	// WriteData uploads Dataset to the storage location before the catalog
	// statements run. Requires a configured writer and a non-nil Dataset.
	WriteData bool
}

// DDLScript is the ordered statement set produced for one synchronization.
// CreateTable is always present; AliasView and AddPartition are empty when
// the request disables them.
type DDLScript struct {
	CreateTable  string
	AliasView    string
	AddPartition string
}

// Statements returns the non-empty statements in execution order.
func (s DDLScript) Statements() []string {
	stmts := make([]string, 0, 3)
	for _, stmt := range []string{s.CreateTable, s.AliasView, s.AddPartition} {
		if stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// String renders the script as newline-joined statements, each already
// terminated by a semicolon.
func (s DDLScript) String() string {
	return strings.Join(s.Statements(), "\n")
}

// SyncResult reports what one synchronization produced. Script is populated
// in every outcome, including script-only runs without a connection.
type SyncResult struct {
	Script   DDLScript
	Location string // root storage location of the external table

	Created        bool   // create + alias statements were executed this run
	PartitionAdded bool   // add-partition statement was executed this run
	DataFile       string // object written in direct-write mode, empty otherwise
}
