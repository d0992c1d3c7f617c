// Package ddl builds the warehouse statements and storage locations that
// register partitioned S3 datasets as external tables.
//
// Builders are pure string formatting over pre-resolved inputs. Identifiers
// and values are wrapped in the template's quote characters but never
// validated or escaped; callers own the correctness of the names they pass.
package ddl

import "fmt"

// catalogColumnsView is the catalog metadata view listing external table columns.
const catalogColumnsView = "SVV_EXTERNAL_COLUMNS"

// ExternalTableExists returns the existence probe for an external table.
// The probe matches on the concatenated logical name <schema><table>, not the
// suffixed physical name, so it finds tables registered under any format.
//
//	SELECT DISTINCT(schemaname || tablename) AS schema_table
//	FROM SVV_EXTERNAL_COLUMNS
//	WHERE schemaname || tablename = '<schema><table>';
func ExternalTableExists(schema, table string) string {
	return fmt.Sprintf(`SELECT DISTINCT(schemaname || tablename) AS schema_table
FROM %s
WHERE schemaname || tablename = '%s%s';`, catalogColumnsView, schema, table)
}

// ExternalTableParams describes one CREATE EXTERNAL TABLE statement.
// Serde and StoredAs come from a resolved FileFormatSpec; Columns is an
// opaque column definition fragment, one "name TYPE" per line.
type ExternalTableParams struct {
	Schema   string
	Table    string
	Format   string // format id, used as the physical name suffix
	Columns  string
	Serde    string
	StoredAs string
	Location string // root storage location for the LOCATION clause

	Partitioned     bool
	PartitionColumn string
	PartitionType   string
}

// CreateExternalTable returns a CREATE EXTERNAL TABLE statement targeting the
// physical name "<schema>"."<table>_<format>". The PARTITIONED BY clause is
// omitted entirely when partitioning is disabled.
func CreateExternalTable(p ExternalTableParams) string {
	partitionedBy := ""
	if p.Partitioned {
		partitionedBy = fmt.Sprintf("PARTITIONED BY (%s %s)\n", p.PartitionColumn, p.PartitionType)
	}
	return fmt.Sprintf(`CREATE EXTERNAL TABLE "%s"."%s_%s" (
%s
)
%sROW FORMAT SERDE '%s'
STORED AS %s
LOCATION '%s';`,
		p.Schema, p.Table, p.Format,
		p.Columns,
		partitionedBy,
		p.Serde,
		p.StoredAs,
		p.Location,
	)
}

// AddPartition returns an ALTER TABLE ... ADD PARTITION statement.
// Unlike CreateExternalTable, the physical name is keyed on the STREAM:
// "<schema>"."<stream>_<format>". Streams and tables usually coincide, but
// when they differ the partition is registered on the stream's table.
func AddPartition(schema, stream, format, column, value, location string) string {
	return fmt.Sprintf(`ALTER TABLE "%s"."%s_%s"
ADD PARTITION (%s='%s')
LOCATION '%s';`,
		schema, stream, format,
		column, value,
		location,
	)
}

// CreateAliasView returns a late-binding view exposing the table under a
// second schema. Both sides reference the UNSUFFIXED logical name.
//
//	CREATE VIEW "<alias>"."<table>" AS
//	SELECT * FROM "<schema>"."<table>"
//	WITH NO SCHEMA BINDING;
func CreateAliasView(alias, schema, table string) string {
	return fmt.Sprintf(`CREATE VIEW "%s"."%s" AS
SELECT * FROM "%s"."%s"
WITH NO SCHEMA BINDING;`,
		alias, table,
		schema, table,
	)
}
