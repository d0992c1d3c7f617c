package ddl

import (
	"fmt"
	"strings"
	"time"
)

// timestampLayout names data files written at a specific instant.
const timestampLayout = "20060102_150405"

// TableLocation returns the root storage location of a stream's files for one
// format: s3://<bucket>/<stream>/ext=<format>/. The result is always
// lower-cased and slash-terminated; object stores treat keys case-sensitively
// and the catalog expects one canonical spelling.
func TableLocation(bucket, stream, format string) string {
	return strings.ToLower(fmt.Sprintf("s3://%s/%s/ext=%s/", bucket, stream, format))
}

// PartitionLocation returns the directory holding one partition's files:
// the table location plus a <column>=<value>/ segment.
func PartitionLocation(bucket, stream, format, column, value string) string {
	return strings.ToLower(fmt.Sprintf("s3://%s/%s/ext=%s/%s=%s/", bucket, stream, format, column, value))
}

// DataFileLocation returns the fixed object name a direct write targets under
// base, which must be a table or partition location: <base><stream>.snappy.
func DataFileLocation(base, stream string) string {
	return base + strings.ToLower(stream) + ".snappy"
}

// TimestampedDataFileLocation returns a unique object name for callers that
// keep every written file: <base><stream>_<YYYYMMDD_HHMMSS>.snappy.
func TimestampedDataFileLocation(base, stream string, ts time.Time) string {
	return base + strings.ToLower(stream) + "_" + ts.Format(timestampLayout) + ".snappy"
}
