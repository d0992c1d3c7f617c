package domain

import "sort"

// FileFormatSpec describes a supported external table file format: the Hive
// serde class the catalog needs and the keyword used in STORED AS clauses.
type FileFormatSpec struct {
	ID       string
	Serde    string
	StoredAs string
}

// FormatParquet is the default file format for external tables.
const FormatParquet = "parquet"

// fileFormats is the closed set of supported formats. Registering a new
// format means adding its serde class and storage keyword here.
var fileFormats = map[string]FileFormatSpec{
	FormatParquet: {
		ID:       FormatParquet,
		Serde:    "org.apache.hadoop.hive.ql.io.parquet.serde.ParquetHiveSerDe",
		StoredAs: "PARQUET",
	},
}

// LookupFormat resolves a file format id against the supported set.
// Unknown ids fail with an UnsupportedFormatError.
func LookupFormat(id string) (FileFormatSpec, error) {
	spec, ok := fileFormats[id]
	if !ok {
		return FileFormatSpec{}, ErrUnsupportedFormat(id)
	}
	return spec, nil
}

// Formats returns the supported format specs sorted by id.
func Formats() []FileFormatSpec {
	ids := make([]string, 0, len(fileFormats))
	for id := range fileFormats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	specs := make([]FileFormatSpec, 0, len(ids))
	for _, id := range ids {
		specs = append(specs, fileFormats[id])
	}
	return specs
}
