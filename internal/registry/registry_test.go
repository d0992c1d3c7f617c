package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spectrum-sync/internal/domain"
)

const sampleRegistry = `tables:
  - name: events
    columns:
      - name: event_id
        type: BIGINT
      - name: name
        type: VARCHAR(65535)
  - name: page_views
    columns:
      - name: url
        type: VARCHAR(65535)
`

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "valid",
			yaml: sampleRegistry,
		},
		{
			name:    "unknown_field_rejected",
			yaml:    "tables:\n  - name: events\n    colums:\n      - name: a\n        type: INT\n",
			wantErr: "parse schema registry",
		},
		{
			name:    "empty_table_name",
			yaml:    "tables:\n  - name: \"\"\n    columns:\n      - name: a\n        type: INT\n",
			wantErr: "table with empty name",
		},
		{
			name:    "no_columns",
			yaml:    "tables:\n  - name: events\n    columns: []\n",
			wantErr: `table "events" has no columns`,
		},
		{
			name:    "duplicate_table",
			yaml:    "tables:\n  - name: events\n    columns:\n      - name: a\n        type: INT\n  - name: events\n    columns:\n      - name: b\n        type: INT\n",
			wantErr: `duplicate table "events"`,
		},
		{
			name:    "column_missing_type",
			yaml:    "tables:\n  - name: events\n    columns:\n      - name: a\n",
			wantErr: "missing name or type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := Parse([]byte(tt.yaml))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, reg)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schemas.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleRegistry), 0o600))

	reg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"events", "page_views"}, reg.Tables())

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read schema registry")
}

func TestColumns(t *testing.T) {
	reg, err := Parse([]byte(sampleRegistry))
	require.NoError(t, err)

	got, err := reg.Columns("events")
	require.NoError(t, err)
	assert.Equal(t, "event_id BIGINT,\nname VARCHAR(65535)", got)

	_, err = reg.Columns("unknown_stream")
	require.Error(t, err)
	var nfe *domain.NotFoundError
	assert.True(t, errors.As(err, &nfe))
}

func TestFormatColumns(t *testing.T) {
	got := FormatColumns([]Column{
		{Name: "a", Type: "INT"},
		{Name: "b", Type: "DATE"},
	})
	assert.Equal(t, "a INT,\nb DATE", got)
}
