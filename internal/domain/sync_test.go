package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDDLScriptStatements(t *testing.T) {
	tests := []struct {
		name   string
		script DDLScript
		want   []string
	}{
		{
			name: "full_script",
			script: DDLScript{
				CreateTable:  "CREATE EXTERNAL TABLE t;",
				AliasView:    "CREATE VIEW v;",
				AddPartition: "ALTER TABLE t ADD PARTITION;",
			},
			want: []string{"CREATE EXTERNAL TABLE t;", "CREATE VIEW v;", "ALTER TABLE t ADD PARTITION;"},
		},
		{
			name: "no_alias",
			script: DDLScript{
				CreateTable:  "CREATE EXTERNAL TABLE t;",
				AddPartition: "ALTER TABLE t ADD PARTITION;",
			},
			want: []string{"CREATE EXTERNAL TABLE t;", "ALTER TABLE t ADD PARTITION;"},
		},
		{
			name:   "create_only",
			script: DDLScript{CreateTable: "CREATE EXTERNAL TABLE t;"},
			want:   []string{"CREATE EXTERNAL TABLE t;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.script.Statements())
		})
	}
}

func TestDDLScriptString(t *testing.T) {
	script := DDLScript{
		CreateTable:  "CREATE EXTERNAL TABLE t;",
		AddPartition: "ALTER TABLE t ADD PARTITION;",
	}
	assert.Equal(t, "CREATE EXTERNAL TABLE t;\nALTER TABLE t ADD PARTITION;", script.String())
}

func TestDefaultPartitionSpec(t *testing.T) {
	spec := DefaultPartitionSpec()
	assert.True(t, spec.Enabled)
	assert.Equal(t, "dt", spec.Column)
	assert.Equal(t, "date", spec.Type)
	assert.Empty(t, spec.Value, "value defaults at sync time, not construction time")
}
