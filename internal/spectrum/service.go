// Package spectrum orchestrates external table synchronization: it
// resolves the table's columns, derives the S3 location, generates the
// DDL script, and optionally applies it to a warehouse connection.
package spectrum

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"spectrum-sync/internal/ddl"
	"spectrum-sync/internal/domain"
)

// Service performs idempotent external table syncs. The generated
// script is always returned; it is only applied when a connection is
// configured.
type Service struct {
	resolver domain.SchemaResolver
	conn     domain.Connection
	writer   domain.DatasetWriter
	logger   *slog.Logger
	now      func() time.Time
}

// Deps holds dependencies for Service. Conn and Writer are optional:
// without Conn the service generates scripts only, without Writer
// direct dataset uploads are rejected.
type Deps struct {
	Resolver domain.SchemaResolver
	Conn     domain.Connection
	Writer   domain.DatasetWriter
	Logger   *slog.Logger
	Now      func() time.Time
}

// NewService creates a new Service. If Logger is nil, a discard logger
// is used. If Now is nil, time.Now is used.
func NewService(deps Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		resolver: deps.Resolver,
		conn:     deps.Conn,
		writer:   deps.Writer,
		logger:   logger,
		now:      now,
	}
}

// Sync generates the DDL script for the requested table and, when a
// connection is configured, applies it: the table is created only if
// the catalog has no columns for it, and the partition is registered on
// every call. The script is returned even when it is fully applied.
func (s *Service) Sync(ctx context.Context, req domain.SyncRequest) (*domain.SyncResult, error) {
	req = s.normalize(req)

	// Unknown formats are a configuration error and must fail before
	// any schema resolution or warehouse I/O.
	format, err := domain.LookupFormat(req.Format)
	if err != nil {
		return nil, err
	}

	columns, err := s.resolveColumns(ctx, req)
	if err != nil {
		return nil, err
	}

	location := ddl.TableLocation(req.Bucket, req.Identity.Stream, format.ID)
	script := buildScript(req, format, columns, location)

	result := &domain.SyncResult{Script: script, Location: location}

	if req.WriteData {
		target, err := s.writeDataset(ctx, req, format)
		if err != nil {
			return nil, err
		}
		result.DataFile = target
	}

	if s.conn != nil {
		if err := s.execute(ctx, req, script, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// normalize fills in the derived defaults: stream falls back to the
// table name, format to parquet, and enabled partitions get the dt/date
// column with today's date.
func (s *Service) normalize(req domain.SyncRequest) domain.SyncRequest {
	if req.Identity.Stream == "" {
		req.Identity.Stream = req.Identity.Table
	}
	if req.Format == "" {
		req.Format = domain.FormatParquet
	}
	if req.Partition.Enabled {
		if req.Partition.Column == "" {
			req.Partition.Column = domain.DefaultPartitionColumn
		}
		if req.Partition.Type == "" {
			req.Partition.Type = domain.DefaultPartitionType
		}
		if req.Partition.Value == "" {
			req.Partition.Value = s.now().Format("2006-01-02")
		}
	}
	return req
}

// resolveColumns prefers the live dataset over the registry: a dataset
// with at least one row carries its own schema, anything else falls
// back to the registered one.
func (s *Service) resolveColumns(ctx context.Context, req domain.SyncRequest) (string, error) {
	if req.Dataset != nil && req.Dataset.NumRows() > 0 {
		columns, err := s.resolver.FromDataset(req.Dataset)
		if err != nil {
			return "", domain.ErrSchemaUnavailable(req.Identity.Stream, err)
		}
		return columns, nil
	}
	columns, err := s.resolver.FromRegistry(ctx, req.Identity.Stream)
	if err != nil {
		return "", domain.ErrSchemaUnavailable(req.Identity.Stream, err)
	}
	return columns, nil
}

// buildScript assembles the statements in execution order. The alias
// view is only emitted when an alias schema is set, the partition
// statement only when partitioning is enabled.
func buildScript(req domain.SyncRequest, format domain.FileFormatSpec, columns, location string) domain.DDLScript {
	script := domain.DDLScript{
		CreateTable: ddl.CreateExternalTable(ddl.ExternalTableParams{
			Schema:          req.Identity.Schema,
			Table:           req.Identity.Table,
			Format:          format.ID,
			Columns:         columns,
			Serde:           format.Serde,
			StoredAs:        format.StoredAs,
			Location:        location,
			Partitioned:     req.Partition.Enabled,
			PartitionColumn: req.Partition.Column,
			PartitionType:   req.Partition.Type,
		}),
	}
	if req.SchemaAlias != "" {
		script.AliasView = ddl.CreateAliasView(req.SchemaAlias, req.Identity.Schema, req.Identity.Table)
	}
	if req.Partition.Enabled {
		script.AddPartition = ddl.AddPartition(
			req.Identity.Schema, req.Identity.Stream, format.ID,
			req.Partition.Column, req.Partition.Value,
			ddl.PartitionLocation(req.Bucket, req.Identity.Stream, format.ID, req.Partition.Column, req.Partition.Value),
		)
	}
	return script
}

// writeDataset uploads the request's dataset under the partition
// location when partitioning is enabled, otherwise under the table
// location.
func (s *Service) writeDataset(ctx context.Context, req domain.SyncRequest, format domain.FileFormatSpec) (string, error) {
	if req.Dataset == nil {
		return "", domain.ErrValidation("direct write requested but no dataset was provided")
	}
	if s.writer == nil {
		return "", domain.ErrValidation("direct write requested but no dataset writer is configured")
	}

	base := ddl.TableLocation(req.Bucket, req.Identity.Stream, format.ID)
	if req.Partition.Enabled {
		base = ddl.PartitionLocation(req.Bucket, req.Identity.Stream, format.ID, req.Partition.Column, req.Partition.Value)
	}
	target := ddl.DataFileLocation(base, req.Identity.Stream)

	if err := s.writer.Write(ctx, req.Dataset, target); err != nil {
		return "", fmt.Errorf("write dataset to %q: %w", target, err)
	}
	s.logger.Info("dataset uploaded", "stream", req.Identity.Stream, "location", target)
	return target, nil
}

// execute applies the script: probe the catalog, create the table (with
// its alias view, as one batch) only when the probe finds nothing, and
// register the partition unconditionally.
func (s *Service) execute(ctx context.Context, req domain.SyncRequest, script domain.DDLScript, result *domain.SyncResult) error {
	rows, err := s.conn.Query(ctx, ddl.ExternalTableExists(req.Identity.Schema, req.Identity.Table))
	if err != nil {
		return fmt.Errorf("probe external table %s.%s: %w", req.Identity.Schema, req.Identity.Table, err)
	}

	if len(rows) == 0 {
		stmt := script.CreateTable
		if script.AliasView != "" {
			stmt += "\n" + script.AliasView
		}
		if err := s.conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create external table %s.%s: %w", req.Identity.Schema, req.Identity.Table, err)
		}
		result.Created = true
		s.logger.Info("external table created",
			"schema", req.Identity.Schema, "table", req.Identity.Table, "format", req.Format)
	} else {
		s.logger.Debug("external table already exists",
			"schema", req.Identity.Schema, "table", req.Identity.Table)
	}

	if script.AddPartition != "" {
		if err := s.conn.Exec(ctx, script.AddPartition); err != nil {
			return fmt.Errorf("add partition %s=%s: %w", req.Partition.Column, req.Partition.Value, err)
		}
		result.PartitionAdded = true
		s.logger.Info("partition registered",
			"stream", req.Identity.Stream, "column", req.Partition.Column, "value", req.Partition.Value)
	}
	return nil
}
