package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"spectrum-sync/internal/domain"
	"spectrum-sync/internal/registry"
	"spectrum-sync/internal/schema"
	"spectrum-sync/internal/spectrum"
	"spectrum-sync/internal/storage"
	"spectrum-sync/internal/warehouse"
)

func newSyncCmd() *cobra.Command {
	var (
		schemaName      string
		tableName       string
		stream          string
		bucket          string
		schemaAlias     string
		format          string
		partition       bool
		partitionColumn string
		partitionType   string
		partitionValue  string
		execute         bool
		all             bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Generate and optionally apply external table DDL",
		Long:  "Generates the CREATE EXTERNAL TABLE / ADD PARTITION script for a registered table and prints it. With --execute the script is also applied: the table is created only if absent, the partition is registered on every run.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}

			// Flags win over environment configuration.
			if schemaName == "" {
				schemaName = cfg.Schema
			}
			if bucket == "" {
				bucket = cfg.Bucket
			}
			if schemaAlias == "" {
				schemaAlias = cfg.SchemaAlias
			}
			if format == "" {
				format = cfg.Format
			}

			if schemaName == "" {
				return fmt.Errorf("external schema is required (--schema or EXTERNAL_SCHEMA)")
			}
			if bucket == "" {
				return fmt.Errorf("bucket is required (--bucket or BUCKET)")
			}
			if !all && tableName == "" {
				return fmt.Errorf("--table is required unless --all is set")
			}

			// 1. Load the schema registry.
			reg, err := registry.Load(cfg.RegistryPath)
			if err != nil {
				return err
			}

			deps := spectrum.Deps{
				Resolver: schema.NewResolver(reg),
				Logger:   logger,
			}
			if cfg.HasS3Config() {
				writer, err := storage.NewS3Writer(cfg)
				if err != nil {
					logger.Warn("could not create S3 writer", "error", err)
				} else {
					deps.Writer = writer
				}
			}

			// 2. Connect when the script should be applied.
			if execute {
				if cfg.WarehouseDSN == "" {
					return fmt.Errorf("--execute requires WAREHOUSE_DSN to be set")
				}
				db, err := warehouse.Open(cmd.Context(), cfg.WarehouseDSN)
				if err != nil {
					return err
				}
				defer db.Close() //nolint:errcheck
				deps.Conn = db
			}

			svc := spectrum.NewService(deps)

			spec := domain.PartitionSpec{}
			if partition {
				spec = domain.PartitionSpec{
					Enabled: true,
					Column:  partitionColumn,
					Type:    partitionType,
					Value:   partitionValue,
				}
			}

			// 3. Sync one table or every registered one.
			if all {
				tables := reg.Tables()
				reqs := make([]domain.SyncRequest, 0, len(tables))
				for _, table := range tables {
					reqs = append(reqs, domain.SyncRequest{
						Identity:    domain.TableIdentity{Schema: schemaName, Table: table},
						Bucket:      bucket,
						Format:      format,
						Partition:   spec,
						SchemaAlias: schemaAlias,
					})
				}
				results, err := svc.SyncAll(cmd.Context(), reqs)
				if err != nil {
					return err
				}
				for _, res := range results {
					fmt.Fprintln(cmd.OutOrStdout(), res.Script.String())
					fmt.Fprintln(cmd.OutOrStdout())
				}
				return nil
			}

			res, err := svc.Sync(cmd.Context(), domain.SyncRequest{
				Identity:    domain.TableIdentity{Schema: schemaName, Table: tableName, Stream: stream},
				Bucket:      bucket,
				Format:      format,
				Partition:   spec,
				SchemaAlias: schemaAlias,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Script.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaName, "schema", "", "External schema the table is created in (env EXTERNAL_SCHEMA)")
	cmd.Flags().StringVar(&tableName, "table", "", "Logical table name")
	cmd.Flags().StringVar(&stream, "stream", "", "Stream the objects are written under (defaults to the table name)")
	cmd.Flags().StringVar(&bucket, "bucket", "", "Bucket holding the datasets (env BUCKET)")
	cmd.Flags().StringVar(&schemaAlias, "schema-alias", "", "Schema to create an alias view in (env SCHEMA_ALIAS)")
	cmd.Flags().StringVar(&format, "format", "", "File format of the dataset (env FILE_FORMAT, default parquet)")
	cmd.Flags().BoolVar(&partition, "partition", true, "Register a partition")
	cmd.Flags().StringVar(&partitionColumn, "partition-column", "", "Partition column (default dt)")
	cmd.Flags().StringVar(&partitionType, "partition-type", "", "Partition column type (default date)")
	cmd.Flags().StringVar(&partitionValue, "partition-value", "", "Partition value (default today)")
	cmd.Flags().BoolVar(&execute, "execute", false, "Apply the script over WAREHOUSE_DSN instead of only printing it")
	cmd.Flags().BoolVar(&all, "all", false, "Sync every table in the schema registry")

	return cmd
}
