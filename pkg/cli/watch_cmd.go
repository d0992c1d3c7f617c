package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"spectrum-sync/internal/domain"
	"spectrum-sync/internal/registry"
	"spectrum-sync/internal/schema"
	"spectrum-sync/internal/scheduler"
	"spectrum-sync/internal/spectrum"
	"spectrum-sync/internal/warehouse"
)

func newWatchCmd() *cobra.Command {
	var (
		schemaName  string
		bucket      string
		schemaAlias string
		format      string
		schedule    string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run scheduled syncs for every registered table",
		Long:  "Syncs every table in the schema registry on a cron schedule so each day's partition is registered as it starts existing. Runs until interrupted.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}

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
			if cfg.WarehouseDSN == "" {
				return fmt.Errorf("watch requires WAREHOUSE_DSN to be set")
			}

			reg, err := registry.Load(cfg.RegistryPath)
			if err != nil {
				return err
			}

			db, err := warehouse.Open(cmd.Context(), cfg.WarehouseDSN)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck

			svc := spectrum.NewService(spectrum.Deps{
				Resolver: schema.NewResolver(reg),
				Conn:     db,
				Logger:   logger,
			})
			sched := scheduler.New(svc, logger)

			for _, table := range reg.Tables() {
				req := domain.SyncRequest{
					Identity:    domain.TableIdentity{Schema: schemaName, Table: table},
					Bucket:      bucket,
					Format:      format,
					Partition:   domain.DefaultPartitionSpec(),
					SchemaAlias: schemaAlias,
				}
				if err := sched.Add(schedule, req); err != nil {
					return err
				}
			}

			sched.Start()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()

			sched.Stop()
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaName, "schema", "", "External schema the tables are created in (env EXTERNAL_SCHEMA)")
	cmd.Flags().StringVar(&bucket, "bucket", "", "Bucket holding the datasets (env BUCKET)")
	cmd.Flags().StringVar(&schemaAlias, "schema-alias", "", "Schema to create alias views in (env SCHEMA_ALIAS)")
	cmd.Flags().StringVar(&format, "format", "", "File format of the datasets (env FILE_FORMAT, default parquet)")
	cmd.Flags().StringVar(&schedule, "schedule", "0 6 * * *", "Cron schedule for the recurring sync")

	return cmd
}
