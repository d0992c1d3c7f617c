package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"spectrum-sync/internal/domain"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the supported file formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, f := range domain.Formats() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s STORED AS %-10s %s\n", f.ID, f.StoredAs, f.Serde)
			}
			return nil
		},
	}
}
