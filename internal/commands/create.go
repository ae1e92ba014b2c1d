package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmakarov/partcat/internal/catalog"
)

func init() {
	Register("create", newCreateCommand)
}

func newCreateCommand() *cobra.Command {
	var maxNameLen int
	var specPath string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new empty catalog (.prd/.prs pair)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := cmd.Flags().GetString(CatalogFlag)
			if err != nil {
				return err
			}
			if base == "" {
				return fmt.Errorf("commands: --%s is required", CatalogFlag)
			}

			svc := &catalog.Service{}
			if err := svc.Create(base, maxNameLen, specPath); err != nil {
				return err
			}
			defer svc.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "created catalog %s\n", base)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxNameLen, "max-name-len", 80, "maximum component name length in bytes")
	cmd.Flags().StringVar(&specPath, "spec-file", "", "path for the paired .prs file (default: catalog base name + .prs)")
	return cmd
}
