package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmakarov/partcat/internal/record"
)

func init() {
	Register("add", newAddCommand)
}

func newAddCommand() *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new component to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := record.ParseComponentType(typeName)
			if !ok {
				return fmt.Errorf("commands: unknown component type %q", typeName)
			}

			svc, err := openCatalog(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			if err := svc.InputComponent(args[0], t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", args[0], t)
			return nil
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "component type: изделие, узел, or деталь, any case (required)")
	cmd.MarkFlagRequired("type")
	return cmd
}
