package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmakarov/partcat/internal/record"
)

func init() {
	Register("rename", newRenameCommand)
	Register("retype", newRetypeCommand)
}

// newRenameCommand renames a component, keeping its type.
func newRenameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <old-name> <new-name>",
		Short: "Rename an existing component",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openCatalog(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			components, err := svc.ListComponents()
			if err != nil {
				return err
			}
			oldType := record.Product
			found := false
			for _, c := range components {
				if c.Name == args[0] {
					oldType = c.Type
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("commands: component %q not found", args[0])
			}
			if err := svc.UpdateComponent(args[0], args[1], oldType); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "renamed %s to %s\n", args[0], args[1])
			return nil
		},
	}
	return cmd
}

// newRetypeCommand changes a component's type, keeping its name.
func newRetypeCommand() *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "retype <name>",
		Short: "Change an existing component's type",
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

			if err := svc.UpdateComponent(args[0], args[0], t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now a %s\n", args[0], t)
			return nil
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "new component type: изделие, узел, or деталь, any case (required)")
	cmd.MarkFlagRequired("type")
	return cmd
}
