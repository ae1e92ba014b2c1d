package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	Register("delete", newDeleteCommand)
	Register("delete-spec", newDeleteSpecCommand)
}

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Tombstone a component, refusing if any BOM still references it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openCatalog(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			if err := svc.DeleteComponent(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func newDeleteSpecCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-spec <owner> <part>",
		Short: "Remove part from owner's BOM",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openCatalog(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			if err := svc.DeleteSpecItem(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s from %s's BOM\n", args[1], args[0])
			return nil
		},
	}
}
