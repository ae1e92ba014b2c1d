package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	Register("add-spec", newAddSpecCommand)
}

func newAddSpecCommand() *cobra.Command {
	var qty uint16

	cmd := &cobra.Command{
		Use:   "add-spec <owner> <part>",
		Short: "Add a BOM entry: owner contains qty units of part",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openCatalog(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			if err := svc.InputSpecItem(args[0], args[1], qty); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s now contains %d x %s\n", args[0], qty, args[1])
			return nil
		},
	}

	cmd.Flags().Uint16Var(&qty, "qty", 1, "quantity of part within owner")
	return cmd
}
