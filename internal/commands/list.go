package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	Register("list", newListCommand)
	Register("list-spec", newListSpecCommand)
	Register("tree", newTreeCommand)
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every live component, alphabetically",
		Args:  cobra.NoArgs,
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
			out := cmd.OutOrStdout()
			for _, c := range components {
				fmt.Fprintf(out, "%s (%s)\n", c.Name, c.Type)
			}
			return nil
		},
	}
}

func newListSpecCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-spec <owner>",
		Short: "List owner's direct BOM entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openCatalog(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			items, err := svc.ListSpecItems(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, it := range items {
				fmt.Fprintf(out, "%s (%s) x%d\n", it.PartName, it.Type, it.Qty)
			}
			return nil
		},
	}
}

func newTreeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <name>",
		Short: "Print name's full BOM as a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openCatalog(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			tree, err := svc.PrintSpecTree(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), tree)
			return nil
		},
	}
}
