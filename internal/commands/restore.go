package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	Register("restore", newRestoreCommand)
	Register("restore-all", newRestoreAllCommand)
}

func newRestoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <name>",
		Short: "Clear the tombstone on a deleted component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openCatalog(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			if err := svc.RestoreComponent(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restored %s\n", args[0])
			return nil
		},
	}
}

func newRestoreAllCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore-all",
		Short: "Clear the tombstone on every deleted component",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openCatalog(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			if err := svc.RestoreAll(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "restored all components")
			return nil
		},
	}
}
