package commands

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

func init() {
	Register("truncate", newTruncateCommand)
}

func newTruncateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "truncate",
		Short: "Compact both catalog files, physically removing tombstones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openCatalog(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			s.Prefix = "Compacting catalog... "
			s.Start()
			err = svc.Truncate()
			s.Stop()
			if err != nil {
				return fmt.Errorf("commands: truncate: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "catalog compacted")
			return nil
		},
	}
}
