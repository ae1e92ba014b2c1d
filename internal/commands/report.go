package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dmakarov/partcat/internal/reportstore"
)

func init() {
	Register("report", newReportCommand)
}

func newReportCommand() *cobra.Command {
	var format string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a read-only snapshot of the catalog (csv, json, xml, html, xlsx, pdf)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reporter, err := reportstore.For(reportstore.ReportFormat(format))
			if err != nil {
				return err
			}

			svc, err := openCatalog(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			snap, err := svc.Snapshot()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			return reporter.Render(w, snap)
		},
	}

	cmd.Flags().StringVar(&format, "format", string(reportstore.FormatCSV), "report format: csv, json, xml, html, xlsx, or pdf")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the report to this path instead of stdout")
	return cmd
}
