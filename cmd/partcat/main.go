package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmakarov/partcat/internal/commands"

	// Blank-imported so each format package's init() registers itself
	// with reportstore.
	_ "github.com/dmakarov/partcat/internal/reportstore/csv"
	_ "github.com/dmakarov/partcat/internal/reportstore/html"
	_ "github.com/dmakarov/partcat/internal/reportstore/json"
	_ "github.com/dmakarov/partcat/internal/reportstore/pdf"
	_ "github.com/dmakarov/partcat/internal/reportstore/xlsx"
	_ "github.com/dmakarov/partcat/internal/reportstore/xml"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "partcat",
		Short: "Manage a parts/BOM catalog stored as a paired .prd/.prs file",
		Long: `partcat reads and writes a parts catalog kept as two paired binary
files: a .prd file listing every component and a .prs file listing every
bill-of-materials edge between them. Every subcommand operates on the
catalog named by --catalog.`,
	}

	rootCmd.PersistentFlags().String(commands.CatalogFlag, "", "base path of the catalog (.prd/.prs pair), required by every subcommand")

	for _, cmd := range commands.All() {
		rootCmd.AddCommand(cmd)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
