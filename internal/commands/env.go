package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmakarov/partcat/internal/catalog"
)

// CatalogFlag is the persistent root flag naming the catalog's base path
// (the .prd/.prs pair, without extension or with the .prd extension).
const CatalogFlag = "catalog"

// openCatalog opens the catalog named by the --catalog flag on cmd (or
// any of its ancestors, since it is a persistent flag). The caller must
// close the returned Service.
func openCatalog(cmd *cobra.Command) (*catalog.Service, error) {
	base, err := cmd.Flags().GetString(CatalogFlag)
	if err != nil {
		return nil, err
	}
	if base == "" {
		return nil, fmt.Errorf("commands: --%s is required", CatalogFlag)
	}
	svc := &catalog.Service{}
	if err := svc.Open(base); err != nil {
		return nil, err
	}
	return svc, nil
}
