package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmakarov/partcat/internal/record"
)

func TestSnapshotSkipsDetailOwnersAndPreservesOrder(t *testing.T) {
	svc := newTestCatalog(t)
	require.NoError(t, svc.InputComponent("engine", record.Product))
	require.NoError(t, svc.InputComponent("piston", record.Detail))
	require.NoError(t, svc.InputSpecItem("engine", "piston", 4))

	snap, err := svc.Snapshot()
	require.NoError(t, err)

	require.Equal(t, []string{"engine", "piston"}, snap.OwnerOrder)
	require.Len(t, snap.Edges["engine"], 1)
	require.Equal(t, "piston", snap.Edges["engine"][0].PartName)
	require.Equal(t, uint16(4), snap.Edges["engine"][0].Qty)

	_, hasDetailEdges := snap.Edges["piston"]
	require.False(t, hasDetailEdges, "a Detail owner has no BOM and should not get an Edges entry")
}

func TestSnapshotRootTreesAndStandaloneComponents(t *testing.T) {
	svc := newTestCatalog(t)
	require.NoError(t, svc.InputComponent("engine", record.Product))
	require.NoError(t, svc.InputComponent("piston", record.Detail))
	require.NoError(t, svc.InputComponent("spare_bolt", record.Detail))
	require.NoError(t, svc.InputSpecItem("engine", "piston", 4))

	snap, err := svc.Snapshot()
	require.NoError(t, err)

	tree, err := svc.PrintSpecTree("engine")
	require.NoError(t, err)
	require.Equal(t, tree, snap.RootTrees["engine"])

	require.Len(t, snap.StandaloneComponents, 1)
	require.Equal(t, "spare_bolt", snap.StandaloneComponents[0].Name)
}

func TestSnapshotDoesNotMutateCatalog(t *testing.T) {
	svc := newTestCatalog(t)
	require.NoError(t, svc.InputComponent("engine", record.Product))

	before, err := svc.ListComponents()
	require.NoError(t, err)

	_, err = svc.Snapshot()
	require.NoError(t, err)

	after, err := svc.ListComponents()
	require.NoError(t, err)
	require.Equal(t, before, after)
}
