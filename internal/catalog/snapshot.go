package catalog

import (
	"github.com/dmakarov/partcat/internal/record"
	"github.com/dmakarov/partcat/internal/reportstore"
)

// Snapshot assembles a read-only reportstore.Snapshot from the current
// live catalog state: every live component, plus every non-Detail live
// component's BOM rows. It never mutates the paired files.
func (svc *Service) Snapshot() (reportstore.Snapshot, error) {
	components, err := svc.ListComponents()
	if err != nil {
		return reportstore.Snapshot{}, err
	}

	edges := make(map[string][]reportstore.EdgeView, len(components))
	order := make([]string, 0, len(components))
	for _, c := range components {
		order = append(order, c.Name)
		if c.Type == record.Detail {
			continue
		}
		items, err := svc.ListSpecItems(c.Name)
		if err != nil {
			return reportstore.Snapshot{}, err
		}
		rows := make([]reportstore.EdgeView, 0, len(items))
		for _, it := range items {
			rows = append(rows, reportstore.EdgeView{PartName: it.PartName, Qty: it.Qty, Type: it.Type})
		}
		edges[c.Name] = rows
	}

	visited := make(map[string]bool, len(components))
	rootTrees := make(map[string]string)
	for _, c := range components {
		if c.Type != record.Product {
			continue
		}
		tree, err := svc.PrintSpecTree(c.Name)
		if err != nil {
			return reportstore.Snapshot{}, err
		}
		rootTrees[c.Name] = tree
		markReachable(c.Name, edges, visited)
	}

	var standalone []record.Component
	for _, c := range components {
		if !visited[c.Name] {
			standalone = append(standalone, c)
		}
	}

	return reportstore.Snapshot{
		Components:           components,
		Edges:                edges,
		OwnerOrder:           order,
		RootTrees:            rootTrees,
		StandaloneComponents: standalone,
	}, nil
}

// markReachable flags name and every part transitively reachable from
// it through edges. A name already in visited is not walked again, which
// also stops the walk on cyclic BOM data.
func markReachable(name string, edges map[string][]reportstore.EdgeView, visited map[string]bool) {
	if visited[name] {
		return
	}
	visited[name] = true
	for _, e := range edges[name] {
		markReachable(e.PartName, edges, visited)
	}
}
