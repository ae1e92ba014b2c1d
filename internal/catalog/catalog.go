// Package catalog orchestrates a productstore.Store and a
// specstore.Store to implement the catalog's user-visible operations:
// name uniqueness, type rules, BOM maintenance, compaction, and tree
// rendering.
package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/dmakarov/partcat/internal/catalogerr"
	"github.com/dmakarov/partcat/internal/productstore"
	"github.com/dmakarov/partcat/internal/record"
	"github.com/dmakarov/partcat/internal/specstore"
)

// SpecItemView joins a BOM edge with its referent's name and type, for
// display purposes.
type SpecItemView struct {
	PartName string
	Qty      uint16
	Type     record.ComponentType
}

// Service wraps one product store and one spec store and exposes the
// catalog's public operations.
type Service struct {
	products *productstore.Store
	specs    *specstore.Store
}

func validationErr(format string, args ...any) error {
	return fmt.Errorf("catalog: %w: %s", catalogerr.ErrValidation, fmt.Sprintf(format, args...))
}

// HasOpenFiles reports whether both paired files are currently open.
func (svc *Service) HasOpenFiles() bool {
	return svc.products != nil && svc.products.IsOpen() && svc.specs != nil && svc.specs.IsOpen()
}

func (svc *Service) ensureOpen() error {
	if !svc.HasOpenFiles() {
		return validationErr("no catalog files open; call Create or Open first")
	}
	return nil
}

func ensureExt(base, ext string) string {
	if strings.HasSuffix(base, ext) {
		return base
	}
	return base + ext
}

// Create creates a new catalog: a .prd file named baseName (extension
// added if missing) with the given maxNameLen, paired with a .prs file
// at prsOverride (or baseName+".prs" if prsOverride is empty).
func (svc *Service) Create(baseName string, maxNameLen int, prsOverride string) error {
	prd := ensureExt(baseName, ".prd")
	var prs string
	if prsOverride != "" {
		prs = ensureExt(prsOverride, ".prs")
	} else {
		prs = ensureExt(baseName, ".prs")
	}

	products, err := productstore.Create(prd, maxNameLen, prs)
	if err != nil {
		return err
	}
	specs, err := specstore.Create(prs)
	if err != nil {
		products.Close()
		return err
	}
	svc.products = products
	svc.specs = specs
	return nil
}

// Open opens an existing catalog rooted at baseName.
func (svc *Service) Open(baseName string) error {
	prd := ensureExt(baseName, ".prd")
	products, err := productstore.Open(prd)
	if err != nil {
		return err
	}
	prs := products.SpecPath()
	if prs == "" {
		prs = ensureExt(baseName, ".prs")
	}
	specs, err := specstore.Open(prs)
	if err != nil {
		products.Close()
		return err
	}
	svc.products = products
	svc.specs = specs
	return nil
}

// Close closes both paired files.
func (svc *Service) Close() error {
	var firstErr error
	if svc.products != nil {
		if err := svc.products.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if svc.specs != nil {
		if err := svc.specs.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// InputComponent adds a new component of the given type.
func (svc *Service) InputComponent(name string, t record.ComponentType) error {
	if err := svc.ensureOpen(); err != nil {
		return err
	}
	_, err := svc.products.AddComponent(name, t)
	return err
}

// UpdateComponent renames and/or retypes an existing live component,
// then rebuilds the alphabetical list.
func (svc *Service) UpdateComponent(oldName, newName string, newType record.ComponentType) error {
	if err := svc.ensureOpen(); err != nil {
		return err
	}
	oldRec, found, err := svc.products.FindActiveByName(oldName)
	if err != nil {
		return err
	}
	if !found {
		return validationErr("component %q not found", oldName)
	}

	nm := record.TrimName(newName)
	if nm == "" {
		return validationErr("empty component name")
	}
	if len(nm) > svc.products.MaxNameLen() {
		return validationErr("component name %q longer than maxNameLen %d", nm, svc.products.MaxNameLen())
	}

	if record.TrimName(oldRec.Name) != nm {
		if _, found, err := svc.products.FindActiveByName(nm); err != nil {
			return err
		} else if found {
			return validationErr("duplicate component name %q", nm)
		}
	}

	if err := svc.products.UpdateComponent(oldRec.Offset, nm, newType); err != nil {
		return err
	}
	return svc.products.RebuildAlphabeticalLinks()
}

// readSpecChain walks a live BOM chain starting at firstSpecPtr,
// skipping tombstoned edges.
func (svc *Service) readSpecChain(firstSpecPtr uint32) ([]record.Spec, error) {
	var out []record.Spec
	cur := firstSpecPtr
	for cur != record.NullPtr {
		r, err := svc.specs.ReadRecordAt(cur)
		if err != nil {
			return nil, err
		}
		if !r.Deleted {
			out = append(out, r)
		}
		cur = r.NextPtr
	}
	return out, nil
}

// InputSpecItem appends a new BOM edge to owner's chain, referencing
// part with the given quantity.
func (svc *Service) InputSpecItem(ownerName, partName string, qty uint16) error {
	if err := svc.ensureOpen(); err != nil {
		return err
	}
	if qty < 1 {
		return validationErr("qty must be at least 1, got %d", qty)
	}
	owner, found, err := svc.products.FindActiveByName(ownerName)
	if err != nil {
		return err
	}
	if !found {
		return validationErr("owner component %q not found", ownerName)
	}
	part, found, err := svc.products.FindActiveByName(partName)
	if err != nil {
		return err
	}
	if !found {
		return validationErr("part component %q not found", partName)
	}

	if owner.Type == record.Detail {
		return validationErr("component %q is a detail and cannot own a BOM", owner.Name)
	}
	if owner.Offset == part.Offset {
		return validationErr("component %q cannot contain itself", owner.Name)
	}

	newSpecOff, err := svc.specs.AddSpecItem(part.Offset, qty)
	if err != nil {
		return err
	}

	if owner.FirstSpecPtr == record.NullPtr {
		return svc.products.UpdatePointers(owner.Offset, newSpecOff, owner.NextPtr)
	}

	cur := owner.FirstSpecPtr
	for {
		r, err := svc.specs.ReadRecordAt(cur)
		if err != nil {
			return err
		}
		if r.NextPtr == record.NullPtr {
			return svc.specs.UpdateNext(cur, newSpecOff)
		}
		cur = r.NextPtr
	}
}

// DeleteComponent tombstones a live component, failing if any live BOM
// edge anywhere still references it.
func (svc *Service) DeleteComponent(name string) error {
	if err := svc.ensureOpen(); err != nil {
		return err
	}
	rec, found, err := svc.products.FindActiveByName(name)
	if err != nil {
		return err
	}
	if !found {
		return validationErr("component %q not found", name)
	}

	referenced, err := svc.specs.HasActiveReferenceToComponent(rec.Offset)
	if err != nil {
		return err
	}
	if referenced {
		return validationErr("cannot delete %q: it is referenced by another component's BOM", name)
	}

	return svc.products.MarkDeleted(rec.Offset, true)
}

// DeleteSpecItem tombstones the live edge in owner's chain whose
// referent's name equals partName, then rebuilds the chain.
func (svc *Service) DeleteSpecItem(ownerName, partName string) error {
	if err := svc.ensureOpen(); err != nil {
		return err
	}
	owner, found, err := svc.products.FindActiveByName(ownerName)
	if err != nil {
		return err
	}
	if !found {
		return validationErr("owner component %q not found", ownerName)
	}
	if owner.Type == record.Detail {
		return validationErr("component %q is a detail and has no BOM", owner.Name)
	}
	if owner.FirstSpecPtr == record.NullPtr {
		return validationErr("component %q has an empty BOM", owner.Name)
	}

	cur := owner.FirstSpecPtr
	for cur != record.NullPtr {
		sr, err := svc.specs.ReadRecordAt(cur)
		if err != nil {
			return err
		}
		comp, err := svc.products.ReadRecordAt(sr.ComponentPtr)
		if err != nil {
			return err
		}

		if !sr.Deleted && comp.Name == partName {
			if err := svc.specs.MarkDeleted(sr.Offset, true); err != nil {
				return err
			}
			newFirst, err := svc.specs.RebuildSpecLinks(owner.FirstSpecPtr)
			if err != nil {
				return err
			}
			return svc.products.UpdatePointers(owner.Offset, newFirst, owner.NextPtr)
		}
		cur = sr.NextPtr
	}

	return validationErr("part %q not found in %q's BOM", partName, ownerName)
}

// RestoreAll clears the tombstone on every component record, then
// rebuilds the alphabetical list. BOM edges are not auto-restored.
func (svc *Service) RestoreAll() error {
	if err := svc.ensureOpen(); err != nil {
		return err
	}
	all, err := svc.products.ReadAllRecords()
	if err != nil {
		return err
	}
	for _, r := range all {
		if r.Deleted {
			if err := svc.products.MarkDeleted(r.Offset, false); err != nil {
				return err
			}
		}
	}
	return svc.products.RebuildAlphabeticalLinks()
}

// RestoreComponent clears the tombstone on the record named name, if
// tombstoned, and rebuilds the alphabetical list. Fails if no record
// (live or tombstoned) has that name.
func (svc *Service) RestoreComponent(name string) error {
	if err := svc.ensureOpen(); err != nil {
		return err
	}
	all, err := svc.products.ReadAllRecords()
	if err != nil {
		return err
	}
	found := false
	for _, r := range all {
		if r.Name == name {
			found = true
			if r.Deleted {
				if err := svc.products.MarkDeleted(r.Offset, false); err != nil {
					return err
				}
			}
		}
	}
	if !found {
		return validationErr("component %q not found", name)
	}
	return svc.products.RebuildAlphabeticalLinks()
}

// ListComponents walks the alphabetical list from headPtr, returning
// every live component in order.
func (svc *Service) ListComponents() ([]record.Component, error) {
	if err := svc.ensureOpen(); err != nil {
		return nil, err
	}
	var out []record.Component
	cur := svc.products.Header().HeadPtr
	for cur != record.NullPtr {
		r, err := svc.products.ReadRecordAt(cur)
		if err != nil {
			return nil, err
		}
		if !r.Deleted {
			out = append(out, r)
		}
		cur = r.NextPtr
	}
	return out, nil
}

// ListSpecItems returns owner's live BOM edges joined with each part's
// name and type.
func (svc *Service) ListSpecItems(ownerName string) ([]SpecItemView, error) {
	if err := svc.ensureOpen(); err != nil {
		return nil, err
	}
	owner, found, err := svc.products.FindActiveByName(ownerName)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, validationErr("owner component %q not found", ownerName)
	}
	if owner.Type == record.Detail {
		return nil, validationErr("component %q is a detail and has no BOM", owner.Name)
	}

	chain, err := svc.readSpecChain(owner.FirstSpecPtr)
	if err != nil {
		return nil, err
	}
	out := make([]SpecItemView, 0, len(chain))
	for _, s := range chain {
		c, err := svc.products.ReadRecordAt(s.ComponentPtr)
		if err != nil {
			return nil, err
		}
		out = append(out, SpecItemView{PartName: c.Name, Qty: s.Qty, Type: c.Type})
	}
	return out, nil
}

// PrintSpecTree renders a pre-order tree of name's BOM, capped at
// record.MaxTreeDepth to guard against cyclic data.
func (svc *Service) PrintSpecTree(name string) (string, error) {
	if err := svc.ensureOpen(); err != nil {
		return "", err
	}
	comp, found, err := svc.products.FindActiveByName(name)
	if err != nil {
		return "", err
	}
	if !found {
		return "", validationErr("component %q not found", name)
	}
	if comp.Type == record.Detail {
		return "", validationErr("component %q is a detail; PrintSpecTree is not valid for details", name)
	}

	var b strings.Builder
	b.WriteString(comp.Name)
	b.WriteString(" (")
	b.WriteString(comp.Type.String())
	b.WriteString(")\n")

	children, err := svc.readSpecChain(comp.FirstSpecPtr)
	if err != nil {
		return "", err
	}
	for i, edge := range children {
		childComp, err := svc.products.ReadRecordAt(edge.ComponentPtr)
		if err != nil {
			return "", err
		}
		if err := svc.printTreeRec(&b, childComp, "", i+1 == len(children), 0); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func (svc *Service) printTreeRec(out *strings.Builder, node record.Component, prefix string, isLast bool, depth int) error {
	branch := "├── "
	if isLast {
		branch = "└── "
	}

	if depth > record.MaxTreeDepth {
		out.WriteString(prefix)
		out.WriteString(branch)
		out.WriteString(record.TreeDepthMarker)
		out.WriteString("\n")
		return nil
	}

	out.WriteString(prefix)
	out.WriteString(branch)
	out.WriteString(node.Name)
	out.WriteString(" (")
	out.WriteString(node.Type.String())
	out.WriteString(")\n")

	if node.Type == record.Detail {
		return nil
	}

	children, err := svc.readSpecChain(node.FirstSpecPtr)
	if err != nil {
		return err
	}
	nextPrefix := prefix + "    "
	if !isLast {
		nextPrefix = prefix + "│   "
	}
	for i, edge := range children {
		childComp, err := svc.products.ReadRecordAt(edge.ComponentPtr)
		if err != nil {
			return err
		}
		if err := svc.printTreeRec(out, childComp, nextPrefix, i+1 == len(children), depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Truncate compacts both paired files, physically removing tombstones
// and remapping cross-file pointers.
func (svc *Service) Truncate() error {
	if err := svc.ensureOpen(); err != nil {
		return err
	}
	if err := svc.rebuildFiles(); err != nil {
		return err
	}
	return svc.products.RebuildAlphabeticalLinks()
}

func (svc *Service) rebuildFiles() error {
	prdOld := svc.products.Path()
	prsOld := svc.specs.Path()
	prdTmp := prdOld + ".tmp"
	prsTmp := prsOld + ".tmp"

	allComponents, err := svc.products.ReadAllRecords()
	if err != nil {
		return err
	}
	var active []record.Component
	for _, c := range allComponents {
		if !c.Deleted {
			active = append(active, c)
		}
	}

	newPrd, err := productstore.Create(prdTmp, svc.products.MaxNameLen(), prsTmp)
	if err != nil {
		return err
	}
	newPrs, err := specstore.Create(prsTmp)
	if err != nil {
		newPrd.Close()
		return err
	}

	remap := make(map[uint32]uint32, len(active))
	for _, c := range active {
		appended, err := newPrd.AddComponent(c.Name, c.Type)
		if err != nil {
			newPrd.Close()
			newPrs.Close()
			return err
		}
		remap[c.Offset] = appended.Offset
	}

	for _, c := range active {
		if c.Type == record.Detail {
			continue
		}

		newFirst := record.NullPtr
		newPrev := record.NullPtr

		cur := c.FirstSpecPtr
		for cur != record.NullPtr {
			sr, err := svc.specs.ReadRecordAt(cur)
			if err != nil {
				newPrd.Close()
				newPrs.Close()
				return err
			}
			cur = sr.NextPtr

			if sr.Deleted {
				continue
			}
			newComponentPtr, ok := remap[sr.ComponentPtr]
			if !ok {
				continue
			}

			newSpecOff, err := newPrs.AddSpecItem(newComponentPtr, sr.Qty)
			if err != nil {
				newPrd.Close()
				newPrs.Close()
				return err
			}

			if newFirst == record.NullPtr {
				newFirst = newSpecOff
			} else if err := newPrs.UpdateNext(newPrev, newSpecOff); err != nil {
				newPrd.Close()
				newPrs.Close()
				return err
			}
			newPrev = newSpecOff
		}

		newOwnerOff := remap[c.Offset]
		newOwner, err := newPrd.ReadRecordAt(newOwnerOff)
		if err != nil {
			newPrd.Close()
			newPrs.Close()
			return err
		}
		if err := newPrd.UpdatePointers(newOwner.Offset, newFirst, newOwner.NextPtr); err != nil {
			newPrd.Close()
			newPrs.Close()
			return err
		}
	}

	if err := svc.products.Close(); err != nil {
		return err
	}
	if err := svc.specs.Close(); err != nil {
		return err
	}
	if err := newPrd.Close(); err != nil {
		return err
	}
	if err := newPrs.Close(); err != nil {
		return err
	}

	os.Remove(prdOld)
	os.Remove(prsOld)
	if err := os.Rename(prdTmp, prdOld); err != nil {
		return err
	}
	if err := os.Rename(prsTmp, prsOld); err != nil {
		return err
	}

	products, err := productstore.Open(prdOld)
	if err != nil {
		return err
	}
	specs, err := specstore.Open(prsOld)
	if err != nil {
		products.Close()
		return err
	}
	svc.products = products
	svc.specs = specs
	return nil
}
