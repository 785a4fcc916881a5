// Package selection holds the two selection-shaped states: the
// uncommitted picker Set, and the committed ordered Sheet.
package selection

import (
	"offersheet-cli/internal/model"
)

// Set is the picker-side selection: variant key → entry, with insertion
// order preserved so Materialize produces stable output. Its lifecycle
// is tied to one open/close cycle of the picker; it is owned and passed
// explicitly, never process-wide.
type Set struct {
	entries map[string]model.SelectionEntry
	order   []string
}

func NewSet() *Set {
	return &Set{entries: map[string]model.SelectionEntry{}}
}

func (s *Set) Len() int { return len(s.entries) }

func (s *Set) Selected(variantKey string) bool {
	_, ok := s.entries[variantKey]
	return ok
}

// Toggle inserts the variant's entry if absent and removes it if
// present. Siblings are never touched.
func (s *Set) Toggle(v model.Variant, parent model.Product) {
	if _, ok := s.entries[v.Key]; ok {
		s.remove(v.Key)
		return
	}
	s.insert(entryFor(v, parent))
}

// ToggleAllInGroup selects every variant of the product, unless all of
// them are already selected, in which case it deselects all of them.
// Re-selecting an already-selected variant keeps any discount that was
// set on its entry.
func (s *Set) ToggleAllInGroup(parent model.Product) {
	all := len(parent.Variants) > 0
	for _, v := range parent.Variants {
		if !s.Selected(v.Key) {
			all = false
			break
		}
	}
	if all {
		for _, v := range parent.Variants {
			s.remove(v.Key)
		}
		return
	}
	for _, v := range parent.Variants {
		e := entryFor(v, parent)
		if prev, ok := s.entries[v.Key]; ok && prev.Variant.Discount != nil {
			e.Variant.Discount = prev.Variant.Discount
		}
		s.insert(e)
	}
}

// SetDiscount attaches a discount to one selected entry.
func (s *Set) SetDiscount(variantKey string, d *model.Discount) bool {
	e, ok := s.entries[variantKey]
	if !ok {
		return false
	}
	e.Variant.Discount = d
	s.entries[variantKey] = e
	return true
}

// Entries returns the current entries in insertion order.
func (s *Set) Entries() []model.SelectionEntry {
	out := make([]model.SelectionEntry, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.entries[k])
	}
	return out
}

// Materialize converts the uncommitted entries into committed sheet
// products: one product per distinct parent, in the order parents were
// first encountered, each with its selected variants in entry order and
// a fresh process-local key. This is the single place picker state
// becomes sheet data.
func (s *Set) Materialize() []*model.Product {
	var out []*model.Product
	byParent := map[string]*model.Product{}
	for _, k := range s.order {
		e := s.entries[k]
		p, ok := byParent[e.ParentRemoteID]
		if !ok {
			p = &model.Product{
				Key:      model.NewProductKey(),
				RemoteID: e.ParentRemoteID,
				Title:    e.ParentTitle,
				ImageRef: e.ParentImageRef,
				Expanded: true,
			}
			byParent[e.ParentRemoteID] = p
			out = append(out, p)
		}
		p.Variants = append(p.Variants, e.Variant)
	}
	return out
}

func entryFor(v model.Variant, parent model.Product) model.SelectionEntry {
	return model.SelectionEntry{
		Key:            v.Key,
		ParentRemoteID: parent.RemoteID,
		ParentTitle:    parent.Title,
		ParentImageRef: parent.ImageRef,
		Variant:        v,
	}
}

func (s *Set) insert(e model.SelectionEntry) {
	if _, ok := s.entries[e.Key]; !ok {
		s.order = append(s.order, e.Key)
	}
	s.entries[e.Key] = e
}

func (s *Set) remove(key string) {
	if _, ok := s.entries[key]; !ok {
		return
	}
	delete(s.entries, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
