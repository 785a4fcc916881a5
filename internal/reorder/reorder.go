// Package reorder reconciles drag gestures against the two orderable
// domains of the sheet: the product sequence, and the variant sequence
// nested inside one product. The domain travels on every event as an
// explicit tag from the drag source; it is never inferred from what the
// pointer happens to be over at drop time.
package reorder

import (
	"fmt"

	"offersheet-cli/internal/diag"
	"offersheet-cli/internal/model"
	"offersheet-cli/internal/selection"
)

type Domain string

const (
	DomainProduct Domain = "product"
	DomainVariant Domain = "variant"
)

// StartDrag begins a gesture on one entity.
type StartDrag struct {
	Domain Domain
	Key    string
}

// EndDrag finishes a gesture. HasOver=false means the drop happened
// outside any target.
type EndDrag struct {
	ActiveDomain Domain
	ActiveKey    string
	OverDomain   Domain
	OverKey      string
	HasOver      bool
}

// KeyResolutionError reports a drag whose source or target key no
// longer resolves (stale reference after a concurrent removal). The
// gesture is abandoned, never fatal.
type KeyResolutionError struct {
	Domain Domain
	Key    string
}

func (e KeyResolutionError) Error() string {
	return fmt.Sprintf("reorder: %s key %q no longer resolves", e.Domain, e.Key)
}

// UnsupportedMoveError reports a structurally invalid drop: a variant
// dropped into a different product, or mismatched domains.
type UnsupportedMoveError struct {
	ActiveDomain Domain
	OverDomain   Domain
	Reason       string
}

func (e UnsupportedMoveError) Error() string {
	return fmt.Sprintf("reorder: unsupported move (%s onto %s): %s", e.ActiveDomain, e.OverDomain, e.Reason)
}

type state int

const (
	stateIdle state = iota
	stateDragging
)

// Engine is the drag state machine. It mutates the sheet only through
// a single atomic sequence replacement per completed gesture; a failed
// gesture resets state and leaves the sheet untouched.
type Engine struct {
	sheet *selection.Sheet
	diag  *diag.Reporter

	state        state
	activeDomain Domain
	activeKey    string
}

func NewEngine(sheet *selection.Sheet, d *diag.Reporter) *Engine {
	if d == nil {
		d = diag.Nop()
	}
	return &Engine{sheet: sheet, diag: d}
}

func (e *Engine) Dragging() bool { return e.state == stateDragging }

// Active returns the entity currently being dragged.
func (e *Engine) Active() (Domain, string, bool) {
	if e.state != stateDragging {
		return "", "", false
	}
	return e.activeDomain, e.activeKey, true
}

func (e *Engine) Start(ev StartDrag) {
	e.state = stateDragging
	e.activeDomain = ev.Domain
	e.activeKey = ev.Key
}

// Cancel drops the gesture without mutation.
func (e *Engine) Cancel() {
	e.state = stateIdle
	e.activeDomain = ""
	e.activeKey = ""
}

// End applies a drag-end event. It returns whether the sheet changed;
// errors describe rejected or abandoned gestures and have already been
// reported to diagnostics. State is idle afterwards in every case.
func (e *Engine) End(ev EndDrag) (bool, error) {
	defer e.Cancel()

	// Only a started gesture can end; an end event arriving while idle
	// is dropped without touching the sheet.
	if e.state != stateDragging {
		return false, nil
	}
	if ev.ActiveKey == "" {
		return false, nil
	}
	// No target, or dropped on itself: reset only.
	if !ev.HasOver || (ev.OverDomain == ev.ActiveDomain && ev.OverKey == ev.ActiveKey) {
		return false, nil
	}
	if ev.ActiveDomain != ev.OverDomain {
		err := UnsupportedMoveError{
			ActiveDomain: ev.ActiveDomain,
			OverDomain:   ev.OverDomain,
			Reason:       "no handling for this domain combination",
		}
		e.diag.UnsupportedMove(string(ev.ActiveDomain), ev.ActiveKey, string(ev.OverDomain), ev.OverKey)
		return false, err
	}
	switch ev.ActiveDomain {
	case DomainProduct:
		return e.moveProduct(ev.ActiveKey, ev.OverKey)
	case DomainVariant:
		return e.moveVariant(ev.ActiveKey, ev.OverKey)
	default:
		err := UnsupportedMoveError{
			ActiveDomain: ev.ActiveDomain,
			OverDomain:   ev.OverDomain,
			Reason:       "unknown domain",
		}
		e.diag.UnsupportedMove(string(ev.ActiveDomain), ev.ActiveKey, string(ev.OverDomain), ev.OverKey)
		return false, err
	}
}

func (e *Engine) moveProduct(activeKey, overKey string) (bool, error) {
	src := e.sheet.IndexOfProduct(activeKey)
	if src < 0 {
		return false, e.keyFailure(DomainProduct, activeKey)
	}
	dst := e.sheet.IndexOfProduct(overKey)
	if dst < 0 {
		return false, e.keyFailure(DomainProduct, overKey)
	}
	e.sheet.ReplaceOrder(moveElement(e.sheet.Products(), src, dst))
	return true, nil
}

func (e *Engine) moveVariant(activeKey, overKey string) (bool, error) {
	owner, src := e.sheet.FindVariantOwner(activeKey)
	if owner == nil {
		return false, e.keyFailure(DomainVariant, activeKey)
	}
	dst := -1
	for i := range owner.Variants {
		if owner.Variants[i].Key == overKey {
			dst = i
			break
		}
	}
	if dst < 0 {
		// The target lives in another product (or nowhere): variants
		// never change parents, so either way the gesture is rejected.
		if other, _ := e.sheet.FindVariantOwner(overKey); other != nil {
			err := UnsupportedMoveError{
				ActiveDomain: DomainVariant,
				OverDomain:   DomainVariant,
				Reason:       "cross-product variant moves are unsupported",
			}
			e.diag.UnsupportedMove(string(DomainVariant), activeKey, string(DomainVariant), overKey)
			return false, err
		}
		return false, e.keyFailure(DomainVariant, overKey)
	}
	e.sheet.ReplaceVariants(owner.Key, moveVariantElement(owner.Variants, src, dst))
	return true, nil
}

func (e *Engine) keyFailure(domain Domain, key string) error {
	e.diag.KeyResolutionFailure(string(domain), key)
	return KeyResolutionError{Domain: domain, Key: key}
}

// moveElement performs a positional move: remove src, reinsert at the
// target's original position. Entities between the two shift by one;
// this is not a swap.
func moveElement(in []*model.Product, src, dst int) []*model.Product {
	out := make([]*model.Product, 0, len(in))
	out = append(out, in[:src]...)
	out = append(out, in[src+1:]...)
	if dst > len(out) {
		dst = len(out)
	}
	out = append(out[:dst], append([]*model.Product{in[src]}, out[dst:]...)...)
	return out
}

func moveVariantElement(in []model.Variant, src, dst int) []model.Variant {
	out := make([]model.Variant, 0, len(in))
	out = append(out, in[:src]...)
	out = append(out, in[src+1:]...)
	if dst > len(out) {
		dst = len(out)
	}
	out = append(out[:dst], append([]model.Variant{in[src]}, out[dst:]...)...)
	return out
}
