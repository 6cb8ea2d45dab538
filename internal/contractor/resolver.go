// Package contractor resolves the assorted contractor references the
// backend emits (canonical ids, legacy hex ids, embedded objects, bare
// display names) into a single identity usable for roster lookups.
package contractor

import (
	"github.com/homereno/renoterm/internal/model"
)

// IDPredicate decides whether a bare string from the backend is a
// contractor id (as opposed to a display name).
type IDPredicate func(s string) bool

// IsHexID is the default predicate: a string is an id iff it is exactly
// 24 hex characters, the id format of the original persistence backend.
// Known limitation: a legitimate display name that happens to be 24 hex
// characters is misclassified as an id. The original client has the same
// behavior; deployments with a different id scheme should supply their
// own predicate instead.
func IsHexID(s string) bool {
	if len(s) != 24 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// Resolver normalizes contractor references and answers roster lookups.
type Resolver struct {
	isID IDPredicate
}

// NewResolver returns a resolver using the given id predicate, or IsHexID
// when pred is nil.
func NewResolver(pred IDPredicate) *Resolver {
	if pred == nil {
		pred = IsHexID
	}
	return &Resolver{isID: pred}
}

// Classify turns a bare string reference into a normalized ref, deciding
// between id and display name via the predicate. Empty input yields the
// zero ref ("no contractor").
func (r *Resolver) Classify(s string) model.ContractorRef {
	if s == "" {
		return model.ContractorRef{}
	}
	if r.isID(s) {
		return model.ContractorRef{ID: s}
	}
	return model.ContractorRef{Name: s}
}

// ResolveID returns the canonical id carried by the ref, when present.
func (r *Resolver) ResolveID(ref model.ContractorRef) (string, bool) {
	if ref.ID == "" {
		return "", false
	}
	return ref.ID, true
}

// ResolveName returns the display name for the ref, preferring the roster
// record over the name embedded in the ref itself.
func (r *Resolver) ResolveName(ref model.ContractorRef, roster []model.Contractor) (string, bool) {
	if c, ok := r.Find(ref, roster); ok {
		return c.FullName, true
	}
	if ref.Name != "" {
		return ref.Name, true
	}
	return "", false
}

// Find locates the roster record for a ref. An id match wins; an exact
// display-name match is only consulted when the ref carries no id or the
// id is absent from the roster.
func (r *Resolver) Find(ref model.ContractorRef, roster []model.Contractor) (*model.Contractor, bool) {
	if ref.IsZero() {
		return nil, false
	}
	if ref.ID != "" {
		for i := range roster {
			if roster[i].ID == ref.ID {
				return &roster[i], true
			}
		}
	}
	if ref.Name != "" {
		for i := range roster {
			if roster[i].FullName == ref.Name {
				return &roster[i], true
			}
		}
	}
	return nil, false
}

// ResolveExpertise returns the skill tier of the referenced contractor,
// when the roster can resolve the ref.
func (r *Resolver) ResolveExpertise(ref model.ContractorRef, roster []model.Contractor) (model.Expertise, bool) {
	c, ok := r.Find(ref, roster)
	if !ok {
		return "", false
	}
	return c.Expertise, true
}

// ResolvePrice returns the price of the referenced contractor, or 0 when
// no contractor is assigned or the roster cannot resolve the ref. A zero
// price feeds the labor cap as "no contractor cost".
func (r *Resolver) ResolvePrice(ref model.ContractorRef, roster []model.Contractor) float64 {
	c, ok := r.Find(ref, roster)
	if !ok {
		return 0
	}
	return c.Price
}
