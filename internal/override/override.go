// Package override is the validator extension point: a registry of partner
// overrides consulted before the default validation rules. Each override
// returns an explicit decision, either deferring to the next rule or
// resolving the check with an authoritative verdict.
package override

import (
	"sync"

	"github.com/partnerpay/paymentpage/internal/verdict"
)

// Kind names a validation check that can be overridden.
type Kind string

const (
	KindExpiry Kind = "expiry"
	KindNumber Kind = "number"
	KindCVV    Kind = "cvv"
)

// Decision is the tagged result of an override: either a deferral or a
// definitive verdict that supersedes the default rule.
type Decision struct {
	Applied bool
	Verdict verdict.Verdict
}

// Defer passes the check to the next override or the default rule.
func Defer() Decision {
	return Decision{}
}

// Resolve makes the given verdict authoritative.
func Resolve(v verdict.Verdict) Decision {
	return Decision{Applied: true, Verdict: v}
}

// Func inspects the raw field value and the card number it belongs to.
type Func func(value, cardNumber string) Decision

// Registration binds an override function to a validation kind.
type Registration struct {
	Kind     Kind
	Validate Func
}

// Plugin is the closed contract extensions implement. The engine depends on
// this fixed capability set rather than inspecting arbitrary object shapes.
type Plugin interface {
	Name() string
	Overrides() []Registration
}

// Registry holds overrides per kind in registration order. Safe for
// concurrent use; registration normally happens once at startup.
type Registry struct {
	mu  sync.RWMutex
	fns map[Kind][]Func
}

func NewRegistry() *Registry {
	return &Registry{fns: make(map[Kind][]Func)}
}

// Register appends an override for a kind.
func (r *Registry) Register(kind Kind, fn Func) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fns[kind] = append(r.fns[kind], fn)
}

// Use registers all of a plugin's overrides.
func (r *Registry) Use(p Plugin) {
	for _, reg := range p.Overrides() {
		r.Register(reg.Kind, reg.Validate)
	}
}

// Apply consults the overrides for a kind in order. It returns the first
// resolved verdict; ok is false when every override deferred (or none are
// registered) and the caller must run the default rule.
func (r *Registry) Apply(kind Kind, value, cardNumber string) (verdict.Verdict, bool) {
	r.mu.RLock()
	fns := r.fns[kind]
	r.mu.RUnlock()

	for _, fn := range fns {
		if d := fn(value, cardNumber); d.Applied {
			return d.Verdict, true
		}
	}
	return verdict.Verdict{}, false
}
