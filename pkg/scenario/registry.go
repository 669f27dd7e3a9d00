package scenario

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/aretw0/tendril/pkg/domain"
)

type compiledSlot struct {
	def     domain.SlotDefinition
	pattern *regexp.Regexp
}

// Registry maps slot names to their prompt and compiled value pattern.
// It is read-only once built.
type Registry struct {
	slots map[string]compiledSlot
}

// NewRegistry compiles every slot pattern. Invalid patterns are configuration
// errors: all of them are reported here rather than during a turn.
func NewRegistry(defs ...domain.SlotDefinition) (*Registry, error) {
	r := &Registry{slots: make(map[string]compiledSlot, len(defs))}
	var errs []error
	for i, def := range defs {
		if def.Name == "" {
			errs = append(errs, fmt.Errorf("slot definition #%d is missing a name", i+1))
			continue
		}
		re, err := regexp.Compile(def.Pattern)
		if err != nil {
			errs = append(errs, fmt.Errorf("slot '%s' has an invalid pattern %q: %w", def.Name, def.Pattern, err))
			continue
		}
		// Later rows override earlier ones, as in a keyed table.
		r.slots[def.Name] = compiledSlot{def: def, pattern: re}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return r, nil
}

// Definition returns the raw definition of a slot.
func (r *Registry) Definition(name string) (domain.SlotDefinition, error) {
	s, ok := r.slots[name]
	if !ok {
		return domain.SlotDefinition{}, &domain.UnresolvedReferenceError{Kind: domain.RefSlot, ID: name}
	}
	return s.def, nil
}

// Prompt returns the question asked when the slot is missing.
func (r *Registry) Prompt(name string) (string, error) {
	def, err := r.Definition(name)
	if err != nil {
		return "", err
	}
	return def.Prompt, nil
}

// Pattern returns the compiled value pattern of a slot.
func (r *Registry) Pattern(name string) (*regexp.Regexp, error) {
	s, ok := r.slots[name]
	if !ok {
		return nil, &domain.UnresolvedReferenceError{Kind: domain.RefSlot, ID: name}
	}
	return s.pattern, nil
}

// Has reports whether the slot is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.slots[name]
	return ok
}

// Names returns the registered slot names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.slots))
	for name := range r.slots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
