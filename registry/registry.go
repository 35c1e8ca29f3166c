// Package registry builds the semantic model from parsed declarations.
//
// Processing is strictly sequential: each declaration's supertype and field
// types are resolved against the registry as it stands plus the name
// currently being declared, then the descriptor is inserted before the next
// declaration is processed. That ordering makes forward references illegal
// in general but self-reference legal, which is what lets a list-like class
// reference itself.
package registry

import (
	"strconv"
	"strings"

	"github.com/teranos/treegen/errors"
	"github.com/teranos/treegen/parser"
)

// Registry is the immutable semantic model: every declared class, resolved
// and validated, in declaration order. Build it once per run and pass it by
// value through the pipeline; it is never ambient state.
type Registry struct {
	byName  map[string]*ClassDescriptor
	ordered []*ClassDescriptor
}

// Lookup returns the descriptor registered under the fully-qualified name.
func (r *Registry) Lookup(name string) (*ClassDescriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Classes returns all descriptors in declaration order.
func (r *Registry) Classes() []*ClassDescriptor {
	return r.ordered
}

// Concrete returns the non-abstract descriptors in declaration order.
func (r *Registry) Concrete() []*ClassDescriptor {
	var concrete []*ClassDescriptor
	for _, d := range r.ordered {
		if !d.Abstract {
			concrete = append(concrete, d)
		}
	}
	return concrete
}

// Len returns the number of registered classes.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// Build walks the declarations in order and produces the registry, or fails
// on the first violated invariant. Errors wrap the sentinel for their kind
// and name the offending class or field.
func Build(decls []parser.Declaration) (*Registry, error) {
	r := &Registry{byName: make(map[string]*ClassDescriptor)}

	for index, decl := range decls {
		if _, exists := r.byName[decl.Name]; exists {
			return nil, errors.Wrapf(errors.ErrDuplicateClass, "class %q", decl.Name)
		}

		var super *ClassDescriptor
		if decl.Supertype != "" {
			resolved, ok := r.byName[decl.Supertype]
			if !ok {
				return nil, errors.Wrapf(errors.ErrUnresolvedSupertype,
					"supertype %q of class %q", decl.Supertype, decl.Name)
			}
			super = resolved
		}

		if decl.Abstract && len(decl.Params) > 0 {
			return nil, errors.Wrapf(errors.ErrAbstractWithParams,
				"abstract class %q declares %d parameter(s)", decl.Name, len(decl.Params))
		}

		// Insert before resolving fields so the class can reference itself.
		d := &ClassDescriptor{
			Name:     decl.Name,
			Abstract: decl.Abstract,
			Super:    super,
			Index:    index,
		}
		r.byName[decl.Name] = d
		r.ordered = append(r.ordered, d)

		fields, err := r.resolveFields(d, decl.Params)
		if err != nil {
			return nil, err
		}
		d.Fields = fields
	}

	return r, nil
}

// resolveFields resolves types and assigns names for one class's params,
// in constructor-argument order.
func (r *Registry) resolveFields(owner *ClassDescriptor, params []parser.Param) ([]Field, error) {
	names, err := assignFieldNames(owner.Name, params)
	if err != nil {
		return nil, err
	}

	fields := make([]Field, 0, len(params))
	for i, p := range params {
		field := Field{Name: names[i], Accessor: accessorName(names[i])}
		if p.Scalar {
			field.Kind = FieldScalar
		} else {
			target, ok := r.byName[p.TypeName]
			if !ok {
				return nil, errors.Wrapf(errors.ErrUnresolvedFieldType,
					"field type %q in class %q", p.TypeName, owner.Name)
			}
			field.Kind = FieldClassRef
			field.Target = target
		}
		fields = append(fields, field)
	}
	return fields, nil
}

// assignFieldNames resolves the name of every param: explicit names pass
// through (checked pairwise distinct), anonymous fields take the
// lowercase-initialed simple name of their declared type, and anonymous
// fields sharing a derived base receive suffixes 1,2,3,... strictly in
// declaration order.
func assignFieldNames(className string, params []parser.Param) ([]string, error) {
	explicit := make(map[string]bool)
	baseCount := make(map[string]int)
	for _, p := range params {
		if p.Name != "" {
			if explicit[p.Name] {
				return nil, errors.Wrapf(errors.ErrDuplicateFieldName,
					"field %q in class %q", p.Name, className)
			}
			explicit[p.Name] = true
			continue
		}
		baseCount[derivedBase(p)]++
	}

	names := make([]string, len(params))
	nextSuffix := make(map[string]int)
	for i, p := range params {
		if p.Name != "" {
			names[i] = p.Name
			continue
		}
		base := derivedBase(p)
		if baseCount[base] > 1 {
			nextSuffix[base]++
			names[i] = base + strconv.Itoa(nextSuffix[base])
		} else {
			names[i] = base
		}
	}
	return names, nil
}

// derivedBase is the name an anonymous field takes before de-duplication:
// the lowercase-initialed last path segment of its declared type, or
// "scalar" for the scalar keyword.
func derivedBase(p parser.Param) string {
	if p.Scalar {
		return "scalar"
	}
	name := p.TypeName
	if idx := strings.LastIndex(name, "::"); idx >= 0 {
		name = name[idx+2:]
	}
	return lowerInitial(name)
}
