package gen

import (
	"strings"

	"github.com/teranos/treegen/registry"
)

// FieldContext is one field as handed to a backend renderer.
type FieldContext struct {
	// Name is the resolved field name (e.g. expr1)
	Name string
	// Accessor is the generated read operation name (e.g. getExpr1)
	Accessor string
	// Scalar marks an opaque primitive field
	Scalar bool
	// Target is the prefixed qualified name of the referenced class,
	// '::'-separated; empty for scalar fields
	Target string
}

// ClassContext is the render context for one class artifact.
type ClassContext struct {
	// Prefix is the run's name prefix, so renderers can name the
	// whole-model artifacts (visitor type) consistently
	Prefix string
	// Name is the prefixed qualified output name, '::'-separated
	Name string
	// Segments is Name split on '::'; namespace segments are unprefixed,
	// the final class segment carries the prefix
	Segments []string
	// Super is the prefixed qualified supertype name, empty when none
	Super string
	// SuperFields are the supertype's fields in its declared order, so a
	// subclass constructor can chain the supertype's; empty when the
	// supertype is absent or abstract
	SuperFields []FieldContext
	// Abstract marks classes rendered through the abstract-class renderer
	Abstract bool
	// Fields are the class's fields in declared order; empty for abstract
	Fields []FieldContext
}

// Simple returns the prefixed simple (last-segment) class name.
func (c *ClassContext) Simple() string {
	return c.Segments[len(c.Segments)-1]
}

// APIEntry is one shorthand constructor in the API artifact.
type APIEntry struct {
	// Shorthand is the class's unprefixed simple name
	Shorthand string
	// Class is the prefixed qualified name of the real constructor's class
	Class string
	// Fields are the constructor arguments in declared order
	Fields []FieldContext
}

// APIContext is the render context for the whole-model API artifact. Classes
// lists every concrete prefixed qualified name, in declaration order, so the
// backend can make them all transitively loadable from one entry point.
type APIContext struct {
	Prefix  string
	Entries []APIEntry
	Classes []string
}

// VisitorMethod is one dispatch method of the visitor artifact.
type VisitorMethod struct {
	// Name is "visit" + the class's simple name
	Name string
	// Class is the concrete class's prefixed qualified name
	Class string
	// Fields are the class's fields, used by the default implementation to
	// visit child tree fields and fold their results through combine
	Fields []FieldContext
}

// VisitorContext is the render context for the whole-model visitor artifact.
type VisitorContext struct {
	Prefix  string
	Methods []VisitorMethod
}

// Simple returns the last '::' segment of a qualified name. Backends use it
// when a language convention wants the bare class name.
func Simple(qualified string) string {
	if idx := strings.LastIndex(qualified, "::"); idx >= 0 {
		return qualified[idx+2:]
	}
	return qualified
}

// Segments splits a qualified name on '::'.
func Segments(qualified string) []string {
	return strings.Split(qualified, "::")
}

// prefixQualified applies the name prefix to the final (class) segment of a
// qualified name; namespace segments stay unprefixed.
func prefixQualified(prefix, qualified string) string {
	if prefix == "" {
		return qualified
	}
	segs := strings.Split(qualified, "::")
	segs[len(segs)-1] = prefix + segs[len(segs)-1]
	return strings.Join(segs, "::")
}

// classContext builds the render context for one descriptor.
func classContext(prefix string, d *registry.ClassDescriptor) *ClassContext {
	name := prefixQualified(prefix, d.Name)
	ctx := &ClassContext{
		Prefix:   prefix,
		Name:     name,
		Segments: strings.Split(name, "::"),
		Abstract: d.Abstract,
		Fields:   fieldContexts(prefix, d.Fields),
	}
	if d.Super != nil {
		ctx.Super = prefixQualified(prefix, d.Super.Name)
		ctx.SuperFields = fieldContexts(prefix, d.Super.Fields)
	}
	return ctx
}

func fieldContexts(prefix string, fields []registry.Field) []FieldContext {
	out := make([]FieldContext, len(fields))
	for i, f := range fields {
		out[i] = FieldContext{
			Name:     f.Name,
			Accessor: f.Accessor,
			Scalar:   f.Kind == registry.FieldScalar,
		}
		if f.Kind == registry.FieldClassRef {
			out[i].Target = prefixQualified(prefix, f.Target.Name)
		}
	}
	return out
}

// apiContext builds the whole-model API context from the concrete
// descriptors in declaration order.
func apiContext(prefix string, concrete []*registry.ClassDescriptor) *APIContext {
	ctx := &APIContext{Prefix: prefix}
	for _, d := range concrete {
		ctx.Entries = append(ctx.Entries, APIEntry{
			Shorthand: d.SimpleName(),
			Class:     prefixQualified(prefix, d.Name),
			Fields:    fieldContexts(prefix, d.Fields),
		})
		ctx.Classes = append(ctx.Classes, prefixQualified(prefix, d.Name))
	}
	return ctx
}

// visitorContext builds the whole-model visitor context. Abstract classes
// contribute no dispatch method.
func visitorContext(prefix string, concrete []*registry.ClassDescriptor) *VisitorContext {
	ctx := &VisitorContext{Prefix: prefix}
	for _, d := range concrete {
		ctx.Methods = append(ctx.Methods, VisitorMethod{
			Name:   d.DispatchMethod(),
			Class:  prefixQualified(prefix, d.Name),
			Fields: fieldContexts(prefix, d.Fields),
		})
	}
	return ctx
}
