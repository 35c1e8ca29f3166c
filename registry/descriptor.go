package registry

import "strings"

// FieldKind distinguishes opaque scalar fields from tree-class references
type FieldKind int

const (
	// FieldScalar is an opaque primitive value with no further validation
	FieldScalar FieldKind = iota
	// FieldClassRef is a reference to another registered class (possibly
	// the class that owns the field)
	FieldClassRef
)

// Field is one resolved constructor parameter of a concrete class.
type Field struct {
	// Name is the resolved field name: the explicit name, or the derived
	// lowercase-initialed simple name of the declared type, de-duplicated
	// with 1-based numeric suffixes in declaration order
	Name string
	// Accessor is derived mechanically from Name: "get" + upper-initialed name
	Accessor string
	// Kind is FieldScalar or FieldClassRef
	Kind FieldKind
	// Target is the referenced class descriptor; nil for scalar fields
	Target *ClassDescriptor
}

// ClassDescriptor is the registry's resolved, validated representation of
// one declared class. Descriptors are created once, inserted into the
// registry, and never mutated afterwards.
type ClassDescriptor struct {
	// Name is the fully-qualified declared name, '::'-separated
	Name string
	// Abstract marks classes with no constructor and no fields
	Abstract bool
	// Super points at the supertype's descriptor, owned by the registry;
	// nil when no supertype was declared
	Super *ClassDescriptor
	// Fields are the resolved constructor parameters in declared order;
	// always empty for abstract classes
	Fields []Field
	// Index is the position among all declarations, used for deterministic
	// emission order and default visitor traversal order
	Index int
}

// Segments splits the qualified name on '::' into its namespace path.
func (d *ClassDescriptor) Segments() []string {
	return strings.Split(d.Name, "::")
}

// SimpleName is the last path segment of the qualified name.
func (d *ClassDescriptor) SimpleName() string {
	segments := d.Segments()
	return segments[len(segments)-1]
}

// DispatchMethod is the visitor method the class's accept operation
// invokes: "visit" + simple name. Only meaningful for concrete classes.
func (d *ClassDescriptor) DispatchMethod() string {
	return "visit" + d.SimpleName()
}

// lowerInitial lowercases the first rune of s, used for derived field names.
func lowerInitial(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// upperInitial uppercases the first rune of s, used for accessor names.
func upperInitial(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// accessorName derives the accessor from a resolved field name.
func accessorName(field string) string {
	return "get" + upperInitial(field)
}
