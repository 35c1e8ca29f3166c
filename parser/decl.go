package parser

// Param is one constructor parameter of a concrete declaration: a declared
// type (the scalar keyword or a class name) with an optional explicit field
// name. Anonymous params are named later by the registry.
type Param struct {
	// TypeName is the declared type text; empty when Scalar is true
	TypeName string
	// Scalar marks the 'scalar' keyword as the declared type
	Scalar bool
	// Name is the explicit field name, empty for anonymous fields
	Name string
	// Line is where the param's type token appeared
	Line int
}

// Declaration is one parsed DSL statement. Declarations are transient:
// the registry consumes them in order and discards them.
type Declaration struct {
	// Name is the class's own (possibly namespaced) name
	Name string
	// Supertype is the supertype name, empty when none was declared
	Supertype string
	// Abstract marks an 'abstract' declaration
	Abstract bool
	// Params are the constructor parameters in declared order; always
	// empty for valid abstract declarations, but carried through so the
	// registry can report the violation
	Params []Param
	// Line is where the declaration started
	Line int
}
