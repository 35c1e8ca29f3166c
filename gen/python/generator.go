// Package python renders tree classes as Python source: one module per
// class, an api module of shorthand constructors, and a visitor module.
package python

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/teranos/treegen/gen"
)

const header = "# AUTO-GENERATED by treegen - DO NOT EDIT\n\n"

// Generator implements gen.Backend for Python.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func init() {
	gen.Register(NewGenerator())
}

func (g *Generator) Language() string {
	return "python"
}

func (g *Generator) FileExtension() string {
	return ".py"
}

// ClassPath lowercases every segment per Python module naming.
func (g *Generator) ClassPath(segments []string) string {
	lowered := make([]string, len(segments))
	for i, s := range segments {
		lowered[i] = strings.ToLower(s)
	}
	return filepath.Join(lowered...) + ".py"
}

func (g *Generator) APIPath(string) string {
	return "api.py"
}

func (g *Generator) VisitorPath(string) string {
	return "visitor.py"
}

func (g *Generator) RenderAbstractClass(ctx *gen.ClassContext) (string, error) {
	var sb strings.Builder
	sb.WriteString(header)
	writeSuperImport(&sb, ctx)

	sb.WriteString(fmt.Sprintf("class %s%s:\n", ctx.Simple(), bases(ctx)))
	// Abstract classes are uninstantiable: the constructor refuses use.
	sb.WriteString("    def __init__(self):\n")
	sb.WriteString(fmt.Sprintf("        raise NotImplementedError(%q)\n", ctx.Simple()+" is abstract"))
	sb.WriteString("\n    def accept(self, visitor):\n")
	sb.WriteString("        raise NotImplementedError\n")
	return sb.String(), nil
}

func (g *Generator) RenderConcreteClass(ctx *gen.ClassContext) (string, error) {
	var sb strings.Builder
	sb.WriteString(header)
	writeSuperImport(&sb, ctx)

	sb.WriteString(fmt.Sprintf("class %s%s:\n", ctx.Simple(), bases(ctx)))

	if len(ctx.Fields) == 0 {
		sb.WriteString("    def __init__(self):\n")
	} else {
		names := make([]string, len(ctx.Fields))
		for i, f := range ctx.Fields {
			names[i] = f.Name
		}
		sb.WriteString(fmt.Sprintf("    def __init__(self, %s):\n", strings.Join(names, ", ")))
	}
	// Chain a concrete supertype's constructor with None placeholders so
	// inherited attributes exist. An abstract supertype has no fields and
	// its constructor stays untouched.
	if len(ctx.SuperFields) > 0 {
		nones := make([]string, len(ctx.SuperFields))
		for i := range ctx.SuperFields {
			nones[i] = "None"
		}
		sb.WriteString(fmt.Sprintf("        super().__init__(%s)\n", strings.Join(nones, ", ")))
	}
	for _, f := range ctx.Fields {
		sb.WriteString(fmt.Sprintf("        self.%s = %s\n", f.Name, f.Name))
	}
	if len(ctx.Fields) == 0 && len(ctx.SuperFields) == 0 {
		sb.WriteString("        pass\n")
	}

	for _, f := range ctx.Fields {
		sb.WriteString(fmt.Sprintf("\n    def %s(self):\n        return self.%s\n", f.Accessor, f.Name))
	}

	sb.WriteString("\n    def accept(self, visitor):\n")
	sb.WriteString(fmt.Sprintf("        return visitor.visit%s(self)\n",
		strings.TrimPrefix(ctx.Simple(), ctx.Prefix)))
	return sb.String(), nil
}

func (g *Generator) RenderAPI(ctx *gen.APIContext) (string, error) {
	var sb strings.Builder
	sb.WriteString(header)

	// Importing every concrete class keeps the full tree loadable from
	// this one module. Imports are aliased so a shorthand def cannot
	// rebind the class it constructs (with an empty prefix the two names
	// would otherwise collide and every call would recurse).
	for _, class := range ctx.Classes {
		sb.WriteString(aliasedImportLine(class))
	}
	sb.WriteString("\nCLASSES = [\n")
	for _, class := range ctx.Classes {
		sb.WriteString(fmt.Sprintf("    %s,\n", apiAlias(class)))
	}
	sb.WriteString("]\n")

	for _, entry := range ctx.Entries {
		names := make([]string, len(entry.Fields))
		for i, f := range entry.Fields {
			names[i] = f.Name
		}
		sb.WriteString(fmt.Sprintf("\n\ndef %s(%s):\n", entry.Shorthand, strings.Join(names, ", ")))
		sb.WriteString(fmt.Sprintf("    return %s(%s)\n", apiAlias(entry.Class), strings.Join(names, ", ")))
	}
	return sb.String(), nil
}

func (g *Generator) RenderVisitor(ctx *gen.VisitorContext) (string, error) {
	var sb strings.Builder
	sb.WriteString(header)

	sb.WriteString(fmt.Sprintf("class %sVisitor:\n", ctx.Prefix))
	sb.WriteString("    def combine(self, left, right):\n        return right\n")

	for _, m := range ctx.Methods {
		sb.WriteString(fmt.Sprintf("\n    def %s(self, node):\n", m.Name))
		writeDefaultBody(&sb, m)
	}
	return sb.String(), nil
}

// writeDefaultBody visits child tree fields in declared order, folding
// through combine; leaves yield None.
func writeDefaultBody(sb *strings.Builder, m gen.VisitorMethod) {
	var children []gen.FieldContext
	for _, f := range m.Fields {
		if !f.Scalar {
			children = append(children, f)
		}
	}
	if len(children) == 0 {
		sb.WriteString("        return None\n")
		return
	}
	sb.WriteString(fmt.Sprintf("        result = node.%s().accept(self)\n", children[0].Accessor))
	for _, f := range children[1:] {
		sb.WriteString(fmt.Sprintf("        result = self.combine(result, node.%s().accept(self))\n", f.Accessor))
	}
	sb.WriteString("        return result\n")
}

// writeSuperImport imports the superclass's module when one exists.
func writeSuperImport(sb *strings.Builder, ctx *gen.ClassContext) {
	if ctx.Super == "" {
		return
	}
	sb.WriteString(importLine(ctx.Super))
	sb.WriteString("\n\n")
}

// importLine builds "from <module path> import <Class>" for a qualified name.
func importLine(qualified string) string {
	segments := gen.Segments(qualified)
	lowered := make([]string, len(segments))
	for i, s := range segments {
		lowered[i] = strings.ToLower(s)
	}
	return fmt.Sprintf("from %s import %s\n", strings.Join(lowered, "."), gen.Simple(qualified))
}

// apiAlias is the module-private name a class is imported under in api.py.
func apiAlias(qualified string) string {
	return "_" + gen.Simple(qualified)
}

func aliasedImportLine(qualified string) string {
	line := strings.TrimSuffix(importLine(qualified), "\n")
	return fmt.Sprintf("%s as %s\n", line, apiAlias(qualified))
}

func bases(ctx *gen.ClassContext) string {
	if ctx.Super == "" {
		return ""
	}
	return "(" + gen.Simple(ctx.Super) + ")"
}
