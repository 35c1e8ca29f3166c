// Package java renders tree classes as Java source: one public class per
// descriptor, a Visitor interface with a DefaultVisitor, and a static
// factory API class. Everything lives under a shared package root so
// namespaced classes can reference the root-level Visitor and Api types
// (classes in Java's default package cannot be imported from a named
// package).
package java

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/teranos/treegen/gen"
)

const header = "// AUTO-GENERATED by treegen - DO NOT EDIT\n\n"

// packageRoot is the shared Java package every artifact is emitted under.
const packageRoot = "tree"

// Generator implements gen.Backend for Java.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func init() {
	gen.Register(NewGenerator())
}

func (g *Generator) Language() string {
	return "java"
}

func (g *Generator) FileExtension() string {
	return ".java"
}

// ClassPath maps namespace segments to nested directories under the package
// root; the class segment becomes the file name, as Java requires.
func (g *Generator) ClassPath(segments []string) string {
	return filepath.Join(packageRoot, filepath.Join(segments...)) + ".java"
}

func (g *Generator) APIPath(prefix string) string {
	return filepath.Join(packageRoot, prefix+"Api.java")
}

func (g *Generator) VisitorPath(prefix string) string {
	return filepath.Join(packageRoot, prefix+"Visitor.java")
}

func (g *Generator) RenderAbstractClass(ctx *gen.ClassContext) (string, error) {
	var sb strings.Builder
	sb.WriteString(header)
	writePackage(&sb, ctx.Segments)

	sb.WriteString(fmt.Sprintf("public abstract class %s", ctx.Simple()))
	if ctx.Super != "" {
		sb.WriteString(" extends " + javaRef(ctx.Super))
	}
	sb.WriteString(" {\n")
	if len(ctx.SuperFields) > 0 {
		// A concrete supertype has no zero-arg constructor to chain
		// implicitly.
		sb.WriteString(fmt.Sprintf("    protected %s() {\n        super(%s);\n    }\n\n",
			ctx.Simple(), nullArgs(ctx.SuperFields)))
	}
	if ctx.Super == "" {
		// Root of a hierarchy declares the visitor entry point; subtypes
		// inherit it.
		sb.WriteString(fmt.Sprintf("    public abstract <R> R accept(%s<R> visitor);\n", visitorRef(ctx.Prefix)))
	}
	sb.WriteString("}\n")
	return sb.String(), nil
}

func (g *Generator) RenderConcreteClass(ctx *gen.ClassContext) (string, error) {
	var sb strings.Builder
	sb.WriteString(header)
	writePackage(&sb, ctx.Segments)

	simple := ctx.Simple()
	sb.WriteString(fmt.Sprintf("public class %s", simple))
	if ctx.Super != "" {
		sb.WriteString(" extends " + javaRef(ctx.Super))
	}
	sb.WriteString(" {\n")

	for _, f := range ctx.Fields {
		sb.WriteString(fmt.Sprintf("    private final %s %s;\n", fieldType(f), f.Name))
	}
	if len(ctx.Fields) > 0 {
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("    public %s(%s) {\n", simple, paramList(ctx.Fields)))
	if len(ctx.SuperFields) > 0 {
		sb.WriteString(fmt.Sprintf("        super(%s);\n", nullArgs(ctx.SuperFields)))
	}
	for _, f := range ctx.Fields {
		sb.WriteString(fmt.Sprintf("        this.%s = %s;\n", f.Name, f.Name))
	}
	sb.WriteString("    }\n")

	for _, f := range ctx.Fields {
		sb.WriteString(fmt.Sprintf("\n    public %s %s() {\n        return %s;\n    }\n",
			fieldType(f), f.Accessor, f.Name))
	}

	sb.WriteString("\n")
	if ctx.Super != "" {
		sb.WriteString("    @Override\n")
	}
	sb.WriteString(fmt.Sprintf("    public <R> R accept(%s<R> visitor) {\n", visitorRef(ctx.Prefix)))
	sb.WriteString(fmt.Sprintf("        return visitor.visit%s(this);\n", unprefixed(ctx)))
	sb.WriteString("    }\n")
	sb.WriteString("}\n")
	return sb.String(), nil
}

func (g *Generator) RenderAPI(ctx *gen.APIContext) (string, error) {
	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString(fmt.Sprintf("package %s;\n\n", packageRoot))
	sb.WriteString(fmt.Sprintf("public final class %sApi {\n", ctx.Prefix))
	sb.WriteString(fmt.Sprintf("    private %sApi() {}\n\n", ctx.Prefix))

	// Referencing every concrete class here keeps them all loadable from
	// this one entry point.
	sb.WriteString("    public static final Class<?>[] CLASSES = {\n")
	for _, class := range ctx.Classes {
		sb.WriteString(fmt.Sprintf("        %s.class,\n", javaRef(class)))
	}
	sb.WriteString("    };\n")

	for _, entry := range ctx.Entries {
		sb.WriteString(fmt.Sprintf("\n    public static %s %s(%s) {\n",
			javaRef(entry.Class), entry.Shorthand, paramList(entry.Fields)))
		sb.WriteString(fmt.Sprintf("        return new %s(%s);\n",
			javaRef(entry.Class), argList(entry.Fields)))
		sb.WriteString("    }\n")
	}
	sb.WriteString("}\n")
	return sb.String(), nil
}

func (g *Generator) RenderVisitor(ctx *gen.VisitorContext) (string, error) {
	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString(fmt.Sprintf("package %s;\n\n", packageRoot))

	sb.WriteString(fmt.Sprintf("public interface %sVisitor<R> {\n", ctx.Prefix))
	for _, m := range ctx.Methods {
		sb.WriteString(fmt.Sprintf("    R %s(%s node);\n", m.Name, javaRef(m.Class)))
	}
	sb.WriteString("}\n\n")

	sb.WriteString(fmt.Sprintf("class %sDefaultVisitor<R> implements %sVisitor<R> {\n",
		ctx.Prefix, ctx.Prefix))
	sb.WriteString("    protected R combine(R left, R right) {\n        return right;\n    }\n")
	for _, m := range ctx.Methods {
		sb.WriteString(fmt.Sprintf("\n    public R %s(%s node) {\n", m.Name, javaRef(m.Class)))
		writeDefaultBody(&sb, m)
		sb.WriteString("    }\n")
	}
	sb.WriteString("}\n")
	return sb.String(), nil
}

// writeDefaultBody visits every child tree field in declared order and
// folds results through combine; leaves with no tree children yield null.
func writeDefaultBody(sb *strings.Builder, m gen.VisitorMethod) {
	var children []gen.FieldContext
	for _, f := range m.Fields {
		if !f.Scalar {
			children = append(children, f)
		}
	}
	if len(children) == 0 {
		sb.WriteString("        return null;\n")
		return
	}
	sb.WriteString(fmt.Sprintf("        R result = node.%s().accept(this);\n", children[0].Accessor))
	for _, f := range children[1:] {
		sb.WriteString(fmt.Sprintf("        result = combine(result, node.%s().accept(this));\n", f.Accessor))
	}
	sb.WriteString("        return result;\n")
}

// writePackage emits the package declaration: the shared root plus any
// namespace segments.
func writePackage(sb *strings.Builder, segments []string) {
	pkg := packageRoot
	if len(segments) > 1 {
		pkg += "." + strings.Join(segments[:len(segments)-1], ".")
	}
	sb.WriteString(fmt.Sprintf("package %s;\n\n", pkg))
}

// javaRef fully qualifies a '::'-qualified class name from the package
// root, so references work across the generated packages without imports.
func javaRef(qualified string) string {
	return packageRoot + "." + strings.ReplaceAll(qualified, "::", ".")
}

// visitorRef is the fully qualified name of the run's visitor interface.
func visitorRef(prefix string) string {
	return packageRoot + "." + prefix + "Visitor"
}

// fieldType renders a field's Java type: scalar values are opaque Objects.
func fieldType(f gen.FieldContext) string {
	if f.Scalar {
		return "Object"
	}
	return javaRef(f.Target)
}

// nullArgs renders a null placeholder per superclass constructor argument.
func nullArgs(fields []gen.FieldContext) string {
	parts := make([]string, len(fields))
	for i := range fields {
		parts[i] = "null"
	}
	return strings.Join(parts, ", ")
}

func paramList(fields []gen.FieldContext) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fieldType(f) + " " + f.Name
	}
	return strings.Join(parts, ", ")
}

func argList(fields []gen.FieldContext) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Name
	}
	return strings.Join(parts, ", ")
}

// unprefixed recovers the declared simple name for dispatch method naming.
func unprefixed(ctx *gen.ClassContext) string {
	return strings.TrimPrefix(ctx.Simple(), ctx.Prefix)
}
