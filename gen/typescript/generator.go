// Package typescript renders tree classes as TypeScript source: one module
// per class, an api module of factory functions, and a visitor module with
// an interface plus a default implementation.
package typescript

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/teranos/treegen/gen"
)

const header = "// AUTO-GENERATED by treegen - DO NOT EDIT\n\n"

// Generator implements gen.Backend for TypeScript.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func init() {
	gen.Register(NewGenerator())
}

func (g *Generator) Language() string {
	return "typescript"
}

func (g *Generator) FileExtension() string {
	return ".ts"
}

func (g *Generator) ClassPath(segments []string) string {
	return filepath.Join(segments...) + ".ts"
}

func (g *Generator) APIPath(prefix string) string {
	return prefix + "Api.ts"
}

func (g *Generator) VisitorPath(prefix string) string {
	return prefix + "Visitor.ts"
}

func (g *Generator) RenderAbstractClass(ctx *gen.ClassContext) (string, error) {
	var sb strings.Builder
	sb.WriteString(header)
	writeImports(&sb, ctx, true)

	sb.WriteString(fmt.Sprintf("export abstract class %s", ctx.Simple()))
	if ctx.Super != "" {
		sb.WriteString(" extends " + gen.Simple(ctx.Super))
	}
	sb.WriteString(" {\n")
	if ctx.Super == "" {
		sb.WriteString(fmt.Sprintf("  abstract accept<R>(visitor: %sVisitor<R>): R;\n", ctx.Prefix))
	}
	sb.WriteString("}\n")
	return sb.String(), nil
}

func (g *Generator) RenderConcreteClass(ctx *gen.ClassContext) (string, error) {
	var sb strings.Builder
	sb.WriteString(header)
	writeImports(&sb, ctx, true)

	simple := ctx.Simple()
	sb.WriteString(fmt.Sprintf("export class %s", simple))
	if ctx.Super != "" {
		sb.WriteString(" extends " + gen.Simple(ctx.Super))
	}
	sb.WriteString(" {\n")

	params := make([]string, len(ctx.Fields))
	for i, f := range ctx.Fields {
		params[i] = fmt.Sprintf("readonly %s: %s", f.Name, fieldType(f))
	}
	sb.WriteString(fmt.Sprintf("  constructor(%s) {\n", strings.Join(params, ", ")))
	if ctx.Super != "" {
		// A concrete supertype's constructor takes its own fields; chain it
		// with placeholders so the call's arity matches.
		sb.WriteString(fmt.Sprintf("    super(%s);\n", superArgs(ctx.SuperFields)))
	}
	sb.WriteString("  }\n")

	for _, f := range ctx.Fields {
		sb.WriteString(fmt.Sprintf("\n  %s(): %s {\n    return this.%s;\n  }\n",
			f.Accessor, fieldType(f), f.Name))
	}

	sb.WriteString(fmt.Sprintf("\n  accept<R>(visitor: %sVisitor<R>): R {\n", ctx.Prefix))
	sb.WriteString(fmt.Sprintf("    return visitor.visit%s(this);\n",
		strings.TrimPrefix(simple, ctx.Prefix)))
	sb.WriteString("  }\n}\n")
	return sb.String(), nil
}

func (g *Generator) RenderAPI(ctx *gen.APIContext) (string, error) {
	var sb strings.Builder
	sb.WriteString(header)

	// Import every concrete class so the whole tree is loadable through
	// this one module. Imports are aliased because an exported factory
	// function may carry the same name as the class it constructs (always
	// the case with an empty prefix), which would be a duplicate
	// identifier.
	imported := make(map[string]bool)
	for _, class := range ctx.Classes {
		writeAliasedImport(&sb, class, imported)
	}
	for _, entry := range ctx.Entries {
		for _, f := range entry.Fields {
			if !f.Scalar {
				writeAliasedImport(&sb, f.Target, imported)
			}
		}
	}

	sb.WriteString("\nexport const CLASSES = [\n")
	for _, class := range ctx.Classes {
		sb.WriteString(fmt.Sprintf("  %s,\n", apiAlias(class)))
	}
	sb.WriteString("] as const;\n")

	for _, entry := range ctx.Entries {
		params := make([]string, len(entry.Fields))
		args := make([]string, len(entry.Fields))
		for i, f := range entry.Fields {
			params[i] = fmt.Sprintf("%s: %s", f.Name, apiFieldType(f))
			args[i] = f.Name
		}
		sb.WriteString(fmt.Sprintf("\nexport function %s(%s): %s {\n",
			entry.Shorthand, strings.Join(params, ", "), apiAlias(entry.Class)))
		sb.WriteString(fmt.Sprintf("  return new %s(%s);\n",
			apiAlias(entry.Class), strings.Join(args, ", ")))
		sb.WriteString("}\n")
	}
	return sb.String(), nil
}

func (g *Generator) RenderVisitor(ctx *gen.VisitorContext) (string, error) {
	var sb strings.Builder
	sb.WriteString(header)

	imported := make(map[string]bool)
	for _, m := range ctx.Methods {
		writeRootImport(&sb, m.Class, imported)
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("export interface %sVisitor<R> {\n", ctx.Prefix))
	for _, m := range ctx.Methods {
		sb.WriteString(fmt.Sprintf("  %s(node: %s): R;\n", m.Name, gen.Simple(m.Class)))
	}
	sb.WriteString("}\n\n")

	sb.WriteString(fmt.Sprintf("export class %sDefaultVisitor<R> implements %sVisitor<R> {\n",
		ctx.Prefix, ctx.Prefix))
	sb.WriteString("  protected combine(left: R, right: R): R {\n    return right;\n  }\n")
	for _, m := range ctx.Methods {
		sb.WriteString(fmt.Sprintf("\n  %s(node: %s): R {\n", m.Name, gen.Simple(m.Class)))
		writeDefaultBody(&sb, m)
		sb.WriteString("  }\n")
	}
	sb.WriteString("}\n")
	return sb.String(), nil
}

func writeDefaultBody(sb *strings.Builder, m gen.VisitorMethod) {
	var children []gen.FieldContext
	for _, f := range m.Fields {
		if !f.Scalar {
			children = append(children, f)
		}
	}
	if len(children) == 0 {
		sb.WriteString("    return undefined as unknown as R;\n")
		return
	}
	sb.WriteString(fmt.Sprintf("    let result = node.%s().accept(this);\n", children[0].Accessor))
	for _, f := range children[1:] {
		sb.WriteString(fmt.Sprintf("    result = this.combine(result, node.%s().accept(this));\n", f.Accessor))
	}
	sb.WriteString("    return result;\n")
}

// writeImports emits the import block for one class module: superclass,
// referenced field classes, and the visitor module, relative to the
// module's namespace depth. Self-references need no import.
func writeImports(sb *strings.Builder, ctx *gen.ClassContext, needVisitor bool) {
	depth := len(ctx.Segments) - 1
	rel := "./"
	if depth > 0 {
		rel = strings.Repeat("../", depth)
	}

	imported := make(map[string]bool)
	var wrote bool
	writeOne := func(qualified string) {
		if qualified == "" || qualified == ctx.Name || imported[qualified] {
			return
		}
		imported[qualified] = true
		sb.WriteString(fmt.Sprintf("import { %s } from \"%s%s\";\n",
			gen.Simple(qualified), rel, strings.Join(gen.Segments(qualified), "/")))
		wrote = true
	}

	writeOne(ctx.Super)
	for _, f := range ctx.Fields {
		if !f.Scalar {
			writeOne(f.Target)
		}
	}
	if needVisitor {
		sb.WriteString(fmt.Sprintf("import { %sVisitor } from \"%s%sVisitor\";\n",
			ctx.Prefix, rel, ctx.Prefix))
		wrote = true
	}
	if wrote {
		sb.WriteString("\n")
	}
}

// writeRootImport imports a class into a root-level artifact module.
func writeRootImport(sb *strings.Builder, qualified string, imported map[string]bool) {
	if imported[qualified] {
		return
	}
	imported[qualified] = true
	sb.WriteString(fmt.Sprintf("import { %s } from \"./%s\";\n",
		gen.Simple(qualified), strings.Join(gen.Segments(qualified), "/")))
}

// apiAlias is the local name a class is imported under in the API module.
func apiAlias(qualified string) string {
	return gen.Simple(qualified) + "_"
}

func writeAliasedImport(sb *strings.Builder, qualified string, imported map[string]bool) {
	if imported[qualified] {
		return
	}
	imported[qualified] = true
	sb.WriteString(fmt.Sprintf("import { %s as %s } from \"./%s\";\n",
		gen.Simple(qualified), apiAlias(qualified), strings.Join(gen.Segments(qualified), "/")))
}

// apiFieldType is fieldType under the API module's aliased imports.
func apiFieldType(f gen.FieldContext) string {
	if f.Scalar {
		return "unknown"
	}
	return apiAlias(f.Target)
}

// superArgs renders an undefined placeholder per superclass constructor
// argument; "as never" satisfies any parameter type without an import.
func superArgs(fields []gen.FieldContext) string {
	parts := make([]string, len(fields))
	for i := range fields {
		parts[i] = "undefined as never"
	}
	return strings.Join(parts, ", ")
}

// fieldType renders a field's TypeScript type; scalars are opaque.
func fieldType(f gen.FieldContext) string {
	if f.Scalar {
		return "unknown"
	}
	return gen.Simple(f.Target)
}
