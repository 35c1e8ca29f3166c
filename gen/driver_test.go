package gen

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/teranos/treegen/errors"
	"github.com/teranos/treegen/lexer"
	"github.com/teranos/treegen/parser"
	"github.com/teranos/treegen/registry"
)

// stubBackend renders trivially and records the contexts it was handed.
type stubBackend struct {
	classes   []*ClassContext
	api       *APIContext
	visitor   *VisitorContext
	renderErr error
}

func (s *stubBackend) Language() string      { return "stub" }
func (s *stubBackend) FileExtension() string { return ".txt" }

func (s *stubBackend) ClassPath(segments []string) string {
	return filepath.Join(segments...) + ".txt"
}

func (s *stubBackend) APIPath(prefix string) string     { return prefix + "Api.txt" }
func (s *stubBackend) VisitorPath(prefix string) string { return prefix + "Visitor.txt" }

func (s *stubBackend) RenderAbstractClass(ctx *ClassContext) (string, error) {
	s.classes = append(s.classes, ctx)
	return "abstract " + ctx.Name + "\n", s.renderErr
}

func (s *stubBackend) RenderConcreteClass(ctx *ClassContext) (string, error) {
	s.classes = append(s.classes, ctx)
	return "concrete " + ctx.Name + "\n", s.renderErr
}

func (s *stubBackend) RenderAPI(ctx *APIContext) (string, error) {
	s.api = ctx
	return "api\n", s.renderErr
}

func (s *stubBackend) RenderVisitor(ctx *VisitorContext) (string, error) {
	s.visitor = ctx
	return "visitor\n", s.renderErr
}

const sampleConfig = `abstract Expr()
Expr Number(scalar value)
ExprList(Expr, ExprList)
ExprList EmptyExprList()
`

func buildRegistry(t *testing.T, src string) *registry.Registry {
	t.Helper()
	decls, err := parser.Parse(lexer.New(src))
	require.NoError(t, err)
	reg, err := registry.Build(decls)
	require.NoError(t, err)
	return reg
}

func TestGenerateEmitsOneArtifactPerClassPlusTwo(t *testing.T) {
	reg := buildRegistry(t, sampleConfig)
	backend := &stubBackend{}
	mem := NewMemWriter()

	driver := NewDriver(backend, mem, Config{OutputRoot: "out"}, zap.NewNop().Sugar())
	written, err := driver.Generate(reg)
	require.NoError(t, err)

	// 1 abstract + 3 concrete classes, plus API and visitor
	assert.Len(t, written, 6)
	assert.Len(t, mem.Files, 6)
	assert.Contains(t, mem.Files, filepath.Join("out", "Expr.txt"))
	assert.Contains(t, mem.Files, filepath.Join("out", "Api.txt"))
	assert.Contains(t, mem.Files, filepath.Join("out", "Visitor.txt"))
}

func TestGenerateIsDeterministic(t *testing.T) {
	reg := buildRegistry(t, sampleConfig)
	cfg := Config{OutputRoot: "out", Prefix: "AST"}

	first := NewMemWriter()
	_, err := NewDriver(&stubBackend{}, first, cfg, zap.NewNop().Sugar()).Generate(reg)
	require.NoError(t, err)

	second := NewMemWriter()
	_, err = NewDriver(&stubBackend{}, second, cfg, zap.NewNop().Sugar()).Generate(reg)
	require.NoError(t, err)

	require.Equal(t, first.Paths(), second.Paths())
	for _, path := range first.Paths() {
		assert.Equal(t, first.Files[path], second.Files[path], path)
	}
}

func TestPrefixAppliedToFinalSegmentOnly(t *testing.T) {
	reg := buildRegistry(t, `abstract Expr()
Expr Op::Plus(Expr, Expr)
`)
	backend := &stubBackend{}
	driver := NewDriver(backend, NewMemWriter(), Config{OutputRoot: "out", Prefix: "AST"}, zap.NewNop().Sugar())
	written, err := driver.Generate(reg)
	require.NoError(t, err)

	require.Len(t, backend.classes, 2)
	assert.Equal(t, "ASTExpr", backend.classes[0].Name)
	assert.Equal(t, "Op::ASTPlus", backend.classes[1].Name)
	assert.Equal(t, []string{"Op", "ASTPlus"}, backend.classes[1].Segments)
	assert.Equal(t, "ASTExpr", backend.classes[1].Super)
	assert.Contains(t, written, filepath.Join("out", "Op", "ASTPlus.txt"))
}

func TestFieldContexts(t *testing.T) {
	reg := buildRegistry(t, sampleConfig)
	backend := &stubBackend{}
	_, err := NewDriver(backend, NewMemWriter(), Config{Prefix: "AST"}, zap.NewNop().Sugar()).Generate(reg)
	require.NoError(t, err)

	var list *ClassContext
	for _, ctx := range backend.classes {
		if ctx.Name == "ASTExprList" {
			list = ctx
		}
	}
	require.NotNil(t, list)
	require.Len(t, list.Fields, 2)
	assert.Equal(t, FieldContext{Name: "expr", Accessor: "getExpr", Target: "ASTExpr"}, list.Fields[0])
	assert.Equal(t, FieldContext{Name: "exprList", Accessor: "getExprList", Target: "ASTExprList"}, list.Fields[1])
}

func TestSuperFieldsCarrySupertypeConstructorShape(t *testing.T) {
	reg := buildRegistry(t, sampleConfig)
	backend := &stubBackend{}
	_, err := NewDriver(backend, NewMemWriter(), Config{Prefix: "AST"}, zap.NewNop().Sugar()).Generate(reg)
	require.NoError(t, err)

	byName := make(map[string]*ClassContext)
	for _, ctx := range backend.classes {
		byName[ctx.Name] = ctx
	}

	// A concrete supertype's fields ride along so backends can chain its
	// constructor; an abstract supertype contributes none
	empty := byName["ASTEmptyExprList"]
	require.NotNil(t, empty)
	require.Len(t, empty.SuperFields, 2)
	assert.Equal(t, "expr", empty.SuperFields[0].Name)
	assert.Equal(t, "exprList", empty.SuperFields[1].Name)

	number := byName["ASTNumber"]
	require.NotNil(t, number)
	assert.Empty(t, number.SuperFields)
}

func TestAPIAndVisitorContextsCoverConcreteOnly(t *testing.T) {
	reg := buildRegistry(t, sampleConfig)
	backend := &stubBackend{}
	_, err := NewDriver(backend, NewMemWriter(), Config{}, zap.NewNop().Sugar()).Generate(reg)
	require.NoError(t, err)

	require.NotNil(t, backend.api)
	assert.Equal(t, []string{"Number", "ExprList", "EmptyExprList"}, backend.api.Classes)
	assert.Equal(t, "Number", backend.api.Entries[0].Shorthand)

	require.NotNil(t, backend.visitor)
	names := make([]string, len(backend.visitor.Methods))
	for i, m := range backend.visitor.Methods {
		names[i] = m.Name
	}
	// Abstract Expr contributes no dispatch method
	assert.Equal(t, []string{"visitNumber", "visitExprList", "visitEmptyExprList"}, names)
}

func TestRenderFailureAborts(t *testing.T) {
	reg := buildRegistry(t, sampleConfig)
	backend := &stubBackend{renderErr: errors.New("template exploded")}
	mem := NewMemWriter()

	_, err := NewDriver(backend, mem, Config{}, zap.NewNop().Sugar()).Generate(reg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrRender))
	assert.Contains(t, err.Error(), "template exploded")
	// Aborted on the first class: nothing was written
	assert.Empty(t, mem.Files)
}

func TestBackendTable(t *testing.T) {
	Register(&stubBackend{})
	defer delete(backends, "stub")

	b, err := Lookup("stub")
	require.NoError(t, err)
	assert.Equal(t, "stub", b.Language())

	b, err = Lookup("  STUB ")
	require.NoError(t, err)
	assert.Equal(t, "stub", b.Language())

	_, err = Lookup("cobol")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownBackend))
	assert.Contains(t, err.Error(), "cobol")
}

func TestQualifiedNameHelpers(t *testing.T) {
	assert.Equal(t, "Plus", Simple("Op::Plus"))
	assert.Equal(t, "Expr", Simple("Expr"))
	assert.Equal(t, []string{"Op", "Plus"}, Segments("Op::Plus"))
	assert.Equal(t, "Op::ASTPlus", prefixQualified("AST", "Op::Plus"))
	assert.Equal(t, "Plus", prefixQualified("", "Plus"))
}

func TestEmptyRegistryStillEmitsWholeModelArtifacts(t *testing.T) {
	reg := buildRegistry(t, "")
	mem := NewMemWriter()
	written, err := NewDriver(&stubBackend{}, mem, Config{}, zap.NewNop().Sugar()).Generate(reg)
	require.NoError(t, err)
	assert.Len(t, written, 2)
	assert.True(t, strings.HasSuffix(written[0], "Api.txt"))
	assert.True(t, strings.HasSuffix(written[1], "Visitor.txt"))
}
