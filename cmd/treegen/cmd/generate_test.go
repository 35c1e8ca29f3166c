package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags clears persistent flag state left over from earlier executions.
func resetFlags(t *testing.T) {
	t.Helper()
	for _, name := range []string{"prefix", "output", "lang", "json", "verbose"} {
		f := RootCmd.PersistentFlags().Lookup(name)
		require.NotNil(t, f)
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	}
}

const sampleTree = `abstract Expr()
Expr Number(scalar value)
ExprList(Expr, ExprList)
ExprList EmptyExprList()
`

func TestGenerateAndCheckEndToEnd(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	t.Chdir(dir)

	cfgFile := filepath.Join(dir, "tree.cfg")
	require.NoError(t, os.WriteFile(cfgFile, []byte(sampleTree), 0644))
	out := filepath.Join(dir, "src")

	RootCmd.SetArgs([]string{"-l", "java", "-o", out, "-p", "AST", cfgFile})
	require.NoError(t, RootCmd.Execute())

	for _, name := range []string{
		"ASTExpr.java", "ASTNumber.java", "ASTExprList.java", "ASTEmptyExprList.java",
		"ASTApi.java", "ASTVisitor.java",
	} {
		assert.FileExists(t, filepath.Join(out, "tree", name))
	}

	RootCmd.SetArgs([]string{"check", "-l", "java", "-o", out, "-p", "AST", cfgFile})
	require.NoError(t, RootCmd.Execute())

	// Tampering makes check fail
	require.NoError(t, os.WriteFile(filepath.Join(out, "tree", "ASTExpr.java"), []byte("edited"), 0644))
	RootCmd.SetArgs([]string{"check", "-l", "java", "-o", out, "-p", "AST", cfgFile})
	require.Error(t, RootCmd.Execute())
}

func TestGenerateAllFansOutPerLanguage(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	t.Chdir(dir)

	cfgFile := filepath.Join(dir, "tree.cfg")
	require.NoError(t, os.WriteFile(cfgFile, []byte(sampleTree), 0644))
	out := filepath.Join(dir, "gen")

	RootCmd.SetArgs([]string{"-l", "all", "-o", out, cfgFile})
	require.NoError(t, RootCmd.Execute())

	assert.FileExists(t, filepath.Join(out, "java", "tree", "Expr.java"))
	assert.FileExists(t, filepath.Join(out, "python", "expr.py"))
	assert.FileExists(t, filepath.Join(out, "typescript", "Expr.ts"))
}

func TestSyntaxErrorSurfacesLine(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	t.Chdir(dir)

	cfgFile := filepath.Join(dir, "tree.cfg")
	require.NoError(t, os.WriteFile(cfgFile, []byte("Expr Number("), 0644))

	RootCmd.SetArgs([]string{"-l", "java", "-o", filepath.Join(dir, "src"), cfgFile})
	err := RootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}
