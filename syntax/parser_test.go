package syntax

import (
	"bufio"
	"strings"
	"testing"

	"aslc/ast"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *ast.Program {
	prog, err := NewParser(bufio.NewReader(strings.NewReader(src))).Parse()
	require.NoError(t, err)
	return prog
}

func TestParser_functionShapes(t *testing.T) {
	prog := parse(t, `
		func f(x : int, v : array[5] of float) : bool
			var a, b : int
			var c : char
			return true;
		endfunc

		func main()
		endfunc
	`)

	require.Len(t, prog.Funcs, 2)

	f := prog.Funcs[0]
	assert.Equal(t, "f", f.Name)
	require.Len(t, f.Params, 2)
	assert.Equal(t, "x", f.Params[0].Name)
	assert.False(t, f.Params[0].Type.IsArray)
	assert.Equal(t, ast.BasicInt, f.Params[0].Type.Basic)
	assert.True(t, f.Params[1].Type.IsArray)
	assert.Equal(t, uint32(5), f.Params[1].Type.Size)
	assert.Equal(t, ast.BasicFloat, f.Params[1].Type.Basic)

	require.NotNil(t, f.Return)
	assert.Equal(t, ast.BasicBool, f.Return.Basic)

	require.Len(t, f.Decls, 2)
	assert.Equal(t, []string{"a", "b"}, f.Decls[0].Names)
	assert.Equal(t, []string{"c"}, f.Decls[1].Names)

	require.Len(t, f.Body, 1)
	ret := f.Body[0].(*ast.ReturnStmt)
	assert.NotNil(t, ret.Value)

	m := prog.Funcs[1]
	assert.Equal(t, "main", m.Name)
	assert.Nil(t, m.Return)
	assert.Empty(t, m.Decls)
	assert.Empty(t, m.Body)
}

func TestParser_statements(t *testing.T) {
	prog := parse(t, `
		func main()
			var a : array[3] of int
			var x : int
			a[0] = x + 1;
			if x < 3 then x = 1; else x = 2; endif
			while x > 0 do x = x - 1; endwhile
			f(x, a);
			read a[1];
			write x;
			write "done";
			return;
		endfunc
	`)

	body := prog.Funcs[0].Body
	require.Len(t, body, 8)

	asn := body[0].(*ast.AssignStmt)
	assert.Equal(t, "a", asn.Lhs.Ident.Name)
	assert.NotNil(t, asn.Lhs.Index)
	_, ok := asn.Rhs.(*ast.BinaryOp)
	assert.True(t, ok)

	ifs := body[1].(*ast.IfStmt)
	assert.Len(t, ifs.Then, 1)
	assert.Len(t, ifs.Else, 1)

	whl := body[2].(*ast.WhileStmt)
	assert.Len(t, whl.Body, 1)

	call := body[3].(*ast.ProcCallStmt)
	assert.Equal(t, "f", call.Call.Ident.Name)
	assert.Len(t, call.Call.Args, 2)

	rd := body[4].(*ast.ReadStmt)
	assert.NotNil(t, rd.Target.Index)

	_, ok = body[5].(*ast.WriteExprStmt)
	assert.True(t, ok)

	ws := body[6].(*ast.WriteStrStmt)
	assert.Equal(t, `"done"`, ws.Value)

	ret := body[7].(*ast.ReturnStmt)
	assert.Nil(t, ret.Value)
}

func TestParser_ifWithoutElse(t *testing.T) {
	prog := parse(t, `
		func main()
			var x : int
			if x == 0 then x = 1; endif
		endfunc
	`)

	ifs := prog.Funcs[0].Body[0].(*ast.IfStmt)
	assert.Len(t, ifs.Then, 1)
	assert.Nil(t, ifs.Else)
}

func TestParser_precedence(t *testing.T) {
	prog := parse(t, `
		func main()
			var b : bool
			b = 1 + 2 * 3 < 4 and not b or b;
		endfunc
	`)

	// ((((1 + (2 * 3)) < 4) and (not b)) or b)
	rhs := prog.Funcs[0].Body[0].(*ast.AssignStmt).Rhs
	assert.Equal(t, "((((1 + (2 * 3)) < 4) and not b) or b)", ast.ExprString(rhs))
}

func TestParser_unaryAndCalls(t *testing.T) {
	prog := parse(t, `
		func main()
			var x : int
			x = -x + +g(x, 1);
		endfunc
	`)

	rhs := prog.Funcs[0].Body[0].(*ast.AssignStmt).Rhs
	assert.Equal(t, "(-x + +g(x, 1))", ast.ExprString(rhs))
}

func TestParser_syntaxErrors(t *testing.T) {
	cases := []string{
		"func main( endfunc",
		"func main() x = ; endfunc",
		"func main() if 1 then endfunc",
		"func main() var x int endfunc",
		"func 3() endfunc",
		"func main() write 1 endfunc",
	}

	for _, src := range cases {
		_, err := NewParser(bufio.NewReader(strings.NewReader(src))).Parse()
		assert.Error(t, err, src)
	}
}

func TestParser_spans(t *testing.T) {
	prog := parse(t, "func main()\n  var x : int\n  x = 1;\nendfunc\n")

	fn := prog.Funcs[0]
	assert.Equal(t, 1, fn.Span().StartLine)
	assert.Equal(t, 4, fn.Span().EndLine)

	asn := fn.Body[0].(*ast.AssignStmt)
	assert.Equal(t, 3, asn.Span().StartLine)
	assert.Equal(t, 3, asn.Lhs.Span().StartCol)
}
