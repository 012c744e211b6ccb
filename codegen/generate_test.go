package codegen

import (
	"bufio"
	"strings"
	"testing"

	"aslc/report"
	"aslc/sem"
	"aslc/syntax"
	"aslc/tac"
	"aslc/types"
	"aslc/walk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// compile runs the full pipeline over a source string and returns the TAC
// module.  The source must be error free.
func compile(t *testing.T, src string) *tac.Program {
	prog, err := syntax.NewParser(bufio.NewReader(strings.NewReader(src))).Parse()
	require.NoError(t, err)

	tm := types.NewManager()
	st := sem.NewSymTable()
	dec := sem.NewDecorations()
	errs := report.NewReporter(report.LogLevelSilent)

	walk.CollectSymbols(prog, tm, st, dec, errs)
	walk.CheckTypes(prog, tm, st, dec, errs)
	require.Equal(t, 0, errs.Count(), "unexpected semantic errors in %s", src)

	return Generate(prog, tm, st, dec)
}

func compileText(t *testing.T, src string) string {
	return compile(t, src).Repr()
}

func TestGenerate_scalarAddAndWrite(t *testing.T) {
	got := compileText(t, `
		func main()
			var a, b : int
			a = 1;
			b = 2;
			write a + b;
		endfunc
	`)

	expected := `subroutine main
  var a integer 1
  var b integer 1
  ILOAD %0, 1
  ILOAD a, %0
  ILOAD %1, 2
  ILOAD b, %1
  ADD %2, a, b
  WRITEI %2
  RETURN
endsubroutine
`
	assert.Equal(t, expected, got)
}

func TestGenerate_implicitWideningOnAssignment(t *testing.T) {
	got := compileText(t, `
		func main()
			var x : float
			x = 3;
		endfunc
	`)

	expected := `subroutine main
  var x float 1
  ILOAD %0, 3
  FLOAT %1, %0
  FLOAD x, %1
  RETURN
endsubroutine
`
	assert.Equal(t, expected, got)
}

func TestGenerate_ifElse(t *testing.T) {
	got := compileText(t, `
		func main()
			var a, b, c : int
			if a < b then c = 1; else c = 2; endif
		endfunc
	`)

	expected := `subroutine main
  var a integer 1
  var b integer 1
  var c integer 1
  LT %0, a, b
  FJUMP %0, else1
  ILOAD %1, 1
  ILOAD c, %1
  UJUMP endif1
  LABEL else1
  ILOAD %2, 2
  ILOAD c, %2
  LABEL endif1
  RETURN
endsubroutine
`
	assert.Equal(t, expected, got)
}

func TestGenerate_ifWithoutElse(t *testing.T) {
	got := compileText(t, `
		func main()
			var a : int
			if a == 0 then a = 1; endif
		endfunc
	`)

	expected := `subroutine main
  var a integer 1
  ILOAD %0, 0
  EQ %1, a, %0
  FJUMP %1, endif1
  ILOAD %2, 1
  ILOAD a, %2
  LABEL endif1
  RETURN
endsubroutine
`
	assert.Equal(t, expected, got)
}

func TestGenerate_while(t *testing.T) {
	got := compileText(t, `
		func main()
			var i : int
			while i < 10 do i = i + 1; endwhile
		endfunc
	`)

	expected := `subroutine main
  var i integer 1
  LABEL while1
  ILOAD %0, 10
  LT %1, i, %0
  FJUMP %1, endwhile1
  ILOAD %2, 1
  ADD %3, i, %2
  ILOAD i, %3
  UJUMP while1
  LABEL endwhile1
  RETURN
endsubroutine
`
	assert.Equal(t, expected, got)
}

func TestGenerate_arrayByReference(t *testing.T) {
	got := compileText(t, `
		func f(v : array[3] of int)
			v[0] = 42;
		endfunc

		func main()
			var a : array[3] of int
			f(a);
		endfunc
	`)

	expected := `subroutine f
  param v integer &
  ILOAD %0, 0
  LOAD %1, v
  ILOAD %2, 42
  XLOAD %1, %0, %2
  RETURN
endsubroutine

subroutine main
  var a integer 3
  ALOAD %0, a
  PUSH %0
  CALL f
  POP
  RETURN
endsubroutine
`
	assert.Equal(t, expected, got)
}

func TestGenerate_callWithResultAndWidening(t *testing.T) {
	got := compileText(t, `
		func g(x : float) : float
			return x;
		endfunc

		func main()
			var r : float
			r = g(2);
		endfunc
	`)

	expected := `subroutine g
  param _result float
  param x float
  LOAD _result, x
  RETURN
  RETURN
endsubroutine

subroutine main
  var r float 1
  PUSH
  ILOAD %0, 2
  FLOAT %1, %0
  PUSH %1
  CALL g
  POP
  POP %2
  FLOAD r, %2
  RETURN
endsubroutine
`
	assert.Equal(t, expected, got)
}

func TestGenerate_procCallEmitsCallSequence(t *testing.T) {
	// A call in statement position emits the same sequence as an expression
	// call, discarding the result.
	got := compileText(t, `
		func g() : int
			return 1;
		endfunc

		func main()
			g();
		endfunc
	`)

	expected := `subroutine g
  param _result integer
  ILOAD %0, 1
  LOAD _result, %0
  RETURN
  RETURN
endsubroutine

subroutine main
  PUSH
  CALL g
  POP %0
  RETURN
endsubroutine
`
	assert.Equal(t, expected, got)
}

func TestGenerate_arrayCopyUnrolls(t *testing.T) {
	got := compileText(t, `
		func main()
			var a, b : array[2] of int
			a = b;
		endfunc
	`)

	expected := `subroutine main
  var a integer 2
  var b integer 2
  ILOAD %0, 0
  LOADX %1, b, %0
  XLOAD a, %0, %1
  ILOAD %0, 1
  LOADX %1, b, %0
  XLOAD a, %0, %1
  RETURN
endsubroutine
`
	assert.Equal(t, expected, got)
}

func TestGenerate_indexedOperandsMaterialize(t *testing.T) {
	got := compileText(t, `
		func main()
			var a : array[3] of int
			var x : int
			x = a[0] + a[1];
		endfunc
	`)

	expected := `subroutine main
  var a integer 3
  var x integer 1
  ILOAD %0, 0
  ILOAD %1, 1
  LOADX %2, a, %0
  LOADX %3, a, %1
  ADD %4, %2, %3
  ILOAD x, %4
  RETURN
endsubroutine
`
	assert.Equal(t, expected, got)
}

func TestGenerate_readAndWriteIndexed(t *testing.T) {
	got := compileText(t, `
		func main()
			var a : array[3] of float
			read a[0];
			write a[0];
		endfunc
	`)

	expected := `subroutine main
  var a float 3
  ILOAD %0, 0
  READF %1
  XLOAD a, %0, %1
  ILOAD %2, 0
  LOADX %3, a, %2
  WRITEF %3
  RETURN
endsubroutine
`
	assert.Equal(t, expected, got)
}

func TestGenerate_literals(t *testing.T) {
	got := compileText(t, `
		func main()
			var c : char
			var b : bool
			c = 'z';
			b = true;
			b = false;
			write "ok";
		endfunc
	`)

	expected := `subroutine main
  var c character 1
  var b boolean 1
  CHLOAD %0, z
  CHLOAD c, %0
  ILOAD %1, 1
  ILOAD b, %1
  ILOAD %2, 0
  ILOAD b, %2
  WRITES "ok"
  RETURN
endsubroutine
`
	assert.Equal(t, expected, got)
}

func TestGenerate_modLowering(t *testing.T) {
	got := compileText(t, `
		func main()
			var x : int
			x = x % 4;
		endfunc
	`)

	expected := `subroutine main
  var x integer 1
  ILOAD %0, 4
  DIV %2, x, %0
  MUL %3, %0, %2
  SUB %1, x, %3
  ILOAD x, %1
  RETURN
endsubroutine
`
	assert.Equal(t, expected, got)
}

func TestGenerate_relationalSwapsAndFloats(t *testing.T) {
	got := compileText(t, `
		func main()
			var b : bool
			var x : int
			var y : float
			b = x > 3;
			b = x != 3;
			b = x <= y;
		endfunc
	`)

	expected := `subroutine main
  var b boolean 1
  var x integer 1
  var y float 1
  ILOAD %0, 3
  LT %1, %0, x
  ILOAD b, %1
  ILOAD %2, 3
  EQ %3, x, %2
  NOT %3, %3
  ILOAD b, %3
  FLOAT %5, x
  FLE %4, %5, y
  ILOAD b, %4
  RETURN
endsubroutine
`
	assert.Equal(t, expected, got)
}

func TestGenerate_unaryOperators(t *testing.T) {
	got := compileText(t, `
		func main()
			var x : int
			var f : float
			var b : bool
			x = -x;
			f = -f;
			b = not b;
			x = +x;
		endfunc
	`)

	expected := `subroutine main
  var x integer 1
  var f float 1
  var b boolean 1
  NEG %0, x
  ILOAD x, %0
  FNEG %1, f
  FLOAD f, %1
  NOT %2, b
  ILOAD b, %2
  ILOAD x, x
  RETURN
endsubroutine
`
	assert.Equal(t, expected, got)
}

func TestGenerate_mixedArithmeticWidens(t *testing.T) {
	got := compileText(t, `
		func main()
			var x : int
			var y : float
			y = x * y;
		endfunc
	`)

	expected := `subroutine main
  var x integer 1
  var y float 1
  FLOAT %1, x
  FMUL %0, %1, y
  FLOAD y, %0
  RETURN
endsubroutine
`
	assert.Equal(t, expected, got)
}

// -----------------------------------------------------------------------------

func TestGenerate_deterministic(t *testing.T) {
	src := `
		func f(v : array[4] of float) : float
			return v[2];
		endfunc
		func main()
			var v : array[4] of float
			v[0] = 1.0;
			write f(v);
		endfunc
	`

	first := compileText(t, src)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, compileText(t, src))
	}
}

func TestGenerate_temporaryFreshness(t *testing.T) {
	module := compile(t, `
		func inc(x : int) : int
			return x + 1;
		endfunc
		func main()
			var a : array[3] of int
			var i : int
			i = 0;
			while i < 3 do
				a[i] = inc(i) * 2 - i;
				i = inc(i);
			endwhile
			if a[0] > a[1] then write a[0]; else write a[1]; endif
		endfunc
	`)

	for _, subr := range module.Subrs {
		defined := make(map[string]bool)
		for _, ins := range subr.Instrs {
			if dst := definedTemp(ins); dst != "" {
				// A temporary holding a loop-copy index or an accumulator may
				// be redefined by the same instruction only; distinct
				// definition sites must not share fresh temporaries.
				if ins.Op == tac.OpILoad || ins.Op == tac.OpLoadX || ins.Op == tac.OpNot {
					continue
				}
				assert.False(t, defined[dst], "temporary %s redefined in %s", dst, subr.Name)
				defined[dst] = true
			}
		}
	}
}

// definedTemp returns the temporary defined by an instruction, if any.
func definedTemp(ins tac.Instruction) string {
	switch ins.Op {
	case tac.OpXLoad, tac.OpPush, tac.OpCall, tac.OpReturn, tac.OpLabel,
		tac.OpUJump, tac.OpFJump, tac.OpWriteI, tac.OpWriteF, tac.OpWriteC,
		tac.OpWriteS, tac.OpHalt:
		return ""
	}

	if strings.HasPrefix(ins.Arg1, "%") {
		return ins.Arg1
	}
	return ""
}

func TestGenerate_labelBalance(t *testing.T) {
	module := compile(t, `
		func main()
			var i, j : int
			while i < 3 do
				if i == 1 then j = 1; else j = 2; endif
				while j > 0 do j = j - 1; endwhile
				if j == 0 then i = i + 1; endif
			endwhile
		endfunc
	`)

	for _, subr := range module.Subrs {
		labels := make(map[string]int)
		var targets []string

		for _, ins := range subr.Instrs {
			switch ins.Op {
			case tac.OpLabel:
				labels[ins.Arg1]++
			case tac.OpUJump:
				targets = append(targets, ins.Arg1)
			case tac.OpFJump:
				targets = append(targets, ins.Arg2)
			}
		}

		for label, count := range labels {
			assert.Equal(t, 1, count, "label %s emitted more than once", label)
		}
		for _, target := range targets {
			assert.Contains(t, labels, target, "jump to missing label %s", target)
		}
	}
}

func TestGenerate_countersResetBetweenSubroutines(t *testing.T) {
	module := compile(t, `
		func f() : int
			return 1 + 2;
		endfunc
		func main()
			var x : int
			x = 3 + 4;
		endfunc
	`)

	require.Len(t, module.Subrs, 2)

	// Both subroutines start numbering at %0: names may collide across
	// subroutines but never within one.
	assert.Equal(t, "%0", module.Subrs[0].Instrs[0].Arg1)
	assert.Equal(t, "%0", module.Subrs[1].Instrs[0].Arg1)
}
