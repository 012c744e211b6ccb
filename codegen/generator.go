package codegen

import (
	"aslc/ast"
	"aslc/sem"
	"aslc/tac"
	"aslc/types"
)

// Generator is the code generation pass.  It re-walks the tree using the
// scope, type, and l-value decorations of the earlier passes and emits one
// TAC subroutine per function.  It must only run when type checking reported
// no errors.
type Generator struct {
	types   *types.Manager
	symbols *sem.SymTable
	decors  *sem.Decorations

	// Per-subroutine temporary and label counters.
	counters tac.Counters
}

// codeAttribs is the result of translating an expression: the symbolic
// location holding its value, the symbolic offset when that location is an
// array base, and the code computing it.
type codeAttribs struct {
	addr string
	offs string
	code []tac.Instruction
}

// Generate runs the codegen pass over a program and returns the TAC module.
func Generate(prog *ast.Program, tm *types.Manager, st *sem.SymTable, dec *sem.Decorations) *tac.Program {
	g := &Generator{types: tm, symbols: st, decors: dec}
	return g.genProgram(prog)
}

func (g *Generator) genProgram(prog *ast.Program) *tac.Program {
	g.symbols.PushThisScope(g.decors.GetScope(prog))

	module := &tac.Program{}
	for _, fn := range prog.Funcs {
		module.AddSubroutine(g.genFunction(fn))
	}

	g.symbols.PopScope()
	return module
}

// genFunction assembles one subroutine: the synthetic result slot, the formal
// parameters, the locals, and the lowered body terminated by RETURN.
func (g *Generator) genFunction(fn *ast.FuncDef) *tac.Subroutine {
	g.symbols.PushThisScope(g.decors.GetScope(fn))

	subr := tac.NewSubroutine(fn.Name)
	g.counters.Reset()

	// The caller allocates an output slot for value-returning functions; it
	// is addressed as the first parameter.
	if fn.Return != nil {
		tRet := g.decors.GetType(fn.Return)
		subr.AddParam("_result", g.types.ToString(tRet), false)
	}

	// Arrays are passed by reference: the parameter holds a base pointer and
	// is declared with the element type's tag.
	for _, param := range fn.Params {
		tParam := g.decors.GetType(param)

		tag := tParam
		isArray := g.types.IsArrayTy(tParam)
		if isArray {
			tag = g.types.GetArrayElemType(tParam)
		}

		subr.AddParam(param.Name, g.types.ToString(tag), isArray)
	}

	for _, decl := range fn.Decls {
		t := g.decors.GetType(decl.Type)
		size := g.types.GetSizeOfType(t)

		tag := t
		if g.types.IsArrayTy(t) {
			tag = g.types.GetArrayElemType(t)
		}

		for _, name := range decl.Names {
			subr.AddVar(name, g.types.ToString(tag), size)
		}
	}

	var code []tac.Instruction
	for _, stmt := range fn.Body {
		code = append(code, g.genStmt(stmt)...)
	}
	code = append(code, tac.Return())
	subr.SetInstructions(code)

	g.symbols.PopScope()
	return subr
}

// -----------------------------------------------------------------------------

// fetchIndexed materializes an indexed value into a temporary.  When the
// attribs carry no offset the address is returned unchanged.  A base that is
// not a local array holds a pointer (an array parameter) and is dereferenced
// first.
func (g *Generator) fetchIndexed(ats codeAttribs) (string, []tac.Instruction) {
	if ats.offs == "" {
		return ats.addr, nil
	}

	temp := g.counters.NewTemp()
	if g.symbols.IsLocalVarClass(ats.addr) {
		return temp, []tac.Instruction{tac.LoadX(temp, ats.addr, ats.offs)}
	}

	base := g.counters.NewTemp()
	return temp, []tac.Instruction{tac.Load(base, ats.addr), tac.LoadX(temp, base, ats.offs)}
}

// derefParam replaces an array parameter address with a temporary holding its
// base pointer.  Other addresses pass through unchanged.
func (g *Generator) derefParam(addr string, code []tac.Instruction) (string, []tac.Instruction) {
	if !g.symbols.IsParameterClass(addr) {
		return addr, code
	}

	temp := g.counters.NewTemp()
	return temp, append(code, tac.Load(temp, addr))
}
