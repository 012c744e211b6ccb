package walk

import (
	"aslc/ast"
	"aslc/report"
	"aslc/sem"
	"aslc/types"
)

// SymbolCollector is the first semantic pass.  It walks the tree once,
// creating the lexical scopes, registering every declaration, and decorating
// the program, function, parameter, and type nodes with their scope and type
// attributes for the later passes.
type SymbolCollector struct {
	types   *types.Manager
	symbols *sem.SymTable
	decors  *sem.Decorations
	errs    *report.Reporter
}

// CollectSymbols runs the symbols pass over a program.
func CollectSymbols(prog *ast.Program, tm *types.Manager, st *sem.SymTable, dec *sem.Decorations, errs *report.Reporter) {
	sc := &SymbolCollector{types: tm, symbols: st, decors: dec, errs: errs}
	sc.collectProgram(prog)
}

// collectProgram pushes the global scope, records it on the program node, and
// visits every function.
func (sc *SymbolCollector) collectProgram(prog *ast.Program) {
	scopeId := sc.symbols.PushNewScope(sem.GlobalScopeName)
	sc.decors.PutScope(prog, scopeId)

	for _, fn := range prog.Funcs {
		sc.collectFunction(fn)
	}

	sc.symbols.PopScope()
}

// collectFunction builds a function's nested scope and then registers the
// function symbol itself.  The symbol is added to the enclosing scope only
// after the nested scope has been popped: the function is visible to sibling
// functions while its parameters still shadow globals.
func (sc *SymbolCollector) collectFunction(fn *ast.FuncDef) {
	scopeId := sc.symbols.PushNewScope(fn.Name)
	sc.decors.PutScope(fn, scopeId)

	paramTys := make([]types.TypeId, 0, len(fn.Params))
	for _, param := range fn.Params {
		paramTys = append(paramTys, sc.collectParameter(param))
	}

	for _, decl := range fn.Decls {
		sc.collectVariableDecl(decl)
	}

	sc.symbols.PopScope()

	if sc.symbols.FindInCurrentScope(fn.Name) {
		sc.errs.Report(report.ErrDeclaredIdent, fn.NameSpan, fn.Name)
		return
	}

	retTy := sc.types.CreateVoidTy()
	if fn.Return != nil {
		retTy = sc.collectType(fn.Return)
	}

	fnTy := sc.types.CreateFunctionTy(paramTys, retTy)
	sc.decors.PutType(fn, fnTy)
	sc.symbols.AddFunction(fn.Name, fnTy)
}

// collectParameter registers one formal parameter in the current scope and
// returns its type for the enclosing function's signature.
func (sc *SymbolCollector) collectParameter(param *ast.Param) types.TypeId {
	t := sc.collectType(param.Type)
	sc.decors.PutType(param, t)

	if sc.symbols.FindInCurrentScope(param.Name) {
		sc.errs.Report(report.ErrDeclaredIdent, param.NameSpan, param.Name)
	} else {
		sc.symbols.AddParameter(param.Name, t)
	}

	return t
}

// collectVariableDecl registers each declared name with the declaration's
// type.
func (sc *SymbolCollector) collectVariableDecl(decl *ast.VarDecl) {
	t := sc.collectType(decl.Type)

	for i, name := range decl.Names {
		if sc.symbols.FindInCurrentScope(name) {
			sc.errs.Report(report.ErrDeclaredIdent, decl.NameSpans[i], name)
		} else {
			sc.symbols.AddLocalVar(name, t)
		}
	}
}

// collectType interns the type written by a type spec and decorates the node
// with it.
func (sc *SymbolCollector) collectType(ts *ast.TypeSpec) types.TypeId {
	var t types.TypeId
	switch ts.Basic {
	case ast.BasicInt:
		t = sc.types.CreateIntegerTy()
	case ast.BasicFloat:
		t = sc.types.CreateFloatTy()
	case ast.BasicBool:
		t = sc.types.CreateBooleanTy()
	case ast.BasicChar:
		t = sc.types.CreateCharacterTy()
	}

	if ts.IsArray {
		t = sc.types.CreateArrayTy(ts.Size, t)
	}

	sc.decors.PutType(ts, t)
	return t
}
