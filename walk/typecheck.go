package walk

import (
	"aslc/ast"
	"aslc/report"
	"aslc/sem"
	"aslc/types"
)

// TypeChecker is the second semantic pass.  It revisits the scopes created by
// the symbols pass, decorates every expression and left-expression with a type
// and an l-value flag, and reports semantic errors.  Every check guards its
// operands with the error type so a faulty subexpression is reported exactly
// once.
type TypeChecker struct {
	types   *types.Manager
	symbols *sem.SymTable
	decors  *sem.Decorations
	errs    *report.Reporter

	// The type of the enclosing function, used to check return statements.
	currFuncTy types.TypeId
}

// CheckTypes runs the type-check pass over a program.
func CheckTypes(prog *ast.Program, tm *types.Manager, st *sem.SymTable, dec *sem.Decorations, errs *report.Reporter) {
	tc := &TypeChecker{types: tm, symbols: st, decors: dec, errs: errs}
	tc.checkProgram(prog)
}

// checkProgram re-enters the global scope, checks every function, and finally
// verifies that a proper main function exists.
func (tc *TypeChecker) checkProgram(prog *ast.Program) {
	tc.symbols.PushThisScope(tc.decors.GetScope(prog))

	for _, fn := range prog.Funcs {
		tc.checkFunction(fn)
	}

	if tc.symbols.NoMainProperlyDeclared(tc.types) {
		tc.errs.Report(report.ErrNoMainProperlyDeclared, prog.Span())
	}

	tc.symbols.PopScope()
}

func (tc *TypeChecker) checkFunction(fn *ast.FuncDef) {
	tc.symbols.PushThisScope(tc.decors.GetScope(fn))

	// A function whose declaration failed reads back as the error type, which
	// suppresses the return checks in its body.
	tc.currFuncTy = tc.decors.GetType(fn)

	for _, stmt := range fn.Body {
		tc.checkStmt(stmt)
	}

	tc.symbols.PopScope()
}

// -----------------------------------------------------------------------------

func (tc *TypeChecker) checkStmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		tc.checkStmt(stmt)
	}
}

func (tc *TypeChecker) checkStmt(stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.AssignStmt:
		tc.checkAssignStmt(v)
	case *ast.IfStmt:
		tc.checkCondition(v.Cond, v.Span())
		tc.checkStmts(v.Then)
		tc.checkStmts(v.Else)
	case *ast.WhileStmt:
		tc.checkCondition(v.Cond, v.Span())
		tc.checkStmts(v.Body)
	case *ast.ProcCallStmt:
		tc.checkFuncCall(v.Call)
	case *ast.ReadStmt:
		tc.checkReadStmt(v)
	case *ast.WriteExprStmt:
		tc.checkWriteExprStmt(v)
	case *ast.WriteStrStmt:
		// Nothing to check.
	case *ast.ReturnStmt:
		tc.checkReturnStmt(v)
	}
}

func (tc *TypeChecker) checkAssignStmt(stmt *ast.AssignStmt) {
	tc.checkLeftExpr(stmt.Lhs)
	t1 := tc.decors.GetType(stmt.Lhs)

	tc.checkExpr(stmt.Rhs)
	t2 := tc.decors.GetType(stmt.Rhs)

	if !tc.types.IsErrorTy(t1) && !tc.types.IsErrorTy(t2) &&
		!tc.types.CopyableTypes(t1, t2) {
		tc.errs.Report(report.ErrIncompatibleAssignment, stmt.Span())
	}

	if !tc.types.IsErrorTy(t1) && !tc.decors.GetIsLValue(stmt.Lhs) {
		tc.errs.Report(report.ErrNonReferenceableLeftExpr, stmt.Lhs.Span())
	}
}

// checkCondition checks the controlling expression of an if or while
// statement.
func (tc *TypeChecker) checkCondition(cond ast.Expr, span *report.TextSpan) {
	tc.checkExpr(cond)

	t := tc.decors.GetType(cond)
	if !tc.types.IsErrorTy(t) && !tc.types.IsBooleanTy(t) {
		tc.errs.Report(report.ErrBooleanRequired, span)
	}
}

func (tc *TypeChecker) checkReadStmt(stmt *ast.ReadStmt) {
	tc.checkLeftExpr(stmt.Target)

	t := tc.decors.GetType(stmt.Target)
	if !tc.types.IsErrorTy(t) && !tc.types.IsPrimitiveTy(t) && !tc.types.IsFunctionTy(t) {
		tc.errs.Report(report.ErrReadWriteRequireBasic, stmt.Span())
	}

	if !tc.types.IsErrorTy(t) && !tc.decors.GetIsLValue(stmt.Target) {
		tc.errs.Report(report.ErrNonReferenceableExpression, stmt.Span())
	}
}

func (tc *TypeChecker) checkWriteExprStmt(stmt *ast.WriteExprStmt) {
	tc.checkExpr(stmt.Value)

	t := tc.decors.GetType(stmt.Value)
	if !tc.types.IsErrorTy(t) && !tc.types.IsPrimitiveTy(t) {
		tc.errs.Report(report.ErrReadWriteRequireBasic, stmt.Span())
	}
}

// checkReturnStmt checks that the returned expression is assignable to the
// enclosing function's declared return type.
func (tc *TypeChecker) checkReturnStmt(stmt *ast.ReturnStmt) {
	t1 := tc.types.CreateVoidTy()
	if stmt.Value != nil {
		tc.checkExpr(stmt.Value)
		t1 = tc.decors.GetType(stmt.Value)
	}

	if tc.types.IsErrorTy(tc.currFuncTy) {
		return
	}

	ret := tc.types.GetFuncReturnType(tc.currFuncTy)
	if !tc.types.CopyableTypes(ret, t1) {
		tc.errs.Report(report.ErrIncompatibleReturn, stmt.Span())
	}
}
