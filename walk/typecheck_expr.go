package walk

import (
	"aslc/ast"
	"aslc/report"
	"aslc/types"
)

// checkExpr type checks an expression, decorating the node with its type and
// l-value flag.
func (tc *TypeChecker) checkExpr(expr ast.Expr) {
	switch v := expr.(type) {
	case *ast.Ident:
		tc.checkIdent(v)
	case *ast.Literal:
		tc.checkLiteral(v)
	case *ast.Paren:
		tc.checkExpr(v.Inner)
		tc.decors.PutType(v, tc.decors.GetType(v.Inner))
		tc.decors.PutIsLValue(v, false)
	case *ast.UnaryOp:
		tc.checkUnaryOp(v)
	case *ast.BinaryOp:
		tc.checkBinaryOp(v)
	case *ast.ArrayAccess:
		tc.checkArrayAccess(v)
	case *ast.FuncCall:
		tc.checkFuncCall(v)

		// A call in expression position must produce a value.
		t := tc.decors.GetType(v)
		if tc.types.IsVoidTy(t) {
			tc.errs.Report(report.ErrIsNotFunction, v.Span())
			tc.decors.PutType(v, tc.types.CreateErrorTy())
			tc.decors.PutIsLValue(v, false)
		}
	}
}

// checkIdent resolves an identifier through the scope stack.  An undeclared
// identifier reads as an addressable error value so its uses do not produce
// follow-on errors.
func (tc *TypeChecker) checkIdent(id *ast.Ident) {
	if tc.symbols.FindInStack(id.Name) == -1 {
		tc.errs.Report(report.ErrUndeclaredIdent, id.Span(), id.Name)
		tc.decors.PutType(id, tc.types.CreateErrorTy())
		tc.decors.PutIsLValue(id, true)
		return
	}

	tc.decors.PutType(id, tc.symbols.GetType(id.Name))
	tc.decors.PutIsLValue(id, !tc.symbols.IsFunctionClass(id.Name))
}

func (tc *TypeChecker) checkLiteral(lit *ast.Literal) {
	switch lit.Kind {
	case ast.IntLit:
		tc.decors.PutType(lit, tc.types.CreateIntegerTy())
	case ast.FloatLit:
		tc.decors.PutType(lit, tc.types.CreateFloatTy())
	case ast.BoolLit:
		tc.decors.PutType(lit, tc.types.CreateBooleanTy())
	case ast.CharLit:
		tc.decors.PutType(lit, tc.types.CreateCharacterTy())
	}

	tc.decors.PutIsLValue(lit, false)
}

func (tc *TypeChecker) checkUnaryOp(uop *ast.UnaryOp) {
	tc.checkExpr(uop.Operand)
	t := tc.decors.GetType(uop.Operand)

	if uop.Op == "not" {
		if !tc.types.IsErrorTy(t) && !tc.types.IsBooleanTy(t) {
			tc.errs.Report(report.ErrIncompatibleOperator, uop.OpSpan, uop.Op)
		}

		t = tc.types.CreateBooleanTy()
	} else {
		if !tc.types.IsErrorTy(t) && !tc.types.IsNumericTy(t) {
			tc.errs.Report(report.ErrIncompatibleOperator, uop.OpSpan, uop.Op)
		}

		if tc.types.IsFloatTy(t) {
			t = tc.types.CreateFloatTy()
		} else {
			t = tc.types.CreateIntegerTy()
		}
	}

	tc.decors.PutType(uop, t)
	tc.decors.PutIsLValue(uop, false)
}

func (tc *TypeChecker) checkBinaryOp(bop *ast.BinaryOp) {
	tc.checkExpr(bop.Lhs)
	t1 := tc.decors.GetType(bop.Lhs)

	tc.checkExpr(bop.Rhs)
	t2 := tc.decors.GetType(bop.Rhs)

	var t types.TypeId
	switch bop.Op {
	case "+", "-", "*", "/", "%":
		t = tc.checkArithmetic(bop, t1, t2)
	case "==", "!=", "<", "<=", ">", ">=":
		if !tc.types.IsErrorTy(t1) && !tc.types.IsErrorTy(t2) &&
			!tc.types.ComparableTypes(t1, t2, bop.Op) {
			tc.errs.Report(report.ErrIncompatibleOperator, bop.OpSpan, bop.Op)
		}

		t = tc.types.CreateBooleanTy()
	default: // and, or
		if (!tc.types.IsErrorTy(t1) && !tc.types.IsBooleanTy(t1)) ||
			(!tc.types.IsErrorTy(t2) && !tc.types.IsBooleanTy(t2)) {
			tc.errs.Report(report.ErrIncompatibleOperator, bop.OpSpan, bop.Op)
		}

		t = tc.types.CreateBooleanTy()
	}

	tc.decors.PutType(bop, t)
	tc.decors.PutIsLValue(bop, false)
}

// checkArithmetic checks an arithmetic operator application and returns the
// result type.  `%` requires integer operands; the other operators accept any
// numeric operands and widen to float when either side is float.
func (tc *TypeChecker) checkArithmetic(bop *ast.BinaryOp, t1, t2 types.TypeId) types.TypeId {
	if bop.Op == "%" {
		if (!tc.types.IsErrorTy(t1) && !tc.types.IsIntegerTy(t1)) ||
			(!tc.types.IsErrorTy(t2) && !tc.types.IsIntegerTy(t2)) {
			tc.errs.Report(report.ErrIncompatibleOperator, bop.OpSpan, bop.Op)
		}

		return tc.types.CreateIntegerTy()
	}

	if (!tc.types.IsErrorTy(t1) && !tc.types.IsNumericTy(t1)) ||
		(!tc.types.IsErrorTy(t2) && !tc.types.IsNumericTy(t2)) {
		tc.errs.Report(report.ErrIncompatibleOperator, bop.OpSpan, bop.Op)
	}

	if tc.types.IsFloatTy(t1) || tc.types.IsFloatTy(t2) {
		return tc.types.CreateFloatTy()
	}
	return tc.types.CreateIntegerTy()
}

// checkArrayAccess checks an array element access in expression position.
func (tc *TypeChecker) checkArrayAccess(acc *ast.ArrayAccess) {
	tc.checkIdent(acc.Ident)
	t1 := tc.decors.GetType(acc.Ident)

	if !tc.types.IsErrorTy(t1) && !tc.types.IsArrayTy(t1) {
		tc.errs.Report(report.ErrNonArrayInArrayAccess, acc.Span())
	}

	tc.checkExpr(acc.Index)
	t2 := tc.decors.GetType(acc.Index)
	if !tc.types.IsErrorTy(t2) && !tc.types.IsIntegerTy(t2) {
		tc.errs.Report(report.ErrNonIntegerIndexInArrayAccess, acc.Index.Span())
	}

	t := tc.types.CreateErrorTy()
	isLValue := false
	if tc.types.IsArrayTy(t1) {
		t = tc.types.GetArrayElemType(t1)
		isLValue = true
	}

	tc.decors.PutType(acc, t)
	tc.decors.PutIsLValue(acc, isLValue)
}

// checkLeftExpr checks an assignment or read target: an identifier optionally
// indexed by an expression.
func (tc *TypeChecker) checkLeftExpr(le *ast.LeftExpr) {
	tc.checkIdent(le.Ident)
	t1 := tc.decors.GetType(le.Ident)

	if le.Index == nil {
		tc.decors.PutType(le, t1)
		tc.decors.PutIsLValue(le, tc.decors.GetIsLValue(le.Ident))
		return
	}

	if !tc.types.IsErrorTy(t1) && !tc.types.IsArrayTy(t1) {
		tc.errs.Report(report.ErrNonArrayInArrayAccess, le.Span())
	}

	tc.checkExpr(le.Index)
	t2 := tc.decors.GetType(le.Index)
	if !tc.types.IsErrorTy(t2) && !tc.types.IsIntegerTy(t2) {
		tc.errs.Report(report.ErrNonIntegerIndexInArrayAccess, le.Index.Span())
	}

	t := tc.types.CreateErrorTy()
	isLValue := false
	if tc.types.IsArrayTy(t1) {
		t = tc.types.GetArrayElemType(t1)
		isLValue = true
	}

	tc.decors.PutType(le, t)
	tc.decors.PutIsLValue(le, isLValue)
}

// checkFuncCall checks a call's callee, arity, and argument types, and
// decorates the call node with the callee's return type.  In statement
// position a void result is fine; expression contexts reject it afterwards.
func (tc *TypeChecker) checkFuncCall(call *ast.FuncCall) {
	tc.checkIdent(call.Ident)
	tFunc := tc.decors.GetType(call.Ident)

	if !tc.types.IsFunctionTy(tFunc) && !tc.types.IsErrorTy(tFunc) {
		tc.errs.Report(report.ErrIsNotCallable, call.Ident.Span(), call.Ident.Name)
	}

	for _, arg := range call.Args {
		tc.checkExpr(arg)
	}

	t := tc.types.CreateErrorTy()
	if tc.types.IsFunctionTy(tFunc) {
		t = tc.types.GetFuncReturnType(tFunc)

		if len(call.Args) != tc.types.GetNumOfParameters(tFunc) {
			tc.errs.Report(report.ErrNumberOfParameters, call.Ident.Span(), call.Ident.Name)
		} else {
			for i, arg := range call.Args {
				tExpr := tc.decors.GetType(arg)
				tParam := tc.types.GetParameterType(tFunc, i)

				if !tc.types.IsErrorTy(tExpr) && !tc.types.CopyableTypes(tParam, tExpr) {
					tc.errs.Report(report.ErrIncompatibleParameter, arg.Span(), i+1, call.Ident.Name)
				}
			}
		}
	}

	tc.decors.PutType(call, t)
	tc.decors.PutIsLValue(call, tc.decors.GetIsLValue(call.Ident))
}
