package codegen

import (
	"aslc/ast"
	"aslc/tac"
)

// genExpr lowers an expression and returns its code attributes.
func (g *Generator) genExpr(expr ast.Expr) codeAttribs {
	switch v := expr.(type) {
	case *ast.Ident:
		return codeAttribs{addr: v.Name}
	case *ast.Literal:
		return g.genLiteral(v)
	case *ast.Paren:
		return g.genExpr(v.Inner)
	case *ast.UnaryOp:
		return g.genUnaryOp(v)
	case *ast.BinaryOp:
		return g.genBinaryOp(v)
	case *ast.ArrayAccess:
		return g.genArrayAccess(v)
	case *ast.FuncCall:
		return g.genFuncCall(v)
	}

	return codeAttribs{}
}

// genLiteral loads a literal into a fresh temporary.  Character literals are
// stripped of their delimiting quotes; booleans load as 1 and 0.
func (g *Generator) genLiteral(lit *ast.Literal) codeAttribs {
	temp := g.counters.NewTemp()

	var code []tac.Instruction
	switch lit.Kind {
	case ast.FloatLit:
		code = []tac.Instruction{tac.FLoad(temp, lit.Value)}
	case ast.CharLit:
		value := lit.Value[1 : len(lit.Value)-1]
		code = []tac.Instruction{tac.ChLoad(temp, value)}
	case ast.BoolLit:
		value := "1"
		if lit.Value == "false" {
			value = "0"
		}
		code = []tac.Instruction{tac.ILoad(temp, value)}
	default:
		code = []tac.Instruction{tac.ILoad(temp, lit.Value)}
	}

	return codeAttribs{addr: temp, code: code}
}

func (g *Generator) genUnaryOp(uop *ast.UnaryOp) codeAttribs {
	ats := g.genExpr(uop.Operand)
	code := ats.code

	addr, fetch := g.fetchIndexed(ats)
	code = append(code, fetch...)

	t := g.decors.GetType(uop.Operand)

	temp := g.counters.NewTemp()
	switch uop.Op {
	case "not":
		code = append(code, tac.Not(temp, addr))
	case "+":
		temp = addr
	default: // -
		if g.types.IsFloatTy(t) {
			code = append(code, tac.FNeg(temp, addr))
		} else {
			code = append(code, tac.Neg(temp, addr))
		}
	}

	return codeAttribs{addr: temp, code: code}
}

func (g *Generator) genBinaryOp(bop *ast.BinaryOp) codeAttribs {
	ats1 := g.genExpr(bop.Lhs)
	ats2 := g.genExpr(bop.Rhs)

	code := append(ats1.code, ats2.code...)

	addr1, fetch1 := g.fetchIndexed(ats1)
	code = append(code, fetch1...)
	addr2, fetch2 := g.fetchIndexed(ats2)
	code = append(code, fetch2...)

	switch bop.Op {
	case "+", "-", "*", "/", "%":
		return g.genArithmetic(bop, addr1, addr2, code)
	case "==", "!=", "<", "<=", ">", ">=":
		return g.genRelational(bop, addr1, addr2, code)
	default: // and, or
		temp := g.counters.NewTemp()
		if bop.Op == "and" {
			code = append(code, tac.And(temp, addr1, addr2))
		} else {
			code = append(code, tac.Or(temp, addr1, addr2))
		}
		return codeAttribs{addr: temp, code: code}
	}
}

// genArithmetic lowers an arithmetic operator.  Integer operands use the
// integer instructions; otherwise any integer side is widened and the float
// instructions are used.  `%` is lowered as a div/mul/sub sequence.
func (g *Generator) genArithmetic(bop *ast.BinaryOp, addr1, addr2 string, code []tac.Instruction) codeAttribs {
	t1 := g.decors.GetType(bop.Lhs)
	t2 := g.decors.GetType(bop.Rhs)

	temp := g.counters.NewTemp()

	if g.types.IsIntegerTy(t1) && g.types.IsIntegerTy(t2) {
		switch bop.Op {
		case "*":
			code = append(code, tac.Mul(temp, addr1, addr2))
		case "/":
			code = append(code, tac.Div(temp, addr1, addr2))
		case "%":
			temp2 := g.counters.NewTemp()
			temp3 := g.counters.NewTemp()
			code = append(code,
				tac.Div(temp2, addr1, addr2),
				tac.Mul(temp3, addr2, temp2),
				tac.Sub(temp, addr1, temp3),
			)
		case "+":
			code = append(code, tac.Add(temp, addr1, addr2))
		default: // -
			code = append(code, tac.Sub(temp, addr1, addr2))
		}

		return codeAttribs{addr: temp, code: code}
	}

	tempAddr1, tempAddr2 := addr1, addr2
	if g.types.IsIntegerTy(t1) {
		tempAddr1 = g.counters.NewTemp()
		code = append(code, tac.Float(tempAddr1, addr1))
	}
	if g.types.IsIntegerTy(t2) {
		tempAddr2 = g.counters.NewTemp()
		code = append(code, tac.Float(tempAddr2, addr2))
	}

	switch bop.Op {
	case "*":
		code = append(code, tac.FMul(temp, tempAddr1, tempAddr2))
	case "/":
		code = append(code, tac.FDiv(temp, tempAddr1, tempAddr2))
	case "%":
		temp2 := g.counters.NewTemp()
		temp3 := g.counters.NewTemp()
		code = append(code,
			tac.FDiv(temp2, tempAddr1, tempAddr2),
			tac.FMul(temp3, tempAddr2, temp2),
			tac.FSub(temp, tempAddr1, temp3),
		)
	case "+":
		code = append(code, tac.FAdd(temp, tempAddr1, tempAddr2))
	default: // -
		code = append(code, tac.FSub(temp, tempAddr1, tempAddr2))
	}

	return codeAttribs{addr: temp, code: code}
}

// genRelational lowers a relational operator.  Non-float operands compare
// with the integer instructions; otherwise both sides are widened to float
// temporaries first.  `!=` is equality followed by negation; `>` and `>=`
// swap the operands of `<` and `<=`.
func (g *Generator) genRelational(bop *ast.BinaryOp, addr1, addr2 string, code []tac.Instruction) codeAttribs {
	t1 := g.decors.GetType(bop.Lhs)
	t2 := g.decors.GetType(bop.Rhs)

	temp := g.counters.NewTemp()

	if !g.types.IsFloatTy(t1) && !g.types.IsFloatTy(t2) {
		switch bop.Op {
		case "==":
			code = append(code, tac.Eq(temp, addr1, addr2))
		case "!=":
			code = append(code, tac.Eq(temp, addr1, addr2), tac.Not(temp, temp))
		case ">":
			code = append(code, tac.Lt(temp, addr2, addr1))
		case "<":
			code = append(code, tac.Lt(temp, addr1, addr2))
		case ">=":
			code = append(code, tac.Le(temp, addr2, addr1))
		default: // <=
			code = append(code, tac.Le(temp, addr1, addr2))
		}

		return codeAttribs{addr: temp, code: code}
	}

	tempAddr1, tempAddr2 := addr1, addr2
	if !g.types.IsFloatTy(t1) {
		tempAddr1 = g.counters.NewTemp()
		code = append(code, tac.Float(tempAddr1, addr1))
	}
	if !g.types.IsFloatTy(t2) {
		tempAddr2 = g.counters.NewTemp()
		code = append(code, tac.Float(tempAddr2, addr2))
	}

	switch bop.Op {
	case "==":
		code = append(code, tac.FEq(temp, tempAddr1, tempAddr2))
	case "!=":
		code = append(code, tac.FEq(temp, tempAddr1, tempAddr2), tac.Not(temp, temp))
	case ">":
		code = append(code, tac.FLt(temp, tempAddr2, tempAddr1))
	case "<":
		code = append(code, tac.FLt(temp, tempAddr1, tempAddr2))
	case ">=":
		code = append(code, tac.FLe(temp, tempAddr2, tempAddr1))
	default: // <=
		code = append(code, tac.FLe(temp, tempAddr1, tempAddr2))
	}

	return codeAttribs{addr: temp, code: code}
}

// genArrayAccess yields the array name as the address and the index value as
// the offset; the element fetch happens at the consuming site.
func (g *Generator) genArrayAccess(acc *ast.ArrayAccess) codeAttribs {
	atsIndex := g.genExpr(acc.Index)
	return codeAttribs{addr: acc.Ident.Name, offs: atsIndex.addr, code: atsIndex.code}
}

// genLeftExpr lowers an assignment or read target.  An indexed target whose
// base is an array parameter is dereferenced here so the consuming site can
// store through the base pointer.
func (g *Generator) genLeftExpr(le *ast.LeftExpr) codeAttribs {
	addr := le.Ident.Name

	if le.Index == nil {
		return codeAttribs{addr: addr}
	}

	atsIndex := g.genExpr(le.Index)
	code := atsIndex.code
	offs := atsIndex.addr

	if g.symbols.IsParameterClass(addr) {
		temp := g.counters.NewTemp()
		code = append(code, tac.Load(temp, addr))
		addr = temp
	}

	return codeAttribs{addr: addr, offs: offs, code: code}
}

// genFuncCall lowers a call: reserve a result slot for value-returning
// callees, evaluate and fix up the arguments, push them in order, call, pop
// one slot per argument, and finally pop the result.
func (g *Generator) genFuncCall(call *ast.FuncCall) codeAttribs {
	funcName := call.Ident.Name
	tFunc := g.decors.GetType(call.Ident)

	var code []tac.Instruction
	if !g.types.IsVoidFunction(tFunc) {
		code = append(code, tac.PushEmpty())
	}

	var pushCode, popCode []tac.Instruction
	for i, arg := range call.Args {
		ats := g.genExpr(arg)
		code = append(code, ats.code...)

		tExpr := g.decors.GetType(arg)
		tParam := g.types.GetParameterType(tFunc, i)

		addr := ats.addr
		if !g.types.IsArrayTy(tParam) {
			var fetch []tac.Instruction
			addr, fetch = g.fetchIndexed(ats)
			code = append(code, fetch...)
		}

		if g.types.IsIntegerTy(tExpr) && g.types.IsFloatTy(tParam) {
			temp := g.counters.NewTemp()
			code = append(code, tac.Float(temp, addr))
			addr = temp
		} else if g.types.IsArrayTy(tParam) && g.symbols.IsLocalVarClass(addr) {
			// A local array is passed by materializing its address; an array
			// parameter is a base pointer already.
			temp := g.counters.NewTemp()
			code = append(code, tac.ALoad(temp, addr))
			addr = temp
		}

		pushCode = append(pushCode, tac.Push(addr))
		popCode = append(popCode, tac.PopEmpty())
	}

	code = append(code, pushCode...)
	code = append(code, tac.Call(funcName))
	code = append(code, popCode...)

	addr := ""
	if !g.types.IsVoidFunction(tFunc) {
		temp := g.counters.NewTemp()
		code = append(code, tac.Pop(temp))
		addr = temp
	}

	return codeAttribs{addr: addr, code: code}
}
