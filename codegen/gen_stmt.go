package codegen

import (
	"strconv"

	"aslc/ast"
	"aslc/tac"
)

// genStmt lowers a single statement to an instruction sequence.
func (g *Generator) genStmt(stmt ast.Stmt) []tac.Instruction {
	switch v := stmt.(type) {
	case *ast.AssignStmt:
		return g.genAssignStmt(v)
	case *ast.IfStmt:
		return g.genIfStmt(v)
	case *ast.WhileStmt:
		return g.genWhileStmt(v)
	case *ast.ProcCallStmt:
		// The call sequence is emitted as for an expression; any popped
		// result lands in a dead temporary.
		return g.genFuncCall(v.Call).code
	case *ast.ReadStmt:
		return g.genReadStmt(v)
	case *ast.WriteExprStmt:
		return g.genWriteExprStmt(v)
	case *ast.WriteStrStmt:
		return []tac.Instruction{tac.WriteS(v.Value)}
	case *ast.ReturnStmt:
		return g.genReturnStmt(v)
	}

	return nil
}

// genAssignStmt lowers an assignment.  The four shapes are: scalar into
// scalar, scalar into an indexed slot, whole array into array, and indexed
// element as source.
func (g *Generator) genAssignStmt(stmt *ast.AssignStmt) []tac.Instruction {
	ats1 := g.genLeftExpr(stmt.Lhs)
	addr1, offs1 := ats1.addr, ats1.offs
	tLeft := g.decors.GetType(stmt.Lhs)

	ats2 := g.genExpr(stmt.Rhs)
	addr2, offs2 := ats2.addr, ats2.offs

	tRight := g.decors.GetType(stmt.Rhs)

	code := append(ats1.code, ats2.code...)

	if g.types.IsFunctionTy(tRight) {
		tRight = g.types.GetFuncReturnType(tRight)
	}

	// Implicit widening of the right-hand side.
	if g.types.IsFloatTy(tLeft) && g.types.IsIntegerTy(tRight) {
		temp := g.counters.NewTemp()
		code = append(code, tac.Float(temp, addr2))
		addr2 = temp
		tRight = g.types.CreateFloatTy()
	}

	// For an indexed target the interesting type is the array itself.
	if stmt.Lhs.Index != nil {
		tLeft = g.decors.GetType(stmt.Lhs.Ident)
	}

	exprIsIndexed := offs2 != ""

	switch {
	case g.types.IsArrayTy(tLeft) && !exprIsIndexed:
		if offs1 != "" {
			// Scalar into an indexed slot.
			return append(code, tac.XLoad(addr1, offs1, addr2))
		}

		// Whole-array copy, element by element.  Array parameters hold base
		// pointers and are dereferenced first.
		addr1, code = g.derefParam(addr1, code)
		addr2, code = g.derefParam(addr2, code)

		arraySize := int(g.types.GetArraySize(tLeft))
		tempOffs := g.counters.NewTemp()
		tempRight := g.counters.NewTemp()
		for i := 0; i < arraySize; i++ {
			index := strconv.Itoa(i)
			code = append(code,
				tac.ILoad(tempOffs, index),
				tac.LoadX(tempRight, addr2, tempOffs),
				tac.XLoad(addr1, tempOffs, tempRight),
			)
		}
		return code

	case !g.types.IsArrayTy(tLeft) && exprIsIndexed:
		// Scalar variable receives an indexed element.
		addr2, code = g.derefParam(addr2, code)
		return append(code, tac.LoadX(addr1, addr2, offs2))

	case g.types.IsArrayTy(tLeft) && exprIsIndexed:
		// Indexed slot receives an indexed element.
		addr1, code = g.derefParam(addr1, code)
		addr2, code = g.derefParam(addr2, code)

		tempRight := g.counters.NewTemp()
		return append(code,
			tac.LoadX(tempRight, addr2, offs2),
			tac.XLoad(addr1, offs1, tempRight),
		)

	case g.types.IsFloatTy(tRight):
		return append(code, tac.FLoad(addr1, addr2))

	case g.types.IsCharacterTy(tRight):
		return append(code, tac.ChLoad(addr1, addr2))

	default:
		return append(code, tac.ILoad(addr1, addr2))
	}
}

func (g *Generator) genIfStmt(stmt *ast.IfStmt) []tac.Instruction {
	atsCond := g.genExpr(stmt.Cond)
	code := atsCond.code

	condAddr, fetch := g.fetchIndexed(atsCond)
	code = append(code, fetch...)

	var thenCode []tac.Instruction
	for _, s := range stmt.Then {
		thenCode = append(thenCode, g.genStmt(s)...)
	}

	label := g.counters.NewIfLabel()
	labelElse := "else" + label
	labelEndIf := "endif" + label

	if stmt.Else != nil {
		var elseCode []tac.Instruction
		for _, s := range stmt.Else {
			elseCode = append(elseCode, g.genStmt(s)...)
		}

		code = append(code, tac.FJump(condAddr, labelElse))
		code = append(code, thenCode...)
		code = append(code, tac.UJump(labelEndIf), tac.Label(labelElse))
		code = append(code, elseCode...)
		return append(code, tac.Label(labelEndIf))
	}

	code = append(code, tac.FJump(condAddr, labelEndIf))
	code = append(code, thenCode...)
	return append(code, tac.Label(labelEndIf))
}

func (g *Generator) genWhileStmt(stmt *ast.WhileStmt) []tac.Instruction {
	atsCond := g.genExpr(stmt.Cond)
	condCode := atsCond.code

	condAddr, fetch := g.fetchIndexed(atsCond)
	condCode = append(condCode, fetch...)

	var bodyCode []tac.Instruction
	for _, s := range stmt.Body {
		bodyCode = append(bodyCode, g.genStmt(s)...)
	}

	label := g.counters.NewWhileLabel()
	labelWhile := "while" + label
	labelEndWhile := "endwhile" + label

	code := []tac.Instruction{tac.Label(labelWhile)}
	code = append(code, condCode...)
	code = append(code, tac.FJump(condAddr, labelEndWhile))
	code = append(code, bodyCode...)
	return append(code, tac.UJump(labelWhile), tac.Label(labelEndWhile))
}

func (g *Generator) genReadStmt(stmt *ast.ReadStmt) []tac.Instruction {
	ats := g.genLeftExpr(stmt.Target)
	addr1, offs1 := ats.addr, ats.offs
	code := ats.code

	tid := g.decors.GetType(stmt.Target)

	// An indexed target is read into a temporary and then stored.
	temp := addr1
	if offs1 != "" {
		temp = g.counters.NewTemp()
	}

	switch {
	case g.types.IsFloatTy(tid):
		code = append(code, tac.ReadF(temp))
	case g.types.IsCharacterTy(tid):
		code = append(code, tac.ReadC(temp))
	default:
		code = append(code, tac.ReadI(temp))
	}

	if offs1 != "" {
		code = append(code, tac.XLoad(addr1, offs1, temp))
	}

	return code
}

func (g *Generator) genWriteExprStmt(stmt *ast.WriteExprStmt) []tac.Instruction {
	ats := g.genExpr(stmt.Value)
	code := ats.code

	addr, fetch := g.fetchIndexed(ats)
	code = append(code, fetch...)

	tid := g.decors.GetType(stmt.Value)
	switch {
	case g.types.IsFloatTy(tid):
		return append(code, tac.WriteF(addr))
	case g.types.IsCharacterTy(tid):
		return append(code, tac.WriteC(addr))
	default:
		return append(code, tac.WriteI(addr))
	}
}

func (g *Generator) genReturnStmt(stmt *ast.ReturnStmt) []tac.Instruction {
	if stmt.Value == nil {
		return []tac.Instruction{tac.Return()}
	}

	ats := g.genExpr(stmt.Value)
	code := ats.code

	addr, fetch := g.fetchIndexed(ats)
	code = append(code, fetch...)

	return append(code, tac.Load("_result", addr), tac.Return())
}
