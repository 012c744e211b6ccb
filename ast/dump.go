package ast

import (
	"fmt"
	"strings"
)

// basicNames maps Basic* constants to their source keywords.
var basicNames = []string{"int", "float", "bool", "char"}

// Dump returns a compact, indented rendition of the tree for the debug
// harness.
func (p *Program) Dump() string {
	sb := &strings.Builder{}
	for _, fn := range p.Funcs {
		dumpFunc(sb, fn)
	}
	return sb.String()
}

func dumpFunc(sb *strings.Builder, fn *FuncDef) {
	fmt.Fprintf(sb, "func %s(", fn.Name)
	for i, p := range fn.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(sb, "%s: %s", p.Name, typeSpecString(p.Type))
	}
	sb.WriteString(")")
	if fn.Return != nil {
		sb.WriteString(" : " + typeSpecString(fn.Return))
	}
	sb.WriteString("\n")

	for _, d := range fn.Decls {
		fmt.Fprintf(sb, "  var %s : %s\n", strings.Join(d.Names, ", "), typeSpecString(d.Type))
	}
	dumpStmts(sb, fn.Body, "  ")
}

func typeSpecString(ts *TypeSpec) string {
	if ts.IsArray {
		return fmt.Sprintf("array[%d] of %s", ts.Size, basicNames[ts.Basic])
	}
	return basicNames[ts.Basic]
}

func dumpStmts(sb *strings.Builder, stmts []Stmt, indent string) {
	for _, s := range stmts {
		dumpStmt(sb, s, indent)
	}
}

func dumpStmt(sb *strings.Builder, s Stmt, indent string) {
	sb.WriteString(indent)
	switch v := s.(type) {
	case *AssignStmt:
		fmt.Fprintf(sb, "%s = %s\n", leftExprString(v.Lhs), ExprString(v.Rhs))
	case *IfStmt:
		fmt.Fprintf(sb, "if %s\n", ExprString(v.Cond))
		dumpStmts(sb, v.Then, indent+"  ")
		if v.Else != nil {
			sb.WriteString(indent + "else\n")
			dumpStmts(sb, v.Else, indent+"  ")
		}
	case *WhileStmt:
		fmt.Fprintf(sb, "while %s\n", ExprString(v.Cond))
		dumpStmts(sb, v.Body, indent+"  ")
	case *ProcCallStmt:
		fmt.Fprintf(sb, "%s\n", ExprString(v.Call))
	case *ReadStmt:
		fmt.Fprintf(sb, "read %s\n", leftExprString(v.Target))
	case *WriteExprStmt:
		fmt.Fprintf(sb, "write %s\n", ExprString(v.Value))
	case *WriteStrStmt:
		fmt.Fprintf(sb, "write %s\n", v.Value)
	case *ReturnStmt:
		if v.Value == nil {
			sb.WriteString("return\n")
		} else {
			fmt.Fprintf(sb, "return %s\n", ExprString(v.Value))
		}
	}
}

func leftExprString(le *LeftExpr) string {
	if le.Index != nil {
		return fmt.Sprintf("%s[%s]", le.Ident.Name, ExprString(le.Index))
	}
	return le.Ident.Name
}

// ExprString renders an expression back to a source-like form.
func ExprString(e Expr) string {
	switch v := e.(type) {
	case *Ident:
		return v.Name
	case *Literal:
		return v.Value
	case *Paren:
		return "(" + ExprString(v.Inner) + ")"
	case *UnaryOp:
		if v.Op == "not" {
			return "not " + ExprString(v.Operand)
		}
		return v.Op + ExprString(v.Operand)
	case *BinaryOp:
		return fmt.Sprintf("(%s %s %s)", ExprString(v.Lhs), v.Op, ExprString(v.Rhs))
	case *ArrayAccess:
		return fmt.Sprintf("%s[%s]", v.Ident.Name, ExprString(v.Index))
	case *FuncCall:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = ExprString(a)
		}
		return fmt.Sprintf("%s(%s)", v.Ident.Name, strings.Join(args, ", "))
	}
	return "?"
}
