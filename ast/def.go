package ast

import "aslc/report"

// Program is the root node of an ASL syntax tree: an ordered list of function
// definitions.
type Program struct {
	ASTBase

	Funcs []*FuncDef
}

// FuncDef is a function definition.
type FuncDef struct {
	ASTBase

	// The function name and the span of its identifier token.
	Name     string
	NameSpan *report.TextSpan

	// The ordered formal parameters.
	Params []*Param

	// The declared return type.  Nil when the function returns nothing; always
	// a basic (non-array) type spec otherwise.
	Return *TypeSpec

	// The local variable declarations, in source order.
	Decls []*VarDecl

	// The body statements, in source order.
	Body []Stmt
}

// Param is a single formal parameter of a function definition.
type Param struct {
	ASTBase

	Name     string
	NameSpan *report.TextSpan
	Type     *TypeSpec
}

// VarDecl declares one or more local variables of a common type.
type VarDecl struct {
	ASTBase

	Names     []string
	NameSpans []*report.TextSpan
	Type      *TypeSpec
}

// Enumeration of the basic type keywords.
const (
	BasicInt = iota
	BasicFloat
	BasicBool
	BasicChar
)

// TypeSpec is a type written in source: either a basic type or a fixed-size
// array of a basic type.
type TypeSpec struct {
	ASTBase

	// Whether this is an array type.
	IsArray bool

	// The declared element count.  Only meaningful for arrays.
	Size uint32

	// The basic type: one of the Basic* constants.  For arrays this is the
	// element type.
	Basic int
}
