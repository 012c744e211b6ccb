package syntax

import (
	"bufio"
	"strconv"

	"aslc/ast"
	"aslc/report"
)

// Parser is a recursive descent parser for ASL source files.  All parsing
// functions assume that they begin with the parser centered on the first token
// of their production and consume all tokens of their production, leaving the
// parser on the next token.  Syntax errors abort parsing immediately: they are
// raised as panics internally and surfaced as a *report.LocalError by Parse.
type Parser struct {
	// lexer is the Lexer this parser is using to lex the source file.
	lexer *Lexer

	// tok is the current token the parser is positioned on.
	tok *Token
}

// NewParser creates a new parser over the given reader.
func NewParser(r *bufio.Reader) *Parser {
	return &Parser{lexer: NewLexer(r)}
}

// Parse parses a whole source file into a program node.
func (p *Parser) Parse() (prog *ast.Program, err error) {
	defer func() {
		if x := recover(); x != nil {
			if lerr, ok := x.(*report.LocalError); ok {
				prog = nil
				err = lerr
			} else {
				panic(x)
			}
		}
	}()

	p.next()
	prog = p.parseProgram()
	return prog, nil
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.
func (p *Parser) next() {
	tok, err := p.lexer.NextToken()
	if err != nil {
		if lerr, ok := err.(*report.LocalError); ok {
			panic(lerr)
		}
		panic(report.Raise(p.spanHere(), "%s", err.Error()))
	}

	p.tok = tok
}

// got returns true if the parser is on a token of a given kind.
func (p *Parser) got(kind int) bool {
	return p.tok.Kind == kind
}

// assert rejects the current token if it is not of the given kind.
func (p *Parser) assert(kind int) {
	if !p.got(kind) {
		p.reject()
	}
}

// want asserts that the parser is on a token of the given kind and moves it
// forward, returning the matched token.
func (p *Parser) want(kind int) *Token {
	p.assert(kind)
	tok := p.tok
	p.next()
	return tok
}

// reject raises a syntax error on the current token.
func (p *Parser) reject() {
	if p.tok.Kind == TOK_EOF {
		panic(report.Raise(p.tok.Span, "unexpected end of file"))
	}
	panic(report.Raise(p.tok.Span, "unexpected token `%s`", p.tok.Value))
}

func (p *Parser) spanHere() *report.TextSpan {
	if p.tok != nil {
		return p.tok.Span
	}
	return nil
}

// -----------------------------------------------------------------------------

// parseProgram parses `function* EOF`.
func (p *Parser) parseProgram() *ast.Program {
	start := p.tok.Span

	var funcs []*ast.FuncDef
	for !p.got(TOK_EOF) {
		funcs = append(funcs, p.parseFunction())
	}

	return &ast.Program{
		ASTBase: ast.NewASTBaseOver(start, p.tok.Span),
		Funcs:   funcs,
	}
}

// parseFunction parses a function definition:
// `func ID ( (param (, param)*)? ) (: basic_type)? declarations statements endfunc`.
func (p *Parser) parseFunction() *ast.FuncDef {
	start := p.want(TOK_FUNC).Span
	nameTok := p.want(TOK_ID)

	p.want(TOK_LPAREN)
	var params []*ast.Param
	if !p.got(TOK_RPAREN) {
		params = append(params, p.parseParam())
		for p.got(TOK_COMMA) {
			p.next()
			params = append(params, p.parseParam())
		}
	}
	p.want(TOK_RPAREN)

	var ret *ast.TypeSpec
	if p.got(TOK_COLON) {
		p.next()
		ret = p.parseBasicType()
	}

	decls := p.parseDeclarations()
	body := p.parseStatements()

	end := p.want(TOK_ENDFUNC).Span

	return &ast.FuncDef{
		ASTBase:  ast.NewASTBaseOver(start, end),
		Name:     nameTok.Value,
		NameSpan: nameTok.Span,
		Params:   params,
		Return:   ret,
		Decls:    decls,
		Body:     body,
	}
}

// parseParam parses `ID : type`.
func (p *Parser) parseParam() *ast.Param {
	nameTok := p.want(TOK_ID)
	p.want(TOK_COLON)
	ts := p.parseType()

	return &ast.Param{
		ASTBase:  ast.NewASTBaseOver(nameTok.Span, ts.Span()),
		Name:     nameTok.Value,
		NameSpan: nameTok.Span,
		Type:     ts,
	}
}

// parseDeclarations parses `(var ID (, ID)* : type)*`.
func (p *Parser) parseDeclarations() []*ast.VarDecl {
	var decls []*ast.VarDecl

	for p.got(TOK_VAR) {
		start := p.tok.Span
		p.next()

		nameTok := p.want(TOK_ID)
		names := []string{nameTok.Value}
		spans := []*report.TextSpan{nameTok.Span}
		for p.got(TOK_COMMA) {
			p.next()
			nameTok = p.want(TOK_ID)
			names = append(names, nameTok.Value)
			spans = append(spans, nameTok.Span)
		}

		p.want(TOK_COLON)
		ts := p.parseType()

		decls = append(decls, &ast.VarDecl{
			ASTBase:   ast.NewASTBaseOver(start, ts.Span()),
			Names:     names,
			NameSpans: spans,
			Type:      ts,
		})
	}

	return decls
}

// parseType parses `array [ INTVAL ] of basic_type | basic_type`.
func (p *Parser) parseType() *ast.TypeSpec {
	if p.got(TOK_ARRAY) {
		start := p.tok.Span
		p.next()

		p.want(TOK_LBRACKET)
		sizeTok := p.want(TOK_INTLIT)
		p.want(TOK_RBRACKET)
		p.want(TOK_OF)

		elem := p.parseBasicType()

		size, err := strconv.ParseUint(sizeTok.Value, 10, 32)
		if err != nil {
			panic(report.Raise(sizeTok.Span, "invalid array size `%s`", sizeTok.Value))
		}

		return &ast.TypeSpec{
			ASTBase: ast.NewASTBaseOver(start, elem.Span()),
			IsArray: true,
			Size:    uint32(size),
			Basic:   elem.Basic,
		}
	}

	return p.parseBasicType()
}

// parseBasicType parses `int | float | bool | char`.
func (p *Parser) parseBasicType() *ast.TypeSpec {
	var basic int
	switch p.tok.Kind {
	case TOK_INT:
		basic = ast.BasicInt
	case TOK_FLOAT:
		basic = ast.BasicFloat
	case TOK_BOOL:
		basic = ast.BasicBool
	case TOK_CHAR:
		basic = ast.BasicChar
	default:
		p.reject()
	}

	ts := &ast.TypeSpec{ASTBase: ast.NewASTBaseOn(p.tok.Span), Basic: basic}
	p.next()
	return ts
}

// -----------------------------------------------------------------------------

// stmtFollows is the set of tokens that end a statement list.
var stmtFollows = map[int]struct{}{
	TOK_ENDFUNC:  {},
	TOK_ENDIF:    {},
	TOK_ELSE:     {},
	TOK_ENDWHILE: {},
	TOK_EOF:      {},
}

// parseStatements parses statements until a closing keyword is reached.
func (p *Parser) parseStatements() []ast.Stmt {
	var stmts []ast.Stmt

	for {
		if _, ok := stmtFollows[p.tok.Kind]; ok {
			return stmts
		}
		stmts = append(stmts, p.parseStatement())
	}
}

// parseStatement parses a single statement.
func (p *Parser) parseStatement() ast.Stmt {
	switch p.tok.Kind {
	case TOK_IF:
		return p.parseIfStmt()
	case TOK_WHILE:
		return p.parseWhileStmt()
	case TOK_READ:
		return p.parseReadStmt()
	case TOK_WRITE:
		return p.parseWriteStmt()
	case TOK_RETURN:
		return p.parseReturnStmt()
	case TOK_ID:
		return p.parseAssignOrCallStmt()
	default:
		p.reject()
		return nil
	}
}

// parseIfStmt parses `if expr then statements (else statements)? endif`.
func (p *Parser) parseIfStmt() ast.Stmt {
	start := p.want(TOK_IF).Span

	cond := p.parseExpr()
	p.want(TOK_THEN)
	then := p.parseStatements()

	var els []ast.Stmt
	if p.got(TOK_ELSE) {
		p.next()
		els = p.parseStatements()
	}

	end := p.want(TOK_ENDIF).Span

	return &ast.IfStmt{
		StmtBase: ast.StmtBase{ASTBase: ast.NewASTBaseOver(start, end)},
		Cond:     cond,
		Then:     then,
		Else:     els,
	}
}

// parseWhileStmt parses `while expr do statements endwhile`.
func (p *Parser) parseWhileStmt() ast.Stmt {
	start := p.want(TOK_WHILE).Span

	cond := p.parseExpr()
	p.want(TOK_DO)
	body := p.parseStatements()

	end := p.want(TOK_ENDWHILE).Span

	return &ast.WhileStmt{
		StmtBase: ast.StmtBase{ASTBase: ast.NewASTBaseOver(start, end)},
		Cond:     cond,
		Body:     body,
	}
}

// parseReadStmt parses `read left_expr ;`.
func (p *Parser) parseReadStmt() ast.Stmt {
	start := p.want(TOK_READ).Span
	target := p.parseLeftExpr()
	end := p.want(TOK_SEMI).Span

	return &ast.ReadStmt{
		StmtBase: ast.StmtBase{ASTBase: ast.NewASTBaseOver(start, end)},
		Target:   target,
	}
}

// parseWriteStmt parses `write (expr | STRING) ;`.
func (p *Parser) parseWriteStmt() ast.Stmt {
	start := p.want(TOK_WRITE).Span

	if p.got(TOK_STRLIT) {
		value := p.tok.Value
		p.next()
		end := p.want(TOK_SEMI).Span

		return &ast.WriteStrStmt{
			StmtBase: ast.StmtBase{ASTBase: ast.NewASTBaseOver(start, end)},
			Value:    value,
		}
	}

	value := p.parseExpr()
	end := p.want(TOK_SEMI).Span

	return &ast.WriteExprStmt{
		StmtBase: ast.StmtBase{ASTBase: ast.NewASTBaseOver(start, end)},
		Value:    value,
	}
}

// parseReturnStmt parses `return expr? ;`.
func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.want(TOK_RETURN).Span

	var value ast.Expr
	if !p.got(TOK_SEMI) {
		value = p.parseExpr()
	}
	end := p.want(TOK_SEMI).Span

	return &ast.ReturnStmt{
		StmtBase: ast.StmtBase{ASTBase: ast.NewASTBaseOver(start, end)},
		Value:    value,
	}
}

// parseAssignOrCallStmt parses either an assignment or a procedure call, both
// of which begin with an identifier.
func (p *Parser) parseAssignOrCallStmt() ast.Stmt {
	nameTok := p.want(TOK_ID)

	if p.got(TOK_LPAREN) {
		call := p.parseCallTail(nameTok)
		end := p.want(TOK_SEMI).Span

		return &ast.ProcCallStmt{
			StmtBase: ast.StmtBase{ASTBase: ast.NewASTBaseOver(nameTok.Span, end)},
			Call:     call,
		}
	}

	lhs := p.parseLeftExprTail(nameTok)
	p.want(TOK_ASSIGN)
	rhs := p.parseExpr()
	end := p.want(TOK_SEMI).Span

	return &ast.AssignStmt{
		StmtBase: ast.StmtBase{ASTBase: ast.NewASTBaseOver(nameTok.Span, end)},
		Lhs:      lhs,
		Rhs:      rhs,
	}
}

// parseLeftExpr parses `ID ([ expr ])?`.
func (p *Parser) parseLeftExpr() *ast.LeftExpr {
	return p.parseLeftExprTail(p.want(TOK_ID))
}

// parseLeftExprTail finishes a left expression whose identifier has already
// been consumed.
func (p *Parser) parseLeftExprTail(nameTok *Token) *ast.LeftExpr {
	ident := &ast.Ident{ExprBase: ast.ExprBase{ASTBase: ast.NewASTBaseOn(nameTok.Span)}, Name: nameTok.Value}

	if p.got(TOK_LBRACKET) {
		p.next()
		index := p.parseExpr()
		end := p.want(TOK_RBRACKET).Span

		return &ast.LeftExpr{
			ASTBase: ast.NewASTBaseOver(nameTok.Span, end),
			Ident:   ident,
			Index:   index,
		}
	}

	return &ast.LeftExpr{
		ASTBase: ast.NewASTBaseOn(nameTok.Span),
		Ident:   ident,
	}
}

// parseCallTail finishes a function call whose identifier has already been
// consumed; the parser is on the opening parenthesis.
func (p *Parser) parseCallTail(nameTok *Token) *ast.FuncCall {
	ident := &ast.Ident{ExprBase: ast.ExprBase{ASTBase: ast.NewASTBaseOn(nameTok.Span)}, Name: nameTok.Value}

	p.want(TOK_LPAREN)
	var args []ast.Expr
	if !p.got(TOK_RPAREN) {
		args = append(args, p.parseExpr())
		for p.got(TOK_COMMA) {
			p.next()
			args = append(args, p.parseExpr())
		}
	}
	end := p.want(TOK_RPAREN).Span

	return &ast.FuncCall{
		ExprBase: ast.ExprBase{ASTBase: ast.NewASTBaseOver(nameTok.Span, end)},
		Ident:    ident,
		Args:     args,
	}
}

// -----------------------------------------------------------------------------
// Expression parsing, loosest binding first: `or`, `and`, relational
// operators, additive operators, multiplicative operators, unary operators.

// parseExpr parses `and_expr (or and_expr)*`.
func (p *Parser) parseExpr() ast.Expr {
	lhs := p.parseAndExpr()

	for p.got(TOK_OR) {
		opTok := p.tok
		p.next()
		rhs := p.parseAndExpr()
		lhs = p.newBinaryOp(opTok, lhs, rhs)
	}

	return lhs
}

// parseAndExpr parses `rel_expr (and rel_expr)*`.
func (p *Parser) parseAndExpr() ast.Expr {
	lhs := p.parseRelExpr()

	for p.got(TOK_AND) {
		opTok := p.tok
		p.next()
		rhs := p.parseRelExpr()
		lhs = p.newBinaryOp(opTok, lhs, rhs)
	}

	return lhs
}

// relationalOps is the set of relational operator token kinds.
var relationalOps = map[int]struct{}{
	TOK_EQ:   {},
	TOK_NEQ:  {},
	TOK_LT:   {},
	TOK_LTEQ: {},
	TOK_GT:   {},
	TOK_GTEQ: {},
}

// parseRelExpr parses `add_expr (relop add_expr)*`.
func (p *Parser) parseRelExpr() ast.Expr {
	lhs := p.parseAddExpr()

	for {
		if _, ok := relationalOps[p.tok.Kind]; !ok {
			return lhs
		}

		opTok := p.tok
		p.next()
		rhs := p.parseAddExpr()
		lhs = p.newBinaryOp(opTok, lhs, rhs)
	}
}

// parseAddExpr parses `mul_expr ((+|-) mul_expr)*`.
func (p *Parser) parseAddExpr() ast.Expr {
	lhs := p.parseMulExpr()

	for p.got(TOK_PLUS) || p.got(TOK_MINUS) {
		opTok := p.tok
		p.next()
		rhs := p.parseMulExpr()
		lhs = p.newBinaryOp(opTok, lhs, rhs)
	}

	return lhs
}

// parseMulExpr parses `unary_expr ((*|/|%) unary_expr)*`.
func (p *Parser) parseMulExpr() ast.Expr {
	lhs := p.parseUnaryExpr()

	for p.got(TOK_STAR) || p.got(TOK_SLASH) || p.got(TOK_MOD) {
		opTok := p.tok
		p.next()
		rhs := p.parseUnaryExpr()
		lhs = p.newBinaryOp(opTok, lhs, rhs)
	}

	return lhs
}

// parseUnaryExpr parses `(+|-|not) unary_expr | atom_expr`.
func (p *Parser) parseUnaryExpr() ast.Expr {
	if p.got(TOK_PLUS) || p.got(TOK_MINUS) || p.got(TOK_NOT) {
		opTok := p.tok
		p.next()
		operand := p.parseUnaryExpr()

		return &ast.UnaryOp{
			ExprBase: ast.ExprBase{ASTBase: ast.NewASTBaseOver(opTok.Span, operand.Span())},
			Op:       opTok.Value,
			OpSpan:   opTok.Span,
			Operand:  operand,
		}
	}

	return p.parseAtomExpr()
}

// parseAtomExpr parses a literal, a parenthesized expression, or an
// identifier optionally followed by an index or an argument list.
func (p *Parser) parseAtomExpr() ast.Expr {
	switch p.tok.Kind {
	case TOK_INTLIT:
		return p.newLiteral(ast.IntLit)
	case TOK_FLOATLIT:
		return p.newLiteral(ast.FloatLit)
	case TOK_BOOLLIT:
		return p.newLiteral(ast.BoolLit)
	case TOK_CHARLIT:
		return p.newLiteral(ast.CharLit)
	case TOK_LPAREN:
		start := p.tok.Span
		p.next()
		inner := p.parseExpr()
		end := p.want(TOK_RPAREN).Span

		return &ast.Paren{
			ExprBase: ast.ExprBase{ASTBase: ast.NewASTBaseOver(start, end)},
			Inner:    inner,
		}
	case TOK_ID:
		nameTok := p.tok
		p.next()

		switch p.tok.Kind {
		case TOK_LPAREN:
			return p.parseCallTail(nameTok)
		case TOK_LBRACKET:
			p.next()
			index := p.parseExpr()
			end := p.want(TOK_RBRACKET).Span

			return &ast.ArrayAccess{
				ExprBase: ast.ExprBase{ASTBase: ast.NewASTBaseOver(nameTok.Span, end)},
				Ident:    &ast.Ident{ExprBase: ast.ExprBase{ASTBase: ast.NewASTBaseOn(nameTok.Span)}, Name: nameTok.Value},
				Index:    index,
			}
		default:
			return &ast.Ident{ExprBase: ast.ExprBase{ASTBase: ast.NewASTBaseOn(nameTok.Span)}, Name: nameTok.Value}
		}
	default:
		p.reject()
		return nil
	}
}

func (p *Parser) newLiteral(kind int) ast.Expr {
	lit := &ast.Literal{
		ExprBase: ast.ExprBase{ASTBase: ast.NewASTBaseOn(p.tok.Span)},
		Kind:     kind,
		Value:    p.tok.Value,
	}
	p.next()
	return lit
}

func (p *Parser) newBinaryOp(opTok *Token, lhs, rhs ast.Expr) ast.Expr {
	return &ast.BinaryOp{
		ExprBase: ast.ExprBase{ASTBase: ast.NewASTBaseOver(lhs.Span(), rhs.Span())},
		Op:       opTok.Value,
		OpSpan:   opTok.Span,
		Lhs:      lhs,
		Rhs:      rhs,
	}
}
