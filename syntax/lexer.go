package syntax

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"aslc/report"
)

// Lexer is responsible for tokenizing an ASL source file.
type Lexer struct {
	file    *bufio.Reader
	tokBuff *strings.Builder

	line, col           int
	startLine, startCol int
}

// NewLexer creates a new lexer over the given reader.
func NewLexer(file *bufio.Reader) *Lexer {
	return &Lexer{
		file:    file,
		tokBuff: &strings.Builder{},
		line:    1,
		col:     1,
	}
}

// NextToken retrieves the next token from the input. If the input has ended,
// this will be an EOF token.
func (l *Lexer) NextToken() (*Token, error) {
	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if c == -1 {
			break
		}

		switch c {
		case '\n', '\t', ' ', '\r', '\v', '\f':
			l.skip()
		case '/':
			if tok, err := l.lexCommentOrDiv(); tok != nil || err != nil {
				return tok, err
			}
		case '\'':
			return l.lexCharLit()
		case '"':
			return l.lexStringLit()
		default:
			if isDecimalDigit(c) {
				return l.lexNumericLit()
			} else if isFirstIdentChar(c) {
				return l.lexIdentOrKeyword()
			} else {
				return l.lexPunctOrOper()
			}
		}
	}

	l.mark()
	return l.makeToken(TOK_EOF), nil
}

// -----------------------------------------------------------------------------

// lexCommentOrDiv either skips a line comment or produces a division token.
func (l *Lexer) lexCommentOrDiv() (*Token, error) {
	l.mark()
	l.eat()

	c, err := l.peek()
	if err != nil {
		return nil, err
	}

	if c == '/' {
		// Line comment: skip to end of line.
		for c != '\n' && c != -1 {
			l.skip()
			c, err = l.peek()
			if err != nil {
				return nil, err
			}
		}

		l.tokBuff.Reset()
		return nil, nil
	}

	return l.makeToken(TOK_SLASH), nil
}

// lexCharLit lexes a character literal, keeping its delimiting quotes.
func (l *Lexer) lexCharLit() (*Token, error) {
	l.mark()
	l.eat()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		switch c {
		case -1, '\n':
			return nil, report.Raise(l.getSpan(), "unclosed character literal")
		case '\\':
			l.eat()
			l.eat()
		case '\'':
			l.eat()
			return l.makeToken(TOK_CHARLIT), nil
		default:
			l.eat()
		}
	}
}

// lexStringLit lexes a string literal, keeping its delimiting quotes.
func (l *Lexer) lexStringLit() (*Token, error) {
	l.mark()
	l.eat()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		switch c {
		case -1, '\n':
			return nil, report.Raise(l.getSpan(), "unclosed string literal")
		case '\\':
			l.eat()
			l.eat()
		case '"':
			l.eat()
			return l.makeToken(TOK_STRLIT), nil
		default:
			l.eat()
		}
	}
}

// lexNumericLit lexes an integer or float literal.
func (l *Lexer) lexNumericLit() (*Token, error) {
	l.mark()
	l.eat()

	isFloat := false
	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		if isDecimalDigit(c) {
			l.eat()
		} else if c == '.' && !isFloat {
			isFloat = true
			l.eat()
		} else {
			break
		}
	}

	if isFloat {
		return l.makeToken(TOK_FLOATLIT), nil
	}
	return l.makeToken(TOK_INTLIT), nil
}

// lexIdentOrKeyword lexes an identifier or keyword.
func (l *Lexer) lexIdentOrKeyword() (*Token, error) {
	l.mark()
	l.eat()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		if c == -1 || !isIdentChar(c) {
			break
		}
		l.eat()
	}

	if kind, ok := keywordPatterns[l.tokBuff.String()]; ok {
		return l.makeToken(kind), nil
	}
	return l.makeToken(TOK_ID), nil
}

// lexPunctOrOper lexes a punctuation or operator symbol.
func (l *Lexer) lexPunctOrOper() (*Token, error) {
	l.mark()
	l.eat()

	kind, ok := symbolPatterns[l.tokBuff.String()]
	if !ok && l.tokBuff.String() != "!" {
		return nil, report.Raise(l.getSpan(), "unknown character `%s`", l.tokBuff.String())
	}

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		if c == -1 {
			break
		}

		if _kind, ok := symbolPatterns[l.tokBuff.String()+string(c)]; ok {
			l.eat()
			kind = _kind
		} else {
			break
		}
	}

	if _, ok := symbolPatterns[l.tokBuff.String()]; !ok {
		return nil, report.Raise(l.getSpan(), "unknown character `%s`", l.tokBuff.String())
	}

	return l.makeToken(kind), nil
}

// -----------------------------------------------------------------------------

func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isFirstIdentChar(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isIdentChar(c rune) bool {
	return isFirstIdentChar(c) || isDecimalDigit(c)
}

// -----------------------------------------------------------------------------

// peek returns the next rune of input without consuming it.  It returns -1 at
// end of input.
func (l *Lexer) peek() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}
		return 0, err
	}

	l.file.UnreadRune()
	return c, nil
}

// eat consumes the next rune of input into the token buffer.
func (l *Lexer) eat() {
	c, _, err := l.file.ReadRune()
	if err != nil {
		return
	}

	l.tokBuff.WriteRune(c)
	l.advance(c)
}

// skip consumes the next rune of input without buffering it.
func (l *Lexer) skip() {
	c, _, err := l.file.ReadRune()
	if err != nil {
		return
	}

	l.advance(c)
}

func (l *Lexer) advance(c rune) {
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

// mark records the current position as the start of the token being lexed.
func (l *Lexer) mark() {
	l.startLine = l.line
	l.startCol = l.col
}

// getSpan returns the span from the marked position to the current position.
func (l *Lexer) getSpan() *report.TextSpan {
	return &report.TextSpan{
		StartLine: l.startLine,
		StartCol:  l.startCol,
		EndLine:   l.line,
		EndCol:    l.col - 1,
	}
}

// makeToken produces a token of the given kind from the token buffer and
// resets the buffer.
func (l *Lexer) makeToken(kind int) *Token {
	tok := &Token{Kind: kind, Value: l.tokBuff.String(), Span: l.getSpan()}
	l.tokBuff.Reset()
	return tok
}
