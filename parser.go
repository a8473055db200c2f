// parser.go — recursive-descent parser with Pratt-style precedence (§4.2).
//
// The overall shape (an errs-accumulating Parser over a Lexer, a
// synchronize() that resumes at a statement-starter keyword or a consumed
// ';') is grounded on daios-ai-msg/parser.go's ParseError handling, applied
// to this language's BNF (§4.2) rather than MindScript's S-expression
// grammar.
package simpscript

// Parse tokenizes and parses src into a Program. On any lex or parse
// error it returns an empty Program together with the first error, for
// the caller to format (via WrapErrorWithSource) and report; per §4.2, a
// source with any grammar violation yields an empty program rather than a
// partially-built one.
func Parse(src string) (*Program, error) {
	p := newParser(src)
	program := p.parseProgram()
	if len(p.errors) > 0 {
		return &Program{Statements: nil}, p.errors[0]
	}
	return program, nil
}

type parser struct {
	lexer   *Lexer
	current Token
	errors  []error
}

func newParser(src string) *parser {
	p := &parser{lexer: NewLexer(src)}
	p.advance()
	return p
}

// advance consumes the current token and loads the next one. A lexical
// error surfaces as a ParseError at the same position (§4.1: "the lexer
// never throws" — the parser is where a LexError-carrying ILLEGAL token
// becomes an actual failure).
func (p *parser) advance() Token {
	prev := p.current
	tok, err := p.lexer.NextToken()
	if err != nil {
		p.current = Token{Type: ILLEGAL, Line: tok.Line, Col: tok.Col}
		p.errorAt(tok.Line, tok.Col, err.Error())
	} else {
		p.current = tok
	}
	return prev
}

func (p *parser) check(tt TokenType) bool { return p.current.Type == tt }

func (p *parser) match(tt TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(tt TokenType, msg string) Token {
	if p.check(tt) {
		return p.advance()
	}
	p.errorAt(p.current.Line, p.current.Col, msg)
	return p.current
}

func (p *parser) errorAt(line, col int, msg string) {
	p.errors = append(p.errors, &ParseError{Line: line, Col: col, Msg: msg})
}

func (p *parser) errorHere(msg string) {
	p.errorAt(p.current.Line, p.current.Col, msg)
}

// synchronize advances until it finds a ';' (consumed) or a
// statement-starter keyword (left for the next statement), per §4.2.
func (p *parser) synchronize() {
	for !p.check(EOF) {
		if p.current.Type == SEMICOLON {
			p.advance()
			return
		}
		if statementStarters[p.current.Type] {
			return
		}
		p.advance()
	}
}

// ---- program / blocks ---------------------------------------------------

func (p *parser) parseProgram() *Program {
	line, col := p.current.Line, p.current.Col
	prog := &Program{pos: pos{line, col}}
	for !p.check(EOF) {
		before := len(p.errors)
		stmt := p.statement()
		if len(p.errors) > before {
			p.synchronize()
			continue
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog
}

// endKeywords are the block terminators recognized by block().
var endKeywords = map[TokenType]bool{
	ENDIF: true, ENDWHILE: true, ENDFOR: true, ENDFUNCTION: true, ELSE: true,
}

// block parses statement* up to (but not consuming) any END* keyword, ELSE,
// or EOF (§4.2).
func (p *parser) block() *Block {
	line, col := p.current.Line, p.current.Col
	b := &Block{pos: pos{line, col}}
	for !p.check(EOF) && !endKeywords[p.current.Type] {
		before := len(p.errors)
		stmt := p.statement()
		if len(p.errors) > before {
			p.synchronize()
			continue
		}
		b.Statements = append(b.Statements, stmt)
	}
	return b
}

// ---- statements -----------------------------------------------------------

func (p *parser) statement() Node {
	switch p.current.Type {
	case IF:
		return p.ifStatement()
	case WHILE:
		return p.whileStatement()
	case FOR:
		return p.forStatement()
	case FUNCTION:
		return p.funcDecl()
	case RETURN:
		return p.returnStatement()
	case SHOW, SHOWNL:
		return p.printStatement()
	default:
		return p.exprStatement()
	}
}

func (p *parser) ifStatement() Node {
	line, col := p.current.Line, p.current.Col
	p.advance() // IF
	cond := p.expression()
	then := p.statement()
	var elseBranch Node
	if p.match(ELSE) {
		elseBranch = p.statement()
	}
	p.expect(ENDIF, "expected 'endif'")
	return &If{pos: pos{line, col}, Cond: cond, Then: then, Else: elseBranch}
}

func (p *parser) whileStatement() Node {
	line, col := p.current.Line, p.current.Col
	p.advance() // WHILE
	cond := p.expression()
	body := p.block()
	p.expect(ENDWHILE, "expected 'endwhile'")
	return &While{pos: pos{line, col}, Cond: cond, Body: body}
}

func (p *parser) forStatement() Node {
	line, col := p.current.Line, p.current.Col
	p.advance() // FOR
	init := p.expression()
	p.expect(SEMICOLON, "expected ';' after for-loop initializer")
	cond := p.expression()
	p.expect(SEMICOLON, "expected ';' after for-loop condition")
	incr := p.expression()
	body := p.statement()
	p.expect(ENDFOR, "expected 'endfor'")
	return &For{pos: pos{line, col}, Init: init, Cond: cond, Incr: incr, Body: body}
}

func (p *parser) funcDecl() Node {
	line, col := p.current.Line, p.current.Col
	p.advance() // FUNCTION
	nameTok := p.expect(IDENTIFIER, "expected function name")
	p.expect(LPAREN, "expected '(' after function name")
	var params []string
	if !p.check(RPAREN) {
		params = append(params, p.expect(IDENTIFIER, "expected parameter name").Lexeme)
		for p.match(COMMA) {
			params = append(params, p.expect(IDENTIFIER, "expected parameter name").Lexeme)
		}
	}
	p.expect(RPAREN, "expected ')' after parameter list")
	body := p.block()
	p.expect(ENDFUNCTION, "expected 'endfunction'")
	return &FunctionDef{pos: pos{line, col}, Name: nameTok.Lexeme, Params: params, Body: body}
}

func (p *parser) returnStatement() Node {
	line, col := p.current.Line, p.current.Col
	p.advance() // RETURN
	expr := p.expression()
	return &Return{pos: pos{line, col}, Expr: expr}
}

func (p *parser) printStatement() Node {
	line, col := p.current.Line, p.current.Col
	newline := p.current.Type == SHOWNL
	p.advance() // SHOW | SHOWNL
	expr := p.expression()
	return &Print{pos: pos{line, col}, Expr: expr, Newline: newline}
}

func (p *parser) exprStatement() Node {
	return p.expression()
}

// ---- expressions: assignment -> logicalOr -> ... -> call -> primary -----

func (p *parser) expression() Node { return p.assignment() }

func (p *parser) assignment() Node {
	left := p.logicalOr()
	if p.match(ASSIGN) {
		rhs := p.assignment()
		switch target := left.(type) {
		case *Variable:
			return &Assignment{pos: target.pos, Name: target.Name, Expr: rhs}
		case *ArrayAccess:
			return &ArrayAssignment{pos: target.pos, Array: target.Array, Index: target.Index, Expr: rhs}
		default:
			line, col := target.Pos()
			p.errorAt(line, col, "Invalid assignment target.")
			return left
		}
	}
	return left
}

func (p *parser) logicalOr() Node {
	left := p.logicalAnd()
	for p.check(OR) {
		line, col := p.current.Line, p.current.Col
		p.advance()
		right := p.logicalAnd()
		left = &BinaryOp{pos: pos{line, col}, Op: OR, Left: left, Right: right}
	}
	return left
}

func (p *parser) logicalAnd() Node {
	left := p.equality()
	for p.check(AND) {
		line, col := p.current.Line, p.current.Col
		p.advance()
		right := p.equality()
		left = &BinaryOp{pos: pos{line, col}, Op: AND, Left: left, Right: right}
	}
	return left
}

func isEqualityOp(t TokenType) bool {
	return t == EQ || t == NEQ || t == EQUALS || t == ISNT
}

func (p *parser) equality() Node {
	left := p.comparison()
	for isEqualityOp(p.current.Type) {
		op := p.current.Type
		line, col := p.current.Line, p.current.Col
		p.advance()
		right := p.comparison()
		left = &BinaryOp{pos: pos{line, col}, Op: op, Left: left, Right: right}
	}
	return left
}

func isComparisonOp(t TokenType) bool {
	switch t {
	case GT, LT, GTE, LTE, GREATER_THAN, LESS_THAN, AT_LEAST, AT_MOST:
		return true
	default:
		return false
	}
}

func (p *parser) comparison() Node {
	left := p.term()
	for isComparisonOp(p.current.Type) {
		op := p.current.Type
		line, col := p.current.Line, p.current.Col
		p.advance()
		right := p.term()
		left = &BinaryOp{pos: pos{line, col}, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *parser) term() Node {
	left := p.factor()
	for p.current.Type == PLUS || p.current.Type == MINUS {
		op := p.current.Type
		line, col := p.current.Line, p.current.Col
		p.advance()
		right := p.factor()
		left = &BinaryOp{pos: pos{line, col}, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *parser) factor() Node {
	left := p.unary()
	for p.current.Type == STAR || p.current.Type == SLASH || p.current.Type == PERCENT {
		op := p.current.Type
		line, col := p.current.Line, p.current.Col
		p.advance()
		right := p.unary()
		left = &BinaryOp{pos: pos{line, col}, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *parser) unary() Node {
	if p.current.Type == MINUS || p.current.Type == NOT {
		op := p.current.Type
		line, col := p.current.Line, p.current.Col
		p.advance()
		operand := p.unary()
		return &UnaryOp{pos: pos{line, col}, Op: op, Operand: operand}
	}
	return p.call()
}

// call implements §4.2's call head restriction: only a bare identifier
// primary may be followed by '(' args? ')'; a call on anything else is
// rejected at parse time ("Expected function name."). Indexing with
// '[' expression ']' is accepted after any primary or call.
func (p *parser) call() Node {
	expr := p.primary()
	for {
		switch p.current.Type {
		case LPAREN:
			ident, ok := expr.(*Variable)
			if !ok {
				p.errorHere("Expected function name.")
				return expr
			}
			line, col := p.current.Line, p.current.Col
			p.advance() // '('
			var args []Node
			if !p.check(RPAREN) {
				args = append(args, p.expression())
				for p.match(COMMA) {
					args = append(args, p.expression())
				}
			}
			p.expect(RPAREN, "expected ')' after arguments")
			expr = &FunctionCall{pos: pos{line, col}, Name: ident.Name, Args: args}
		case LBRACKET:
			line, col := p.current.Line, p.current.Col
			p.advance() // '['
			idx := p.expression()
			p.expect(RBRACKET, "expected ']' after index")
			expr = &ArrayAccess{pos: pos{line, col}, Array: expr, Index: idx}
		default:
			return expr
		}
	}
}

func (p *parser) primary() Node {
	line, col := p.current.Line, p.current.Col
	switch p.current.Type {
	case INTEGER:
		v := p.current.Literal.(int64)
		p.advance()
		return &Literal{pos: pos{line, col}, Value: IntVal(v)}
	case FLOAT:
		v := p.current.Literal.(float64)
		p.advance()
		return &Literal{pos: pos{line, col}, Value: FloatVal(v)}
	case STRING:
		v := p.current.Literal.(string)
		p.advance()
		return &Literal{pos: pos{line, col}, Value: StringVal(v)}
	case IDENTIFIER:
		name := p.current.Lexeme
		p.advance()
		return &Variable{pos: pos{line, col}, Name: name}
	case ASK:
		p.advance()
		return &Input{pos: pos{line, col}}
	case NEXTL:
		p.advance()
		return &Variable{pos: pos{line, col}, Name: "nextl"}
	case LPAREN:
		p.advance()
		expr := p.expression()
		p.expect(RPAREN, "expected ')' after expression")
		return expr
	case LBRACKET:
		p.advance()
		var elems []Node
		if !p.check(RBRACKET) {
			elems = append(elems, p.expression())
			for p.match(COMMA) {
				elems = append(elems, p.expression())
			}
		}
		p.expect(RBRACKET, "expected ']' after array elements")
		return &ArrayLiteral{pos: pos{line, col}, Elements: elems}
	default:
		p.errorHere("unexpected token " + p.current.Type.String())
		p.advance()
		return &Literal{pos: pos{line, col}, Value: Nil}
	}
}
