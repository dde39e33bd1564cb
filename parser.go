package main

// maxArgs limits the number of parameters and call arguments.
const maxArgs = 255

// parseError unwinds the parser to the enclosing declaration after a
// syntax error has been reported.
type parseError struct{}

// Parser is a recursive-descent parser over a token stream.
type Parser struct {
	tokens   []Token
	current  int
	reporter *Reporter
}

// NewParser creates a parser. tokens must end with an EOF token.
func NewParser(tokens []Token, reporter *Reporter) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != EOF {
		panic("token stream must end with EOF")
	}
	return &Parser{tokens: tokens, reporter: reporter}
}

// Parse parses a whole program. Statements with syntax errors are
// reported and left out of the result.
func (p *Parser) Parse() []*ASTNode {
	var statements []*ASTNode
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// ParseExpression parses a single expression followed by EOF. It returns
// nil after a syntax error.
func (p *Parser) ParseExpression() (expr *ASTNode) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); !ok {
				panic(r)
			}
			expr = nil
		}
	}()
	expr = p.expression()
	if !p.isAtEnd() {
		panic(p.fail(p.peek(), "Expect end of expression."))
	}
	return expr
}

func (p *Parser) declaration() (stmt *ASTNode) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); !ok {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()

	if p.match(FUN) {
		return p.function()
	}
	if p.match(VAR) {
		return p.varDeclaration()
	}
	return p.statement()
}

func (p *Parser) statement() *ASTNode {
	switch {
	case p.match(FOR):
		return p.forStatement()
	case p.match(IF):
		return p.ifStatement()
	case p.match(PRINT):
		return p.printStatement()
	case p.match(RETURN):
		return p.returnStatement()
	case p.match(WHILE):
		return p.whileStatement()
	case p.match(LBRACE):
		brace := p.previous()
		return &ASTNode{Kind: NodeBlock, Token: brace, Children: p.block()}
	default:
		return p.expressionStatement()
	}
}

// forStatement desugars
//
//	for (init; test; incr) body
//
// into
//
//	{ init; while (test) { body; incr; } }
func (p *Parser) forStatement() *ASTNode {
	keyword := p.previous()
	p.consume(LPAREN, "Expect '(' after 'for'.")

	var initializer *ASTNode
	if p.match(SEMICOLON) {
		initializer = nil
	} else if p.match(VAR) {
		initializer = p.varDeclaration()
	} else {
		initializer = p.expressionStatement()
	}

	var test *ASTNode
	if !p.check(SEMICOLON) {
		test = p.expression()
	}
	p.consume(SEMICOLON, "Expect ';' after loop condition.")

	var increment *ASTNode
	if !p.check(RPAREN) {
		increment = p.expression()
	}
	p.consume(RPAREN, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = &ASTNode{
			Kind:  NodeBlock,
			Token: keyword,
			Children: []*ASTNode{
				body,
				{Kind: NodeExprStmt, Token: keyword, Children: []*ASTNode{increment}},
			},
		}
	}
	if test == nil {
		test = &ASTNode{Kind: NodeLiteral, Token: keyword, Literal: true}
	}
	body = &ASTNode{Kind: NodeWhile, Token: keyword, Children: []*ASTNode{test, body}}

	if initializer != nil {
		body = &ASTNode{Kind: NodeBlock, Token: keyword, Children: []*ASTNode{initializer, body}}
	}
	return body
}

func (p *Parser) ifStatement() *ASTNode {
	keyword := p.previous()
	p.consume(LPAREN, "Expect '(' after 'if'.")
	test := p.expression()
	p.consume(RPAREN, "Expect ')' after if condition.")

	children := []*ASTNode{test, p.statement()}
	if p.match(ELSE) {
		children = append(children, p.statement())
	}
	return &ASTNode{Kind: NodeIf, Token: keyword, Children: children}
}

func (p *Parser) printStatement() *ASTNode {
	keyword := p.previous()
	value := p.expression()
	p.consume(SEMICOLON, "Expect ';' after value.")
	return &ASTNode{Kind: NodePrint, Token: keyword, Children: []*ASTNode{value}}
}

func (p *Parser) returnStatement() *ASTNode {
	keyword := p.previous()
	var children []*ASTNode
	if !p.check(SEMICOLON) {
		children = append(children, p.expression())
	}
	p.consume(SEMICOLON, "Expect ';' after return value.")
	return &ASTNode{Kind: NodeReturn, Token: keyword, Children: children}
}

func (p *Parser) varDeclaration() *ASTNode {
	name := p.consume(IDENT, "Expect variable name.")

	var children []*ASTNode
	if p.match(ASSIGN) {
		children = append(children, p.expression())
	}
	p.consume(SEMICOLON, "Expect ';' after variable declaration.")
	return &ASTNode{Kind: NodeVar, Token: name, Children: children}
}

func (p *Parser) whileStatement() *ASTNode {
	keyword := p.previous()
	p.consume(LPAREN, "Expect '(' after 'while'.")
	test := p.expression()
	p.consume(RPAREN, "Expect ')' after condition.")
	body := p.statement()
	return &ASTNode{Kind: NodeWhile, Token: keyword, Children: []*ASTNode{test, body}}
}

func (p *Parser) expressionStatement() *ASTNode {
	expr := p.expression()
	p.consume(SEMICOLON, "Expect ';' after expression.")
	return &ASTNode{Kind: NodeExprStmt, Token: expr.Token, Children: []*ASTNode{expr}}
}

func (p *Parser) function() *ASTNode {
	name := p.consume(IDENT, "Expect function name.")
	p.consume(LPAREN, "Expect '(' after function name.")

	var params []Token
	if !p.check(RPAREN) {
		for {
			if len(params) >= maxArgs {
				p.reporter.ErrorAt(p.peek(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(IDENT, "Expect parameter name."))
			if !p.match(COMMA) {
				break
			}
		}
	}
	p.consume(RPAREN, "Expect ')' after parameters.")

	p.consume(LBRACE, "Expect '{' before function body.")
	body := p.block()
	return &ASTNode{Kind: NodeFunc, Token: name, Params: params, Children: body}
}

// block parses declarations up to and including the closing brace. The
// opening brace has already been consumed.
func (p *Parser) block() []*ASTNode {
	var statements []*ASTNode
	for !p.check(RBRACE) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	p.consume(RBRACE, "Expect '}' after block.")
	return statements
}

func (p *Parser) expression() *ASTNode {
	return p.assignment()
}

func (p *Parser) assignment() *ASTNode {
	expr := p.or()

	if p.match(ASSIGN) {
		equals := p.previous()
		value := p.assignment() // right-associative

		if expr.Kind == NodeVariable {
			return &ASTNode{Kind: NodeAssign, Token: expr.Token, Children: []*ASTNode{value}}
		}
		// Reported, not thrown: the parser is not confused.
		p.reporter.ErrorAt(equals, "Invalid assignment target.")
	}
	return expr
}

func (p *Parser) or() *ASTNode {
	expr := p.and()
	for p.match(OR) {
		operator := p.previous()
		right := p.and()
		expr = &ASTNode{Kind: NodeLogical, Token: operator, Children: []*ASTNode{expr, right}}
	}
	return expr
}

func (p *Parser) and() *ASTNode {
	expr := p.equality()
	for p.match(AND) {
		operator := p.previous()
		right := p.equality()
		expr = &ASTNode{Kind: NodeLogical, Token: operator, Children: []*ASTNode{expr, right}}
	}
	return expr
}

func (p *Parser) equality() *ASTNode {
	return p.parseLeftAssociative(p.comparison, NOT_EQ, EQ)
}

func (p *Parser) comparison() *ASTNode {
	return p.parseLeftAssociative(p.term, GT, GE, LT, LE)
}

func (p *Parser) term() *ASTNode {
	return p.parseLeftAssociative(p.factor, MINUS, PLUS)
}

func (p *Parser) factor() *ASTNode {
	return p.parseLeftAssociative(p.unary, SLASH, ASTERISK)
}

// parseLeftAssociative folds operand (op operand)* into a left-leaning
// chain of NodeBinary.
func (p *Parser) parseLeftAssociative(operand func() *ASTNode, types ...TokenType) *ASTNode {
	expr := operand()
	for p.match(types...) {
		operator := p.previous()
		right := operand()
		expr = &ASTNode{Kind: NodeBinary, Token: operator, Children: []*ASTNode{expr, right}}
	}
	return expr
}

func (p *Parser) unary() *ASTNode {
	if p.match(BANG, MINUS) {
		operator := p.previous()
		right := p.unary()
		return &ASTNode{Kind: NodeUnary, Token: operator, Children: []*ASTNode{right}}
	}
	return p.call()
}

func (p *Parser) call() *ASTNode {
	expr := p.primary()
	for p.match(LPAREN) {
		expr = p.finishCall(expr)
	}
	return expr
}

func (p *Parser) finishCall(callee *ASTNode) *ASTNode {
	children := []*ASTNode{callee}
	if !p.check(RPAREN) {
		for {
			if len(children)-1 >= maxArgs {
				p.reporter.ErrorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			children = append(children, p.expression())
			if !p.match(COMMA) {
				break
			}
		}
	}
	paren := p.consume(RPAREN, "Expect ')' after arguments.")
	return &ASTNode{Kind: NodeCall, Token: paren, Children: children}
}

func (p *Parser) primary() *ASTNode {
	switch {
	case p.match(FALSE):
		return &ASTNode{Kind: NodeLiteral, Token: p.previous(), Literal: false}
	case p.match(TRUE):
		return &ASTNode{Kind: NodeLiteral, Token: p.previous(), Literal: true}
	case p.match(NIL):
		return &ASTNode{Kind: NodeLiteral, Token: p.previous(), Literal: nil}
	case p.match(NUMBER, STRING):
		tok := p.previous()
		return &ASTNode{Kind: NodeLiteral, Token: tok, Literal: tok.Literal}
	case p.match(IDENT):
		return &ASTNode{Kind: NodeVariable, Token: p.previous()}
	case p.match(LPAREN):
		paren := p.previous()
		expr := p.expression()
		p.consume(RPAREN, "Expect ')' after expression.")
		return &ASTNode{Kind: NodeGrouping, Token: paren, Children: []*ASTNode{expr}}
	}
	panic(p.fail(p.peek(), "Expect expression."))
}

// synchronize discards tokens until the start of the next statement.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == SEMICOLON {
			return
		}
		switch p.peek().Type {
		case CLASS, FUN, VAR, FOR, IF, WHILE, PRINT, RETURN:
			return
		}
		p.advance()
	}
}

func (p *Parser) match(types ...TokenType) bool {
	for _, typ := range types {
		if p.check(typ) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past the current token, which must be of type typ.
//
// Reports message and unwinds to the enclosing declaration otherwise.
func (p *Parser) consume(typ TokenType, message string) Token {
	if p.check(typ) {
		return p.advance()
	}
	panic(p.fail(p.peek(), message))
}

func (p *Parser) fail(tok Token, message string) parseError {
	p.reporter.ErrorAt(tok, message)
	return parseError{}
}

func (p *Parser) check(typ TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == typ
}

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == EOF
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}
