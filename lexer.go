package main

import "strconv"

// Lexer turns source bytes into tokens.
type Lexer struct {
	input    []byte
	start    int // first byte of the token being scanned
	pos      int // current reading position in input
	line     int
	reporter *Reporter
	tokens   []Token
}

// NewLexer creates a lexer for in. The input must end with a 0 byte; one
// is appended if it is missing.
func NewLexer(in []byte, reporter *Reporter) *Lexer {
	if len(in) == 0 || in[len(in)-1] != 0 {
		in = append(in[:len(in):len(in)], 0)
	}
	return &Lexer{input: in, line: 1, reporter: reporter}
}

// ScanTokens scans the whole input. The result always ends with an EOF
// token.
func (l *Lexer) ScanTokens() []Token {
	for {
		l.skipWhitespace()
		l.start = l.pos
		if l.atEnd() {
			break
		}
		l.scanToken()
	}
	l.tokens = append(l.tokens, Token{Type: EOF, Line: l.line})
	return l.tokens
}

// atEnd reports whether pos is at the terminating 0 byte. A 0 byte
// anywhere else is an ordinary, and usually unexpected, character.
func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)-1
}

func (l *Lexer) scanToken() {
	c := l.input[l.pos]
	l.pos++

	switch c {
	case '(':
		l.addToken(LPAREN, nil)
	case ')':
		l.addToken(RPAREN, nil)
	case '{':
		l.addToken(LBRACE, nil)
	case '}':
		l.addToken(RBRACE, nil)
	case ',':
		l.addToken(COMMA, nil)
	case '.':
		l.addToken(DOT, nil)
	case '-':
		l.addToken(MINUS, nil)
	case '+':
		l.addToken(PLUS, nil)
	case ';':
		l.addToken(SEMICOLON, nil)
	case '*':
		l.addToken(ASTERISK, nil)
	case '/':
		l.addToken(SLASH, nil)
	case '!':
		l.addToken(l.either('=', NOT_EQ, BANG), nil)
	case '=':
		l.addToken(l.either('=', EQ, ASSIGN), nil)
	case '<':
		l.addToken(l.either('=', LE, LT), nil)
	case '>':
		l.addToken(l.either('=', GE, GT), nil)
	case '"':
		l.readString()
	default:
		if isDigit(c) {
			l.readNumber()
		} else if isLetter(c) {
			l.readIdentifier()
		} else {
			l.reporter.Error(l.line, "Unexpected character.")
		}
	}
}

// either consumes next and returns two if it follows, else one.
func (l *Lexer) either(next byte, two, one TokenType) TokenType {
	if l.input[l.pos] == next {
		l.pos++
		return two
	}
	return one
}

func (l *Lexer) addToken(typ TokenType, literal any) {
	l.tokens = append(l.tokens, Token{
		Type:    typ,
		Lexeme:  string(l.input[l.start:l.pos]),
		Literal: literal,
		Line:    l.line,
	})
}

func (l *Lexer) skipWhitespace() {
	for {
		switch l.input[l.pos] {
		case ' ', '\t', '\r':
			l.pos++
		case '\n':
			l.line++
			l.pos++
		case '/':
			if l.input[l.pos+1] != '/' {
				return
			}
			l.skipLineComment()
		default:
			return
		}
	}
}

func (l *Lexer) skipLineComment() {
	for l.input[l.pos] != '\n' && !l.atEnd() {
		l.pos++
	}
}

func (l *Lexer) readString() {
	for l.input[l.pos] != '"' && !l.atEnd() {
		if l.input[l.pos] == '\n' {
			l.line++
		}
		l.pos++
	}
	if l.atEnd() {
		l.reporter.Error(l.line, "Unterminated string.")
		return
	}
	l.pos++ // closing "
	l.addToken(STRING, string(l.input[l.start+1:l.pos-1]))
}

func (l *Lexer) readNumber() {
	for isDigit(l.input[l.pos]) {
		l.pos++
	}
	// A fractional part needs at least one digit after the '.'.
	if l.input[l.pos] == '.' && isDigit(l.input[l.pos+1]) {
		l.pos++
		for isDigit(l.input[l.pos]) {
			l.pos++
		}
	}
	val, err := strconv.ParseFloat(string(l.input[l.start:l.pos]), 64)
	if err != nil {
		panic("lexer produced unparsable number: " + err.Error())
	}
	l.addToken(NUMBER, val)
}

func (l *Lexer) readIdentifier() {
	for isLetter(l.input[l.pos]) || isDigit(l.input[l.pos]) {
		l.pos++
	}
	lit := string(l.input[l.start:l.pos])
	if typ, ok := keywords[lit]; ok {
		l.addToken(typ, nil)
		return
	}
	l.addToken(IDENT, nil)
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// Tokenize scans source and returns its tokens.
func Tokenize(source string, reporter *Reporter) []Token {
	return NewLexer([]byte(source+"\x00"), reporter).ScanTokens()
}
