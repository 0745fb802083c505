package condition

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

var comparisonOperators = map[string]CompareOp{
	">":  OpGreater,
	"<":  OpLess,
	">=": OpGreaterEqual,
	"<=": OpLessEqual,
	"==": OpEqual,
	"!=": OpNotEqual,
}

var logicOperators = map[string]LogicOp{
	"and": LogicAnd,
	"or":  LogicOr,
}

// Lexer splits a condition string into raw tokens
type Lexer struct {
	input string
	pos   int
	ch    rune
	width int
	count int
	err   *ParseError
}

// NewLexer creates a new lexer
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar reads the next character
func (l *Lexer) readChar() {
	l.pos += l.width
	if l.pos >= len(l.input) {
		l.ch = 0
		l.width = 0
		return
	}
	l.ch, l.width = utf8.DecodeRuneInString(l.input[l.pos:])
}

// skipWhitespace skips whitespace characters
func (l *Lexer) skipWhitespace() {
	for isSpace(l.ch) {
		l.readChar()
	}
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDelimiter(ch rune) bool {
	return ch == 0 || isSpace(ch) || ch == '[' || ch == ']'
}

// NextToken returns the next raw token, or "" at end of input.
//
// A token starting with a quote, optionally after "str:", runs to the
// matching quote. A token without a closing quote is split like a bare
// word and the problem is reported by Err.
func (l *Lexer) NextToken() string {
	l.skipWhitespace()

	switch l.ch {
	case 0:
		return ""
	case '[', ']':
		tok := string(l.ch)
		l.readChar()
		l.count++
		return tok
	}

	start := l.pos
	end := l.quotedEnd()
	for l.pos < end {
		l.readChar()
	}
	for !isDelimiter(l.ch) {
		l.readChar()
	}
	tok := l.input[start:l.pos]
	if end < 0 && l.err == nil {
		l.err = parseErrorf(l.count, tok, ErrUnterminatedQuote, "")
	}
	l.count++
	return tok
}

// quotedEnd returns the offset just past the closing quote of a quoted run
// starting at the current position, 0 when the token is not quoted, and -1
// when the closing quote is missing.
func (l *Lexer) quotedEnd() int {
	rest := strings.TrimPrefix(l.input[l.pos:], "str:")
	if rest == "" || (rest[0] != '"' && rest[0] != '\'') {
		return 0
	}
	closing := strings.IndexByte(rest[1:], rest[0])
	if closing < 0 {
		return -1
	}
	return len(l.input) - len(rest) + closing + 2
}

// Err returns the first error met while tokenizing, if any
func (l *Lexer) Err() error {
	if l.err == nil {
		return nil
	}
	return l.err
}

// Tokenize splits a condition into raw tokens.
//
// Tokens are separated by whitespace; '[' and ']' are always standalone
// tokens, even when they abut a word. A token starting with a quote is kept
// whole up to its closing quote. Quotes inside a word are ordinary characters.
func Tokenize(cond string) []string {
	tokens, _ := tokenize(cond)
	return tokens
}

func tokenize(cond string) ([]string, error) {
	lexer := NewLexer(cond)
	var tokens []string

	for {
		tok := lexer.NextToken()
		if tok == "" {
			break
		}
		tokens = append(tokens, tok)
	}

	return tokens, lexer.Err()
}

// ExtractColumnNames returns every token used as the left-hand operand of a
// comparison operator anywhere in cond, regardless of bracket nesting.
func ExtractColumnNames(cond string) ColumnSet {
	return extractColumnNames(Tokenize(cond))
}

func extractColumnNames(tokens []string) ColumnSet {
	cols := make(ColumnSet)
	for i := 1; i < len(tokens); i++ {
		if _, ok := comparisonOperators[tokens[i]]; !ok {
			continue
		}
		prev := tokens[i-1]
		if prev == "[" || prev == "]" || isOperator(prev) {
			continue
		}
		cols[prev] = struct{}{}
	}
	return cols
}

func isOperator(tok string) bool {
	if _, ok := comparisonOperators[tok]; ok {
		return true
	}
	_, ok := logicOperators[tok]
	return ok
}

// Classify determines the type of a raw token given the known columns.
func Classify(raw string, cols ColumnSet) Token {
	switch raw {
	case "[":
		return Token{Type: TokenOpenBracket, Value: raw}
	case "]":
		return Token{Type: TokenCloseBracket, Value: raw}
	}
	if _, ok := comparisonOperators[raw]; ok {
		return Token{Type: TokenComparison, Value: raw}
	}
	if _, ok := logicOperators[raw]; ok {
		return Token{Type: TokenLogic, Value: raw}
	}
	if cols.Has(raw) {
		return Token{Type: TokenColumn, Value: raw}
	}
	return Token{Type: TokenLiteral, Value: raw, Literal: ClassifyLiteral(raw)}
}

// ClassifyLiteral resolves the type of a literal token.
//
// A token of decimal digits only is an integer, a decimal number
// strconv.ParseFloat accepts is a float (out of range values become +/-Inf
// or 0), and everything else is a string with a leading "str:" and one pair
// of surrounding quotes removed. True and False are strings.
func ClassifyLiteral(raw string) Literal {
	if isDigits(raw) {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return IntLiteral(v)
		}
	}
	if !hasHexPrefix(raw) {
		v, err := strconv.ParseFloat(raw, 64)
		if err == nil || errors.Is(err, strconv.ErrRange) {
			return FloatLiteral(v)
		}
	}
	return StringLiteral(unquote(strings.TrimPrefix(raw, "str:")))
}

func hasHexPrefix(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
