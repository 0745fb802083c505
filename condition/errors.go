package condition

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCondition is returned when the condition has no tokens
	ErrEmptyCondition = errors.New("empty condition")

	// ErrUnmatchedBracket is returned for a '[' without ']' or vice versa
	ErrUnmatchedBracket = errors.New("unmatched bracket")

	// ErrEmptyGroup is returned for '[]'
	ErrEmptyGroup = errors.New("empty bracket group")

	// ErrUnterminatedQuote is returned for a quoted literal without its closing quote
	ErrUnterminatedQuote = errors.New("unterminated quote")

	// ErrMissingLiteral is returned when a comparison has no literal after its operator
	ErrMissingLiteral = errors.New("comparison is missing a literal")

	// ErrUnexpectedToken is returned when a token does not fit the grammar at its position
	ErrUnexpectedToken = errors.New("unexpected token")

	// ErrNoExpression is returned when evaluating before anything was parsed
	ErrNoExpression = errors.New("no expression parsed")

	// ErrUnknownColumn is returned when a referenced column is absent from the table
	ErrUnknownColumn = errors.New("unknown column")

	// ErrColumnLength is returned when a column's length differs from the table's row count
	ErrColumnLength = errors.New("column length does not match table")

	// ErrTypeMismatch is returned for ordering comparisons across incompatible types
	ErrTypeMismatch = errors.New("type mismatch")
)

// ParseError reports a structural problem in a condition string.
//
// Pos is the index of the offending token in the tokenized condition, or -1
// when the error concerns the condition as a whole.
type ParseError struct {
	Pos   int
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	switch {
	case e.Pos < 0:
		return fmt.Sprintf("parse error: %v", e.Err)
	case e.Token == "":
		return fmt.Sprintf("parse error at token %d: %v", e.Pos, e.Err)
	default:
		return fmt.Sprintf("parse error at token %d (%q): %v", e.Pos, e.Token, e.Err)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EvaluationError reports a failure binding or evaluating an expression.
type EvaluationError struct {
	Column string
	Err    error
}

func (e *EvaluationError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("evaluation error: %v", e.Err)
	}
	return fmt.Sprintf("evaluation error on column %q: %v", e.Column, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

func parseErrorf(pos int, token string, err error, format string, args ...interface{}) *ParseError {
	if format == "" {
		return &ParseError{Pos: pos, Token: token, Err: err}
	}
	return &ParseError{Pos: pos, Token: token, Err: fmt.Errorf("%w: "+format, append([]interface{}{err}, args...)...)}
}
