package condition

import (
	"sort"
	"strconv"
	"strings"
)

// TokenType represents the class of a token
type TokenType int

const (
	// Brackets
	TokenOpenBracket TokenType = iota
	TokenCloseBracket

	// Operators
	TokenComparison // > < >= <= == !=
	TokenLogic      // and or

	// Operands
	TokenColumn
	TokenLiteral
)

var tokenTypeNames = map[TokenType]string{
	TokenOpenBracket:  "'['",
	TokenCloseBracket: "']'",
	TokenComparison:   "comparison operator",
	TokenLogic:        "logic operator",
	TokenColumn:       "column",
	TokenLiteral:      "literal",
}

func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return "TokenType(" + strconv.Itoa(int(t)) + ")"
}

// Token represents a classified token
type Token struct {
	Type    TokenType
	Value   string
	Literal Literal // set when Type is TokenLiteral
}

// LiteralKind is the resolved type of a literal value
type LiteralKind int

const (
	LiteralInteger LiteralKind = iota
	LiteralFloat
	LiteralString
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralInteger:
		return "integer"
	case LiteralFloat:
		return "float"
	case LiteralString:
		return "string"
	default:
		return "LiteralKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Literal is a typed constant on the right-hand side of a comparison.
// Only the field matching Kind is meaningful.
type Literal struct {
	Kind  LiteralKind
	Int   int64
	Float float64
	Str   string
}

// IntLiteral returns an integer literal.
func IntLiteral(v int64) Literal { return Literal{Kind: LiteralInteger, Int: v} }

// FloatLiteral returns a float literal.
func FloatLiteral(v float64) Literal { return Literal{Kind: LiteralFloat, Float: v} }

// StringLiteral returns a string literal.
func StringLiteral(v string) Literal { return Literal{Kind: LiteralString, Str: v} }

// Value returns the literal as an int64, float64 or string.
func (l Literal) Value() interface{} {
	switch l.Kind {
	case LiteralInteger:
		return l.Int
	case LiteralFloat:
		return l.Float
	default:
		return l.Str
	}
}

// ColumnSet is the set of names used as the left-hand operand of a comparison.
type ColumnSet map[string]struct{}

// Has reports whether name is a known column.
func (c ColumnSet) Has(name string) bool {
	_, ok := c[name]
	return ok
}

// Names returns the column names in sorted order.
func (c ColumnSet) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CompareOp is a comparison operator
type CompareOp string

const (
	OpGreater      CompareOp = ">"
	OpLess         CompareOp = "<"
	OpGreaterEqual CompareOp = ">="
	OpLessEqual    CompareOp = "<="
	OpEqual        CompareOp = "=="
	OpNotEqual     CompareOp = "!="
)

// LogicOp is a logic operator combining two expressions
type LogicOp string

const (
	LogicAnd LogicOp = "and"
	LogicOr  LogicOp = "or"
)

// Symbol returns the elementwise combinator for the operator: & or |.
func (o LogicOp) Symbol() string {
	if o == LogicAnd {
		return "&"
	}
	return "|"
}

// Expression is a node of a parsed condition.
//
// It is implemented by *Comparison, *Combination and *Group only. String
// renders the node back into the condition language.
type Expression interface {
	String() string
	expressionNode()
}

// Comparison represents `column OP literal`
type Comparison struct {
	Column string
	Op     CompareOp
	Value  Literal
}

// Combination represents two expressions joined by and/or
type Combination struct {
	Left  Expression
	Op    LogicOp
	Right Expression
}

// Group represents a bracketed sub-condition
type Group struct {
	Inner Expression
}

func (*Comparison) expressionNode()  {}
func (*Combination) expressionNode() {}
func (*Group) expressionNode()       {}

func (c *Comparison) String() string {
	return c.Column + " " + string(c.Op) + " " + conditionLiteral(c.Value)
}

func (c *Combination) String() string {
	return c.Left.String() + " " + string(c.Op) + " " + c.Right.String()
}

func (g *Group) String() string {
	return "[" + g.Inner.String() + "]"
}

// conditionLiteral renders a literal so that it re-classifies to the same kind.
func conditionLiteral(l Literal) string {
	switch l.Kind {
	case LiteralInteger:
		return strconv.FormatInt(l.Int, 10)
	case LiteralFloat:
		return formatFloat(l.Float)
	default:
		if strings.ContainsRune(l.Str, '"') {
			return "'" + l.Str + "'"
		}
		return `"` + l.Str + `"`
	}
}

// formatFloat renders the shortest representation, keeping a decimal point
// on integral values so 15.0 never reads back as an integer.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEN") || strings.Contains(s, "Inf") {
		return s
	}
	return s + ".0"
}
