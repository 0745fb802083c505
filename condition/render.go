package condition

import (
	"strconv"
	"strings"
)

// DefaultTableName is the identifier used for the table in rendered predicates
const DefaultTableName = "df"

// RenderOptions controls the textual predicate produced by Render
type RenderOptions struct {
	// TableName is the identifier columns are referenced through; empty means DefaultTableName.
	TableName string `yaml:"table_name"`

	// WordOperators renders combinators as and/or instead of &/|.
	WordOperators bool `yaml:"word_operators"`
}

// Render renders expr as a fully parenthesized predicate over a table,
// e.g. `((df["c1"] > 1) & (df["c1"] <= 3)) | (df["c2"] == "f")`.
func Render(expr Expression, opts RenderOptions) string {
	if expr == nil {
		return ""
	}
	if opts.TableName == "" {
		opts.TableName = DefaultTableName
	}
	var sb strings.Builder
	render(&sb, expr, opts)
	return sb.String()
}

func render(sb *strings.Builder, expr Expression, opts RenderOptions) {
	switch e := expr.(type) {
	case *Comparison:
		sb.WriteByte('(')
		sb.WriteString(opts.TableName)
		sb.WriteByte('[')
		sb.WriteString(strconv.Quote(e.Column))
		sb.WriteString("] ")
		sb.WriteString(string(e.Op))
		sb.WriteByte(' ')
		sb.WriteString(renderLiteral(e.Value))
		sb.WriteByte(')')
	case *Combination:
		// Left folds are written flat while the operator repeats; a change of
		// operator needs parentheses to survive engines where & binds tighter.
		if left, ok := e.Left.(*Combination); ok && left.Op != e.Op {
			sb.WriteByte('(')
			render(sb, left, opts)
			sb.WriteByte(')')
		} else {
			render(sb, e.Left, opts)
		}
		sb.WriteByte(' ')
		if opts.WordOperators {
			sb.WriteString(string(e.Op))
		} else {
			sb.WriteString(e.Op.Symbol())
		}
		sb.WriteByte(' ')
		render(sb, e.Right, opts)
	case *Group:
		sb.WriteByte('(')
		render(sb, e.Inner, opts)
		sb.WriteByte(')')
	}
}

func renderLiteral(l Literal) string {
	switch l.Kind {
	case LiteralInteger:
		return strconv.FormatInt(l.Int, 10)
	case LiteralFloat:
		return formatFloat(l.Float)
	default:
		return strconv.Quote(l.Str)
	}
}
