package condition

import (
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/vegasq/condmask/mask"
)

// Table is the data an expression is evaluated against.
//
// Column returns the values of the named column in row order; the slice must
// have Len() elements. The second result is false for unknown columns.
type Table interface {
	Len() int
	Column(name string) ([]interface{}, bool)
}

// Evaluate applies expr to every row of t and returns the selection mask.
//
// Evaluation only reads table columns and applies the fixed comparison and
// logic operators. Either a complete mask or an error is returned.
func Evaluate(expr Expression, t Table) (*mask.Mask, error) {
	if expr == nil {
		return nil, &EvaluationError{Err: ErrNoExpression}
	}
	return evaluate(expr, t)
}

func evaluate(expr Expression, t Table) (*mask.Mask, error) {
	switch e := expr.(type) {
	case *Comparison:
		return evaluateComparison(e, t)
	case *Combination:
		left, err := evaluate(e.Left, t)
		if err != nil {
			return nil, err
		}
		right, err := evaluate(e.Right, t)
		if err != nil {
			return nil, err
		}
		if e.Op == LogicAnd {
			return left.And(right)
		}
		return left.Or(right)
	case *Group:
		return evaluate(e.Inner, t)
	default:
		return nil, &EvaluationError{Err: fmt.Errorf("unsupported expression %T", expr)}
	}
}

func evaluateComparison(c *Comparison, t Table) (*mask.Mask, error) {
	values, ok := t.Column(c.Column)
	if !ok {
		return nil, &EvaluationError{Column: c.Column, Err: ErrUnknownColumn}
	}
	if len(values) != t.Len() {
		return nil, &EvaluationError{
			Column: c.Column,
			Err:    fmt.Errorf("%w: %d values for %d rows", ErrColumnLength, len(values), t.Len()),
		}
	}

	m := mask.New(t.Len())
	for i, v := range values {
		match, err := compare(v, c.Op, c.Value)
		if err != nil {
			return nil, &EvaluationError{Column: c.Column, Err: fmt.Errorf("row %d: %w", i, err)}
		}
		m.Set(i, match)
	}
	return m, nil
}

// Options configures an Evaluator
type Options struct {
	Limits Limits
	Render RenderOptions
	Logger log.Logger
}

// DefaultOptions returns options with default limits, the default table
// name, symbolic combinators and a no-op logger.
func DefaultOptions() Options {
	return Options{
		Limits: DefaultLimits(),
		Logger: log.NewNopLogger(),
	}
}

// Evaluator parses a condition once and evaluates it against tables.
//
// An Evaluator holds the last parsed expression and must not be shared
// between goroutines that call Parse. The package-level Parse and Evaluate
// functions are stateless.
type Evaluator struct {
	parser *Parser
	render RenderOptions
	logger log.Logger

	cond string
	expr Expression
}

// NewEvaluator creates an evaluator with the given options
func NewEvaluator(opts Options) *Evaluator {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Evaluator{
		parser: NewParser(opts.Limits),
		render: opts.Render,
		logger: logger,
	}
}

// Parse parses cond and keeps the resulting expression for later calls to
// Eval. On error the previously parsed expression is kept.
func (e *Evaluator) Parse(cond string) (*Evaluator, error) {
	expr, err := e.parser.Parse(cond)
	if err != nil {
		level.Debug(e.logger).Log("msg", "failed to parse condition", "condition", cond, "err", err)
		return e, err
	}
	e.cond = cond
	e.expr = expr
	level.Debug(e.logger).Log("msg", "parsed condition", "condition", cond, "statement", e.Statement())
	return e, nil
}

// Condition returns the last successfully parsed condition string
func (e *Evaluator) Condition() string {
	return e.cond
}

// Expression returns the parsed expression, or nil before the first Parse
func (e *Evaluator) Expression() Expression {
	return e.expr
}

// Statement returns the rendered predicate of the parsed expression
func (e *Evaluator) Statement() string {
	return Render(e.expr, e.render)
}

// Eval evaluates the parsed expression against t
func (e *Evaluator) Eval(t Table) (*mask.Mask, error) {
	m, err := Evaluate(e.expr, t)
	if err != nil {
		level.Debug(e.logger).Log("msg", "evaluation failed", "statement", e.Statement(), "err", err)
		return nil, err
	}
	level.Debug(e.logger).Log("msg", "evaluated condition", "statement", e.Statement(), "rows", m.Len(), "matched", m.Count())
	return m, nil
}

// EvalString parses cond and evaluates it against t
func (e *Evaluator) EvalString(cond string, t Table) (*mask.Mask, error) {
	if _, err := e.Parse(cond); err != nil {
		return nil, err
	}
	return e.Eval(t)
}
