package condition

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/condmask/mask"
	"github.com/vegasq/condmask/table"
)

// newSixRowFrame returns c1=0..5, c2='a'..'f'
func newSixRowFrame(t *testing.T) *table.Frame {
	t.Helper()
	f := table.New("df")
	require.NoError(t, f.AddColumn("c1", []interface{}{int64(0), int64(1), int64(2), int64(3), int64(4), int64(5)}))
	require.NoError(t, f.AddColumn("c2", []interface{}{"a", "b", "c", "d", "e", "f"}))
	require.NoError(t, f.AddColumn("flag", []interface{}{true, false, true, false, true, false}))
	require.NoError(t, f.AddColumn("score", []interface{}{0.5, nil, 2.5, 3.5, nil, 5.5}))
	return f
}

func TestEvaluate(t *testing.T) {
	frame := newSixRowFrame(t)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"grouped and with or", `[c1 > 1 and c1 <= 3] or c2 == "f"`, "[F,F,T,T,F,T]"},
		{"integer comparison", "c1 != 1", "[T,F,T,T,T,T]"},
		{"float literal", "c1 > 1.5", "[F,F,T,T,T,T]"},
		{"string ordering", "c2 >= d", "[F,F,F,T,T,T]"},
		{"quoted digits are text", `c2 == "1"`, "[F,F,F,F,F,F]"},
		{"string vs number inequality", "c2 != 1", "[T,T,T,T,T,T]"},
		{"True is text not bool", "flag == True", "[F,F,F,F,F,F]"},
		{"nil cells", "score > 1", "[F,F,T,T,F,T]"},
		{"nil cells not equal", "score != 2.5", "[T,T,F,T,T,T]"},
		{"left to right", `c1 == 0 or c1 == 5 and c2 == "f"`, "[F,F,F,F,F,T]"},
		{"explicit grouping", `c1 == 0 or [c1 == 5 and c2 == "f"]`, "[T,F,F,F,F,T]"},
		{"nested groups", `[[c1 < 2] or [c1 > 4]] and c2 != a`, "[F,T,F,F,F,T]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := Parse(tt.input)
			require.NoError(t, err)

			m, err := Evaluate(expr, frame)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.String())
			assert.Equal(t, frame.Len(), m.Len())
		})
	}
}

func TestEvaluate_ApostropheInBareWord(t *testing.T) {
	frame := table.New("df")
	require.NoError(t, frame.AddColumn("name", []interface{}{"O'Brien", "x"}))
	require.NoError(t, frame.AddColumn("x", []interface{}{int64(0), int64(5)}))

	expr, err := Parse("name == O'Brien or x > 1")
	require.NoError(t, err)
	assert.Equal(t, `name == "O'Brien" or x > 1`, expr.String())

	m, err := Evaluate(expr, frame)
	require.NoError(t, err)
	assert.Equal(t, "[T,T]", m.String())
}

func TestEvaluate_BracketedSameAsPlain(t *testing.T) {
	frame := newSixRowFrame(t)

	plain, err := Evaluate(MustParse("c1 > 1"), frame)
	require.NoError(t, err)
	bracketed, err := Evaluate(MustParse("[c1 > 1]"), frame)
	require.NoError(t, err)

	assert.True(t, plain.Equal(bracketed))
}

func TestEvaluate_Errors(t *testing.T) {
	frame := newSixRowFrame(t)

	tests := []struct {
		name       string
		expr       Expression
		wantErr    error
		wantColumn string
	}{
		{"nil expression", nil, ErrNoExpression, ""},
		{"unknown column", MustParse("c3 > 1"), ErrUnknownColumn, "c3"},
		{"unknown column on the right", MustParse("c1 > 1 and c9 == 2"), ErrUnknownColumn, "c9"},
		{"ordering across types", MustParse("c2 > 1"), ErrTypeMismatch, "c2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Evaluate(tt.expr, frame)
			require.Error(t, err)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, tt.wantErr)

			var eerr *EvaluationError
			require.True(t, errors.As(err, &eerr), "expected *EvaluationError, got %T", err)
			assert.Equal(t, tt.wantColumn, eerr.Column)
		})
	}
}

// shortTable reports more rows than its columns hold
type shortTable struct{}

func (shortTable) Len() int { return 3 }
func (shortTable) Column(name string) ([]interface{}, bool) {
	return []interface{}{1}, name == "a"
}

func TestEvaluate_ColumnLength(t *testing.T) {
	_, err := Evaluate(MustParse("a > 0"), shortTable{})
	assert.ErrorIs(t, err, ErrColumnLength)
}

func TestEvaluator_ParseThenEval(t *testing.T) {
	frame := table.New("df")
	require.NoError(t, frame.AddColumn("col1", []interface{}{int64(0), int64(1), int64(2)}))

	ev, err := NewEvaluator(DefaultOptions()).Parse("col1 != 1")
	require.NoError(t, err)
	assert.Equal(t, "col1 != 1", ev.Condition())
	assert.Equal(t, `(df["col1"] != 1)`, ev.Statement())

	m, err := ev.Eval(frame)
	require.NoError(t, err)
	assert.True(t, m.Equal(mask.FromBools([]bool{true, false, true})))

	other := table.New("my_df")
	require.NoError(t, other.AddColumn("col2", []interface{}{int64(0), int64(1), int64(2)}))

	m, err = NewEvaluator(DefaultOptions()).EvalString("col2 > 1", other)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, false, true}, m.Bools())
}

func TestEvaluator_EvalBeforeParse(t *testing.T) {
	frame := newSixRowFrame(t)

	ev := NewEvaluator(DefaultOptions())
	assert.Nil(t, ev.Expression())
	assert.Equal(t, "", ev.Statement())

	_, err := ev.Eval(frame)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoExpression)

	var eerr *EvaluationError
	assert.True(t, errors.As(err, &eerr))
}

func TestEvaluator_FailedParseKeepsPrevious(t *testing.T) {
	ev, err := NewEvaluator(DefaultOptions()).Parse("c1 > 1")
	require.NoError(t, err)

	_, err = ev.Parse("[c1 > 1")
	assert.ErrorIs(t, err, ErrUnmatchedBracket)
	assert.Equal(t, "c1 > 1", ev.Condition())

	_, err = ev.EvalString("[c1 > 1", newSixRowFrame(t))
	var perr *ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestEvaluator_RenderOptions(t *testing.T) {
	ev := NewEvaluator(Options{
		Limits: DefaultLimits(),
		Render: RenderOptions{TableName: "my_df", WordOperators: true},
	})

	_, err := ev.Parse("a > 1 and b < 2")
	require.NoError(t, err)
	assert.Equal(t, `(my_df["a"] > 1) and (my_df["b"] < 2)`, ev.Statement())

	// another evaluator is not affected
	plain, err := NewEvaluator(DefaultOptions()).Parse("a > 1 and b < 2")
	require.NoError(t, err)
	assert.Equal(t, `(df["a"] > 1) & (df["b"] < 2)`, plain.Statement())
}

func TestEvaluator_Logging(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Logger = log.NewLogfmtLogger(&buf)

	ev, err := NewEvaluator(opts).Parse(`[c1 > 1 and c1 <= 3] or c2 == "f"`)
	require.NoError(t, err)
	_, err = ev.Eval(newSixRowFrame(t))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `msg="parsed condition"`)
	assert.Contains(t, out, `msg="evaluated condition"`)
	assert.Contains(t, out, "matched=3")
}
