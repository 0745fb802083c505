// Package condition parses a small boolean condition language and evaluates
// it against tabular data.
//
// A condition compares named columns with literals and combines the
// comparisons with and/or:
//
//	[c1 > 1 and c1 <= 3] or c2 == "f"
//
// Tokens are separated by spaces; '[' and ']' group sub-conditions and may
// abut neighbouring tokens. There is no precedence between and/or: clauses
// combine left to right and brackets are the only way to group.
//
// Literals are typed by their text: digits only is an integer, anything that
// parses as a float is a float, and everything else is a string. Strings may
// be bare words, quoted, or prefixed with str:. True and False are strings.
//
// # Basic Usage
//
// Parse once, evaluate against any Table:
//
//	expr, err := condition.Parse(`[c1 > 1 and c1 <= 3] or c2 == "f"`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	m, err := condition.Evaluate(expr, frame)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(m) // [F,F,T,T,F,T]
//
// Render produces the equivalent elementwise predicate text:
//
//	condition.Render(expr, condition.RenderOptions{})
//	// ((df["c1"] > 1) & (df["c1"] <= 3)) | (df["c2"] == "f")
//
// # Errors
//
// Structural problems are reported as *ParseError and binding problems as
// *EvaluationError. Both wrap a sentinel error usable with errors.Is.
package condition
